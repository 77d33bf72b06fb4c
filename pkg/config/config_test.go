package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	APIKey  string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model   string        `envconfig:"MODEL" split_words:"true" default:"google/gemini-1.5-pro"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

// These tests touch process env and package state, so they do not run in parallel.

func TestNewReadsExplicitEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "call.env")
	require.NoError(t, os.WriteFile(path, []byte("CCTEST_API_KEY=from-file\nCCTEST_TIMEOUT=5s\n"), 0o600))

	t.Setenv("CCTEST_API_KEY", "")
	require.NoError(t, os.Unsetenv("CCTEST_API_KEY"))
	t.Setenv("CCTEST_TIMEOUT", "")
	require.NoError(t, os.Unsetenv("CCTEST_TIMEOUT"))

	SetEnvFile(path)
	t.Cleanup(func() { SetEnvFile("") })

	cfg, err := New[sampleConfig]("CCTEST")
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, "google/gemini-1.5-pro", cfg.Model)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "call.env")
	require.NoError(t, os.WriteFile(path, []byte("CCTEST2_API_KEY=from-file\n"), 0o600))

	t.Setenv("CCTEST2_API_KEY", "from-env")
	SetEnvFile(path)
	t.Cleanup(func() { SetEnvFile("") })

	cfg, err := New[sampleConfig]("CCTEST2")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestNewMissingExplicitFile(t *testing.T) {
	SetEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	t.Cleanup(func() { SetEnvFile("") })

	_, err := New[sampleConfig]("CCTEST3")
	assert.Error(t, err)
}

func TestNewRequiredField(t *testing.T) {
	t.Setenv("CCTEST4_API_KEY", "")
	require.NoError(t, os.Unsetenv("CCTEST4_API_KEY"))

	_, err := New[sampleConfig]("CCTEST4")
	assert.Error(t, err)
	assert.Panics(t, func() { MustNew[sampleConfig]("CCTEST4") })
}
