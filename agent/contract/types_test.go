package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioFromChoice(t *testing.T) {
	t.Parallel()

	cases := map[string]Scenario{
		"1":   ScenarioDemo,
		" 2 ": ScenarioInterview,
		"3":   ScenarioPayment,
	}
	for choice, want := range cases {
		got, err := ScenarioFromChoice(choice)
		require.NoError(t, err, choice)
		assert.Equal(t, want, got)
	}

	for _, bad := range []string{"9", "", "0", "demo"} {
		_, err := ScenarioFromChoice(bad)
		assert.ErrorIs(t, err, ErrInvalidScenario, bad)
	}
}

func TestParseScenario(t *testing.T) {
	t.Parallel()

	got, err := ParseScenario("Interview")
	require.NoError(t, err)
	assert.Equal(t, ScenarioInterview, got)

	got, err = ParseScenario("3")
	require.NoError(t, err)
	assert.Equal(t, ScenarioPayment, got)

	_, err = ParseScenario("sales")
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestPhasesAreValid(t *testing.T) {
	t.Parallel()

	for _, p := range Phases() {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, Phase("closing").Valid())
}
