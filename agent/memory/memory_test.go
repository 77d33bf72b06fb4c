package memory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

func TestHistoryRendersTurnsInOrder(t *testing.T) {
	t.Parallel()

	m := New()
	m.AddAgentMessage("Namaste, main Priya bol rahi hoon")
	m.AddUserMessage("haan boliye")
	m.AddAgentMessage("Aapke paas 2 minute hain?")
	m.AddUserMessage("ok")

	got := m.History()
	want := "AI: Namaste, main Priya bol rahi hoon\n" +
		"Customer: haan boliye\n" +
		"AI: Aapke paas 2 minute hain?\n" +
		"Customer: ok\n"
	assert.Equal(t, want, got)
	assert.Equal(t, 4, m.Len())
}

func TestHistoryLineCountMatchesTurns(t *testing.T) {
	t.Parallel()

	m := New()
	const n = 7
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			m.AddUserMessage("u")
		} else {
			m.AddAgentMessage("a")
		}
	}

	lines := strings.Split(strings.TrimSuffix(m.History(), "\n"), "\n")
	require.Len(t, lines, n)
	for i, line := range lines {
		if i%2 == 0 {
			assert.True(t, strings.HasPrefix(line, "Customer: "), line)
		} else {
			assert.True(t, strings.HasPrefix(line, "AI: "), line)
		}
	}
}

func TestHistoryDoesNotMutate(t *testing.T) {
	t.Parallel()

	m := New()
	m.AddUserMessage("hello")
	_ = m.History()
	_ = m.History()
	assert.Equal(t, 1, m.Len())

	turns := m.Turns()
	turns[0].Content = "changed"
	assert.Equal(t, "hello", m.Turns()[0].Content)
	assert.Equal(t, contractx.RoleUser, m.Turns()[0].Role)
}

func TestEmptyHistory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", New().History())
}

func TestContextBuckets(t *testing.T) {
	t.Parallel()

	m := New()
	assert.Empty(t, m.Context(ProfileKey, nil))
	assert.NotNil(t, m.Context(KnowledgeKey, nil))

	def := map[string]string{"fallback": "yes"}
	assert.Equal(t, def, m.Context("missing", def))
	assert.Nil(t, m.Context("missing", nil))

	src := map[string]string{"name": "Ansh Aggarwal"}
	m.SetContext(ProfileKey, src)
	src["name"] = "mutated"
	assert.Equal(t, "Ansh Aggarwal", m.Context(ProfileKey, nil)["name"])
}
