package scenario_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
	promptx "github.com/tanpawarit/hinglish-coldcall-agent/agent/prompt"
	"github.com/tanpawarit/hinglish-coldcall-agent/agent/scenario"
)

func TestLoadPopulatesExactlyTemplateKeys(t *testing.T) {
	t.Parallel()

	catalog := promptx.MustLoadCatalog()
	for _, s := range contractx.Scenarios() {
		data, err := scenario.Load(s)
		require.NoError(t, err)

		var loaded []string
		for k := range data.Profile {
			loaded = append(loaded, k)
		}
		for k := range data.Knowledge {
			loaded = append(loaded, k)
		}
		slices.Sort(loaded)

		var referenced []string
		for _, p := range contractx.Phases() {
			tpl, err := catalog.Lookup(s, p)
			require.NoError(t, err)
			for _, name := range promptx.Referenced(tpl) {
				if name == promptx.HistoryPlaceholder || name == promptx.UserInputPlaceholder {
					continue
				}
				if !slices.Contains(referenced, name) {
					referenced = append(referenced, name)
				}
			}
		}
		slices.Sort(referenced)

		assert.Equal(t, referenced, loaded, "scenario %s", s)
	}
}

func TestLoadInterviewProfile(t *testing.T) {
	t.Parallel()

	data, err := scenario.Load(contractx.ScenarioInterview)
	require.NoError(t, err)
	assert.Equal(t, "Ansh Aggarwal", data.Profile["name"])
	assert.Equal(t, "3 years", data.Profile["experience"])
	assert.Equal(t, "FinTech", data.Knowledge["company_domain"])
}

func TestLoadDemoHasEmptyKnowledge(t *testing.T) {
	t.Parallel()

	data, err := scenario.Load(contractx.ScenarioDemo)
	require.NoError(t, err)
	assert.NotNil(t, data.Knowledge)
	assert.Empty(t, data.Knowledge)
	assert.Equal(t, "150 employees", data.Profile["company_size"])
}

func TestLoadReturnsFreshCopies(t *testing.T) {
	t.Parallel()

	first, err := scenario.Load(contractx.ScenarioPayment)
	require.NoError(t, err)
	first.Knowledge["due_amount"] = "0"

	second, err := scenario.Load(contractx.ScenarioPayment)
	require.NoError(t, err)
	assert.Equal(t, "₹4,85,000", second.Knowledge["due_amount"])
}

func TestLoadUnknownScenario(t *testing.T) {
	t.Parallel()

	_, err := scenario.Load("sales")
	assert.ErrorIs(t, err, contractx.ErrInvalidScenario)
}
