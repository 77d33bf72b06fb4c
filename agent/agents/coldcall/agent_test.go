package coldcall

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
	memoryx "github.com/tanpawarit/hinglish-coldcall-agent/agent/memory"
	statex "github.com/tanpawarit/hinglish-coldcall-agent/agent/state"
)

type fakeGenerator struct {
	replies []string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "Ji, bilkul.", nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
}

func newAgent(t *testing.T, s contractx.Scenario, gen contractx.Generator) *Agent {
	t.Helper()
	a, err := New(s, gen,
		WithLogger(zerolog.Nop()),
		WithNow(fixedNow),
		WithCallID("call-1"),
	)
	require.NoError(t, err)
	return a
}

func TestNewValidatesInput(t *testing.T) {
	t.Parallel()

	_, err := New("sales", &fakeGenerator{})
	assert.ErrorIs(t, err, contractx.ErrInvalidScenario)

	_, err = New(contractx.ScenarioDemo, nil)
	assert.ErrorIs(t, err, ErrNilGenerator)
}

func TestNewLoadsScenarioData(t *testing.T) {
	t.Parallel()

	a := newAgent(t, contractx.ScenarioDemo, &fakeGenerator{})

	assert.Equal(t, "call-1", a.Session().CallID)
	assert.Equal(t, statex.NotStarted, a.Lifecycle())
	assert.Equal(t, "Tech Solutions Ltd", a.History().Context(memoryx.ProfileKey, nil)["company"])
	assert.Empty(t, a.History().Context(memoryx.KnowledgeKey, nil))
	assert.Zero(t, a.History().Len())
}

func TestNewGeneratesCallID(t *testing.T) {
	t.Parallel()

	a, err := New(contractx.ScenarioPayment, &fakeGenerator{}, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	b, err := New(contractx.ScenarioPayment, &fakeGenerator{}, WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	assert.NotEmpty(t, a.Session().CallID)
	assert.NotEqual(t, a.Session().CallID, b.Session().CallID)
}

func TestInterviewCallFromMenuChoice(t *testing.T) {
	t.Parallel()

	scenario, err := contractx.ScenarioFromChoice("2")
	require.NoError(t, err)
	require.Equal(t, contractx.ScenarioInterview, scenario)

	gen := &fakeGenerator{replies: []string{
		"Namaste Ansh ji, kya aap abhi baat kar sakte hain?",
		"Bahut accha! Aapne kaunse projects pe kaam kiya hai?",
	}}
	a := newAgent(t, scenario, gen)

	profile := a.History().Context(memoryx.ProfileKey, nil)
	assert.Equal(t, "Ansh Aggarwal", profile["name"])
	assert.Equal(t, "3 years", profile["experience"])

	greeting, err := a.RunGreeting(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Namaste Ansh ji, kya aap abhi baat kar sakte hain?", greeting)
	assert.Equal(t, 1, a.History().Len())
	assert.Equal(t, statex.Greeted, a.Lifecycle())
	assert.Contains(t, gen.prompts[0], "Ansh Aggarwal")
	assert.NotContains(t, gen.prompts[0], "{")

	reply, err := a.RunTurn(context.Background(), "I have 3 years experience in backend development")
	require.NoError(t, err)
	assert.Equal(t, "Bahut accha! Aapne kaunse projects pe kaam kiya hai?", reply)
	assert.Equal(t, statex.InConversation, a.Lifecycle())

	turns := a.History().Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, contractx.RoleAgent, turns[0].Role)
	assert.Equal(t, contractx.Turn{Role: contractx.RoleUser, Content: "I have 3 years experience in backend development"}, turns[1])
	assert.Equal(t, contractx.RoleAgent, turns[2].Role)

	require.Len(t, gen.prompts, 2)
	assert.Contains(t, gen.prompts[1], "Customer: I have 3 years experience in backend development\n")
	assert.Contains(t, gen.prompts[1], "Candidate's most recent response: I have 3 years experience in backend development")
}

func TestFallbackKeepsHistoryShape(t *testing.T) {
	t.Parallel()

	a := newAgent(t, contractx.ScenarioPayment, &fakeGenerator{err: errors.New("rate limited")})

	greeting, err := a.RunGreeting(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, greeting)
	assert.Equal(t, 1, a.History().Len())

	reply, err := a.RunTurn(context.Background(), "payment next week karenge")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
	assert.Equal(t, 3, a.History().Len())
	assert.Equal(t, "AI: "+FallbackReply+"\n", strings.SplitAfter(a.History().History(), "\n")[2])
}

func TestEmptyGenerationFallsBack(t *testing.T) {
	t.Parallel()

	a := newAgent(t, contractx.ScenarioDemo, &fakeGenerator{replies: []string{"   "}})
	assert.Equal(t, FallbackReply, a.Generate(context.Background(), "prompt"))
}

func TestRunTurnRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	a := newAgent(t, contractx.ScenarioDemo, &fakeGenerator{})
	_, err := a.RunGreeting(context.Background())
	require.NoError(t, err)

	_, err = a.RunTurn(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidMessage)
	assert.Equal(t, 1, a.History().Len())
}

func TestLifecycleOrdering(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := newAgent(t, contractx.ScenarioDemo, &fakeGenerator{})

	_, err := a.RunTurn(ctx, "hello")
	assert.ErrorIs(t, err, contractx.ErrInvalidTransition)
	_, err = a.RunFarewell(ctx)
	assert.ErrorIs(t, err, contractx.ErrInvalidTransition)
	assert.Zero(t, a.History().Len())

	_, err = a.RunGreeting(ctx)
	require.NoError(t, err)
	_, err = a.RunGreeting(ctx)
	assert.ErrorIs(t, err, contractx.ErrInvalidTransition)

	_, err = a.RunFarewell(ctx)
	require.NoError(t, err)
	assert.True(t, a.Session().FarewellDelivered)
	assert.Equal(t, 2, a.History().Len())

	_, err = a.RunTurn(ctx, "one more thing")
	assert.ErrorIs(t, err, contractx.ErrInvalidTransition)
	_, err = a.RunFarewell(ctx)
	assert.ErrorIs(t, err, contractx.ErrInvalidTransition)

	a.End()
	a.End()
	assert.Equal(t, statex.Ended, a.Lifecycle())
	assert.Equal(t, fixedNow(), a.Session().EndedAt)

	_, err = a.RunGreeting(ctx)
	assert.ErrorIs(t, err, contractx.ErrCallEnded)
}

func TestFarewellSeesWholeConversation(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{replies: []string{"Namaste!", "Theek hai, Thursday 11 baje.", "Dhanyavaad!"}}
	a := newAgent(t, contractx.ScenarioDemo, gen)
	ctx := context.Background()

	_, err := a.RunGreeting(ctx)
	require.NoError(t, err)
	_, err = a.RunTurn(ctx, "Thursday works")
	require.NoError(t, err)
	bye, err := a.RunFarewell(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Dhanyavaad!", bye)
	assert.Contains(t, gen.prompts[2], "AI: Namaste!\nCustomer: Thursday works\nAI: Theek hai, Thursday 11 baje.\n")
	assert.Equal(t, 4, a.History().Len())
}

func TestSelectAndRenderDirectly(t *testing.T) {
	t.Parallel()

	a := newAgent(t, contractx.ScenarioPayment, &fakeGenerator{})

	tpl, err := a.SelectTemplate(contractx.PhaseGreeting)
	require.NoError(t, err)
	_, err = a.SelectTemplate("closing")
	assert.ErrorIs(t, err, contractx.ErrUnknownTemplate)

	prompt, err := a.RenderPrompt(context.Background(), tpl, "")
	require.NoError(t, err)
	assert.Contains(t, prompt, "INV-2024-1075")
	assert.Contains(t, prompt, "₹4,85,000")

	a.History().SetContext(memoryx.ProfileKey, map[string]string{"name": "Mr. Sharma"})
	prompt, err = a.RenderPrompt(context.Background(), tpl, "")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Mr. Sharma")

	require.NoError(t, a.LoadScenarioData())
	assert.Equal(t, "Customer", a.History().Context(memoryx.ProfileKey, nil)["name"])
}
