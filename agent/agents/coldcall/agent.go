package coldcall

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
	memoryx "github.com/tanpawarit/hinglish-coldcall-agent/agent/memory"
	phasenode "github.com/tanpawarit/hinglish-coldcall-agent/agent/nodes"
	promptx "github.com/tanpawarit/hinglish-coldcall-agent/agent/prompt"
	scenariox "github.com/tanpawarit/hinglish-coldcall-agent/agent/scenario"
	statex "github.com/tanpawarit/hinglish-coldcall-agent/agent/state"
	logx "github.com/tanpawarit/hinglish-coldcall-agent/pkg/logger"
)

// FallbackReply is spoken whenever the generation backend fails or returns
// nothing.
const FallbackReply = "Sorry, I'm having trouble generating a response. Let me try again."

var (
	ErrInvalidMessage = phasenode.ErrInvalidMessage
	ErrNilGenerator   = errors.New("generator is required")
)

type Option func(*Agent)

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

func WithNow(now func() time.Time) Option {
	return func(a *Agent) {
		if now != nil {
			a.now = now
		}
	}
}

func WithCatalog(catalog *promptx.Catalog) Option {
	return func(a *Agent) { a.catalog = catalog }
}

func WithCallID(id string) Option {
	return func(a *Agent) { a.callID = strings.TrimSpace(id) }
}

// Agent owns one call: its session, the scenario's templates and the phase
// pipeline that turns a phase request into a recorded reply.
type Agent struct {
	session   *statex.CallSession
	templates promptx.TemplateSet
	generator contractx.Generator

	graphRunner compose.Runnable[phasenode.GraphInput, phasenode.GraphOutput]

	catalog *promptx.Catalog
	callID  string
	logger  zerolog.Logger
	now     func() time.Time
}

func New(scenario contractx.Scenario, generator contractx.Generator, opts ...Option) (*Agent, error) {
	if !scenario.Valid() {
		return nil, fmt.Errorf("%w: %q", contractx.ErrInvalidScenario, scenario)
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}

	a := &Agent{
		generator: generator,
		logger:    logx.Component("agent"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.catalog == nil {
		catalog, err := promptx.LoadCatalog()
		if err != nil {
			return nil, err
		}
		a.catalog = catalog
	}
	templates, err := a.catalog.ForScenario(scenario)
	if err != nil {
		return nil, err
	}
	a.templates = templates

	if a.callID == "" {
		a.callID = uuid.NewString()
	}
	session, err := statex.NewCallSession(a.callID, scenario, a.now())
	if err != nil {
		return nil, err
	}
	a.session = session
	a.logger = a.logger.With().Str("call_id", a.callID).Str("scenario", string(scenario)).Logger()

	if err := a.LoadScenarioData(); err != nil {
		return nil, err
	}

	graphRunner, err := a.compilePhaseGraph(context.Background())
	if err != nil {
		return nil, err
	}
	a.graphRunner = graphRunner

	return a, nil
}

// LoadScenarioData (re)populates the profile and knowledge buckets from the
// scenario's static data.
func (a *Agent) LoadScenarioData() error {
	data, err := scenariox.Load(a.session.Scenario)
	if err != nil {
		return err
	}
	a.session.Memory.SetContext(memoryx.ProfileKey, data.Profile)
	a.session.Memory.SetContext(memoryx.KnowledgeKey, data.Knowledge)
	a.logger.Debug().
		Int("profile_fields", len(data.Profile)).
		Int("knowledge_fields", len(data.Knowledge)).
		Msg("scenario data loaded")
	return nil
}

func (a *Agent) SelectTemplate(phase contractx.Phase) (string, error) {
	return a.templates.For(phase)
}

// RenderPrompt fills template from the current memory. userInput only matters
// to templates that reference it.
func (a *Agent) RenderPrompt(ctx context.Context, template, userInput string) (string, error) {
	mem := a.session.Memory
	return promptx.Render(ctx, template, promptx.Input{
		Profile:   mem.Context(memoryx.ProfileKey, nil),
		Knowledge: mem.Context(memoryx.KnowledgeKey, nil),
		History:   mem.History(),
		UserInput: userInput,
	})
}

// Generate never fails: backend errors and empty output become FallbackReply.
func (a *Agent) Generate(ctx context.Context, prompt string) string {
	reply, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		a.logger.Error().Err(err).Msg("generation failed, using fallback reply")
		return FallbackReply
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		a.logger.Warn().Msg("generation returned no text, using fallback reply")
		return FallbackReply
	}
	return reply
}

/* ------------------------------ Phases ------------------------------ */

func (a *Agent) RunGreeting(ctx context.Context) (string, error) {
	if err := a.session.CanTransition(statex.Greeted); err != nil {
		return "", err
	}
	reply, err := a.runPhase(ctx, contractx.PhaseGreeting, "")
	if err != nil {
		return "", err
	}
	if err := a.session.Transition(statex.Greeted, a.now()); err != nil {
		return "", err
	}
	return reply, nil
}

// RunTurn records userInput, generates the reply with the updated history and
// records the reply as well.
func (a *Agent) RunTurn(ctx context.Context, userInput string) (string, error) {
	if err := a.session.CanTransition(statex.InConversation); err != nil {
		return "", err
	}
	reply, err := a.runPhase(ctx, contractx.PhaseConversation, userInput)
	if err != nil {
		return "", err
	}
	if err := a.session.Transition(statex.InConversation, a.now()); err != nil {
		return "", err
	}
	return reply, nil
}

func (a *Agent) RunFarewell(ctx context.Context) (string, error) {
	if err := a.session.CanFarewell(); err != nil {
		return "", err
	}
	reply, err := a.runPhase(ctx, contractx.PhaseFarewell, "")
	if err != nil {
		return "", err
	}
	if err := a.session.MarkFarewell(a.now()); err != nil {
		return "", err
	}
	return reply, nil
}

// End closes the session. It is safe to call more than once.
func (a *Agent) End() {
	if a.session.IsEnded() {
		return
	}
	a.session.End(a.now())
	a.logger.Info().Int("turns", a.session.Memory.Len()).Msg("call session ended")
}

func (a *Agent) runPhase(ctx context.Context, phase contractx.Phase, userInput string) (string, error) {
	start := a.now()
	out, err := a.graphRunner.Invoke(ctx, phasenode.GraphInput{
		Phase:     phase,
		UserInput: userInput,
	})
	if err != nil {
		return "", err
	}
	a.logger.Debug().
		Str("phase", string(phase)).
		Dur("elapsed", a.now().Sub(start)).
		Int("history_len", a.session.Memory.Len()).
		Msg("phase completed")
	return out.Reply, nil
}

/* ------------------------------ Accessors ------------------------------ */

func (a *Agent) Session() *statex.CallSession {
	return a.session
}

func (a *Agent) Scenario() contractx.Scenario {
	return a.session.Scenario
}

func (a *Agent) Lifecycle() statex.Lifecycle {
	return a.session.Lifecycle
}

func (a *Agent) History() *memoryx.ConversationMemory {
	return a.session.Memory
}
