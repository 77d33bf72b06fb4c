package coldcall

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
	logx "github.com/tanpawarit/hinglish-coldcall-agent/pkg/logger"
)

const defaultFarewellTimeout = 30 * time.Second

// Reason tells why a call stopped.
type Reason string

const (
	ReasonExitPhrase  Reason = "exit_phrase"
	ReasonInputClosed Reason = "input_closed"
	ReasonCanceled    Reason = "canceled"
	ReasonFailure     Reason = "failure"
)

var exitPhrases = map[string]struct{}{
	"bye":      {},
	"goodbye":  {},
	"end call": {},
	"quit":     {},
	"exit":     {},
	"bye-bye":  {},
}

// IsExitPhrase matches the whole utterance, ignoring case, surrounding spaces
// and trailing punctuation. "goodbye for now" is not an exit phrase.
func IsExitPhrase(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.TrimSpace(strings.TrimRight(t, ".!?"))
	_, ok := exitPhrases[t]
	return ok
}

type Result struct {
	CallID   string
	Scenario contractx.Scenario
	Reason   Reason
	// Turns counts completed user/agent exchanges, greeting and farewell excluded.
	Turns    int
	// Err is set only when Reason is ReasonFailure.
	Err      error
}

type ControllerOption func(*Controller)

func WithControllerLogger(logger zerolog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = logger }
}

func WithFarewellTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.farewellTimeout = d
		}
	}
}

// Controller drives one call: greet, then listen/process/speak until the
// caller leaves, then say goodbye.
type Controller struct {
	agent    *Agent
	listener contractx.Listener
	speaker  contractx.Speaker

	logger          zerolog.Logger
	farewellTimeout time.Duration
}

func NewController(agent *Agent, listener contractx.Listener, speaker contractx.Speaker, opts ...ControllerOption) (*Controller, error) {
	if agent == nil {
		return nil, errors.New("agent is required")
	}
	if listener == nil {
		return nil, errors.New("listener is required")
	}
	if speaker == nil {
		return nil, errors.New("speaker is required")
	}

	c := &Controller{
		agent:           agent,
		listener:        listener,
		speaker:         speaker,
		logger:          logx.Component("controller"),
		farewellTimeout: defaultFarewellTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("call_id", agent.Session().CallID).Logger()
	return c, nil
}

// Run blocks until the call is over. Cancelling ctx stops the conversation at
// the next phase boundary; the farewell still goes out on a detached context.
func (c *Controller) Run(ctx context.Context) Result {
	res := Result{
		CallID:   c.agent.Session().CallID,
		Scenario: c.agent.Scenario(),
	}
	c.logger.Info().Str("scenario", string(res.Scenario)).Msg("call started")

	res.Reason, res.Err = c.converse(ctx, &res.Turns)
	if res.Err != nil {
		c.logger.Error().Err(res.Err).Msg("conversation aborted")
	}

	c.farewell(ctx)
	c.agent.End()

	c.logger.Info().
		Str("reason", string(res.Reason)).
		Int("turns", res.Turns).
		Msg("call finished")
	return res
}

func (c *Controller) converse(ctx context.Context, turns *int) (reason Reason, err error) {
	defer func() {
		if r := recover(); r != nil {
			reason, err = ReasonFailure, fmt.Errorf("panic in call loop: %v", r)
		}
	}()

	if ctx.Err() != nil {
		return ReasonCanceled, nil
	}
	greeting, err := c.agent.RunGreeting(ctx)
	if err != nil {
		return c.stopped(ctx, err)
	}
	if err := c.speaker.Speak(ctx, greeting); err != nil {
		return c.stopped(ctx, err)
	}

	for {
		if ctx.Err() != nil {
			return ReasonCanceled, nil
		}
		text, err := c.listener.Listen(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.logger.Info().Msg("input closed")
				return ReasonInputClosed, nil
			}
			return c.stopped(ctx, err)
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if IsExitPhrase(text) {
			c.logger.Info().Str("text", text).Msg("exit phrase received")
			return ReasonExitPhrase, nil
		}
		if ctx.Err() != nil {
			return ReasonCanceled, nil
		}

		reply, err := c.agent.RunTurn(ctx, text)
		if err != nil {
			return c.stopped(ctx, err)
		}
		*turns++

		if ctx.Err() != nil {
			return ReasonCanceled, nil
		}
		if err := c.speaker.Speak(ctx, reply); err != nil {
			return c.stopped(ctx, err)
		}
	}
}

// stopped attributes err to cancellation when ctx is done.
func (c *Controller) stopped(ctx context.Context, err error) (Reason, error) {
	if ctx.Err() != nil {
		return ReasonCanceled, nil
	}
	return ReasonFailure, err
}

func (c *Controller) farewell(ctx context.Context) {
	if err := c.agent.Session().CanFarewell(); err != nil {
		c.logger.Debug().Err(err).Msg("skipping farewell")
		return
	}

	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.farewellTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Interface("panic", r).Msg("farewell panicked")
		}
	}()

	reply, err := c.agent.RunFarewell(fctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("farewell failed")
		return
	}
	if err := c.speaker.Speak(fctx, reply); err != nil {
		c.logger.Error().Err(err).Msg("farewell playback failed")
	}
}
