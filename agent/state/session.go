package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
	memoryx "github.com/tanpawarit/hinglish-coldcall-agent/agent/memory"
)

// CallSession is the source of truth for one call, from scenario selection
// until the lifecycle ends. Its history is discarded with it.
type CallSession struct {
	// Identity
	CallID   string             `json:"call_id"`
	Scenario contractx.Scenario `json:"scenario"`

	Lifecycle         Lifecycle                   `json:"lifecycle"`
	FarewellDelivered bool                        `json:"farewell_delivered"`
	Memory            *memoryx.ConversationMemory `json:"-"`

	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
}

type Lifecycle string

const (
	NotStarted     Lifecycle = "not_started"
	Greeted        Lifecycle = "greeted"
	InConversation Lifecycle = "in_conversation"
	Ended          Lifecycle = "ended"
)

var (
	ErrInvalidSession = errors.New("call id is empty")
	ErrNilSession     = errors.New("call session is nil")
)

func NewCallSession(callID string, scenario contractx.Scenario, now time.Time) (*CallSession, error) {
	if strings.TrimSpace(callID) == "" {
		return nil, ErrInvalidSession
	}
	if !scenario.Valid() {
		return nil, fmt.Errorf("%w: %q", contractx.ErrInvalidScenario, scenario)
	}
	return &CallSession{
		CallID:    callID,
		Scenario:  scenario,
		Lifecycle: NotStarted,
		Memory:    memoryx.New(),
		StartedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

func (s *CallSession) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

/* --------------------------- Lifecycle helpers --------------------------- */

func (s *CallSession) IsEnded() bool {
	return s != nil && s.Lifecycle == Ended
}

// CanTransition reports whether the session may move to the given state.
// - NotStarted -> Greeted (exactly once)
// - Greeted | InConversation -> InConversation
// - any -> Ended
func (s *CallSession) CanTransition(to Lifecycle) error {
	if s == nil {
		return ErrNilSession
	}
	if s.Lifecycle == Ended {
		return contractx.ErrCallEnded
	}
	if to == Ended {
		return nil
	}
	if s.FarewellDelivered {
		return fmt.Errorf("%w: farewell already delivered", contractx.ErrInvalidTransition)
	}

	switch {
	case to == Greeted && s.Lifecycle == NotStarted:
		return nil
	case to == InConversation && (s.Lifecycle == Greeted || s.Lifecycle == InConversation):
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", contractx.ErrInvalidTransition, s.Lifecycle, to)
}

func (s *CallSession) Transition(to Lifecycle, now time.Time) error {
	if err := s.CanTransition(to); err != nil {
		return err
	}
	s.Lifecycle = to
	if to == Ended {
		s.EndedAt = now.UTC()
	}
	s.Touch(now)
	return nil
}

// CanFarewell allows the farewell phase once, after the greeting.
func (s *CallSession) CanFarewell() error {
	if s == nil {
		return ErrNilSession
	}
	switch s.Lifecycle {
	case Ended:
		return contractx.ErrCallEnded
	case NotStarted:
		return fmt.Errorf("%w: farewell before greeting", contractx.ErrInvalidTransition)
	}
	if s.FarewellDelivered {
		return fmt.Errorf("%w: farewell already delivered", contractx.ErrInvalidTransition)
	}
	return nil
}

func (s *CallSession) MarkFarewell(now time.Time) error {
	if err := s.CanFarewell(); err != nil {
		return err
	}
	s.FarewellDelivered = true
	s.Touch(now)
	return nil
}

// End moves the session to Ended from any state. Repeated calls are no-ops.
func (s *CallSession) End(now time.Time) {
	if s == nil || s.Lifecycle == Ended {
		return
	}
	s.Lifecycle = Ended
	s.EndedAt = now.UTC()
	s.Touch(now)
}

func (s *CallSession) Validate() error {
	if s == nil {
		return ErrNilSession
	}
	if strings.TrimSpace(s.CallID) == "" {
		return ErrInvalidSession
	}
	if !s.Scenario.Valid() {
		return fmt.Errorf("%w: %q", contractx.ErrInvalidScenario, s.Scenario)
	}
	if s.Memory == nil {
		return fmt.Errorf("%w: call %s has no memory", contractx.ErrValidation, s.CallID)
	}
	if s.Lifecycle == NotStarted && s.Memory.Len() > 0 {
		return fmt.Errorf("%w: call %s has turns before greeting", contractx.ErrValidation, s.CallID)
	}
	return nil
}
