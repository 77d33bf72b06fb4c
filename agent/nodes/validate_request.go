package phasenode

import (
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
	statex "github.com/tanpawarit/hinglish-coldcall-agent/agent/state"
)

var (
	ErrInvalidMessage = errors.New("user input is empty")
	ErrNilSession     = errors.New("call session is nil")
)

type GraphInput struct {
	Phase     contractx.Phase
	UserInput string
}

type GraphOutput struct {
	Reply string
}

type GraphState struct {
	Phase     contractx.Phase
	UserInput string
	Now       time.Time

	Session  *statex.CallSession
	Template string
	Prompt   string
	Reply    string
}

func ValidateRequest(in GraphInput, session *statex.CallSession, nowFn func() time.Time) (*GraphState, error) {
	if session == nil {
		return nil, ErrNilSession
	}
	if !in.Phase.Valid() {
		return nil, fmt.Errorf("%w: phase=%q", contractx.ErrValidation, in.Phase)
	}

	text := strings.TrimSpace(in.UserInput)
	if in.Phase == contractx.PhaseConversation && text == "" {
		return nil, ErrInvalidMessage
	}
	if in.Phase != contractx.PhaseConversation {
		text = ""
	}

	return &GraphState{
		Phase:     in.Phase,
		UserInput: text,
		Now:       nowFn().UTC(),
		Session:   session,
	}, nil
}
