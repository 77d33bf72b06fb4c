package phasenode

import (
	"fmt"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

// RecordUserInput appends the user turn before the prompt is rendered, so the
// rendered history already contains it.
func RecordUserInput(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil || in.Session.Memory == nil {
		return nil, fmt.Errorf("%w: graph state is incomplete", contractx.ErrValidation)
	}
	if in.Phase == contractx.PhaseConversation {
		in.Session.Memory.AddUserMessage(in.UserInput)
		in.Session.Touch(in.Now)
	}
	return in, nil
}

func RecordReply(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil || in.Session.Memory == nil {
		return nil, fmt.Errorf("%w: graph state is incomplete", contractx.ErrValidation)
	}
	in.Session.Memory.AddAgentMessage(in.Reply)
	in.Session.Touch(in.Now)
	return in, nil
}
