package phasenode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
	memoryx "github.com/tanpawarit/hinglish-coldcall-agent/agent/memory"
	promptx "github.com/tanpawarit/hinglish-coldcall-agent/agent/prompt"
)

func RenderPrompt(ctx context.Context, in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil || in.Session.Memory == nil {
		return nil, fmt.Errorf("%w: graph state is incomplete", contractx.ErrValidation)
	}
	mem := in.Session.Memory

	rendered, err := promptx.Render(ctx, in.Template, promptx.Input{
		Profile:   mem.Context(memoryx.ProfileKey, nil),
		Knowledge: mem.Context(memoryx.KnowledgeKey, nil),
		History:   mem.History(),
		UserInput: in.UserInput,
	})
	if err != nil {
		return nil, err
	}
	in.Prompt = rendered
	return in, nil
}
