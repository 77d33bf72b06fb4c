package phasenode

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

// Generate runs the backend through generate, which must already apply the
// fallback policy: it always yields text.
func Generate(ctx context.Context, in *GraphState, generate func(context.Context, string) string) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Prompt == "" {
		return nil, fmt.Errorf("%w: prompt is empty", contractx.ErrValidation)
	}
	in.Reply = strings.TrimSpace(generate(ctx, in.Prompt))
	return in, nil
}
