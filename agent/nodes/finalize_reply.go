package phasenode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.Reply)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: phase %s produced an empty reply", contractx.ErrValidation, in.Phase)
	}
	return GraphOutput{Reply: reply}, nil
}
