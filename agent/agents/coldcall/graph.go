package coldcall

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	phasenode "github.com/tanpawarit/hinglish-coldcall-agent/agent/nodes"
)

func (a *Agent) compilePhaseGraph(
	ctx context.Context,
) (compose.Runnable[phasenode.GraphInput, phasenode.GraphOutput], error) {
	graph := compose.NewGraph[phasenode.GraphInput, phasenode.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in phasenode.GraphInput) (*phasenode.GraphState, error) {
			return phasenode.ValidateRequest(in, a.session, a.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("select_template",
		compose.InvokableLambda(func(ctx context.Context, in *phasenode.GraphState) (*phasenode.GraphState, error) {
			return phasenode.SelectTemplate(in, a.templates)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node select_template: %w", err)
	}

	if err := graph.AddLambdaNode("record_user_input",
		compose.InvokableLambda(func(ctx context.Context, in *phasenode.GraphState) (*phasenode.GraphState, error) {
			return phasenode.RecordUserInput(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node record_user_input: %w", err)
	}

	if err := graph.AddLambdaNode("render_prompt",
		compose.InvokableLambda(func(ctx context.Context, in *phasenode.GraphState) (*phasenode.GraphState, error) {
			return phasenode.RenderPrompt(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node render_prompt: %w", err)
	}

	if err := graph.AddLambdaNode("generate",
		compose.InvokableLambda(func(ctx context.Context, in *phasenode.GraphState) (*phasenode.GraphState, error) {
			return phasenode.Generate(ctx, in, a.Generate)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node generate: %w", err)
	}

	if err := graph.AddLambdaNode("record_reply",
		compose.InvokableLambda(func(ctx context.Context, in *phasenode.GraphState) (*phasenode.GraphState, error) {
			return phasenode.RecordReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node record_reply: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *phasenode.GraphState) (phasenode.GraphOutput, error) {
			return phasenode.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "select_template"},
		{"select_template", "record_user_input"},
		{"record_user_input", "render_prompt"},
		{"render_prompt", "generate"},
		{"generate", "record_reply"},
		{"record_reply", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("coldcall.run_phase"))
	if err != nil {
		return nil, fmt.Errorf("compile phase graph: %w", err)
	}
	return runner, nil
}
