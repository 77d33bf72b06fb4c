package llm

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

var _ contractx.Generator = (*ChatGenerator)(nil)

// ChatGenerator sends one rendered prompt to a chat model and returns its text.
type ChatGenerator struct {
	runner compose.Runnable[string, *schema.Message]
}

// NewGenerator builds the chat model configured for scenario.
func NewGenerator(ctx context.Context, cfg Config, scenario contractx.Scenario) (*ChatGenerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !scenario.Valid() {
		return nil, fmt.Errorf("%w: %q", contractx.ErrInvalidScenario, scenario)
	}

	modelCfg := cfg.OpenRouterFor(scenario)
	chatModel, err := modelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s model: %v", contractx.ErrModelInvoke, scenario, err)
	}
	return NewChatGenerator(ctx, chatModel, cfg.SystemPrompt)
}

func NewChatGenerator(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*ChatGenerator, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}
	runner, err := compileGenerateGraph(ctx, chatModel, strings.TrimSpace(systemPrompt))
	if err != nil {
		return nil, fmt.Errorf("%w: compile generate graph: %v", contractx.ErrModelInvoke, err)
	}
	return &ChatGenerator{runner: runner}, nil
}

func (g *ChatGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is empty", contractx.ErrValidation)
	}

	msg, err := g.runner.Invoke(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return "", fmt.Errorf("%w: empty model response", contractx.ErrSchemaViolation)
	}

	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return "", fmt.Errorf("%w: model returned no text", contractx.ErrSchemaViolation)
	}
	return text, nil
}

func compileGenerateGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	systemPrompt string,
) (compose.Runnable[string, *schema.Message], error) {
	graph := compose.NewGraph[string, *schema.Message]()

	if err := graph.AddLambdaNode("to_messages",
		compose.InvokableLambda(func(ctx context.Context, prompt string) ([]*schema.Message, error) {
			msgs := make([]*schema.Message, 0, 2)
			if systemPrompt != "" {
				msgs = append(msgs, schema.SystemMessage(systemPrompt))
			}
			return append(msgs, schema.UserMessage(prompt)), nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node to_messages: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add node model: %w", err)
	}

	edges := [][2]string{
		{compose.START, "to_messages"},
		{"to_messages", "model"},
		{"model", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("llm.generate"))
	if err != nil {
		return nil, fmt.Errorf("compile generate graph: %w", err)
	}
	return runner, nil
}
