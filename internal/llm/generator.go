package llm

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/genaichat/internal/logger"
)

// GenerationOptions are fixed for the lifetime of a Generator.
type GenerationOptions struct {
	Model             string
	MaxOutputTokens   int
	Temperature       *float64 // nil leaves the backend default
	SystemInstruction string
	SafetySettings    []SafetySetting
}

// Generator turns a single prompt into generated text. Each call is one
// independent request to the provider with no conversation history and no
// retries. It is safe for concurrent use.
type Generator struct {
	provider Provider
	opts     GenerationOptions
}

// NewGenerator creates a Generator on top of provider.
func NewGenerator(provider Provider, opts GenerationOptions) *Generator {
	return &Generator{provider: provider, opts: opts}
}

// Generate sends prompt as the only user message and returns the generated
// text, which is empty when the model produced none.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	messages := make([]Message, 0, 2)
	if g.opts.SystemInstruction != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: g.opts.SystemInstruction})
	}
	messages = append(messages, Message{Role: RoleUser, Content: prompt})

	resp, err := g.provider.Complete(ctx, CompletionRequest{
		Model:          g.opts.Model,
		Messages:       messages,
		MaxTokens:      g.opts.MaxOutputTokens,
		Temperature:    g.opts.Temperature,
		SafetySettings: g.opts.SafetySettings,
	})
	if err != nil {
		return "", fmt.Errorf("%s generation: %w", g.provider.Name(), err)
	}

	logger.FromContext(ctx).Debug("Generation finished.",
		"provider", g.provider.Name(),
		"model", resp.Model,
		"finish_reason", resp.FinishReason,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
	)
	return resp.Content, nil
}
