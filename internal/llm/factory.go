package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/ziadkadry99/genaichat/internal/auth"
)

// ProviderOptions selects and configures a provider.
type ProviderOptions struct {
	Provider string // "google", "openai" or "anthropic"
	Model    string
	VertexAI bool // google only
	Project  string
	Location string
	BaseURL  string // overrides the API root; empty uses the provider default
}

// NewProvider creates a new LLM provider from opts. API keys come from the
// provider's conventional environment variable; Vertex AI uses Application
// Default Credentials resolved with ctx, which should live as long as the
// provider does.
func NewProvider(ctx context.Context, opts ProviderOptions) (Provider, error) {
	switch opts.Provider {
	case "google":
		if opts.VertexAI {
			client, err := auth.HTTPClient(ctx)
			if err != nil {
				return nil, err
			}
			p := NewVertexProvider(client, opts.Project, opts.Location, opts.Model)
			if opts.BaseURL != "" {
				p.WithBaseURL(opts.BaseURL)
			}
			return p, nil
		}
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is not set")
		}
		p := NewGoogleProvider(apiKey, opts.Model)
		if opts.BaseURL != "" {
			p.WithBaseURL(opts.BaseURL)
		}
		return p, nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, opts.Model, opts.BaseURL), nil

	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		return NewAnthropicProvider(apiKey, opts.Model, opts.BaseURL), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", opts.Provider)
	}
}
