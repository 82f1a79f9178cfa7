package providers

import (
	"context"
	"fmt"
)

// Request is a single prompt sent to a model.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// Response is the raw text a model returned.
type Response struct {
	Content    string
	TokensUsed int
}

// Provider generates a reply for a prompt.
type Provider interface {
	Generate(ctx context.Context, req Request) (Response, error)
	Name() string
}

const defaultMaxTokens = 4096

// New creates a provider by name.
func New(provider, model string) (Provider, error) {
	switch provider {
	case "gemini", "google":
		return NewGemini(model)
	case "openai":
		return NewOpenAI(model)
	case "anthropic":
		return NewAnthropic(model)
	case "ollama", "lmstudio":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

// Names lists the provider names accepted by New.
func Names() []string {
	return []string{"gemini", "openai", "anthropic", "ollama"}
}
