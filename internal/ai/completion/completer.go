// Package completion wraps the generative-AI text completion backends used
// for resume structuring and recommendation formatting. Single
// request/response, no streaming.
package completion

import (
	"context"
	"fmt"
)

// Backend names accepted by NewCompleter.
const (
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
)

// Completer sends one prompt and returns the model's text completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config selects and configures a completion backend.
type Config struct {
	Backend      string // "openai" or "gemini"
	OpenAIAPIKey string
	GeminiAPIKey string
	Model        string // optional override of the backend's default model
}

// NewCompleter builds the configured backend.
func NewCompleter(ctx context.Context, cfg Config) (Completer, error) {
	switch cfg.Backend {
	case BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai completion backend requires an API key")
		}
		return NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.Model), nil
	case BackendGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini completion backend requires an API key")
		}
		return NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown completion backend %q", cfg.Backend)
	}
}
