// Package embeddings converts text into fixed-dimension vectors. Two
// interchangeable backends exist; callers must not depend on which one is
// active, but vectors compared in one similarity query must all come from the
// same backend. Every provider therefore exposes its model identifier so the
// vector store can tag records and reject cross-model queries.
package embeddings

import (
	"context"
	"fmt"
)

// Backend names accepted by NewProvider.
const (
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
)

// Provider generates embedding vectors for text.
type Provider interface {
	// Embed returns the embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one embedding per input text, preserving order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the model identifier whose vector space the embeddings
	// belong to.
	Model() string
}

// Config selects and configures an embedding backend.
type Config struct {
	Backend      string // "openai" or "gemini"
	OpenAIAPIKey string
	GeminiAPIKey string
	Model        string // optional override of the backend's default model
}

// NewProvider builds the configured backend.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Backend {
	case BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai embedding backend requires an API key")
		}
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.Model), nil
	case BackendGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini embedding backend requires an API key")
		}
		return NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown embedding backend %q", cfg.Backend)
	}
}
