package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiCompleter issues completions through the Google Gemini API.
type GeminiCompleter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiCompleter creates a Gemini completion client. Temperature is
// pinned to 0 so extraction output stays deterministic.
func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	if model == "" {
		model = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	gm := client.GenerativeModel(model)
	gm.SetTemperature(0)

	return &GeminiCompleter{
		client: client,
		model:  gm,
	}, nil
}

// Close releases the underlying client.
func (c *GeminiCompleter) Close() error { return c.client.Close() }

// Complete sends the prompt and returns the concatenated text parts of the
// first candidate.
func (c *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty completion from gemini")
	}
	return sb.String(), nil
}
