package completion

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAICompleter issues completions through the OpenAI chat API.
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter creates an OpenAI completion client.
func NewOpenAICompleter(apiKey, model string) *OpenAICompleter {
	if model == "" {
		model = defaultOpenAIModel
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &OpenAICompleter{
		client: &client,
		model:  model,
	}
}

// Complete sends the prompt as a single user message and returns the
// completion text.
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty completion from openai")
	}
	return content, nil
}
