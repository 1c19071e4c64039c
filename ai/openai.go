package ai

import (
	"context"
	"fmt"
	"math"

	"github.com/sashabaranov/go-openai"
)

// OpenAI implements the Provider interface for OpenAI-compatible chat
// APIs. Groq is served by the same type through its base URL.
type OpenAI struct {
	client *openai.Client
	label  string
	model  string
}

var _ Provider = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI provider. An empty baseURL targets
// api.openai.com.
func NewOpenAI(label, apiKey, baseURL, model string) *OpenAI {
	if model == "" {
		model = openai.GPT4oMini
	}
	if label == "" {
		label = "OpenAI"
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(config),
		label:  label,
		model:  model,
	}
}

func (o *OpenAI) Name() string {
	return fmt.Sprintf("%s (%s)", o.label, o.model)
}

func (o *OpenAI) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if system != "" {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	for _, m := range messages {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    oaMsgs,
		Temperature: math.SmallestNonzeroFloat32, // zero is dropped by omitempty
	})
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", o.label, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", o.label)
	}
	return resp.Choices[0].Message.Content, nil
}
