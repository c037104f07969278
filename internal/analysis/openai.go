package analysis

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIOracle answers through the OpenAI chat completion API.
type OpenAIOracle struct {
	client *openai.Client
	model  string
}

// NewOpenAIOracle creates an OpenAI-backed oracle.
func NewOpenAIOracle(apiKey, model string) (*OpenAIOracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	return &OpenAIOracle{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// GenerateText sends a single chat completion request.
func (o *OpenAIOracle) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return o.complete(ctx, systemPrompt, userPrompt, nil)
}

// GenerateJSON requests the answer in OpenAI's JSON object mode.
func (o *OpenAIOracle) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return o.complete(ctx, systemPrompt, userPrompt, &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	})
}

func (o *OpenAIOracle) complete(ctx context.Context, systemPrompt, userPrompt string, format *openai.ChatCompletionResponseFormat) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:          o.model,
		ResponseFormat: format,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI API")
	}
	return resp.Choices[0].Message.Content, nil
}
