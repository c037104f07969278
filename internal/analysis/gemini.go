package analysis

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiOracle answers through the Google Gemini API.
type GeminiOracle struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiOracle creates a Gemini-backed oracle.
func NewGeminiOracle(ctx context.Context, apiKey, model string) (*GeminiOracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiOracle{
		client: client,
		model:  client.GenerativeModel(model),
	}, nil
}

// GenerateText sends a single generation request. The system prompt is
// folded into the request text, which is how this API version takes it.
func (o *GeminiOracle) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return o.generate(ctx, systemPrompt+"\n\n"+userPrompt)
}

// GenerateJSON asks the model to answer with a single JSON object.
func (o *GeminiOracle) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return o.generate(ctx, systemPrompt+
		"\n\nRespond with a single valid JSON object and nothing else.\n\n"+userPrompt)
}

func (o *GeminiOracle) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// Close releases the underlying API client.
func (o *GeminiOracle) Close() error {
	return o.client.Close()
}
