// Package analysis turns comparison results into an LLM-written
// narrative about the practical trade-offs between sensor models.
package analysis

import (
	"context"
	"fmt"

	"fjacquet/specsheet/internal/config"

	"github.com/sirupsen/logrus"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// TextOracle is the single seam to an LLM provider. Exactly one request
// goes out per call; retries and timeouts are the analyzer's job.
type TextOracle interface {
	// GenerateText returns the model's free-form answer to the prompt.
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// GenerateJSON asks for a single JSON object instead of prose.
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NewOracle builds the oracle for the configured provider. The provider
// set is closed: adding one means touching this switch.
func NewOracle(ctx context.Context, cfg *config.Config) (TextOracle, error) {
	switch cfg.AI.Provider {
	case "gemini":
		return NewGeminiOracle(ctx, cfg.AI.GeminiAPIKey, cfg.AI.Model)
	case "openai":
		return NewOpenAIOracle(cfg.AI.OpenAIAPIKey, cfg.AI.Model)
	case "none":
		return nil, fmt.Errorf("ai.provider is 'none': analysis is disabled")
	default:
		return nil, fmt.Errorf("unknown ai.provider: %s", cfg.AI.Provider)
	}
}
