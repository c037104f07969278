package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/specsheet/internal/models"
	"fjacquet/specsheet/internal/procerror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const systemPrompt = `You are an expert on magnetic reed sensors and their datasheets.
Given the specification differences between sensor models, explain the practical
trade-offs and recommend which model suits which kind of application.
Be concise and specific; do not restate values that are identical.`

// Analyzer asks a TextOracle to narrate the differences of a comparison.
// It owns retry and timeout policy; the oracle stays a dumb transport.
type Analyzer struct {
	oracle     TextOracle
	maxRetries int
	timeout    time.Duration
	jsonMode   bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxRetries sets how many oracle attempts are made before giving up.
func WithMaxRetries(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxRetries = n
		}
	}
}

// WithTimeout bounds each individual oracle attempt.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithJSONOutput requests the narrative as a JSON object instead of prose.
func WithJSONOutput() Option {
	return func(a *Analyzer) { a.jsonMode = true }
}

// New creates an Analyzer with the default policy of 3 attempts at 60
// seconds each.
func New(oracle TextOracle, opts ...Option) *Analyzer {
	a := &Analyzer{
		oracle:     oracle,
		maxRetries: 3,
		timeout:    60 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze generates a recommendation narrative for the comparison. A
// comparison without any differing entry yields NoDifferencesError; a
// transport that keeps failing yields LLMError after the configured
// number of attempts. The oracle's answer is taken verbatim.
func (a *Analyzer) Analyze(ctx context.Context, comparison *models.ComparisonResult) (*models.AnalysisResult, error) {
	if comparison.Differences.DifferingCount() == 0 {
		return nil, &procerror.NoDifferencesError{ModelNumbers: comparison.ModelNumbers}
	}

	prompt := BuildPrompt(comparison)

	var lastErr error
	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		narrative, err := a.request(ctx, prompt)
		if err == nil {
			return &models.AnalysisResult{
				ID:          uuid.NewString(),
				Comparison:  comparison,
				Narrative:   narrative,
				GeneratedAt: time.Now().UTC(),
			}, nil
		}

		lastErr = err
		log.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"of":      a.maxRetries,
		}).Warn("LLM request failed")
	}

	return nil, &procerror.LLMError{Attempts: a.maxRetries, Err: lastErr}
}

func (a *Analyzer) request(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	if a.jsonMode {
		return a.oracle.GenerateJSON(ctx, systemPrompt, prompt)
	}
	return a.oracle.GenerateText(ctx, systemPrompt, prompt)
}

// BuildPrompt serializes the differing entries of a comparison into a
// deterministic bullet list. Identical entries are omitted so the model
// only sees what actually distinguishes the sensors.
func BuildPrompt(comparison *models.ComparisonResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compare the following sensor models: %s.\n\nDifferences:\n",
		strings.Join(comparison.ModelNumbers, ", "))

	for _, entry := range comparison.Differences {
		if !entry.Differs {
			continue
		}
		parts := make([]string, 0, len(comparison.ModelNumbers))
		for _, model := range comparison.ModelNumbers {
			v := entry.ValuesByModel[model]
			if v == nil {
				parts = append(parts, model+": not specified")
				continue
			}
			parts = append(parts, model+": "+*v)
		}
		fmt.Fprintf(&b, "- %s | %s\n", entry.Key, strings.Join(parts, "; "))
		if entry.Spread != "" {
			fmt.Fprintf(&b, "  (spread: %s)\n", entry.Spread)
		}
	}

	b.WriteString("\nWhich model would you recommend for which application, and why?")
	return b.String()
}
