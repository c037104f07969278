// Package procerror defines the error taxonomy of the processing layer.
// Everything at the processor facade boundary and above fails fast with
// one of these types; row- and section-level anomalies below it degrade
// to warnings instead.
package procerror

import (
	"fmt"
	"strings"
)

// ExtractionError reports an unreadable, encrypted or empty PDF file.
// It is fatal to the extraction and never retried.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for '%s': %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ModelNotFoundError reports an identifier that resolves to no PDF in
// the configured directory. Client-correctable, never retried.
type ModelNotFoundError struct {
	ModelNumber string
	Directory   string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("no PDF found for model '%s' in %s", e.ModelNumber, e.Directory)
}

// ProcessingError wraps any segmentation or normalization fault that
// escapes the warning-tolerant recovery boundary.
type ProcessingError struct {
	ModelNumber string
	Stage       string
	Err         error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing failed for model '%s' at %s: %v", e.ModelNumber, e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// ComparisonError reports a comparison that could not complete. When
// constituent extractions fail, every failure is aggregated rather than
// only the first.
type ComparisonError struct {
	ModelNumbers []string
	Reasons      []error
}

func (e *ComparisonError) Error() string {
	if len(e.Reasons) == 0 {
		return fmt.Sprintf("comparison failed for models %s", strings.Join(e.ModelNumbers, ", "))
	}
	msgs := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		msgs[i] = r.Error()
	}
	return fmt.Sprintf("comparison failed for models %s: %s",
		strings.Join(e.ModelNumbers, ", "), strings.Join(msgs, "; "))
}

// NoDifferencesError signals that a comparison produced nothing to
// analyze. It is a benign outcome, distinct from a failure.
type NoDifferencesError struct {
	ModelNumbers []string
}

func (e *NoDifferencesError) Error() string {
	return fmt.Sprintf("models %s share identical specifications, nothing to analyze",
		strings.Join(e.ModelNumbers, ", "))
}

// LLMError reports an oracle call that kept failing after the configured
// number of retries.
type LLMError struct {
	Attempts int
	Err      error
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("LLM request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *LLMError) Unwrap() error {
	return e.Err
}
