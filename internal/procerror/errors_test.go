package procerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractionErrorUnwrap(t *testing.T) {
	cause := errors.New("file is encrypted")
	err := &ExtractionError{Path: "/data/pdfs/HSR-412R.pdf", Err: cause}

	assert.Contains(t, err.Error(), "HSR-412R.pdf")
	assert.Contains(t, err.Error(), "encrypted")
	assert.True(t, errors.Is(err, cause))
}

func TestComparisonErrorAggregatesAllReasons(t *testing.T) {
	err := &ComparisonError{
		ModelNumbers: []string{"HSR-412R", "HSR-520R"},
		Reasons: []error{
			&ModelNotFoundError{ModelNumber: "HSR-412R", Directory: "data/pdfs"},
			fmt.Errorf("disk read error"),
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "HSR-412R")
	assert.Contains(t, msg, "no PDF found")
	assert.Contains(t, msg, "disk read error")
}

func TestErrorsAsMatchesTaxonomy(t *testing.T) {
	var wrapped error = fmt.Errorf("get content: %w",
		&ProcessingError{ModelNumber: "HSR-412R", Stage: "segmentation", Err: errors.New("boom")})

	var procErr *ProcessingError
	assert.True(t, errors.As(wrapped, &procErr))
	assert.Equal(t, "segmentation", procErr.Stage)

	var notFound *ModelNotFoundError
	assert.False(t, errors.As(wrapped, &notFound))
}

func TestNoDifferencesErrorMessage(t *testing.T) {
	err := &NoDifferencesError{ModelNumbers: []string{"A", "B"}}
	assert.Contains(t, err.Error(), "nothing to analyze")
}

func TestLLMErrorReportsAttempts(t *testing.T) {
	err := &LLMError{Attempts: 3, Err: errors.New("timeout")}
	assert.Contains(t, err.Error(), "3 attempts")
	assert.True(t, errors.Is(err, err.Err))
}
