package extractor

import (
	"sync/atomic"

	"fjacquet/specsheet/internal/models"
)

// MockPageExtractor implements PageExtractor for testing purposes. It
// returns predefined pages instead of parsing real PDF files, and counts
// how often it was invoked so tests can assert single-flight behaviour.
type MockPageExtractor struct {
	MockPages map[string][]models.RawPage
	MockErr   error
	calls     atomic.Int64
}

// NewMockPageExtractor creates a MockPageExtractor serving the given
// path-to-pages fixtures.
func NewMockPageExtractor(pages map[string][]models.RawPage, err error) *MockPageExtractor {
	return &MockPageExtractor{MockPages: pages, MockErr: err}
}

// ExtractPages returns the predefined pages or error for path.
func (m *MockPageExtractor) ExtractPages(path string) ([]models.RawPage, error) {
	m.calls.Add(1)
	if m.MockErr != nil {
		return nil, m.MockErr
	}
	return m.MockPages[path], nil
}

// Calls returns how many times ExtractPages has been invoked.
func (m *MockPageExtractor) Calls() int {
	return int(m.calls.Load())
}
