// Package models defines the data structures shared by the extraction,
// segmentation, normalization and comparison layers.
package models

import (
	"time"
)

// RawTable is an ordered grid of cell strings. Rows are padded to the
// table's column count during extraction, so cells may be empty but are
// never absent.
type RawTable [][]string

// PlacedTable is a RawTable together with the byte offset of its first
// row within the page (or document) text. The segmenter uses the offset
// to bind a table to the heading that precedes it.
type PlacedTable struct {
	Offset int
	Cells  RawTable
}

// RawPage holds the text and tables extracted from a single PDF page.
// Pages are numbered from 1 and are immutable once extracted.
type RawPage struct {
	Number int
	Text   string
	Tables []PlacedTable
}

// SpecValue is a single specification value. Unit is empty when the raw
// cell did not end in a known unit token.
type SpecValue struct {
	RawValue string `json:"raw_value"`
	Unit     string `json:"unit,omitempty"`
}

// Display renders the value the way it appeared in the datasheet.
func (v SpecValue) Display() string {
	if v.Unit == "" {
		return v.RawValue
	}
	return v.RawValue + " " + v.Unit
}

// SpecMapping maps normalized parameter names to values while preserving
// first-seen key order. Duplicate keys overwrite in place (last write
// wins) so iteration order stays deterministic.
type SpecMapping struct {
	keys   []string
	values map[string]SpecValue
}

// NewSpecMapping returns an empty mapping.
func NewSpecMapping() *SpecMapping {
	return &SpecMapping{values: make(map[string]SpecValue)}
}

// Set stores a value under name. It reports false when the name was
// already present and has been overwritten.
func (m *SpecMapping) Set(name string, value SpecValue) bool {
	if _, exists := m.values[name]; exists {
		m.values[name] = value
		return false
	}
	m.keys = append(m.keys, name)
	m.values[name] = value
	return true
}

// Get returns the value stored under name.
func (m *SpecMapping) Get(name string) (SpecValue, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Keys returns parameter names in first-seen order.
func (m *SpecMapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of parameters.
func (m *SpecMapping) Len() int {
	return len(m.keys)
}

// Section is one named logical block of a datasheet: either a free-text
// body or a normalized specification table, never both.
type Section struct {
	Name  string
	Text  string
	Specs *SpecMapping
}

// IsSpec reports whether the section carries tabular specification data.
func (s *Section) IsSpec() bool {
	return s.Specs != nil
}

// SpecSectionOrder is the canonical precedence of specification sections.
// SectionSet iteration and DifferenceSet ordering both follow it, so two
// documents segmented independently align on the same keys.
var SpecSectionOrder = []string{"electrical", "magnetic", "physical"}

// SectionSet maps section names to sections. Iteration order is the
// canonical spec-section order followed by free-text sections in
// first-seen order, independent of document order.
type SectionSet struct {
	order    []string
	sections map[string]*Section
}

// NewSectionSet returns an empty set.
func NewSectionSet() *SectionSet {
	return &SectionSet{sections: make(map[string]*Section)}
}

// Add inserts a section. A section with a name already present is
// ignored; the first occurrence wins.
func (s *SectionSet) Add(sec *Section) {
	if _, exists := s.sections[sec.Name]; exists {
		return
	}
	s.order = append(s.order, sec.Name)
	s.sections[sec.Name] = sec
}

// Get returns the section with the given name.
func (s *SectionSet) Get(name string) (*Section, bool) {
	sec, ok := s.sections[name]
	return sec, ok
}

// Names returns section names: canonical spec sections first, then the
// remaining sections in first-seen order.
func (s *SectionSet) Names() []string {
	var names []string
	seen := make(map[string]bool)
	for _, name := range SpecSectionOrder {
		if _, ok := s.sections[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	for _, name := range s.order {
		if !seen[name] {
			names = append(names, name)
		}
	}
	return names
}

// Len returns the number of sections.
func (s *SectionSet) Len() int {
	return len(s.order)
}

// DiagramRef points at an extracted diagram image on disk.
type DiagramRef struct {
	ModelNumber string `json:"model_number"`
	Index       int    `json:"index"`
	Path        string `json:"path"`
}

// ModelContent is the fully processed content of one datasheet PDF.
// Identity is ModelNumber; instances are cached for the process lifetime
// and must not be mutated after creation.
type ModelContent struct {
	ModelNumber string
	Filename    string
	RawText     string
	Pages       []RawPage
	Sections    *SectionSet
	Diagrams    []DiagramRef
}

// DifferenceEntry records the per-model values for one comparison key.
// Key is either "section::parameter" for spec values or a bare section
// name for free-text sections. A nil entry in ValuesByModel means the
// key is not specified for that model, which counts as distinct from
// any present value.
type DifferenceEntry struct {
	Key           string             `json:"key"`
	ValuesByModel map[string]*string `json:"values_by_model"`
	Differs       bool               `json:"differs"`
	Spread        string             `json:"spread,omitempty"`
}

// DifferenceSet is the ordered list of difference entries for one
// comparison. Every key present in any compared model appears exactly
// once.
type DifferenceSet []DifferenceEntry

// DifferingCount returns the number of entries whose values differ.
func (d DifferenceSet) DifferingCount() int {
	n := 0
	for _, e := range d {
		if e.Differs {
			n++
		}
	}
	return n
}

// ComparisonResult holds the outcome of comparing two or more models.
// It is owned by the Compare call that produced it and is never cached.
type ComparisonResult struct {
	ModelNumbers []string
	PerModel     map[string]*ModelContent
	Differences  DifferenceSet
}

// AnalysisResult attaches the LLM narrative to the comparison it was
// generated from. Immutable after creation.
type AnalysisResult struct {
	ID          string
	Comparison  *ComparisonResult
	Narrative   string
	GeneratedAt time.Time
}
