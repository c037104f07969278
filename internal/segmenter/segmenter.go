// Package segmenter splits raw datasheet text into named logical
// sections using heading-pattern matching, and binds specification
// tables to the spec sections they follow.
package segmenter

import (
	"regexp"
	"sort"
	"strings"

	"fjacquet/specsheet/internal/config"
	"fjacquet/specsheet/internal/models"
	"fjacquet/specsheet/internal/normalizer"

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

// Pattern pairs a section name with the heading matcher that opens it.
// Spec marks sections that carry a specification table rather than free
// text. The pattern list is ordered and pluggable so tests can swap in
// synthetic patterns without real PDFs.
type Pattern struct {
	Name    string
	Matcher *regexp.Regexp
	Spec    bool
}

// DefaultPatterns returns the heading patterns of sensor datasheets:
// the three specification blocks plus the common free-text sections.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Name: "electrical", Matcher: regexp.MustCompile(`(?im)^\s*electrical\s+specifications?\b`), Spec: true},
		{Name: "magnetic", Matcher: regexp.MustCompile(`(?im)^\s*magnetic\s+specifications?\b`), Spec: true},
		{Name: "physical", Matcher: regexp.MustCompile(`(?im)^\s*physical\s*(?:/\s*operational\s*)?specifications?\b`), Spec: true},
		{Name: "features", Matcher: regexp.MustCompile(`(?im)^\s*features\b`)},
		{Name: "advantages", Matcher: regexp.MustCompile(`(?im)^\s*advantages\b`)},
		{Name: "notes", Matcher: regexp.MustCompile(`(?im)^\s*notes?\b`)},
	}
}

// Segmenter locates sections in raw text. Identical input always yields
// an identical SectionSet.
type Segmenter struct {
	patterns []Pattern
	norm     *normalizer.Normalizer
}

// New creates a Segmenter with the given patterns. Nil patterns fall
// back to DefaultPatterns.
func New(patterns []Pattern) *Segmenter {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	return &Segmenter{patterns: patterns, norm: normalizer.New()}
}

// heading is a located section start.
type heading struct {
	name  string
	spec  bool
	start int // offset of the heading itself
	body  int // offset just past the heading line
}

// Segment scans rawText for configured headings and returns the
// resulting SectionSet. A missing heading simply omits that section;
// a spec heading without a table in its span degrades to free text.
func (s *Segmenter) Segment(rawText string, tables []models.PlacedTable) *models.SectionSet {
	headings := s.locateHeadings(rawText)
	set := models.NewSectionSet()

	for i, h := range headings {
		end := len(rawText)
		if i+1 < len(headings) {
			end = headings[i+1].start
		}

		if h.spec {
			if table, ok := firstTableIn(tables, h.start, end); ok {
				specs, warnings := s.norm.Normalize(table)
				for _, w := range warnings {
					log.WithFields(logrus.Fields{
						"section": h.name,
						"reason":  w,
					}).Warn("Skipped specification table row")
				}
				set.Add(&models.Section{Name: h.name, Specs: specs})
				continue
			}
			log.WithField("section", h.name).Warn("Specification heading has no table, keeping as free text")
		}

		body := strings.TrimSpace(rawText[h.body:end])
		set.Add(&models.Section{Name: h.name, Text: body})
	}

	return set
}

// locateHeadings finds the first match of each pattern and orders the
// results by text offset.
func (s *Segmenter) locateHeadings(rawText string) []heading {
	var found []heading
	for _, p := range s.patterns {
		loc := p.Matcher.FindStringIndex(rawText)
		if loc == nil {
			continue
		}
		body := loc[1]
		// Skip to the end of the heading line.
		if nl := strings.IndexByte(rawText[body:], '\n'); nl >= 0 {
			body += nl + 1
		} else {
			body = len(rawText)
		}
		found = append(found, heading{name: p.Name, spec: p.Spec, start: loc[0], body: body})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].start < found[j].start })
	return found
}

// firstTableIn returns the first table whose offset falls inside
// [start, end).
func firstTableIn(tables []models.PlacedTable, start, end int) (models.RawTable, bool) {
	for _, t := range tables {
		if t.Offset >= start && t.Offset < end {
			return t.Cells, true
		}
	}
	return nil, false
}
