// Package extractor reads PDF datasheets into raw per-page text and
// table cell grids using position-aware text extraction.
package extractor

import (
	"fmt"

	"fjacquet/specsheet/internal/config"
	"fjacquet/specsheet/internal/models"
	"fjacquet/specsheet/internal/procerror"

	"github.com/ledongthuc/pdf"
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

// PageExtractor is the interface the processor facade depends on. It
// allows tests to substitute canned pages for real PDF parsing.
type PageExtractor interface {
	// ExtractPages extracts text and tables from the PDF at path,
	// one RawPage per physical page.
	ExtractPages(path string) ([]models.RawPage, error)
}

// Extractor extracts text and borderless tables from PDF files. It is a
// pure function of the file bytes: no caching, no side effects.
type Extractor struct {
	layout   layoutConfig
	maxPages int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxPages limits extraction to the first n pages (0 means all).
func WithMaxPages(n int) Option {
	return func(e *Extractor) { e.maxPages = n }
}

// New creates an Extractor with default layout thresholds.
func New(opts ...Option) *Extractor {
	e := &Extractor{layout: defaultLayoutConfig()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractPages extracts all pages from the PDF at path. It fails with an
// ExtractionError when the file is unreadable, encrypted, or contains no
// extractable pages.
func (e *Extractor) ExtractPages(path string) ([]models.RawPage, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &procerror.ExtractionError{Path: path, Err: fmt.Errorf("open PDF: %w", err)}
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).WithField("file", path).Warn("Failed to close PDF file")
		}
	}()

	total := r.NumPage()
	if total == 0 {
		return nil, &procerror.ExtractionError{Path: path, Err: fmt.Errorf("no extractable pages")}
	}

	limit := total
	if e.maxPages > 0 && e.maxPages < total {
		limit = e.maxPages
	}

	pages := make([]models.RawPage, 0, limit)
	for num := 1; num <= limit; num++ {
		p := r.Page(num)
		if p.V.IsNull() {
			log.WithFields(logrus.Fields{
				"file": path,
				"page": num,
			}).Debug("Skipping empty page")
			pages = append(pages, models.RawPage{Number: num})
			continue
		}

		content := p.Content()
		text, tables := e.layout.assemble(content.Text)
		pages = append(pages, models.RawPage{
			Number: num,
			Text:   text,
			Tables: tables,
		})
	}

	if !hasContent(pages) {
		return nil, &procerror.ExtractionError{Path: path, Err: fmt.Errorf("no text content found")}
	}

	log.WithFields(logrus.Fields{
		"file":  path,
		"pages": len(pages),
	}).Debug("Extracted PDF pages")

	return pages, nil
}

func hasContent(pages []models.RawPage) bool {
	for _, p := range pages {
		if p.Text != "" {
			return true
		}
	}
	return false
}

// Flatten collapses extracted pages into a single text block with table
// offsets rebased onto it. The facade's public shape is this collapsed
// view; per-page boundaries stay available on the RawPage slice.
func Flatten(pages []models.RawPage) (string, []models.PlacedTable) {
	var text string
	var tables []models.PlacedTable
	for i, p := range pages {
		if i > 0 {
			text += "\n\n"
		}
		base := len(text)
		text += p.Text
		for _, t := range p.Tables {
			tables = append(tables, models.PlacedTable{
				Offset: base + t.Offset,
				Cells:  t.Cells,
			})
		}
	}
	return text, tables
}
