// Package processor is the facade over PDF extraction, segmentation and
// diagram handling. It resolves model identifiers to files, caches fully
// processed content per model number, and collapses concurrent requests
// for the same model into a single extraction.
package processor

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"fjacquet/specsheet/internal/config"
	"fjacquet/specsheet/internal/extractor"
	"fjacquet/specsheet/internal/fileutils"
	"fjacquet/specsheet/internal/models"
	"fjacquet/specsheet/internal/procerror"
	"fjacquet/specsheet/internal/segmenter"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// modelNumberRe matches the leading alphanumeric/dash token of a file
// stem, so "HSR-412R rev3.pdf" still resolves to HSR-412R.
var modelNumberRe = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9-]*`)

// DiagramExtractor pulls embedded images out of a PDF. The processor
// treats it as optional: a nil extractor disables diagram handling.
type DiagramExtractor interface {
	Extract(path, modelNumber string) ([]models.DiagramRef, error)
}

// Processor turns model identifiers into processed datasheet content.
// It owns no global state: cache and collaborators are injected, so two
// Processors never share entries.
type Processor struct {
	dir      string
	pages    extractor.PageExtractor
	seg      *segmenter.Segmenter
	diagrams DiagramExtractor
	cache    *Cache
	group    singleflight.Group
}

// Option configures a Processor.
type Option func(*Processor)

// WithDiagrams enables diagram extraction through d.
func WithDiagrams(d DiagramExtractor) Option {
	return func(p *Processor) { p.diagrams = d }
}

// New creates a Processor that resolves bare model numbers against dir.
func New(dir string, pages extractor.PageExtractor, seg *segmenter.Segmenter, cache *Cache, opts ...Option) *Processor {
	p := &Processor{
		dir:   dir,
		pages: pages,
		seg:   seg,
		cache: cache,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Cache exposes the processor's cache for lifecycle control.
func (p *Processor) Cache() *Cache {
	return p.cache
}

// GetContent resolves identifier - either a path to a PDF file or a bare
// model number looked up in the configured directory - and returns the
// processed content. Repeated calls for the same model return the same
// cached instance; concurrent calls share a single extraction.
//
// Extraction itself runs detached from ctx: a caller abandoning the wait
// does not waste the work for the next caller.
func (p *Processor) GetContent(ctx context.Context, identifier string) (*models.ModelContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, modelNumber, err := p.resolve(identifier)
	if err != nil {
		return nil, err
	}

	if content, ok := p.cache.Get(modelNumber); ok {
		log.WithField("model", modelNumber).Debug("Cache hit")
		return content, nil
	}

	ch := p.group.DoChan(modelNumber, func() (interface{}, error) {
		return p.process(path, modelNumber)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.ModelContent), nil
	}
}

// resolve maps an identifier to the PDF path and the canonical model
// number. Bare identifiers are matched against the directory before the
// cache lookup, so case variants of the same model share one cache
// entry and one extraction.
func (p *Processor) resolve(identifier string) (path, modelNumber string, err error) {
	isPath := strings.ContainsAny(identifier, `/\`) ||
		strings.EqualFold(filepath.Ext(identifier), ".pdf")
	if !isPath {
		path, err = p.findPDF(strings.TrimSpace(identifier))
		if err != nil {
			return "", "", err
		}
	} else {
		path = identifier
	}

	modelNumber = modelNumberRe.FindString(fileutils.Stem(path))
	if modelNumber == "" {
		return "", "", &procerror.ModelNotFoundError{ModelNumber: identifier, Directory: p.dir}
	}
	return path, modelNumber, nil
}

// process runs the full pipeline for one model. It is executed at most
// once per model number at a time, guarded by the singleflight group.
func (p *Processor) process(path, modelNumber string) (*models.ModelContent, error) {
	if content, ok := p.cache.Get(modelNumber); ok {
		return content, nil
	}

	log.WithFields(logrus.Fields{
		"model": modelNumber,
		"file":  path,
	}).Info("Processing datasheet")

	pages, err := p.pages.ExtractPages(path)
	if err != nil {
		return nil, err
	}

	text, tables := extractor.Flatten(pages)
	sections := p.seg.Segment(text, tables)

	var diagrams []models.DiagramRef
	if p.diagrams != nil {
		diagrams, err = p.diagrams.Extract(path, modelNumber)
		if err != nil {
			return nil, &procerror.ProcessingError{ModelNumber: modelNumber, Stage: "diagrams", Err: err}
		}
	}

	content := &models.ModelContent{
		ModelNumber: modelNumber,
		Filename:    path,
		RawText:     text,
		Pages:       pages,
		Sections:    sections,
		Diagrams:    diagrams,
	}
	p.cache.Put(content)

	log.WithFields(logrus.Fields{
		"model":    modelNumber,
		"sections": sections.Len(),
		"diagrams": len(diagrams),
	}).Debug("Processed datasheet")

	return content, nil
}

// findPDF locates the file for a bare model number. The match is on the
// file stem, case-insensitively, so "hsr-412r" finds HSR-412R.pdf.
func (p *Processor) findPDF(modelNumber string) (string, error) {
	files, err := fileutils.ListPDFFiles(p.dir)
	if err != nil {
		return "", &procerror.ModelNotFoundError{ModelNumber: modelNumber, Directory: p.dir}
	}
	for _, f := range files {
		if strings.EqualFold(fileutils.Stem(f), modelNumber) {
			return f, nil
		}
	}
	return "", &procerror.ModelNotFoundError{ModelNumber: modelNumber, Directory: p.dir}
}
