// Package diagram locates embedded images in datasheet PDFs and
// persists them under deterministic, model-derived file names.
package diagram

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"fjacquet/specsheet/internal/config"
	"fjacquet/specsheet/internal/fileutils"
	"fjacquet/specsheet/internal/models"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
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

// Extractor pulls embedded raster/vector figures out of a PDF and
// stores them in a configured directory. Extraction is idempotent per
// run: a name collision overwrites the previous file.
type Extractor struct {
	dir string
}

// New creates an Extractor writing into dir.
func New(dir string) *Extractor {
	return &Extractor{dir: dir}
}

// Extract saves every embedded image of the PDF at path under
// `<modelNumber>_<index><ext>` in the diagram directory and returns the
// resulting references. A PDF without embedded images yields an empty
// slice; that is expected, not exceptional.
func (e *Extractor) Extract(path, modelNumber string) ([]models.DiagramRef, error) {
	if err := fileutils.EnsureDirectoryExists(e.dir); err != nil {
		return nil, err
	}

	// pdfcpu names extracted files after the source PDF; stage them in
	// a temp dir and rename into the deterministic layout afterwards.
	tempDir, err := os.MkdirTemp("", "specsheet_diagrams_*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			log.WithError(err).Warn("Failed to remove temporary diagram directory")
		}
	}()

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(path, tempDir, nil, conf); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"file":  path,
			"model": modelNumber,
		}).Debug("No diagrams extracted")
		return nil, nil
	}

	staged, err := listImages(tempDir)
	if err != nil {
		return nil, err
	}
	if len(staged) == 0 {
		log.WithField("model", modelNumber).Debug("PDF contains no embedded images")
		return nil, nil
	}

	refs := make([]models.DiagramRef, 0, len(staged))
	for i, src := range staged {
		dst := filepath.Join(e.dir, modelNumber+"_"+strconv.Itoa(i)+filepath.Ext(src))
		if err := moveFile(src, dst); err != nil {
			return nil, err
		}
		refs = append(refs, models.DiagramRef{
			ModelNumber: modelNumber,
			Index:       i,
			Path:        dst,
		})
	}

	log.WithFields(logrus.Fields{
		"model": modelNumber,
		"count": len(refs),
	}).Debug("Extracted diagrams")

	return refs, nil
}

// listImages returns staged image files in deterministic name order so
// diagram indices are stable across runs.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".webp":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// moveFile renames across the temp boundary, falling back to copy when
// the directories sit on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0600)
}
