// Package compare builds parameter-level difference sets across two or
// more processed datasheets.
package compare

import (
	"context"
	"errors"

	"fjacquet/specsheet/internal/config"
	"fjacquet/specsheet/internal/models"
	"fjacquet/specsheet/internal/procerror"

	"github.com/shopspring/decimal"
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

// ContentSource supplies processed datasheet content per identifier. The
// processor facade is the production implementation.
type ContentSource interface {
	GetContent(ctx context.Context, identifier string) (*models.ModelContent, error)
}

// Engine compares models fetched through a ContentSource. Comparison is
// all-or-nothing: any model that cannot be processed fails the whole
// call, with every failure reported.
type Engine struct {
	source ContentSource
}

// New creates an Engine reading content from source.
func New(source ContentSource) *Engine {
	return &Engine{source: source}
}

// Compare fetches every model and derives the ordered difference set.
// The result covers the union of keys across all models: a key absent
// from one model still appears, with a nil value for that model.
func (e *Engine) Compare(ctx context.Context, modelNumbers []string) (*models.ComparisonResult, error) {
	distinct := dedupe(modelNumbers)
	if len(distinct) < 2 {
		return nil, &procerror.ComparisonError{
			ModelNumbers: modelNumbers,
			Reasons:      []error{errors.New("need at least two distinct model numbers")},
		}
	}

	perModel := make(map[string]*models.ModelContent, len(distinct))
	ordered := make([]string, 0, len(distinct))
	var reasons []error
	for _, id := range distinct {
		content, err := e.source.GetContent(ctx, id)
		if err != nil {
			reasons = append(reasons, err)
			continue
		}
		if _, seen := perModel[content.ModelNumber]; seen {
			log.WithFields(logrus.Fields{
				"identifier": id,
				"model":      content.ModelNumber,
			}).Warn("Identifier resolves to an already compared model")
			continue
		}
		perModel[content.ModelNumber] = content
		ordered = append(ordered, content.ModelNumber)
	}
	if len(reasons) > 0 {
		return nil, &procerror.ComparisonError{ModelNumbers: distinct, Reasons: reasons}
	}
	// Distinctness holds on resolved models, not on identifier spelling:
	// a model number and its file path name the same model.
	if len(ordered) < 2 {
		return nil, &procerror.ComparisonError{
			ModelNumbers: distinct,
			Reasons:      []error{errors.New("identifiers resolve to fewer than two distinct models")},
		}
	}

	diffs := diff(ordered, perModel)

	log.WithFields(logrus.Fields{
		"models":    ordered,
		"keys":      len(diffs),
		"differing": diffs.DifferingCount(),
	}).Info("Compared models")

	return &models.ComparisonResult{
		ModelNumbers: ordered,
		PerModel:     perModel,
		Differences:  diffs,
	}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// diff walks the union of sections in canonical order and emits one
// entry per spec parameter or free-text section. A section that is a
// spec table in one model and free text in another (a spec heading
// without a table degrades that way) yields both kinds of entries, so
// no model's content drops out of the set.
func diff(ordered []string, perModel map[string]*models.ModelContent) models.DifferenceSet {
	var out models.DifferenceSet
	for _, section := range unionSections(ordered, perModel) {
		if sectionIsSpec(section, ordered, perModel) {
			out = append(out, specEntries(section, ordered, perModel)...)
			if sectionHasText(section, ordered, perModel) {
				out = append(out, textEntry(section, ordered, perModel))
			}
			continue
		}
		out = append(out, textEntry(section, ordered, perModel))
	}
	return out
}

// unionSections merges section names across models: canonical spec
// sections first, then free-text sections in first-seen order following
// the request's model order.
func unionSections(ordered []string, perModel map[string]*models.ModelContent) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, canonical := range models.SpecSectionOrder {
		for _, id := range ordered {
			if _, ok := perModel[id].Sections.Get(canonical); ok {
				add(canonical)
				break
			}
		}
	}
	for _, id := range ordered {
		for _, name := range perModel[id].Sections.Names() {
			add(name)
		}
	}
	return names
}

func sectionIsSpec(name string, ordered []string, perModel map[string]*models.ModelContent) bool {
	for _, id := range ordered {
		if sec, ok := perModel[id].Sections.Get(name); ok && sec.IsSpec() {
			return true
		}
	}
	return false
}

func sectionHasText(name string, ordered []string, perModel map[string]*models.ModelContent) bool {
	for _, id := range ordered {
		if sec, ok := perModel[id].Sections.Get(name); ok && !sec.IsSpec() {
			return true
		}
	}
	return false
}

// specEntries emits one entry per parameter in the union of the
// section's spec mappings, parameters ordered first-seen across models.
func specEntries(section string, ordered []string, perModel map[string]*models.ModelContent) []models.DifferenceEntry {
	seen := make(map[string]bool)
	var params []string
	for _, id := range ordered {
		sec, ok := perModel[id].Sections.Get(section)
		if !ok || !sec.IsSpec() {
			continue
		}
		for _, param := range sec.Specs.Keys() {
			if !seen[param] {
				seen[param] = true
				params = append(params, param)
			}
		}
	}

	entries := make([]models.DifferenceEntry, 0, len(params))
	for _, param := range params {
		values := make(map[string]*string, len(ordered))
		specs := make(map[string]models.SpecValue)
		for _, id := range ordered {
			sec, ok := perModel[id].Sections.Get(section)
			if !ok || !sec.IsSpec() {
				values[id] = nil
				continue
			}
			v, ok := sec.Specs.Get(param)
			if !ok {
				values[id] = nil
				continue
			}
			display := v.Display()
			values[id] = &display
			specs[id] = v
		}
		entry := models.DifferenceEntry{
			Key:           section + "::" + param,
			ValuesByModel: values,
			Differs:       valuesDiffer(ordered, values),
		}
		if entry.Differs {
			entry.Spread = numericSpread(ordered, specs)
		}
		entries = append(entries, entry)
	}
	return entries
}

// textEntry compares a free-text section verbatim across models. A
// model that holds the section as a spec table contributes nil here;
// its content lives in the section's parameter entries instead.
func textEntry(section string, ordered []string, perModel map[string]*models.ModelContent) models.DifferenceEntry {
	values := make(map[string]*string, len(ordered))
	for _, id := range ordered {
		sec, ok := perModel[id].Sections.Get(section)
		if !ok || sec.IsSpec() {
			values[id] = nil
			continue
		}
		text := sec.Text
		values[id] = &text
	}
	return models.DifferenceEntry{
		Key:           section,
		ValuesByModel: values,
		Differs:       valuesDiffer(ordered, values),
	}
}

// valuesDiffer reports true unless every model carries the same present
// value. A missing value is distinct from any present one.
func valuesDiffer(ordered []string, values map[string]*string) bool {
	first := values[ordered[0]]
	for _, id := range ordered[1:] {
		v := values[id]
		if (v == nil) != (first == nil) {
			return true
		}
		if v != nil && *v != *first {
			return true
		}
	}
	return false
}

// numericSpread computes max minus min over the raw values when every
// model has one, they all parse as plain decimals, and their units agree.
// Ranged or textual values yield no spread.
func numericSpread(ordered []string, specs map[string]models.SpecValue) string {
	if len(specs) != len(ordered) {
		return ""
	}
	var min, max decimal.Decimal
	unit := specs[ordered[0]].Unit
	for i, id := range ordered {
		v := specs[id]
		if v.Unit != unit {
			return ""
		}
		d, err := decimal.NewFromString(v.RawValue)
		if err != nil {
			return ""
		}
		if i == 0 {
			min, max = d, d
			continue
		}
		if d.LessThan(min) {
			min = d
		}
		if d.GreaterThan(max) {
			max = d
		}
	}
	spread := max.Sub(min).String()
	if unit != "" {
		spread += " " + unit
	}
	return spread
}
