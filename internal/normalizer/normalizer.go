// Package normalizer converts raw specification table grids into
// canonical parameter-to-value mappings.
package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/specsheet/internal/models"
)

// unitVocabulary lists the unit tokens recognized at the end of a value
// cell. A bare "m" is deliberately absent: datasheet range values like
// "10m" stay opaque rather than being misread as metres.
var unitVocabulary = []string{
	"mm", "cm", "g", "kg", "mV", "V", "mA", "A", "mW", "W",
	"Hz", "kHz", "MHz", "°C", "Ω", "mΩ", "kΩ", "MΩ", "mT", "pF", "ms", "μs",
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	valueUnitRe  = regexp.MustCompile(
		`^([0-9]+(?:[.,][0-9]+)?(?:\s*[-–~]\s*[0-9]+(?:[.,][0-9]+)?)?)\s?(` +
			strings.Join(unitVocabulary, "|") + `)$`)
)

// Normalizer flattens two-column and multi-column spec tables into a
// SpecMapping. Row-level parse failures degrade to warnings, never
// errors: partial specification data beats a hard failure.
type Normalizer struct{}

// New returns a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize converts a raw table into a SpecMapping. It handles two
// shapes: plain `parameter | value` rows, and variant tables whose
// header row names one value column per model, flattened into
// `parameter (header)` keys. Returned warnings describe skipped rows
// and overwritten duplicate parameters.
func (n *Normalizer) Normalize(table models.RawTable) (*models.SpecMapping, []string) {
	specs := models.NewSpecMapping()
	var warnings []string

	if len(table) == 0 {
		return specs, warnings
	}

	headers, rows := splitHeader(table)

	for i, row := range rows {
		param, values, ok := parseRow(row)
		if !ok {
			if !rowEmpty(row) {
				warnings = append(warnings, fmt.Sprintf("row %d: no parameter/value pair", i+1))
			}
			continue
		}

		for col, cell := range values {
			if cell == "" {
				continue
			}
			key := param
			if len(headers) > 1 && col < len(headers) && headers[col] != "" {
				key = fmt.Sprintf("%s (%s)", param, headers[col])
			}
			if !specs.Set(key, splitValueUnit(cell)) {
				warnings = append(warnings, fmt.Sprintf("row %d: duplicate parameter '%s' overwritten", i+1, key))
			}
		}
	}

	return specs, warnings
}

// splitHeader decides whether the first row is a header naming variant
// columns. Tables wider than two columns always carry one; two-column
// tables only when the first row literally labels parameter and value.
func splitHeader(table models.RawTable) (headers []string, rows models.RawTable) {
	first := table[0]

	if len(first) > 2 {
		headers = make([]string, len(first)-1)
		for i, cell := range first[1:] {
			headers[i] = normalizeName(cell)
		}
		return headers, table[1:]
	}

	if len(first) == 2 && isLabelRow(first) {
		return nil, table[1:]
	}

	return nil, table
}

func isLabelRow(row []string) bool {
	p := strings.ToLower(strings.TrimSpace(row[0]))
	v := strings.ToLower(strings.TrimSpace(row[1]))
	return p == "parameter" || p == "specification" || v == "value"
}

// parseRow extracts the parameter name and its value cells from a row.
func parseRow(row []string) (string, []string, bool) {
	if len(row) < 2 {
		return "", nil, false
	}
	param := normalizeName(row[0])
	if param == "" {
		return "", nil, false
	}

	values := row[1:]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return param, trimAll(values), true
		}
	}
	return "", nil, false
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

// normalizeName trims a parameter name and collapses internal
// whitespace, preserving case.
func normalizeName(name string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(name), " ")
}

// splitValueUnit splits a value cell into numeric text and unit when the
// cell is exactly `<number><optional-space><unit>`; anything else stays
// a raw opaque value.
func splitValueUnit(cell string) models.SpecValue {
	m := valueUnitRe.FindStringSubmatch(cell)
	if m == nil {
		return models.SpecValue{RawValue: cell}
	}
	return models.SpecValue{RawValue: m[1], Unit: m[2]}
}
