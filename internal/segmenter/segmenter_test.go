package segmenter

import (
	"regexp"
	"strings"
	"testing"

	"fjacquet/specsheet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = `HSR-412R Reed Sensor
Features
High sensitivity
Compact housing
Advantages
No standby power
Electrical Specifications
Supply Voltage  3.3 V
Output Type  NPN
Magnetic Specifications
Pull - In Range  15 mT
Notes
Keep away from strong external fields.`

func sampleTables(text string) []models.PlacedTable {
	elecOffset := strings.Index(text, "Supply Voltage")
	magOffset := strings.Index(text, "Pull - In Range")
	return []models.PlacedTable{
		{Offset: elecOffset, Cells: models.RawTable{
			{"Supply Voltage", "3.3 V"},
			{"Output Type", "NPN"},
		}},
		{Offset: magOffset, Cells: models.RawTable{
			{"Pull - In Range", "15 mT"},
		}},
	}
}

func TestSegmentBindsTablesToSpecSections(t *testing.T) {
	s := New(nil)

	set := s.Segment(sampleText, sampleTables(sampleText))

	elec, ok := set.Get("electrical")
	require.True(t, ok)
	require.True(t, elec.IsSpec())

	v, ok := elec.Specs.Get("Supply Voltage")
	require.True(t, ok)
	assert.Equal(t, models.SpecValue{RawValue: "3.3", Unit: "V"}, v)

	mag, ok := set.Get("magnetic")
	require.True(t, ok)
	require.True(t, mag.IsSpec())
	v, ok = mag.Specs.Get("Pull - In Range")
	require.True(t, ok)
	assert.Equal(t, models.SpecValue{RawValue: "15", Unit: "mT"}, v)
}

func TestSegmentFreeTextSections(t *testing.T) {
	s := New(nil)

	set := s.Segment(sampleText, sampleTables(sampleText))

	features, ok := set.Get("features")
	require.True(t, ok)
	assert.False(t, features.IsSpec())
	assert.Contains(t, features.Text, "High sensitivity")
	assert.Contains(t, features.Text, "Compact housing")
	// The next heading ends the section.
	assert.NotContains(t, features.Text, "No standby power")

	notes, ok := set.Get("notes")
	require.True(t, ok)
	assert.Contains(t, notes.Text, "strong external fields")
}

func TestSegmentMissingHeadingIsOmitted(t *testing.T) {
	s := New(nil)

	set := s.Segment("Electrical Specifications\nSupply Voltage  5 V", []models.PlacedTable{
		{Offset: 26, Cells: models.RawTable{{"Supply Voltage", "5 V"}}},
	})

	_, ok := set.Get("physical")
	assert.False(t, ok)
	_, ok = set.Get("features")
	assert.False(t, ok)
	_, ok = set.Get("electrical")
	assert.True(t, ok)
}

func TestSegmentSpecHeadingWithoutTableDegradesToFreeText(t *testing.T) {
	s := New(nil)

	set := s.Segment("Magnetic Specifications\nSee appendix B for details.", nil)

	mag, ok := set.Get("magnetic")
	require.True(t, ok)
	assert.False(t, mag.IsSpec())
	assert.Equal(t, "See appendix B for details.", mag.Text)
}

func TestSegmentCanonicalSectionOrder(t *testing.T) {
	s := New(nil)

	set := s.Segment(sampleText, sampleTables(sampleText))

	names := set.Names()
	// Spec sections precede free-text sections regardless of document order.
	require.GreaterOrEqual(t, len(names), 4)
	assert.Equal(t, "electrical", names[0])
	assert.Equal(t, "magnetic", names[1])
	assert.Equal(t, []string{"features", "advantages", "notes"}, names[2:])
}

func TestSegmentIsDeterministic(t *testing.T) {
	s := New(nil)
	tables := sampleTables(sampleText)

	first := s.Segment(sampleText, tables)
	second := s.Segment(sampleText, tables)

	assert.Equal(t, first.Names(), second.Names())
	f1, _ := first.Get("electrical")
	f2, _ := second.Get("electrical")
	assert.Equal(t, f1.Specs.Keys(), f2.Specs.Keys())
}

func TestSegmentWithSyntheticPatterns(t *testing.T) {
	s := New([]Pattern{
		{Name: "environmental", Matcher: regexp.MustCompile(`(?im)^\s*environmental ratings\b`), Spec: true},
	})

	text := "Environmental Ratings\nIP Rating  IP67"
	set := s.Segment(text, []models.PlacedTable{
		{Offset: strings.Index(text, "IP Rating"), Cells: models.RawTable{{"IP Rating", "IP67"}}},
	})

	env, ok := set.Get("environmental")
	require.True(t, ok)
	require.True(t, env.IsSpec())
	v, _ := env.Specs.Get("IP Rating")
	assert.Equal(t, "IP67", v.RawValue)
}
