package normalizer

import (
	"testing"

	"fjacquet/specsheet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTwoColumnTable(t *testing.T) {
	n := New()

	specs, warnings := n.Normalize(models.RawTable{
		{"Operating Voltage", "5 V"},
		{"Weight", "12 g"},
	})

	assert.Empty(t, warnings)
	require.Equal(t, 2, specs.Len())

	v, ok := specs.Get("Operating Voltage")
	require.True(t, ok)
	assert.Equal(t, models.SpecValue{RawValue: "5", Unit: "V"}, v)

	v, ok = specs.Get("Weight")
	require.True(t, ok)
	assert.Equal(t, models.SpecValue{RawValue: "12", Unit: "g"}, v)
}

func TestNormalizeMultiColumnFlattening(t *testing.T) {
	n := New()

	specs, warnings := n.Normalize(models.RawTable{
		{"Parameter", "Model A", "Model B"},
		{"Range", "10m", "20m"},
	})

	assert.Empty(t, warnings)

	v, ok := specs.Get("Range (Model A)")
	require.True(t, ok)
	assert.Equal(t, "10m", v.RawValue)
	assert.Empty(t, v.Unit)

	v, ok = specs.Get("Range (Model B)")
	require.True(t, ok)
	assert.Equal(t, "20m", v.RawValue)
}

func TestNormalizeSkipsLabelHeaderInTwoColumnTable(t *testing.T) {
	n := New()

	specs, _ := n.Normalize(models.RawTable{
		{"Parameter", "Value"},
		{"Supply Voltage", "3.3 V"},
	})

	require.Equal(t, 1, specs.Len())
	_, ok := specs.Get("Parameter")
	assert.False(t, ok)

	v, ok := specs.Get("Supply Voltage")
	require.True(t, ok)
	assert.Equal(t, models.SpecValue{RawValue: "3.3", Unit: "V"}, v)
}

func TestNormalizeUnparseableRowsAreSkippedWithWarning(t *testing.T) {
	n := New()

	specs, warnings := n.Normalize(models.RawTable{
		{"Operate Time", "1.5 ms"},
		{"", "orphan value"},
		{"", ""},
	})

	assert.Equal(t, 1, specs.Len())
	// The orphan row warns, the fully empty row stays silent.
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "no parameter/value pair")
}

func TestNormalizeDuplicateParameterLastWriteWins(t *testing.T) {
	n := New()

	specs, warnings := n.Normalize(models.RawTable{
		{"Contact Rating", "10 W"},
		{"Contact Rating", "15 W"},
	})

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "duplicate parameter")

	v, ok := specs.Get("Contact Rating")
	require.True(t, ok)
	assert.Equal(t, "15", v.RawValue)
	assert.Equal(t, []string{"Contact Rating"}, specs.Keys())
}

func TestNormalizeCollapsesParameterWhitespace(t *testing.T) {
	n := New()

	specs, _ := n.Normalize(models.RawTable{
		{"  Pull - In   Range ", "15 mT"},
	})

	v, ok := specs.Get("Pull - In Range")
	require.True(t, ok)
	assert.Equal(t, models.SpecValue{RawValue: "15", Unit: "mT"}, v)
}

func TestSplitValueUnit(t *testing.T) {
	tests := []struct {
		cell string
		want models.SpecValue
	}{
		{"3.3 V", models.SpecValue{RawValue: "3.3", Unit: "V"}},
		{"200mA", models.SpecValue{RawValue: "200", Unit: "mA"}},
		{"-40 °C", models.SpecValue{RawValue: "-40 °C"}}, // leading sign is not a plain number
		{"10 - 20 V", models.SpecValue{RawValue: "10 - 20", Unit: "V"}},
		{"N.O.", models.SpecValue{RawValue: "N.O."}},
		{"12 grams", models.SpecValue{RawValue: "12 grams"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitValueUnit(tt.cell), "cell %q", tt.cell)
	}
}

func TestNormalizeEmptyTable(t *testing.T) {
	n := New()
	specs, warnings := n.Normalize(models.RawTable{})
	assert.Equal(t, 0, specs.Len())
	assert.Empty(t, warnings)
}
