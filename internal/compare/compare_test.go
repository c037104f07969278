package compare

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"fjacquet/specsheet/internal/models"
	"fjacquet/specsheet/internal/procerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves prebuilt content, standing in for the processor.
type fakeSource struct {
	contents map[string]*models.ModelContent
	errs     map[string]error
}

func (f *fakeSource) GetContent(_ context.Context, id string) (*models.ModelContent, error) {
	if err, ok := f.errs[id]; ok {
		return nil, err
	}
	content, ok := f.contents[id]
	if !ok {
		return nil, &procerror.ModelNotFoundError{ModelNumber: id, Directory: "data/pdfs"}
	}
	return content, nil
}

func specSection(name string, pairs ...[2]string) *models.Section {
	specs := models.NewSpecMapping()
	for _, p := range pairs {
		specs.Set(p[0], models.SpecValue{RawValue: p[1]})
	}
	return &models.Section{Name: name, Specs: specs}
}

func buildModel(number string, sections ...*models.Section) *models.ModelContent {
	set := models.NewSectionSet()
	for _, s := range sections {
		set.Add(s)
	}
	return &models.ModelContent{ModelNumber: number, Sections: set}
}

func twoReedSensors() *fakeSource {
	a := buildModel("HSR-412R",
		specSection("electrical",
			[2]string{"Supply Voltage", "3.3 V"},
			[2]string{"Output Type", "NPN"},
		),
		specSection("magnetic", [2]string{"Pull - In Range", "15 mT"}),
		&models.Section{Name: "features", Text: "High sensitivity"},
	)
	b := buildModel("HSR-520R",
		specSection("electrical",
			[2]string{"Supply Voltage", "3.3 V"},
			[2]string{"Output Type", "PNP"},
		),
		&models.Section{Name: "features", Text: "Wide operating range"},
	)
	return &fakeSource{contents: map[string]*models.ModelContent{
		"HSR-412R": a,
		"HSR-520R": b,
	}}
}

func TestCompareFindsDifferences(t *testing.T) {
	e := New(twoReedSensors())

	result, err := e.Compare(context.Background(), []string{"HSR-412R", "HSR-520R"})
	require.NoError(t, err)

	assert.Equal(t, []string{"HSR-412R", "HSR-520R"}, result.ModelNumbers)

	keys := make([]string, len(result.Differences))
	byKey := make(map[string]models.DifferenceEntry)
	for i, entry := range result.Differences {
		keys[i] = entry.Key
		byKey[entry.Key] = entry
	}
	assert.Equal(t, []string{
		"electrical::Supply Voltage",
		"electrical::Output Type",
		"magnetic::Pull - In Range",
		"features",
	}, keys)

	assert.False(t, byKey["electrical::Supply Voltage"].Differs)
	assert.True(t, byKey["electrical::Output Type"].Differs)
	assert.True(t, byKey["features"].Differs)
	assert.Equal(t, 3, result.Differences.DifferingCount())
}

func TestCompareMissingValueIsDistinct(t *testing.T) {
	e := New(twoReedSensors())

	result, err := e.Compare(context.Background(), []string{"HSR-412R", "HSR-520R"})
	require.NoError(t, err)

	var pullIn models.DifferenceEntry
	for _, entry := range result.Differences {
		if entry.Key == "magnetic::Pull - In Range" {
			pullIn = entry
		}
	}
	require.True(t, pullIn.Differs)
	require.NotNil(t, pullIn.ValuesByModel["HSR-412R"])
	assert.Equal(t, "15 mT", *pullIn.ValuesByModel["HSR-412R"])
	assert.Nil(t, pullIn.ValuesByModel["HSR-520R"])
	assert.Empty(t, pullIn.Spread)
}

func TestCompareIsSymmetric(t *testing.T) {
	e := New(twoReedSensors())
	ctx := context.Background()

	forward, err := e.Compare(ctx, []string{"HSR-412R", "HSR-520R"})
	require.NoError(t, err)
	reverse, err := e.Compare(ctx, []string{"HSR-520R", "HSR-412R"})
	require.NoError(t, err)

	require.Equal(t, len(forward.Differences), len(reverse.Differences))
	reverseByKey := make(map[string]models.DifferenceEntry)
	for _, entry := range reverse.Differences {
		reverseByKey[entry.Key] = entry
	}
	for _, entry := range forward.Differences {
		other, ok := reverseByKey[entry.Key]
		require.True(t, ok, "key %s missing in reverse comparison", entry.Key)
		assert.Equal(t, entry.Differs, other.Differs, "key %s", entry.Key)
		assert.Equal(t, entry.ValuesByModel, other.ValuesByModel, "key %s", entry.Key)
	}
}

func TestCompareNumericSpread(t *testing.T) {
	source := &fakeSource{contents: map[string]*models.ModelContent{
		"A": buildModel("A", &models.Section{Name: "magnetic", Specs: specsWith(
			"Pull - In Range", models.SpecValue{RawValue: "15", Unit: "mT"},
		)}),
		"B": buildModel("B", &models.Section{Name: "magnetic", Specs: specsWith(
			"Pull - In Range", models.SpecValue{RawValue: "22.5", Unit: "mT"},
		)}),
	}}
	e := New(source)

	result, err := e.Compare(context.Background(), []string{"A", "B"})
	require.NoError(t, err)
	require.Len(t, result.Differences, 1)
	entry := result.Differences[0]
	assert.True(t, entry.Differs)
	assert.Equal(t, "7.5 mT", entry.Spread)
}

func specsWith(name string, value models.SpecValue) *models.SpecMapping {
	m := models.NewSpecMapping()
	m.Set(name, value)
	return m
}

func TestCompareIdenticalModels(t *testing.T) {
	shared := func(number string) *models.ModelContent {
		return buildModel(number,
			specSection("electrical", [2]string{"Supply Voltage", "5 V"}),
		)
	}
	e := New(&fakeSource{contents: map[string]*models.ModelContent{
		"A": shared("A"),
		"B": shared("B"),
	}})

	result, err := e.Compare(context.Background(), []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Differences.DifferingCount())
	assert.Len(t, result.Differences, 1)
}

func TestCompareRejectsFewerThanTwoDistinct(t *testing.T) {
	e := New(twoReedSensors())
	ctx := context.Background()

	for _, ids := range [][]string{
		nil,
		{"HSR-412R"},
		{"HSR-412R", "HSR-412R"},
		{"HSR-412R", ""},
	} {
		_, err := e.Compare(ctx, ids)
		var cmpErr *procerror.ComparisonError
		assert.ErrorAs(t, err, &cmpErr, "ids %v", ids)
	}
}

func TestCompareRejectsIdentifiersResolvingToOneModel(t *testing.T) {
	content := buildModel("HSR-412R",
		specSection("electrical", [2]string{"Supply Voltage", "3.3 V"}),
	)
	// A bare model number and its file path name the same model.
	e := New(&fakeSource{contents: map[string]*models.ModelContent{
		"HSR-412R":          content,
		"data/HSR-412R.pdf": content,
	}})

	_, err := e.Compare(context.Background(), []string{"HSR-412R", "data/HSR-412R.pdf"})
	var cmpErr *procerror.ComparisonError
	require.ErrorAs(t, err, &cmpErr)
	assert.Contains(t, err.Error(), "fewer than two distinct models")
}

func TestCompareDegradedSectionKeepsFreeTextContent(t *testing.T) {
	a := buildModel("A", &models.Section{Name: "magnetic", Specs: specsWith(
		"Pull - In Range", models.SpecValue{RawValue: "15", Unit: "mT"},
	)})
	// B's magnetic heading carried no table and degraded to free text.
	b := buildModel("B", &models.Section{Name: "magnetic", Text: "See appendix B for details."})
	e := New(&fakeSource{contents: map[string]*models.ModelContent{"A": a, "B": b}})

	result, err := e.Compare(context.Background(), []string{"A", "B"})
	require.NoError(t, err)

	byKey := make(map[string]models.DifferenceEntry)
	for _, entry := range result.Differences {
		byKey[entry.Key] = entry
	}

	param, ok := byKey["magnetic::Pull - In Range"]
	require.True(t, ok)
	assert.True(t, param.Differs)
	require.NotNil(t, param.ValuesByModel["A"])
	assert.Nil(t, param.ValuesByModel["B"])

	text, ok := byKey["magnetic"]
	require.True(t, ok, "free-text section body must not drop out of the set")
	assert.True(t, text.Differs)
	assert.Nil(t, text.ValuesByModel["A"])
	require.NotNil(t, text.ValuesByModel["B"])
	assert.Equal(t, "See appendix B for details.", *text.ValuesByModel["B"])
}

func TestCompareAggregatesAllFailures(t *testing.T) {
	source := twoReedSensors()
	source.errs = map[string]error{
		"HSR-412R": errors.New("corrupt file"),
	}
	e := New(source)

	_, err := e.Compare(context.Background(), []string{"HSR-412R", "HSR-520R", "HSR-999"})
	var cmpErr *procerror.ComparisonError
	require.ErrorAs(t, err, &cmpErr)
	require.Len(t, cmpErr.Reasons, 2)
	assert.Contains(t, err.Error(), "corrupt file")
	assert.Contains(t, err.Error(), "HSR-999")
}

func TestWriteCSV(t *testing.T) {
	e := New(twoReedSensors())
	result, err := e.Compare(context.Background(), []string{"HSR-412R", "HSR-520R"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result))

	out := buf.String()
	assert.Contains(t, out, "Key,Model,Value,Differs,Spread")
	assert.Contains(t, out, "electrical::Output Type,HSR-412R,NPN,true,")
	assert.Contains(t, out, "magnetic::Pull - In Range,HSR-520R,N/A,true,")
}
