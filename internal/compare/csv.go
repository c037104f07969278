package compare

import (
	"io"

	"fjacquet/specsheet/internal/models"

	"github.com/gocarina/gocsv"
)

// csvRow is the long-format CSV projection of one model's value for one
// comparison key.
type csvRow struct {
	Key     string `csv:"Key"`
	Model   string `csv:"Model"`
	Value   string `csv:"Value"`
	Differs bool   `csv:"Differs"`
	Spread  string `csv:"Spread"`
}

// WriteCSV renders the comparison as CSV, one row per key and model.
// Values a model does not specify are written as N/A.
func WriteCSV(w io.Writer, result *models.ComparisonResult) error {
	var rows []csvRow
	for _, entry := range result.Differences {
		for _, model := range result.ModelNumbers {
			value := "N/A"
			if v := entry.ValuesByModel[model]; v != nil {
				value = *v
			}
			rows = append(rows, csvRow{
				Key:     entry.Key,
				Model:   model,
				Value:   value,
				Differs: entry.Differs,
				Spread:  entry.Spread,
			})
		}
	}
	return gocsv.Marshal(&rows, w)
}
