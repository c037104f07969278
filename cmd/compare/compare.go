// Package compare handles the datasheet comparison command
package compare

import (
	"context"
	"fmt"
	"os"

	"fjacquet/specsheet/cmd/root"
	internalcompare "fjacquet/specsheet/internal/compare"
	"fjacquet/specsheet/internal/models"

	"github.com/spf13/cobra"
)

var (
	csvFile string
	showAll bool
)

// Cmd represents the compare command
var Cmd = &cobra.Command{
	Use:   "compare <model> <model> [<model>...]",
	Short: "Compare specifications across sensor models",
	Long: `Compare processes two or more datasheets and prints a parameter-level
difference report. All models must process successfully; any failure aborts
the whole comparison.`,
	Args: cobra.MinimumNArgs(2),
	Run:  compareFunc,
}

func init() {
	Cmd.Flags().StringVarP(&csvFile, "csv", "o", "", "Write the comparison to a CSV file")
	Cmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include parameters that do not differ")
}

func compareFunc(cmd *cobra.Command, args []string) {
	result, err := root.App.Compare().Compare(context.Background(), args)
	if err != nil {
		root.Log.Fatalf("Comparison failed: %v", err)
	}

	printResult(result)

	if csvFile != "" {
		writeCSV(result)
	}
}

func printResult(result *models.ComparisonResult) {
	fmt.Printf("Comparing: %v\n", result.ModelNumbers)
	fmt.Printf("Keys: %d total, %d differing\n\n",
		len(result.Differences), result.Differences.DifferingCount())

	for _, entry := range result.Differences {
		if !entry.Differs && !showAll {
			continue
		}
		marker := " "
		if entry.Differs {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, entry.Key)
		for _, model := range result.ModelNumbers {
			value := "N/A"
			if v := entry.ValuesByModel[model]; v != nil {
				value = *v
			}
			fmt.Printf("    %-20s %s\n", model, value)
		}
		if entry.Spread != "" {
			fmt.Printf("    spread: %s\n", entry.Spread)
		}
	}
}

func writeCSV(result *models.ComparisonResult) {
	f, err := os.Create(csvFile)
	if err != nil {
		root.Log.Fatalf("Failed to create CSV file: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			root.Log.Warnf("Failed to close CSV file: %v", err)
		}
	}()

	if err := internalcompare.WriteCSV(f, result); err != nil {
		root.Log.Fatalf("Failed to write CSV: %v", err)
	}
	root.Log.Infof("Comparison written to %s", csvFile)
}
