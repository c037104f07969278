// Package analyze handles the LLM-backed difference analysis command
package analyze

import (
	"context"
	"fmt"

	"fjacquet/specsheet/cmd/root"
	"fjacquet/specsheet/internal/analysis"

	"github.com/spf13/cobra"
)

var asJSON bool

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze <model> <model> [<model>...]",
	Short: "Generate an LLM recommendation from model differences",
	Long: `Analyze compares two or more sensor models and asks the configured AI
provider to explain the practical trade-offs between them. Models with
identical specifications produce no analysis.`,
	Args: cobra.MinimumNArgs(2),
	Run:  analyzeFunc,
}

func init() {
	Cmd.Flags().BoolVar(&asJSON, "json", false, "Request the analysis as a JSON object")
}

func analyzeFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	result, err := root.App.Compare().Compare(ctx, args)
	if err != nil {
		root.Log.Fatalf("Comparison failed: %v", err)
	}

	var opts []analysis.Option
	if asJSON {
		opts = append(opts, analysis.WithJSONOutput())
	}
	analyzer, err := root.App.NewAnalyzer(ctx, opts...)
	if err != nil {
		root.Log.Fatalf("Failed to create analyzer: %v", err)
	}

	answer, err := analyzer.Analyze(ctx, result)
	if err != nil {
		root.Log.Fatalf("Analysis failed: %v", err)
	}

	root.Log.WithField("id", answer.ID).Debug("Analysis generated")
	fmt.Println(answer.Narrative)
}
