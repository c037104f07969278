// Package extract handles the datasheet extraction command
package extract

import (
	"context"
	"fmt"

	"fjacquet/specsheet/cmd/root"
	"fjacquet/specsheet/internal/models"

	"github.com/spf13/cobra"
)

var showText bool

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract <model-or-pdf> [<model-or-pdf>...]",
	Short: "Extract sections and specifications from datasheets",
	Long: `Extract processes one or more datasheet PDFs, identified either by model
number (looked up in the configured PDF directory) or by file path, and prints
the sections and specification tables found in each.`,
	Args: cobra.MinimumNArgs(1),
	Run:  extractFunc,
}

func init() {
	Cmd.Flags().BoolVar(&showText, "text", false, "Also print free-text section bodies")
}

func extractFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	for _, identifier := range args {
		content, err := root.App.Processor().GetContent(ctx, identifier)
		if err != nil {
			root.Log.Fatalf("Extraction failed: %v", err)
		}
		printContent(content)
	}
}

func printContent(content *models.ModelContent) {
	fmt.Printf("Model:    %s\n", content.ModelNumber)
	fmt.Printf("File:     %s\n", content.Filename)
	fmt.Printf("Pages:    %d\n", len(content.Pages))
	fmt.Printf("Diagrams: %d\n", len(content.Diagrams))
	for _, ref := range content.Diagrams {
		fmt.Printf("  %s\n", ref.Path)
	}

	for _, name := range content.Sections.Names() {
		section, _ := content.Sections.Get(name)
		if section.IsSpec() {
			fmt.Printf("\n[%s] %d parameters\n", name, section.Specs.Len())
			for _, param := range section.Specs.Keys() {
				value, _ := section.Specs.Get(param)
				fmt.Printf("  %-40s %s\n", param, value.Display())
			}
			continue
		}
		fmt.Printf("\n[%s] free text (%d chars)\n", name, len(section.Text))
		if showText {
			fmt.Println(section.Text)
		}
	}
	fmt.Println()
}
