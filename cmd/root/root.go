// Package root contains the root command for the application
package root

import (
	"fjacquet/specsheet/internal/analysis"
	"fjacquet/specsheet/internal/compare"
	"fjacquet/specsheet/internal/config"
	"fjacquet/specsheet/internal/container"
	"fjacquet/specsheet/internal/diagram"
	"fjacquet/specsheet/internal/extractor"
	"fjacquet/specsheet/internal/processor"
	"fjacquet/specsheet/internal/segmenter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// App is the wired dependency container, built in PersistentPreRun.
	App *container.Container

	// Flag overrides applied on top of the loaded configuration.
	PDFDir     string
	NoDiagrams bool

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "specsheet",
		Short: "A CLI tool to extract, compare and analyze sensor datasheet PDFs.",
		Long: `specsheet reads sensor datasheet PDFs, segments them into specification
sections, and compares models parameter by parameter. An optional LLM-backed
analysis step turns the differences into an application recommendation.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to specsheet!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			if PDFDir != "" {
				cfg.PDF.Directory = PDFDir
			}
			if NoDiagrams {
				cfg.Diagram.Enabled = false
			}

			Log = config.ConfigureLoggingFromConfig(cfg)

			// Set the configured logger for all pipeline packages
			extractor.SetLogger(Log)
			segmenter.SetLogger(Log)
			diagram.SetLogger(Log)
			processor.SetLogger(Log)
			compare.SetLogger(Log)
			analysis.SetLogger(Log)

			App, err = container.NewContainer(cfg)
			if err != nil {
				Log.Fatalf("Failed to wire dependencies: %v", err)
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&PDFDir, "pdf-dir", "d", "", "Directory containing datasheet PDFs (overrides config)")
	Cmd.PersistentFlags().BoolVar(&NoDiagrams, "no-diagrams", false, "Skip diagram extraction")
}
