// Package container provides dependency injection for the specsheet
// application. It centralizes the creation and wiring of the processing
// pipeline, making dependencies explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"fjacquet/specsheet/internal/analysis"
	"fjacquet/specsheet/internal/compare"
	"fjacquet/specsheet/internal/config"
	"fjacquet/specsheet/internal/diagram"
	"fjacquet/specsheet/internal/extractor"
	"fjacquet/specsheet/internal/processor"
	"fjacquet/specsheet/internal/segmenter"
)

// Container holds the wired application dependencies. It is immutable
// after creation; everything is reached through getters.
type Container struct {
	config    *config.Config
	cache     *processor.Cache
	processor *processor.Processor
	compare   *compare.Engine
}

// NewContainer creates and wires the processing pipeline from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	patterns, err := loadPatterns(cfg)
	if err != nil {
		return nil, err
	}

	var extOpts []extractor.Option
	if cfg.PDF.MaxPages > 0 {
		extOpts = append(extOpts, extractor.WithMaxPages(cfg.PDF.MaxPages))
	}

	var procOpts []processor.Option
	if cfg.Diagram.Enabled {
		procOpts = append(procOpts, processor.WithDiagrams(diagram.New(cfg.Diagram.Directory)))
	}

	cache := processor.NewCache()
	proc := processor.New(
		cfg.PDF.Directory,
		extractor.New(extOpts...),
		segmenter.New(patterns),
		cache,
		procOpts...,
	)

	return &Container{
		config:    cfg,
		cache:     cache,
		processor: proc,
		compare:   compare.New(proc),
	}, nil
}

func loadPatterns(cfg *config.Config) ([]segmenter.Pattern, error) {
	if cfg.Sections.PatternsFile == "" {
		return nil, nil
	}
	patterns, err := segmenter.LoadPatterns(cfg.Sections.PatternsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load section patterns: %w", err)
	}
	return patterns, nil
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Processor returns the datasheet processor facade.
func (c *Container) Processor() *processor.Processor {
	return c.processor
}

// Cache returns the content cache for lifecycle control.
func (c *Container) Cache() *processor.Cache {
	return c.cache
}

// Compare returns the comparison engine.
func (c *Container) Compare() *compare.Engine {
	return c.compare
}

// NewAnalyzer builds an analyzer for the configured AI provider. It is
// created per call rather than held on the container so commands that
// never analyze do not need an API key.
func (c *Container) NewAnalyzer(ctx context.Context, opts ...analysis.Option) (*analysis.Analyzer, error) {
	oracle, err := analysis.NewOracle(ctx, c.config)
	if err != nil {
		return nil, err
	}
	opts = append([]analysis.Option{
		analysis.WithMaxRetries(c.config.AI.MaxRetries),
		analysis.WithTimeout(time.Duration(c.config.AI.TimeoutSeconds) * time.Second),
	}, opts...)
	return analysis.New(oracle, opts...), nil
}
