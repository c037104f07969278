package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/specsheet/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.PDF.Directory = "data/pdfs"
	cfg.Diagram.Enabled = true
	cfg.Diagram.Directory = "data/diagrams"
	cfg.AI.Provider = "none"
	cfg.AI.MaxRetries = 3
	cfg.AI.TimeoutSeconds = 60
	return cfg
}

func TestNewContainerWiresPipeline(t *testing.T) {
	c, err := NewContainer(testConfig())
	require.NoError(t, err)

	assert.NotNil(t, c.Processor())
	assert.NotNil(t, c.Compare())
	assert.NotNil(t, c.Cache())
	assert.Same(t, c.Cache(), c.Processor().Cache())
}

func TestNewContainerRejectsNilConfig(t *testing.T) {
	_, err := NewContainer(nil)
	assert.Error(t, err)
}

func TestNewContainerLoadsPatternFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`patterns:
  - name: environmental
    pattern: '(?im)^\s*environmental\s+specifications'
    spec: true
`), 0600))

	cfg := testConfig()
	cfg.Sections.PatternsFile = path
	_, err := NewContainer(cfg)
	assert.NoError(t, err)
}

func TestNewContainerRejectsBrokenPatternFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`patterns:
  - name: broken
    pattern: '(['
`), 0600))

	cfg := testConfig()
	cfg.Sections.PatternsFile = path
	_, err := NewContainer(cfg)
	assert.Error(t, err)
}

func TestNewAnalyzerDisabledProvider(t *testing.T) {
	c, err := NewContainer(testConfig())
	require.NoError(t, err)

	_, err = c.NewAnalyzer(context.Background())
	assert.ErrorContains(t, err, "disabled")
}
