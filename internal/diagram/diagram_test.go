package diagram

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCreatesDiagramDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "diagrams")
	e := New(dir)

	// Not a PDF at all: extraction finds nothing, which is benign.
	src := filepath.Join(t.TempDir(), "HSR-412R.pdf")
	require.NoError(t, os.WriteFile(src, []byte("not a pdf"), 0600))

	refs, err := e.Extract(src, "HSR-412R")
	require.NoError(t, err)
	assert.Empty(t, refs)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExtractMissingFileIsBenign(t *testing.T) {
	e := New(t.TempDir())

	refs, err := e.Extract(filepath.Join(t.TempDir(), "absent.pdf"), "HSR-412R")
	require.NoError(t, err)
	assert.Empty(t, refs)
}
