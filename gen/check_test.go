package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckDetectsStaleAndMissing(t *testing.T) {
	reg := buildRegistry(t, sampleConfig)
	cfg := Config{OutputRoot: t.TempDir(), Prefix: "AST"}
	log := zap.NewNop().Sugar()

	// Nothing generated yet: everything is stale
	result, err := Check(reg, &stubBackend{}, cfg, log)
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Len(t, result.Stale, 6)

	// A fresh generation brings the tree up to date
	_, err = NewDriver(&stubBackend{}, DiskWriter{}, cfg, log).Generate(reg)
	require.NoError(t, err)

	result, err = Check(reg, &stubBackend{}, cfg, log)
	require.NoError(t, err)
	assert.True(t, result.UpToDate)
	assert.Empty(t, result.Stale)

	// Hand-editing one artifact makes exactly that artifact stale
	edited := filepath.Join(cfg.OutputRoot, "ASTExpr.txt")
	require.NoError(t, os.WriteFile(edited, []byte("tampered"), 0644))

	result, err = Check(reg, &stubBackend{}, cfg, log)
	require.NoError(t, err)
	assert.False(t, result.UpToDate)
	assert.Equal(t, []string{edited}, result.Stale)
}

func TestDiskWriterCreatesNestedDirectories(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Op", "Deep", "ASTPlus.txt")

	require.NoError(t, DiskWriter{}.WriteFile(path, []byte("x")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}
