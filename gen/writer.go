package gen

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/teranos/treegen/errors"
)

// FileWriter is the file-writing collaborator the driver emits through.
// The driver never touches the filesystem directly, so tests and the
// staleness check can capture output in memory.
type FileWriter interface {
	WriteFile(path string, data []byte) error
}

// DiskWriter writes artifacts to the filesystem, creating parent
// directories as needed.
type DiskWriter struct{}

func (DiskWriter) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create output directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// MemWriter collects artifacts in memory, keyed by path.
type MemWriter struct {
	Files map[string][]byte
}

func NewMemWriter() *MemWriter {
	return &MemWriter{Files: make(map[string][]byte)}
}

func (w *MemWriter) WriteFile(path string, data []byte) error {
	w.Files[path] = data
	return nil
}

// Paths returns the written paths, sorted.
func (w *MemWriter) Paths() []string {
	paths := make([]string, 0, len(w.Files))
	for path := range w.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
