package gen

import (
	"bytes"
	"os"

	"go.uber.org/zap"

	"github.com/teranos/treegen/registry"
)

// CheckResult reports whether an output tree matches what generation would
// produce from the current config.
type CheckResult struct {
	// UpToDate is true when every artifact on disk matches byte for byte
	UpToDate bool
	// Stale lists artifact paths that differ from or are missing on disk
	Stale []string
}

// Check regenerates the full artifact set in memory and compares it against
// the output tree on disk. Nothing is written.
func Check(reg *registry.Registry, backend Backend, cfg Config, log *zap.SugaredLogger) (*CheckResult, error) {
	mem := NewMemWriter()
	driver := NewDriver(backend, mem, cfg, log)
	if _, err := driver.Generate(reg); err != nil {
		return nil, err
	}

	result := &CheckResult{UpToDate: true}
	for _, path := range mem.Paths() {
		existing, err := os.ReadFile(path)
		if err != nil || !bytes.Equal(existing, mem.Files[path]) {
			result.UpToDate = false
			result.Stale = append(result.Stale, path)
		}
	}
	return result, nil
}
