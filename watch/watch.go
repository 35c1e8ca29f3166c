// Package watch regenerates artifacts whenever the tree config file changes.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/treegen/errors"
)

// Regenerate is called after the config file changes and the debounce
// period elapses.
type Regenerate func() error

// Watcher watches a tree config file and triggers regeneration on change.
type Watcher struct {
	configPath     string
	watcher        *fsnotify.Watcher
	regen          Regenerate
	log            *zap.SugaredLogger
	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// New creates a watcher for configPath. Editors often replace the file on
// save, so the parent directory is watched and events are filtered by name.
func New(configPath string, regen Regenerate, log *zap.SugaredLogger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	dir := filepath.Dir(configPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
	}

	return &Watcher{
		configPath:     configPath,
		watcher:        watcher,
		regen:          regen,
		log:            log,
		debouncePeriod: 500 * time.Millisecond, // Debounce rapid file changes
	}, nil
}

// Start begins watching for config file changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	base := filepath.Base(w.configPath)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.log.Infow("Config change detected",
				"file", event.Name,
				"op", event.Op.String())
			w.scheduleRegen()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnw("Watcher error",
				"error", err)
		}
	}
}

// scheduleRegen debounces rapid file changes before regenerating
func (w *Watcher) scheduleRegen() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		if err := w.regen(); err != nil {
			w.log.Errorw("Regeneration failed",
				"error", err)
		}
	})
}

// Close stops watching for config changes
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
