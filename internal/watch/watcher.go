// Package watch reports external modification of the open subtitle file.
// Editors and sync tools replace files via rename, so the parent directory
// is watched rather than the file itself, and events are debounced until
// the writes settle.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"subgrip/internal/eventbus"
)

const debounceInterval = 250 * time.Millisecond

// Watcher publishes FileChangedOnDiskEvent when the watched file is
// written, created or renamed-over by another program.
type Watcher struct {
	bus  eventbus.EventBus
	path string
}

// New creates a watcher for one file.
func New(bus eventbus.EventBus, path string) *Watcher {
	return &Watcher{bus: bus, path: filepath.Clean(path)}
}

// Run watches until the context is cancelled. It blocks and is meant to
// run on its own goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	var debounceTimer *time.Timer
	pending := false

	for {
		var debounceC <-chan time.Time
		if debounceTimer != nil {
			debounceC = debounceTimer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			if debounceTimer == nil {
				debounceTimer = time.NewTimer(debounceInterval)
			} else {
				debounceTimer.Reset(debounceInterval)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				log.Printf("Watcher error: %v", err)
			}

		case <-debounceC:
			debounceTimer = nil
			if !pending {
				continue
			}
			pending = false
			w.bus.Publish(eventbus.FileChangedOnDiskEvent{Path: w.path})
		}
	}
}
