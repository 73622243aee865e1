// Package watch re-runs a callback when a draft file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of events
// to settle before firing.
const DefaultDebounce = 300 * time.Millisecond

// Options configures File.
type Options struct {
	Debounce time.Duration // Zero means DefaultDebounce
	Logger   *slog.Logger  // Nil means slog.Default()
}

// File watches path and calls onChange once per burst of writes until ctx
// is cancelled. The parent directory is watched so that editors which
// save by renaming a temp file over the original are still seen.
// Errors returned by onChange are logged and do not stop the watch.
func File(ctx context.Context, path string, opts Options, onChange func() error) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching directory %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watching", "path", abs, "debounce", opts.Debounce)

	timer := time.NewTimer(opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("change", "op", event.Op.String())
			timer.Reset(opts.Debounce)

		case <-timer.C:
			if err := onChange(); err != nil {
				logger.Warn("refresh failed", "path", abs, "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
