// Package watch reloads a file after it changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before it is reloaded.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls a reload function when its file is written, created or
// renamed into place. Bursts of events within the debounce delay cause a
// single reload.
type Watcher struct {
	path     string
	reload   func(path string) error
	logger   *slog.Logger
	debounce time.Duration
}

func New(path string, reload func(path string) error, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{path: path, reload: reload, logger: logger, debounce: DefaultDebounce}
}

// SetDebounce changes the debounce delay. It must be called before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run watches until ctx is done. The file's directory is watched rather
// than the file, so replacing the file by rename is seen too.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: adding %s: %w", filepath.Dir(abs), err)
	}
	w.logger.Info("Watching for changes", slog.String("path", abs))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.logger.Debug("File event detected", slog.String("file", event.Name), slog.String("op", event.Op.String()))
				timer.Reset(w.debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", slog.String("err", err.Error()))
		case <-timer.C:
			if err := w.reload(w.path); err != nil {
				w.logger.Error("Reload failed", slog.String("file", abs), slog.String("err", err.Error()))
				continue
			}
			w.logger.Info("Reloaded", slog.String("file", abs))
		case <-ctx.Done():
			return nil
		}
	}
}
