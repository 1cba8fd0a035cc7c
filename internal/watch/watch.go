// Package watch invalidates analysis results when unit sources change on
// disk.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/unitscope/internal/analysis"
)

// Watcher observes a project's source directories and drops stale cache
// entries from an analysis context as files change.
type Watcher struct {
	dirs     []string
	actx     *analysis.Context
	logger   *slog.Logger
	onChange func(path string)
}

// New creates a Watcher over dirs feeding actx. onChange, if non-nil, is
// called after each invalidation with the changed path.
func New(dirs []string, actx *analysis.Context, logger *slog.Logger, onChange func(path string)) *Watcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{dirs: dirs, actx: actx, logger: logger, onChange: onChange}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range w.dirs {
		if err := watchDirRecursive(watcher, dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	w.logger.Info("watching source directories", "dirs", len(w.dirs))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	// New subdirectories need their own watch.
	if event.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			_ = watchDirRecursive(watcher, event.Name)
		}
	}

	if !strings.HasSuffix(event.Name, ".unit") {
		return
	}
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	w.actx.Invalidate(event.Name)
	w.logger.Debug("invalidated unit", "path", event.Name, "op", event.Op.String())
	if w.onChange != nil {
		w.onChange(event.Name)
	}
}

// watchDirRecursive adds dir and every subdirectory to the watcher.
// A path that is not a directory is ignored.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Race with deletion; nothing to watch.
			return nil //nolint:nilerr
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
