// Package watch re-runs the audit when the site's file tree changes.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces event bursts (editor saves touch files repeatedly)
// into a single audit run.
const debounce = 500 * time.Millisecond

// Runner is invoked after each debounced change burst.
type Runner func(ctx context.Context) error

// Watch watches the site root for changes to content documents and calls
// run after each debounced burst, until ctx is cancelled. Directories
// created at runtime are added to the watch list.
func Watch(ctx context.Context, root string, logger *slog.Logger, run Runner) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}
	logger.Info("watching for changes", "root", root)

	var timer *time.Timer
	var fire <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fire = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher stopped")
			return nil

		case <-fire:
			if err := run(ctx); err != nil {
				logger.Error("audit run failed", "error", err)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("failed to watch new dir", "path", ev.Name, "error", addErr)
					}
					schedule()
					continue
				}
			}

			if strings.HasSuffix(ev.Name, ".html") {
				logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
				schedule()
			}

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", werr)
		}
	}
}

// addDirsRecursive registers root and all non-hidden subdirectories.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
			return fs.SkipDir
		}
		return w.Add(path)
	})
}
