// Package watch re-runs the driver whenever a watched *.sql file changes,
// debouncing bursts of writes (editors routinely emit several events per
// save) into a single re-lint.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/sqlfmt/internal/driver"
)

// Debounce is how long to wait after the last change before re-running.
const Debounce = 150 * time.Millisecond

// OnResult is called after every re-run with the driver's results.
type OnResult func(results []driver.Result, err error)

// Run watches paths and re-invokes the driver on every *.sql change, until
// ctx is cancelled. It runs once immediately before watching begins.
func Run(ctx context.Context, paths []string, opts driver.Options, onResult OnResult, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	results, err := driver.Run(ctx, paths, opts)
	onResult(results, err)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, p := range paths {
		if err := addRecursive(watcher, p); err != nil {
			return fmt.Errorf("watch: add %s: %w", p, err)
		}
	}

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".sql") {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(Debounce, func() {
				logger.Debug("rerunning after change", slog.String("file", event.Name))
				results, err := driver.Run(ctx, paths, opts)
				onResult(results, err)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}

// addRecursive registers path and every subdirectory with the watcher; when
// path is a file it registers the file's parent directory instead. fsnotify watches directories, not files, so
// a new file appearing in an already-watched directory is still seen.
func addRecursive(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(path))
	}

	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") && p != path {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}
