package power

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses editor write bursts into one reload.
const reloadDebounce = 100 * time.Millisecond

// Watch reloads the catalog from path whenever the file changes on disk,
// until ctx is cancelled. A file that fails to parse leaves the current
// table in place.
//
// The parent directory is watched rather than the file: editors commonly
// replace files by rename.
func (c *Catalog) Watch(ctx context.Context, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating powers watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(path)

	// reload fires once the file has been quiet for reloadDebounce
	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			reload = timer.C
		case <-reload:
			reload = nil
			c.Reload(path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("powers watcher error", "error", err)
		}
	}
}

// Reload re-reads path and swaps the table. Returns false if the file could not be loaded.
func (c *Catalog) Reload(path string) bool {
	powers, elements, err := readFile(path)
	if err != nil {
		slog.Warn("powers reload failed, keeping current table", "path", path, "error", err)
		return false
	}
	c.Replace(powers, elements)
	slog.Info("powers reloaded", "path", path, "powers", len(powers))
	return true
}
