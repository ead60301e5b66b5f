package records

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadCallback is called after the watcher installs a new store.
type ReloadCallback func(s *Store)

const reloadDebounce = 200 * time.Millisecond

// Watch observes the dataset file at path and swaps a freshly loaded store
// into h whenever its content changes, until ctx is cancelled.
//
// The parent directory is watched rather than the file itself so that
// editors replacing the file via rename are picked up. Bursts of events are
// debounced, and a reload whose checksum matches the current store is
// skipped.
func Watch(ctx context.Context, h *Holder, path string, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("path", abs))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(reloadDebounce)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(reloadDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			next := LoadFile(abs, logger)
			if next.Checksum() != "" && next.Checksum() == h.Load().Checksum() {
				logger.Debug("watcher: content unchanged", slog.String("path", abs))
				continue
			}
			h.Swap(next)
			logger.Info("watcher: reloaded", slog.String("path", abs), slog.Int("count", next.Len()))
			if cb != nil {
				cb(next)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
