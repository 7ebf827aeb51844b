package monitor

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/radovskyb/watcher"

	"github.com/thruflo/sicplings/internal/logging"
)

// Watcher runs a radovskyb/watcher over the directories holding the
// exercises and fires on events for the exercise files themselves.
// Watching directories rather than files means a file that is deleted and
// recreated (as some editors do on save) keeps being watched.
type Watcher struct {
	Interval time.Duration
	Logger   *logging.Logger
}

// Run implements Monitor.
func (m *Watcher) Run(ctx context.Context, paths []string, onChange func() bool) error {
	log := m.Logger
	if log == nil {
		log = logging.Default()
	}
	log = log.With("component", "watcher")
	interval := m.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create, watcher.Chmod, watcher.Rename, watcher.Move)

	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := w.Add(dir); err != nil {
			log.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}

	started := make(chan error, 1)
	go func() {
		started <- w.Start(interval)
	}()
	w.Wait()

	for {
		select {
		case <-ctx.Done():
			stopWatcher(w, started)
			return ctx.Err()

		case event := <-w.Event:
			if !watched[event.Path] && !watched[event.OldPath] {
				continue
			}
			log.Debug("file event", "event", event.Op, "path", event.Path)
			if onChange() {
				stopWatcher(w, started)
				return nil
			}

		case err := <-w.Error:
			if errors.Is(err, watcher.ErrWatchedFileDeleted) {
				log.Warn("watched directory removed", "error", err)
				continue
			}
			log.Warn("watcher error", "error", err)

		case err := <-started:
			return err
		}
	}
}

// stopWatcher closes w and drains its channels until Start has returned.
func stopWatcher(w *watcher.Watcher, started <-chan error) {
	go w.Close()
	for {
		select {
		case <-w.Event:
		case <-w.Error:
		case <-started:
			return
		}
	}
}
