package monitor

import (
	"context"
	"io/fs"
	"os"
	"time"

	"github.com/thruflo/sicplings/internal/logging"
)

// Poller stats every path each Interval and fires when any modification
// time falls within Window of now. A single save is usually seen on more
// than one tick; callers are expected to tolerate repeated notifications.
type Poller struct {
	Interval time.Duration
	Window   time.Duration
	Logger   *logging.Logger

	// Now and Stat default to time.Now and os.Stat.
	Now  func() time.Time
	Stat func(name string) (fs.FileInfo, error)
}

// Run implements Monitor.
func (p *Poller) Run(ctx context.Context, paths []string, onChange func() bool) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !p.Changed(paths) {
				continue
			}
			if onChange() {
				return nil
			}
		}
	}
}

// Changed reports whether any of paths was modified within the window.
// Files that cannot be stat'ed are skipped.
func (p *Poller) Changed(paths []string) bool {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	stat := os.Stat
	if p.Stat != nil {
		stat = p.Stat
	}
	window := p.Window
	if window <= 0 {
		window = DefaultRecencyWindow
	}

	current := now()
	for _, path := range paths {
		info, err := stat(path)
		if err != nil {
			continue
		}
		// A modification time ahead of the clock never counts as recent.
		if age := current.Sub(info.ModTime()); age >= 0 && age < window {
			if p.Logger != nil {
				p.Logger.Debug("recent modification", "path", path)
			}
			return true
		}
	}
	return false
}
