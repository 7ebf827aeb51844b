// Package monitor notices edits to exercise files.
//
// Two backends implement Monitor. The Poller stats every file on a fixed
// tick and reports a change whenever some file was modified within the
// recency window. The Watcher delegates to github.com/radovskyb/watcher and
// reports each write, create, chmod or rename event. Neither needs OS file
// notification support.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/thruflo/sicplings/internal/logging"
)

const (
	BackendPoll    = "poll"
	BackendWatcher = "watcher"
)

const (
	DefaultPollInterval  = 250 * time.Millisecond
	DefaultRecencyWindow = 500 * time.Millisecond
)

// Monitor runs until onChange returns true (Run returns nil) or ctx is
// done (Run returns ctx.Err()). onChange is called from the goroutine that
// called Run, one call at a time.
type Monitor interface {
	Run(ctx context.Context, paths []string, onChange func() bool) error
}

// Options selects and tunes a backend.
type Options struct {
	Backend       string
	PollInterval  time.Duration
	RecencyWindow time.Duration
	Logger        *logging.Logger
}

// New returns the backend named by opts.Backend. An empty name selects the
// poller.
func New(opts Options) (Monitor, error) {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.RecencyWindow <= 0 {
		opts.RecencyWindow = DefaultRecencyWindow
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	switch opts.Backend {
	case "", BackendPoll:
		return &Poller{
			Interval: opts.PollInterval,
			Window:   opts.RecencyWindow,
			Logger:   opts.Logger,
		}, nil
	case BackendWatcher:
		return &Watcher{
			Interval: opts.PollInterval,
			Logger:   opts.Logger,
		}, nil
	default:
		return nil, fmt.Errorf("unknown watch backend %q (want %q or %q)", opts.Backend, BackendPoll, BackendWatcher)
	}
}
