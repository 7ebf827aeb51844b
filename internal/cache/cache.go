// Package cache memoizes evaluator reports per exercise file.
//
// An entry is keyed by exercise path and stamped with the file's
// modification time. It is reused only while the file's current
// modification time equals the stamp exactly; any other value, newer or
// older, sends the exercise back through the evaluator. The not-done marker
// is checked on every lookup, ahead of the stamp comparison, so adding the
// marker back takes effect immediately.
//
// A Cache is owned by one goroutine and does no locking.
package cache

import (
	"context"
	"io/fs"
	"os"
	"time"

	"github.com/thruflo/sicplings/internal/evaluator"
	"github.com/thruflo/sicplings/internal/exercise"
	"github.com/thruflo/sicplings/internal/logging"
	"github.com/thruflo/sicplings/internal/metrics"
)

// Evaluator is the part of *evaluator.Evaluator the cache needs.
type Evaluator interface {
	Evaluate(ctx context.Context, ex exercise.Exercise) evaluator.Report
}

// Entry is a cached report and the modification time it was computed for.
type Entry struct {
	ModTime time.Time
	Report  evaluator.Report
}

// Options configures a Cache.
type Options struct {
	Evaluator Evaluator
	Logger    *logging.Logger
	Metrics   *metrics.Recorder
	// Stat and ReadFile default to os.Stat and os.ReadFile.
	Stat     func(name string) (fs.FileInfo, error)
	ReadFile func(name string) ([]byte, error)
}

// Cache maps exercise paths to entries.
type Cache struct {
	entries  map[string]Entry
	eval     Evaluator
	log      *logging.Logger
	metrics  *metrics.Recorder
	stat     func(name string) (fs.FileInfo, error)
	readFile func(name string) ([]byte, error)
}

// New creates an empty Cache.
func New(opts Options) *Cache {
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	stat := opts.Stat
	if stat == nil {
		stat = os.Stat
	}
	readFile := opts.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	return &Cache{
		entries:  make(map[string]Entry),
		eval:     opts.Evaluator,
		log:      log.With("component", "cache"),
		metrics:  opts.Metrics,
		stat:     stat,
		readFile: readFile,
	}
}

// Status returns the current status of ex.
func (c *Cache) Status(ctx context.Context, ex exercise.Exercise) exercise.Status {
	return c.Report(ctx, ex).Status
}

// Report returns the current report for ex, running the evaluator only
// when no entry matches the file's modification time.
func (c *Cache) Report(ctx context.Context, ex exercise.Exercise) evaluator.Report {
	info, err := c.stat(ex.Path)
	if err != nil {
		c.metrics.CacheLookup(metrics.LookupGone)
		return evaluator.Report{Status: exercise.StatusCompileError, Output: err.Error()}
	}
	mtime := info.ModTime()

	if content, err := c.readFile(ex.Path); err == nil && exercise.HasNotDoneMarker(content) {
		c.metrics.CacheLookup(metrics.LookupMarker)
		report := evaluator.Report{Status: exercise.StatusNotDone}
		c.entries[ex.Path] = Entry{ModTime: mtime, Report: report}
		return report
	}

	if entry, ok := c.entries[ex.Path]; ok && entry.ModTime.Equal(mtime) {
		c.metrics.CacheLookup(metrics.LookupHit)
		return entry.Report
	}

	c.metrics.CacheLookup(metrics.LookupMiss)
	c.log.Debug("evaluating", "exercise", ex.Name, "mtime", mtime.Format(time.RFC3339Nano))

	report := c.eval.Evaluate(ctx, ex)
	c.entries[ex.Path] = Entry{ModTime: mtime, Report: report}
	return report
}

// Entry returns the stored entry for path.
func (c *Cache) Entry(path string) (Entry, bool) {
	entry, ok := c.entries[path]
	return entry, ok
}

// Invalidate drops the entry for path.
func (c *Cache) Invalidate(path string) {
	delete(c.entries, path)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}
