// Package session drives a course run: it picks the active exercise, tracks
// progress and, in watch mode, redraws whenever an exercise file changes.
package session

import (
	"context"

	"github.com/thruflo/sicplings/internal/evaluator"
	"github.com/thruflo/sicplings/internal/exercise"
	"github.com/thruflo/sicplings/internal/logging"
	"github.com/thruflo/sicplings/internal/monitor"
)

// State is the phase of a watch session.
type State int

const (
	// StateScanning is the initial pass over every exercise.
	StateScanning State = iota
	// StateDisplaying shows the first exercise that is not done.
	StateDisplaying
	// StateAllComplete is terminal: every exercise is done.
	StateAllComplete
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateDisplaying:
		return "displaying"
	case StateAllComplete:
		return "all complete"
	default:
		return "unknown"
	}
}

// Progress counts done exercises.
type Progress struct {
	Done  int
	Total int
}

// Percent returns Done as a percentage of Total, 0 for an empty course.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total) * 100
}

// Frame is everything needed to draw one screen.
type Frame struct {
	State State
	// Current and Report are set in StateDisplaying.
	Current exercise.Exercise
	Report  evaluator.Report
	// Completed names the previously displayed exercise when it is no
	// longer the current one.
	Completed string
	Progress  Progress
}

// Reporter yields the current report for an exercise. *cache.Cache
// implements it.
type Reporter interface {
	Report(ctx context.Context, ex exercise.Exercise) evaluator.Report
}

// Options configures a Controller.
type Options struct {
	Exercises []exercise.Exercise
	Reporter  Reporter
	Logger    *logging.Logger
}

// Controller owns the active-exercise pointer. It is not safe for
// concurrent use; in watch mode the monitor calls back on the goroutine
// running Watch.
type Controller struct {
	exercises []exercise.Exercise
	reporter  Reporter
	log       *logging.Logger

	state     State
	current   int
	lastShown string
}

// New creates a Controller over exercises in manifest order.
func New(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	return &Controller{
		exercises: opts.Exercises,
		reporter:  opts.Reporter,
		log:       log.With("component", "session"),
		state:     StateScanning,
		current:   -1,
	}
}

// Exercises returns the exercises the controller iterates over.
func (c *Controller) Exercises() []exercise.Exercise {
	return c.exercises
}

// State returns the state reached by the last Refresh.
func (c *Controller) State() State {
	return c.state
}

// Paths returns the file path of every exercise.
func (c *Controller) Paths() []string {
	paths := make([]string, len(c.exercises))
	for i, ex := range c.exercises {
		paths[i] = ex.Path
	}
	return paths
}

// Scan computes a status for every exercise so later refreshes are served
// from the cache. progress, if not nil, is called after each exercise.
func (c *Controller) Scan(ctx context.Context, progress func(checked, total int)) {
	c.state = StateScanning
	total := len(c.exercises)
	for i, ex := range c.exercises {
		if ctx.Err() != nil {
			return
		}
		c.reporter.Report(ctx, ex)
		if progress != nil {
			progress(i+1, total)
		}
	}
}

// Refresh recomputes the active exercise and returns the frame to draw.
func (c *Controller) Refresh(ctx context.Context) Frame {
	reports := c.Statuses(ctx)

	frame := Frame{Progress: progressOf(reports)}
	c.current = firstNotDone(reports)

	if c.current < 0 {
		frame.State = StateAllComplete
		frame.Completed = c.lastShown
		c.lastShown = ""
		c.state = StateAllComplete
		c.log.Info("all exercises complete", "total", frame.Progress.Total)
		return frame
	}

	ex := c.exercises[c.current]
	frame.State = StateDisplaying
	frame.Current = ex
	frame.Report = reports[c.current]
	if c.lastShown != "" && c.lastShown != ex.Name {
		frame.Completed = c.lastShown
		c.log.Info("exercise completed", "exercise", c.lastShown, "next", ex.Name)
	}
	c.lastShown = ex.Name
	c.state = StateDisplaying
	return frame
}

// Watch scans, draws the first frame, then redraws on every change the
// monitor reports. It returns nil once every exercise is done and
// ctx.Err() when ctx is cancelled first.
func (c *Controller) Watch(ctx context.Context, m monitor.Monitor, render func(Frame)) error {
	c.Scan(ctx, func(checked, total int) {
		render(Frame{State: StateScanning, Progress: Progress{Done: checked, Total: total}})
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	frame := c.Refresh(ctx)
	render(frame)
	if frame.State == StateAllComplete {
		return nil
	}

	return m.Run(ctx, c.Paths(), func() bool {
		frame := c.Refresh(ctx)
		render(frame)
		return frame.State == StateAllComplete
	})
}

// Current returns the index of the first exercise that is not done.
func (c *Controller) Current(ctx context.Context) (int, bool) {
	idx := firstNotDone(c.Statuses(ctx))
	return idx, idx >= 0
}

// Next returns the exercise after the current one. It reports false when
// everything is done or the current exercise is the last.
func (c *Controller) Next(ctx context.Context) (exercise.Exercise, bool) {
	idx, ok := c.Current(ctx)
	if !ok || idx+1 >= len(c.exercises) {
		return exercise.Exercise{}, false
	}
	return c.exercises[idx+1], true
}

// Progress counts done exercises.
func (c *Controller) Progress(ctx context.Context) Progress {
	return progressOf(c.Statuses(ctx))
}

// Statuses returns a report per exercise, in order.
func (c *Controller) Statuses(ctx context.Context) []evaluator.Report {
	reports := make([]evaluator.Report, len(c.exercises))
	for i, ex := range c.exercises {
		reports[i] = c.reporter.Report(ctx, ex)
	}
	return reports
}

// Find looks an exercise up by name.
func (c *Controller) Find(name string) (exercise.Exercise, bool) {
	return exercise.Find(c.exercises, name)
}

func firstNotDone(reports []evaluator.Report) int {
	for i, r := range reports {
		if !r.Status.Done() {
			return i
		}
	}
	return -1
}

func progressOf(reports []evaluator.Report) Progress {
	p := Progress{Total: len(reports)}
	for _, r := range reports {
		if r.Status.Done() {
			p.Done++
		}
	}
	return p
}
