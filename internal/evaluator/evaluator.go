// Package evaluator turns one exercise file into a status by reading it,
// checking the not-done marker and running the external toolchain.
//
// Evaluate never fails: unreadable files, lint failures, test failures and
// a toolchain that cannot be launched all become status values carried in
// a Report, together with the text that explains them.
package evaluator

import (
	"context"
	"os"
	"strings"

	"github.com/thruflo/sicplings/internal/exercise"
	"github.com/thruflo/sicplings/internal/logging"
	"github.com/thruflo/sicplings/internal/metrics"
	"github.com/thruflo/sicplings/internal/toolchain"
)

// Substrings in test output that mark a failed run even on exit status 0.
var failureMarkers = []string{"FAIL", "panicked"}

// Report is the outcome of evaluating one exercise.
type Report struct {
	Status exercise.Status
	// Output is the text behind the status: toolchain output for compile
	// and test results, the read error for unreadable files.
	Output string
	// ToolFailure is set when the toolchain could not be launched. The
	// status is still CompileError or TestFail, so callers that only look
	// at Status see the same result either way.
	ToolFailure bool
}

// Options configures an Evaluator.
type Options struct {
	Toolchain toolchain.Toolchain
	Logger    *logging.Logger
	Metrics   *metrics.Recorder
	// ReadFile defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// Evaluator produces Reports. It keeps no state between calls.
type Evaluator struct {
	tc       toolchain.Toolchain
	log      *logging.Logger
	metrics  *metrics.Recorder
	readFile func(name string) ([]byte, error)
}

// New creates an Evaluator.
func New(opts Options) *Evaluator {
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	readFile := opts.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	return &Evaluator{
		tc:       opts.Toolchain,
		log:      log.With("component", "evaluator"),
		metrics:  opts.Metrics,
		readFile: readFile,
	}
}

// Evaluate computes the current status of ex. Steps run in order and stop
// at the first decisive one: read, marker, lint, (test mode only) tests.
func (e *Evaluator) Evaluate(ctx context.Context, ex exercise.Exercise) Report {
	report := e.evaluate(ctx, ex)

	e.metrics.Evaluation(ex.Mode.String(), report.Status.String())
	e.log.Debug("evaluated exercise",
		"exercise", ex.Name,
		"status", report.Status,
		"tool_failure", report.ToolFailure,
	)
	return report
}

func (e *Evaluator) evaluate(ctx context.Context, ex exercise.Exercise) Report {
	content, err := e.readFile(ex.Path)
	if err != nil {
		return Report{Status: exercise.StatusCompileError, Output: err.Error()}
	}

	if exercise.HasNotDoneMarker(content) {
		return Report{Status: exercise.StatusNotDone}
	}

	if err := e.tc.Compile(ctx, ex.Path); err != nil {
		report := Report{Status: exercise.StatusCompileError}
		report.Output, report.ToolFailure = e.describe(ex, err)
		return report
	}

	if ex.Mode == exercise.ModeCompile {
		return Report{Status: exercise.StatusDone}
	}

	output, err := e.tc.RunTests(ctx, ex.Path)
	if err != nil {
		report := Report{Status: exercise.StatusTestFail, Output: output}
		diagOutput, toolFailure := e.describe(ex, err)
		if report.Output == "" {
			report.Output = diagOutput
		}
		report.ToolFailure = toolFailure
		return report
	}
	if TestOutputFailed(output) {
		return Report{Status: exercise.StatusTestFail, Output: output}
	}

	return Report{Status: exercise.StatusDone, Output: output}
}

// describe extracts display text from a toolchain error and reports
// whether the tool failed to launch.
func (e *Evaluator) describe(ex exercise.Exercise, err error) (string, bool) {
	diag, ok := toolchain.AsDiagnostics(err)
	if !ok {
		return err.Error(), false
	}
	if diag.LaunchFailed {
		e.log.Warn("toolchain could not be started",
			"exercise", ex.Name,
			"step", diag.Step,
			"error", diag.Err,
		)
	}
	return diag.Output, diag.LaunchFailed
}

// TestOutputFailed reports whether test runner output contains one of the
// literal failure markers "FAIL" or "panicked".
func TestOutputFailed(output string) bool {
	for _, marker := range failureMarkers {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}
