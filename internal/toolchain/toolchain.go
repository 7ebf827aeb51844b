// Package toolchain runs the external compiler/test runner that judges
// exercise files.
//
// The Toolchain interface is the only way the evaluator talks to the
// outside world, so evaluator and cache tests run against a fake with no
// compiler installed. Command is the production implementation: it runs
// `<tool> lint <path>` and `<tool> test <copy>` and treats their output as
// opaque text.
package toolchain

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Toolchain steps, used as the subcommand passed to the tool.
const (
	StepLint = "lint"
	StepTest = "test"
)

// Toolchain checks and tests a single exercise file.
type Toolchain interface {
	// Compile lint-checks the file. A non-nil error is a *Diagnostics
	// whose Output holds the tool's combined output.
	Compile(ctx context.Context, path string) error

	// RunTests runs the file's embedded tests against a private copy and
	// returns the combined output. On a non-zero exit or launch failure it
	// returns the output so far together with a *Diagnostics.
	RunTests(ctx context.Context, path string) (string, error)
}

// Diagnostics describes a failed toolchain step.
type Diagnostics struct {
	Step     string
	Output   string
	ExitCode int
	// LaunchFailed is set when the tool never ran: missing executable,
	// permission error, or the private test copy could not be created.
	LaunchFailed bool
	Err          error
}

func (d *Diagnostics) Error() string {
	if d.LaunchFailed {
		return fmt.Sprintf("%s: toolchain could not be started: %v", d.Step, d.Err)
	}
	return fmt.Sprintf("%s: exited with code %d", d.Step, d.ExitCode)
}

func (d *Diagnostics) Unwrap() error {
	return d.Err
}

// AsDiagnostics extracts a *Diagnostics from err.
func AsDiagnostics(err error) (*Diagnostics, bool) {
	var d *Diagnostics
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// TestFileName returns the name used for the private test copy of a file:
// the base name with a "test-" prefix, unless it already has one.
func TestFileName(base string) string {
	if strings.HasPrefix(base, "test-") {
		return base
	}
	return "test-" + base
}
