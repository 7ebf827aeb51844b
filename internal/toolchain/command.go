package toolchain

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/shlex"
	"github.com/pkg/errors"
	"github.com/thruflo/sicplings/internal/logging"
	"github.com/thruflo/sicplings/internal/metrics"
)

// DefaultCommand is the toolchain executable used when none is configured.
const DefaultCommand = "seqc"

// Options configures a Command.
type Options struct {
	// Command is the tool invocation, split shell-style, e.g. "seqc" or
	// "docker run --rm -v $PWD:/w seq seqc". The step and file path are
	// appended to it.
	Command string
	// TempDir is where private test copies are made. Empty uses os.TempDir().
	TempDir string
	Logger  *logging.Logger
	Metrics *metrics.Recorder
}

// Command runs the toolchain as a local process.
type Command struct {
	argv    []string
	tempDir string
	log     *logging.Logger
	metrics *metrics.Recorder
}

// New creates a Command from opts.
func New(opts Options) (*Command, error) {
	command := opts.Command
	if command == "" {
		command = DefaultCommand
	}
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid toolchain command %q", command)
	}
	if len(argv) == 0 {
		return nil, errors.Errorf("invalid toolchain command %q: no executable", command)
	}

	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}

	return &Command{
		argv:    argv,
		tempDir: opts.TempDir,
		log:     log.With("component", "toolchain"),
		metrics: opts.Metrics,
	}, nil
}

// Argv returns the split tool invocation.
func (c *Command) Argv() []string {
	return append([]string(nil), c.argv...)
}

// Compile runs `<tool> lint <path>`.
func (c *Command) Compile(ctx context.Context, path string) error {
	_, err := c.run(ctx, StepLint, path)
	return err
}

// RunTests copies path into a private temporary directory as
// test-<name>, runs `<tool> test <copy>` and removes the directory again,
// whatever the outcome.
func (c *Command) RunTests(ctx context.Context, path string) (string, error) {
	dir, err := os.MkdirTemp(c.tempDir, "sicplings-")
	if err != nil {
		c.metrics.ToolLaunchFailure(StepTest)
		return "", &Diagnostics{
			Step:         StepTest,
			LaunchFailed: true,
			Output:       "Failed to create temporary directory for tests: " + err.Error(),
			Err:          errors.Wrap(err, "failed to create temp dir"),
		}
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			c.log.Warn("failed to remove test copy", "dir", dir, "error", err)
		}
	}()

	target := filepath.Join(dir, TestFileName(filepath.Base(path)))
	if err := copyFile(path, target); err != nil {
		c.metrics.ToolLaunchFailure(StepTest)
		return "", &Diagnostics{
			Step:         StepTest,
			LaunchFailed: true,
			Output:       "Failed to copy exercise to temp file: " + err.Error(),
			Err:          err,
		}
	}

	return c.run(ctx, StepTest, target)
}

// run executes one step and returns stdout followed by stderr.
func (c *Command) run(ctx context.Context, step, target string) (string, error) {
	args := make([]string, 0, len(c.argv)+1)
	args = append(args, c.argv[1:]...)
	args = append(args, step, target)

	cmd := exec.CommandContext(ctx, c.argv[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)
	output := stdout.String() + stderr.String()

	log := c.log.With("step", step).With("path", target)

	if runErr == nil {
		c.metrics.ToolRun(step, elapsed)
		log.Debug("toolchain step passed", "elapsed", elapsed)
		return output, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		c.metrics.ToolRun(step, elapsed)
		log.Debug("toolchain step failed", "exit_code", exitErr.ExitCode(), "elapsed", elapsed)
		return output, &Diagnostics{
			Step:     step,
			Output:   output,
			ExitCode: exitErr.ExitCode(),
			Err:      runErr,
		}
	}

	c.metrics.ToolLaunchFailure(step)
	log.Warn("toolchain could not be started", "error", runErr)
	return output, &Diagnostics{
		Step:         step,
		Output:       "Failed to run " + c.argv[0] + ": " + runErr.Error() + ". Is it installed and in PATH?",
		ExitCode:     -1,
		LaunchFailed: true,
		Err:          errors.Wrapf(runErr, "failed to run %s", c.argv[0]),
	}
}

// copyFile copies src to dst, keeping the source file mode.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "failed to open source file")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrap(err, "failed to stat source file")
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Wrap(err, "failed to create destination file")
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrap(err, "failed to copy data")
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, "failed to close destination file")
	}
	return nil
}

var _ Toolchain = (*Command)(nil)
