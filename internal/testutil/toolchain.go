package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/thruflo/sicplings/internal/toolchain"
)

// FakeToolchain is a scripted toolchain.Toolchain. By default lint passes
// and tests print PassingTestOutput. Per-path results override the
// defaults; every call is counted.
type FakeToolchain struct {
	mu           sync.Mutex
	compileErrs  map[string]error
	testResults  map[string]fakeTestResult
	compileCalls map[string]int
	testCalls    map[string]int
	calls        []string
}

type fakeTestResult struct {
	output string
	err    error
}

// NewFakeToolchain creates a FakeToolchain where everything passes.
func NewFakeToolchain() *FakeToolchain {
	return &FakeToolchain{
		compileErrs:  make(map[string]error),
		testResults:  make(map[string]fakeTestResult),
		compileCalls: make(map[string]int),
		testCalls:    make(map[string]int),
	}
}

// FailLint makes Compile on path fail with the given tool output.
func (f *FakeToolchain) FailLint(path, output string) {
	f.SetCompileError(path, &toolchain.Diagnostics{
		Step:     toolchain.StepLint,
		Output:   output,
		ExitCode: 1,
		Err:      errors.New("exit status 1"),
	})
}

// SetCompileError makes Compile on path return err (nil to pass).
func (f *FakeToolchain) SetCompileError(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compileErrs[path] = err
}

// SetTestOutput makes RunTests on path succeed with output.
func (f *FakeToolchain) SetTestOutput(path, output string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.testResults[path] = fakeTestResult{output: output}
}

// FailTests makes RunTests on path exit non-zero with output.
func (f *FakeToolchain) FailTests(path, output string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.testResults[path] = fakeTestResult{
		output: output,
		err: &toolchain.Diagnostics{
			Step:     toolchain.StepTest,
			Output:   output,
			ExitCode: 101,
			Err:      errors.New("exit status 101"),
		},
	}
}

// LaunchFailure makes the given step on path fail as if the tool were missing.
func (f *FakeToolchain) LaunchFailure(step, path string) {
	diag := &toolchain.Diagnostics{
		Step:         step,
		Output:       "Failed to run seqc: executable file not found in $PATH. Is it installed and in PATH?",
		ExitCode:     -1,
		LaunchFailed: true,
		Err:          errors.New("executable file not found in $PATH"),
	}
	if step == toolchain.StepLint {
		f.SetCompileError(path, diag)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.testResults[path] = fakeTestResult{err: diag}
}

// Compile implements toolchain.Toolchain.
func (f *FakeToolchain) Compile(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compileCalls[path]++
	f.calls = append(f.calls, toolchain.StepLint+" "+path)
	return f.compileErrs[path]
}

// RunTests implements toolchain.Toolchain.
func (f *FakeToolchain) RunTests(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.testCalls[path]++
	f.calls = append(f.calls, toolchain.StepTest+" "+path)
	if res, ok := f.testResults[path]; ok {
		return res.output, res.err
	}
	return PassingTestOutput, nil
}

// CompileCalls returns how many times Compile ran for path.
func (f *FakeToolchain) CompileCalls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.compileCalls[path]
}

// TestCalls returns how many times RunTests ran for path.
func (f *FakeToolchain) TestCalls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.testCalls[path]
}

// TotalCalls returns the number of toolchain invocations for any path.
func (f *FakeToolchain) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// Calls returns every invocation as "<step> <path>", in order.
func (f *FakeToolchain) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

var _ toolchain.Toolchain = (*FakeToolchain)(nil)
