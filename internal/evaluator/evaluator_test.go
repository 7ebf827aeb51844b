package evaluator

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/sicplings/internal/exercise"
	"github.com/thruflo/sicplings/internal/metrics"
	"github.com/thruflo/sicplings/internal/toolchain"
	tu "github.com/thruflo/sicplings/internal/testutil"
)

func newExercise(t *testing.T, content string, mode exercise.Mode) exercise.Exercise {
	t.Helper()
	root := t.TempDir()
	path := tu.WriteExercise(t, root, "exercises/ch1/ex1.seq", content)
	return exercise.Exercise{Name: "ch1-ex1", Path: path, Mode: mode}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		mode        exercise.Mode
		setup       func(tc *tu.FakeToolchain, path string)
		want        exercise.Status
		wantCompile int
		wantTests   int
		wantOutput  string
	}{
		{
			name:        "marker wins over passing toolchain",
			content:     tu.NotDoneSource,
			mode:        exercise.ModeTest,
			want:        exercise.StatusNotDone,
			wantCompile: 0,
			wantTests:   0,
		},
		{
			name:    "marker wins over failing lint",
			content: tu.NotDoneSource,
			mode:    exercise.ModeTest,
			setup: func(tc *tu.FakeToolchain, path string) {
				tc.FailLint(path, "error: unexpected token")
			},
			want: exercise.StatusNotDone,
		},
		{
			name:    "lint failure short-circuits tests",
			content: tu.PassingSource,
			mode:    exercise.ModeTest,
			setup: func(tc *tu.FakeToolchain, path string) {
				tc.FailLint(path, "error: unexpected token")
			},
			want:        exercise.StatusCompileError,
			wantCompile: 1,
			wantTests:   0,
			wantOutput:  "error: unexpected token",
		},
		{
			name:        "compile mode done without tests",
			content:     tu.PassingSource,
			mode:        exercise.ModeCompile,
			want:        exercise.StatusDone,
			wantCompile: 1,
			wantTests:   0,
		},
		{
			name:        "test mode passing",
			content:     tu.PassingSource,
			mode:        exercise.ModeTest,
			want:        exercise.StatusDone,
			wantCompile: 1,
			wantTests:   1,
			wantOutput:  tu.PassingTestOutput,
		},
		{
			name:    "FAIL in output with zero exit",
			content: tu.PassingSource,
			mode:    exercise.ModeTest,
			setup: func(tc *tu.FakeToolchain, path string) {
				tc.SetTestOutput(path, tu.FailingTestOutput)
			},
			want:        exercise.StatusTestFail,
			wantCompile: 1,
			wantTests:   1,
			wantOutput:  tu.FailingTestOutput,
		},
		{
			name:    "panicked in output",
			content: tu.PassingSource,
			mode:    exercise.ModeTest,
			setup: func(tc *tu.FakeToolchain, path string) {
				tc.SetTestOutput(path, tu.PanicTestOutput)
			},
			want:        exercise.StatusTestFail,
			wantCompile: 1,
			wantTests:   1,
		},
		{
			name:    "non-zero exit without markers",
			content: tu.PassingSource,
			mode:    exercise.ModeTest,
			setup: func(tc *tu.FakeToolchain, path string) {
				tc.FailTests(path, "exit 3\n")
			},
			want:        exercise.StatusTestFail,
			wantCompile: 1,
			wantTests:   1,
			wantOutput:  "exit 3\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ex := newExercise(t, tt.content, tt.mode)
			tc := tu.NewFakeToolchain()
			if tt.setup != nil {
				tt.setup(tc, ex.Path)
			}

			report := New(Options{Toolchain: tc}).Evaluate(context.Background(), ex)

			tu.AssertStatus(t, tt.want, report.Status)
			assert.Equal(t, tt.wantCompile, tc.CompileCalls(ex.Path), "lint calls")
			assert.Equal(t, tt.wantTests, tc.TestCalls(ex.Path), "test calls")
			assert.False(t, report.ToolFailure)
			if tt.wantOutput != "" {
				assert.Equal(t, tt.wantOutput, report.Output)
			}
		})
	}
}

func TestEvaluate_UnreadableFile(t *testing.T) {
	t.Parallel()

	tc := tu.NewFakeToolchain()
	ex := exercise.Exercise{Name: "gone", Path: filepath.Join(t.TempDir(), "gone.seq")}

	report := New(Options{Toolchain: tc}).Evaluate(context.Background(), ex)

	tu.AssertStatus(t, exercise.StatusCompileError, report.Status)
	assert.NotEmpty(t, report.Output)
	assert.Zero(t, tc.TotalCalls())
}

func TestEvaluate_ReadFileOverride(t *testing.T) {
	t.Parallel()

	tc := tu.NewFakeToolchain()
	ev := New(Options{
		Toolchain: tc,
		ReadFile: func(string) ([]byte, error) {
			return nil, errors.New("permission denied")
		},
	})

	report := ev.Evaluate(context.Background(), exercise.Exercise{Name: "x", Path: "x.seq"})
	tu.AssertStatus(t, exercise.StatusCompileError, report.Status)
	assert.Equal(t, "permission denied", report.Output)
}

func TestEvaluate_LaunchFailures(t *testing.T) {
	t.Parallel()

	t.Run("lint", func(t *testing.T) {
		t.Parallel()
		ex := newExercise(t, tu.PassingSource, exercise.ModeTest)
		tc := tu.NewFakeToolchain()
		tc.LaunchFailure(toolchain.StepLint, ex.Path)

		report := New(Options{Toolchain: tc}).Evaluate(context.Background(), ex)

		tu.AssertStatus(t, exercise.StatusCompileError, report.Status)
		assert.True(t, report.ToolFailure)
		assert.Contains(t, report.Output, "Is it installed")
		assert.Zero(t, tc.TestCalls(ex.Path))
	})

	t.Run("test", func(t *testing.T) {
		t.Parallel()
		ex := newExercise(t, tu.PassingSource, exercise.ModeTest)
		tc := tu.NewFakeToolchain()
		tc.LaunchFailure(toolchain.StepTest, ex.Path)

		report := New(Options{Toolchain: tc}).Evaluate(context.Background(), ex)

		tu.AssertStatus(t, exercise.StatusTestFail, report.Status)
		assert.True(t, report.ToolFailure)
		assert.Contains(t, report.Output, "Failed to run seqc")
	})
}

func TestEvaluate_Scenario(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := tu.WriteExercise(t, root, "exercises/ch1/ex1.seq", tu.NotDoneSource)
	ex := exercise.Exercise{Name: "ch1-ex1", Path: path, Mode: exercise.ModeTest}
	tc := tu.NewFakeToolchain()
	ev := New(Options{Toolchain: tc})

	tu.AssertStatus(t, exercise.StatusNotDone, ev.Evaluate(context.Background(), ex).Status)

	tu.WriteExercise(t, root, "exercises/ch1/ex1.seq", tu.PassingSource)
	tc.SetTestOutput(path, "3 passed, 0 failed\n")
	tu.AssertStatus(t, exercise.StatusDone, ev.Evaluate(context.Background(), ex).Status)

	tc.SetTestOutput(path, "test foo ... FAILED\n")
	tu.AssertStatus(t, exercise.StatusTestFail, ev.Evaluate(context.Background(), ex).Status)
}

func TestEvaluate_RecordsMetrics(t *testing.T) {
	t.Parallel()

	rec := metrics.New()
	ex := newExercise(t, tu.PassingSource, exercise.ModeCompile)
	ev := New(Options{Toolchain: tu.NewFakeToolchain(), Metrics: rec})

	ev.Evaluate(context.Background(), ex)
	ev.Evaluate(context.Background(), ex)

	count, err := testutil.GatherAndCount(rec.Registry(), "sicplings_evaluations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "two runs with the same labels share one series")
}

func TestTestOutputFailed(t *testing.T) {
	t.Parallel()

	assert.False(t, TestOutputFailed("3 passed, 0 failed"))
	assert.True(t, TestOutputFailed("test foo ... FAILED"))
	assert.True(t, TestOutputFailed("thread panicked"))
	assert.False(t, TestOutputFailed(""))
}
