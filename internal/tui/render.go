package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/thruflo/sicplings/internal/evaluator"
	"github.com/thruflo/sicplings/internal/exercise"
	"github.com/thruflo/sicplings/internal/session"
)

// ProgressBarWidth is the number of cells in the progress bar.
const ProgressBarWidth = 30

// Default output limits, in lines.
const (
	DefaultCompileOutputLines = 15
	DefaultTestOutputLines    = 20
)

// Renderer draws course screens onto a Terminal.
type Renderer struct {
	term *Terminal

	// CompileOutputLines and TestOutputLines cap the diagnostics shown for
	// the current exercise.
	CompileOutputLines int
	TestOutputLines    int

	// ReadFile defaults to os.ReadFile. It is used for the exercise header.
	ReadFile func(name string) ([]byte, error)

	drawn bool
}

// NewRenderer creates a Renderer with default output limits.
func NewRenderer(t *Terminal) *Renderer {
	return &Renderer{
		term:               t,
		CompileOutputLines: DefaultCompileOutputLines,
		TestOutputLines:    DefaultTestOutputLines,
		ReadFile:           os.ReadFile,
	}
}

// Welcome prints the watch-mode greeting.
func (r *Renderer) Welcome() {
	t := r.term
	t.WriteLine("")
	t.WriteLine(t.BoldGreen("Welcome to SICP-lings in Seq!"))
	t.WriteLine(t.Dimmed("Structure and Interpretation of Computer Programs"))
	t.WriteLine(t.Dimmed("...but in a stack-based language."))
	t.WriteLine("")
	t.WriteLine(t.Dimmed("Edit exercises in your editor. Progress updates automatically."))
	t.WriteLine(t.Dimmed("Press Ctrl+C to exit."))
	t.WriteLine("")
}

// Frame draws one watch-mode frame. Every display after the first clears
// the screen first.
func (r *Renderer) Frame(f session.Frame) {
	switch f.State {
	case session.StateScanning:
		r.scanProgress(f.Progress)
	case session.StateDisplaying:
		if r.drawn {
			r.term.Clear()
		}
		r.drawn = true
		r.Exercise(f)
	case session.StateAllComplete:
		r.term.Clear()
		r.drawn = true
		r.AllComplete(f.Progress)
	}
}

// scanProgress prints "Checking exercises..." then a dot every five
// exercises and "done" at the end.
func (r *Renderer) scanProgress(p session.Progress) {
	t := r.term
	if p.Done == 1 {
		t.Write(t.Dimmed("Checking exercises..."))
	}
	if p.Done%5 == 0 {
		t.Write(".")
	}
	if p.Done == p.Total {
		t.WriteLine(" " + t.Green("done"))
	}
}

// Exercise draws the current exercise with its status and diagnostics.
func (r *Renderer) Exercise(f session.Frame) {
	t := r.term
	ex := f.Current

	if f.Completed != "" {
		t.Writef("%s Completed %s!\n\n", t.BoldGreen("!!!"), t.Cyan(f.Completed))
	}

	t.Writef("%s %s\n\n", t.BoldGreen("Current exercise:"), t.Cyan(ex.Name))
	t.Writef("  File: %s\n", t.Dimmed(displayPath(ex.Path)))

	switch f.Report.Status {
	case exercise.StatusNotDone:
		t.Writef("  Status: %s\n\n", t.Yellow("Waiting for you to start..."))
		if content, err := r.ReadFile(ex.Path); err == nil {
			for _, line := range exercise.Header(content) {
				t.WriteLine("  " + t.Dimmed(line))
			}
		}
		t.WriteLine("")
		t.WriteLine("  " + t.Yellow("Delete the '"+exercise.NotDoneMarker+"' line when you've solved it."))

	case exercise.StatusCompileError:
		t.Writef("  Status: %s\n\n", t.BoldRed("Compile Error"))
		for _, line := range HeadLines(f.Report.Output, r.CompileOutputLines) {
			t.WriteLine("  " + t.Red(line))
		}
		r.toolFailureNote(f.Report)

	case exercise.StatusTestFail:
		t.Writef("  Status: %s\n\n", t.BoldRed("Tests Failed"))
		for _, line := range HeadLines(f.Report.Output, r.TestOutputLines) {
			t.WriteLine("  " + r.testLine(line))
		}
		r.toolFailureNote(f.Report)

	case exercise.StatusDone:
		t.Writef("  Status: %s\n", t.Green("Done"))
	}

	t.WriteLine("")
	t.Writef("  %s sicplings hint\n", t.Cyan("Hint:"))
	r.Progress(f.Progress)
}

func (r *Renderer) testLine(line string) string {
	switch {
	case strings.Contains(line, "FAIL"), strings.Contains(line, "panicked"):
		return r.term.Red(line)
	case strings.Contains(line, "ok"):
		return r.term.Green(line)
	default:
		return line
	}
}

func (r *Renderer) toolFailureNote(report evaluator.Report) {
	if !report.ToolFailure {
		return
	}
	r.term.WriteLine("")
	r.term.WriteLine("  " + r.term.Yellow("Note: the toolchain could not be started; check toolchain.command in your config."))
}

// AllComplete draws the end-of-course banner.
func (r *Renderer) AllComplete(p session.Progress) {
	t := r.term
	rule := t.Green(strings.Repeat("=", 60))
	t.WriteLine("")
	t.WriteLine(rule)
	t.WriteLine(t.BoldGreen("  You have completed this chapter of SICP-lings!"))
	t.WriteLine(rule)
	t.WriteLine("")
	r.Progress(p)
	t.WriteLine("")
	t.WriteLine(t.BoldCyan("The wizard awaits in the next chapter..."))
}

// Progress prints "Progress: [===---] done/total (pct%)".
func (r *Renderer) Progress(p session.Progress) {
	t := r.term
	t.Writef("Progress: [%s%s] %d/%d (%d%%)\n",
		t.Green(strings.Repeat("=", filled(p))),
		strings.Repeat("-", ProgressBarWidth-filled(p)),
		p.Done, p.Total, int(p.Percent()))
}

func filled(p session.Progress) int {
	if p.Total <= 0 {
		return 0
	}
	return p.Done * ProgressBarWidth / p.Total
}

// List prints every exercise grouped by chapter with a status icon,
// followed by the progress bar.
func (r *Renderer) List(exercises []exercise.Exercise, reports []evaluator.Report) {
	t := r.term
	t.WriteLine("")
	t.WriteLine(t.BoldGreen("SICP-lings Exercises"))
	t.WriteLine("")

	chapter := ""
	done := 0
	for i, ex := range exercises {
		topic := ex.Chapter()
		if topic == "" {
			topic = "unknown"
		}
		if topic != chapter {
			t.WriteLine("")
			t.WriteLine("  " + t.BoldCyan(topic))
			chapter = topic
		}
		status := reports[i].Status
		if status.Done() {
			done++
		}
		t.Writef("    %s %s\n", r.listIcon(status), ex.Name)
	}

	t.WriteLine("")
	r.Progress(session.Progress{Done: done, Total: len(exercises)})
}

func (r *Renderer) listIcon(s exercise.Status) string {
	switch s {
	case exercise.StatusDone:
		return r.term.Green("!!!")
	case exercise.StatusNotDone:
		return r.term.Yellow(" . ")
	case exercise.StatusCompileError:
		return r.term.Red("err")
	default:
		return r.term.Red("  X")
	}
}

// Verify prints a pass/fail line per exercise and the progress bar.
func (r *Renderer) Verify(exercises []exercise.Exercise, reports []evaluator.Report) {
	t := r.term
	t.WriteLine("")
	t.WriteLine(t.BoldGreen("Verifying all exercises..."))
	t.WriteLine("")

	done := 0
	for i, ex := range exercises {
		icon := t.Red("  X")
		if reports[i].Status.Done() {
			icon = t.Green("!!!")
			done++
		}
		t.Writef("  %s %s\n", icon, ex.Name)
	}

	t.WriteLine("")
	r.Progress(session.Progress{Done: done, Total: len(exercises)})
}

// Hint prints the hint text for ex.
func (r *Renderer) Hint(ex exercise.Exercise, content string) {
	t := r.term
	t.Writef("\n%s %s\n\n", t.Green("Hint for"), t.Cyan(ex.Name))
	t.WriteLine(content)
}

// NoHint reports that ex has no hint file.
func (r *Renderer) NoHint(ex exercise.Exercise) {
	t := r.term
	t.Writef("\n%s %s\n", t.Yellow("No hint available for"), t.Cyan(ex.Name))
}

// Solution prints the reference solution for ex.
func (r *Renderer) Solution(ex exercise.Exercise, content string) {
	t := r.term
	t.Writef("\n%s %s\n\n", t.Green("Solution for"), t.Cyan(ex.Name))
	t.WriteLine(content)
}

// NoSolution reports that ex has no solution file.
func (r *Renderer) NoSolution(ex exercise.Exercise) {
	t := r.term
	t.Writef("\n%s %s\n", t.Yellow("No solution available for"), t.Cyan(ex.Name))
}

// AllExercisesComplete is printed when a command needs a current exercise
// and there is none.
func (r *Renderer) AllExercisesComplete() {
	r.term.WriteLine(r.term.Green("All exercises complete!"))
}

// SkipTo reports the result of "next".
func (r *Renderer) SkipTo(ex exercise.Exercise, ok bool) {
	t := r.term
	if !ok {
		t.WriteLine(t.Yellow("No more exercises to skip to."))
		return
	}
	t.Writef("Skipping to: %s\n", t.Cyan(ex.Name))
}

// ChapterFilter notes that output is limited to one chapter.
func (r *Renderer) ChapterFilter(prefix string, n int) {
	t := r.term
	t.Writef("%s Filtering to chapter '%s' (%d exercises)\n\n", t.Cyan("Note:"), prefix, n)
}

// ChapterNotFound explains a chapter filter that matched nothing.
func (r *Renderer) ChapterNotFound(err *exercise.ChapterNotFoundError) {
	t := r.term
	t.Writef("%s No exercises found for chapter '%s'\n", t.Yellow("Warning:"), err.Prefix)
	t.WriteLine("Available chapters:")
	for _, ch := range err.Available {
		t.WriteLine("  " + ch)
	}
}

// HeadLines splits s into lines and keeps at most n of them.
func HeadLines(s string, n int) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" || n <= 0 {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

func displayPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
