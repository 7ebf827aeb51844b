// Package exercise holds the exercise registry: the ordered, immutable
// list of exercises loaded from the course manifest, and the status values
// every other package reports about them.
package exercise

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// NotDoneMarker is the line an author leaves in an exercise file to mark it
// as intentionally incomplete. Deleting it is the learner's "I'm done" signal.
const NotDoneMarker = "# I AM NOT DONE"

// Mode says how an exercise is graded.
type Mode int

const (
	// ModeTest exercises must compile and pass their embedded tests.
	// It is the zero value, which is also the manifest default.
	ModeTest Mode = iota
	// ModeCompile exercises only need to compile.
	ModeCompile
)

// String returns the manifest spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeTest:
		return "test"
	case ModeCompile:
		return "compile"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case ModeTest, ModeCompile:
		return []byte(m.String()), nil
	}
	return nil, fmt.Errorf("invalid mode %d", int(m))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "test", "":
		*m = ModeTest
	case "compile":
		*m = ModeCompile
	default:
		return fmt.Errorf("unknown mode %q (want \"compile\" or \"test\")", string(text))
	}
	return nil
}

// Status is the evaluated state of one exercise.
type Status int

const (
	StatusDone         Status = iota // Compiles and, in test mode, passes
	StatusNotDone                    // Marker line still present
	StatusCompileError               // Lint failed or the file is unreadable
	StatusTestFail                   // Tests failed or the runner failed
)

// String returns a human-readable description of the status.
func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusNotDone:
		return "not done"
	case StatusCompileError:
		return "compile error"
	case StatusTestFail:
		return "test fail"
	default:
		return "unknown"
	}
}

// Done reports whether the status counts as complete.
func (s Status) Done() bool {
	return s == StatusDone
}

// Exercise is one source file the learner has to complete.
// Path is the identity of an exercise within a run.
type Exercise struct {
	Name string
	Path string
	Mode Mode
}

// Chapter returns the name of the directory containing the exercise file.
func (e Exercise) Chapter() string {
	dir := filepath.Dir(e.Path)
	if dir == "." || dir == string(filepath.Separator) {
		return ""
	}
	return filepath.Base(dir)
}

// HintPath returns hints/<chapter>/<stem>.md under root.
func (e Exercise) HintPath(root string) string {
	base := filepath.Base(e.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(root, "hints", e.Chapter(), stem+".md")
}

// SolutionPath returns solutions/<chapter>/<file> under root.
func (e Exercise) SolutionPath(root string) string {
	return filepath.Join(root, "solutions", e.Chapter(), filepath.Base(e.Path))
}

// HasNotDoneMarker reports whether content contains the marker as a line of
// its own. Surrounding whitespace, including a CRLF line ending, is ignored.
func HasNotDoneMarker(content []byte) bool {
	if !bytes.Contains(content, []byte(NotDoneMarker)) {
		return false
	}
	marker := []byte(NotDoneMarker)
	for _, line := range bytes.Split(content, []byte("\n")) {
		if bytes.Equal(bytes.TrimSpace(line), marker) {
			return true
		}
	}
	return false
}

// Header returns the leading comment lines of an exercise (every line up to
// the first one not starting with '#'), without the marker line.
func Header(content []byte) []string {
	var header []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, "#") {
			break
		}
		if strings.TrimSpace(line) == NotDoneMarker {
			continue
		}
		header = append(header, line)
	}
	return header
}
