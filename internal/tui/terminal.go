package tui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI escape sequences
const (
	// Screen control
	ClearScreen = "\033[2J"   // Clear entire screen
	CursorHome  = "\033[1;1H" // Move cursor to (1,1)

	// Text attributes
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	// Foreground colors
	FgRed    = "\033[31m"
	FgGreen  = "\033[32m"
	FgYellow = "\033[33m"
	FgCyan   = "\033[36m"
)

// Color modes accepted by NewTerminal.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Terminal writes to an output stream, coloring text only when the color
// mode allows it.
type Terminal struct {
	out   io.Writer
	color bool
}

// NewTerminal creates a Terminal on out. In ColorAuto mode color is used
// when out is a terminal and NO_COLOR is unset.
func NewTerminal(out io.Writer, mode string) *Terminal {
	return &Terminal{out: out, color: useColor(out, mode)}
}

func useColor(out io.Writer, mode string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Color reports whether escape sequences are emitted.
func (t *Terminal) Color() bool {
	return t.color
}

func (t *Terminal) paint(s string, codes ...string) string {
	if !t.color || s == "" {
		return s
	}
	prefix := ""
	for _, c := range codes {
		prefix += c
	}
	return prefix + s + Reset
}

func (t *Terminal) Red(s string) string       { return t.paint(s, FgRed) }
func (t *Terminal) Green(s string) string     { return t.paint(s, FgGreen) }
func (t *Terminal) Yellow(s string) string    { return t.paint(s, FgYellow) }
func (t *Terminal) Cyan(s string) string      { return t.paint(s, FgCyan) }
func (t *Terminal) Dimmed(s string) string    { return t.paint(s, Dim) }
func (t *Terminal) BoldRed(s string) string   { return t.paint(s, Bold, FgRed) }
func (t *Terminal) BoldGreen(s string) string { return t.paint(s, Bold, FgGreen) }
func (t *Terminal) BoldCyan(s string) string  { return t.paint(s, Bold, FgCyan) }

// Clear clears the screen and moves cursor to home. It writes nothing when
// color is off, so piped output stays free of control sequences.
func (t *Terminal) Clear() {
	if !t.color {
		return
	}
	fmt.Fprint(t.out, ClearScreen+CursorHome)
}

// Write writes the given string to the terminal output.
func (t *Terminal) Write(s string) {
	fmt.Fprint(t.out, s)
}

// WriteLine writes a string followed by a newline to the terminal output.
func (t *Terminal) WriteLine(s string) {
	fmt.Fprintln(t.out, s)
}

// Writef writes a formatted string to the terminal output.
func (t *Terminal) Writef(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}
