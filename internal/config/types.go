package config

import (
	"time"

	"github.com/thruflo/sicplings/internal/tui"
)

// Toolchain configures the external language tool.
type Toolchain struct {
	// Command is split shell-style; the first word is the executable.
	Command string `yaml:"command" env:"SICPLINGS_TOOLCHAIN"`
	// TempDir is where private test copies are made. Empty means os.TempDir().
	TempDir string `yaml:"temp_dir" env:"SICPLINGS_TEMP_DIR"`
}

// Watch configures the change monitor.
type Watch struct {
	Backend       string        `yaml:"backend" env:"SICPLINGS_WATCH_BACKEND"`
	PollInterval  time.Duration `yaml:"poll_interval" env:"SICPLINGS_POLL_INTERVAL"`
	RecencyWindow time.Duration `yaml:"recency_window" env:"SICPLINGS_RECENCY_WINDOW"`
}

// Display configures terminal output.
type Display struct {
	Color              string `yaml:"color" env:"SICPLINGS_COLOR"`
	CompileOutputLines int    `yaml:"compile_output_lines" env:"SICPLINGS_COMPILE_OUTPUT_LINES"`
	TestOutputLines    int    `yaml:"test_output_lines" env:"SICPLINGS_TEST_OUTPUT_LINES"`
}

// Log configures the diagnostic logger.
type Log struct {
	Level string `yaml:"level" env:"SICPLINGS_LOG_LEVEL"`
}

// Config represents the .sicplings.yaml file at the course root.
type Config struct {
	Manifest  string    `yaml:"manifest" env:"SICPLINGS_MANIFEST"`
	Toolchain Toolchain `yaml:"toolchain"`
	Watch     Watch     `yaml:"watch"`
	Display   Display   `yaml:"display"`
	Log       Log       `yaml:"log"`
}

// Color modes.
const (
	ColorAuto   = tui.ColorAuto
	ColorAlways = tui.ColorAlways
	ColorNever  = tui.ColorNever
)
