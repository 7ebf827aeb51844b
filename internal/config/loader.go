package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/thruflo/sicplings/internal/exercise"
	"github.com/thruflo/sicplings/internal/logging"
	"github.com/thruflo/sicplings/internal/monitor"
	"github.com/thruflo/sicplings/internal/toolchain"
)

// FileName is the config file looked up at the course root.
const FileName = ".sicplings.yaml"

// Default values for Config.
const (
	DefaultCompileOutputLines = 15
	DefaultTestOutputLines    = 20
	DefaultLogLevel           = "warn"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Manifest: exercise.DefaultManifestPath,
		Toolchain: Toolchain{
			Command: toolchain.DefaultCommand,
		},
		Watch: Watch{
			Backend:       monitor.BackendPoll,
			PollInterval:  monitor.DefaultPollInterval,
			RecencyWindow: monitor.DefaultRecencyWindow,
		},
		Display: Display{
			Color:              ColorAuto,
			CompileOutputLines: DefaultCompileOutputLines,
			TestOutputLines:    DefaultTestOutputLines,
		},
		Log: Log{
			Level: DefaultLogLevel,
		},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// LoadConfig builds the effective configuration: defaults, then the config
// file, then SICPLINGS_* environment variables. explicitPath, if set, must
// exist; otherwise basePath/.sicplings.yaml is read when present.
func LoadConfig(basePath, explicitPath string) (*Config, error) {
	cfg := DefaultConfig()

	configPath := explicitPath
	if configPath == "" {
		configPath = filepath.Join(basePath, FileName)
	}

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	case os.IsNotExist(err) && explicitPath == "":
		// No config file; defaults stand.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.Manifest == "" {
		return ValidationError{Field: "manifest", Message: "required field is empty"}
	}
	if filepath.IsAbs(cfg.Manifest) || !fs.ValidPath(path.Clean(filepath.ToSlash(cfg.Manifest))) {
		return ValidationError{Field: "manifest", Message: fmt.Sprintf("%q must be a relative path inside the course directory", cfg.Manifest)}
	}
	if cfg.Toolchain.Command == "" {
		return ValidationError{Field: "toolchain.command", Message: "required field is empty"}
	}

	switch cfg.Watch.Backend {
	case monitor.BackendPoll, monitor.BackendWatcher:
	default:
		return ValidationError{
			Field:   "watch.backend",
			Message: fmt.Sprintf("must be %q or %q, got %q", monitor.BackendPoll, monitor.BackendWatcher, cfg.Watch.Backend),
		}
	}
	if cfg.Watch.PollInterval <= 0 {
		return ValidationError{Field: "watch.poll_interval", Message: "must be positive"}
	}
	if cfg.Watch.RecencyWindow <= 0 {
		return ValidationError{Field: "watch.recency_window", Message: "must be positive"}
	}

	if err := ValidateColor(cfg.Display.Color); err != nil {
		return err
	}
	if cfg.Display.CompileOutputLines <= 0 {
		return ValidationError{Field: "display.compile_output_lines", Message: "must be positive"}
	}
	if cfg.Display.TestOutputLines <= 0 {
		return ValidationError{Field: "display.test_output_lines", Message: "must be positive"}
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: err.Error()}
	}

	return nil
}

// ValidateColor checks a color mode value.
func ValidateColor(mode string) error {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	}
	return ValidationError{
		Field:   "display.color",
		Message: fmt.Sprintf("must be one of auto, always, never, got %q", mode),
	}
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
