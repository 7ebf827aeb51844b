package logging

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := New()
	logger.SetLevel(level)
	logger.SetOutput(log.New(&buf, "", 0))
	return logger, &buf
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug allowed at debug", LevelDebug, LevelDebug, true},
		{"error allowed at debug", LevelDebug, LevelError, true},
		{"debug blocked at info", LevelInfo, LevelDebug, false},
		{"info allowed at info", LevelInfo, LevelInfo, true},
		{"info blocked at warn", LevelWarn, LevelInfo, false},
		{"warn allowed at warn", LevelWarn, LevelWarn, true},
		{"warn blocked at error", LevelError, LevelWarn, false},
		{"error allowed at error", LevelError, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(tt.minLevel)

			switch tt.logLevel {
			case LevelDebug:
				logger.Debug("evaluated")
			case LevelInfo:
				logger.Info("evaluated")
			case LevelWarn:
				logger.Warn("evaluated")
			case LevelError:
				logger.Error("evaluated")
			}

			if tt.shouldLog {
				assert.Contains(t, buf.String(), tt.logLevel.String()+": evaluated")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestLoggerFieldsAreSorted(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)

	logger.WithFields(map[string]interface{}{
		"path":     "exercises/ch1/ex1.seq",
		"exercise": "ch1-ex1",
	}).Warn("toolchain failed", "step", "lint")

	assert.Equal(t, "WARN: toolchain failed | exercise=ch1-ex1 path=exercises/ch1/ex1.seq step=lint\n", buf.String())
}

func TestLoggerInlineKeyVals(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)

	logger.Warn("lint failed", "error", errors.New("exit status 1"), "lines", 3)

	output := buf.String()
	assert.Contains(t, output, `error="exit status 1"`)
	assert.Contains(t, output, "lines=3")
}

func TestLoggerChildSharesLevel(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn)
	child := logger.With("component", "cache")

	child.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.SetLevel(LevelDebug)
	child.Debug("shown")
	assert.Contains(t, buf.String(), "component=cache")
}

func TestLoggerOriginalUnmodified(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)

	_ = logger.With("exercise", "ch1-ex1")
	logger.Info("original logger")

	assert.NotContains(t, buf.String(), "exercise=")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"simple string", "seqc", "seqc"},
		{"empty string", "", `""`},
		{"string with spaces", "seqc lint", `"seqc lint"`},
		{"integer", 42, "42"},
		{"error", errors.New("oops"), `"oops"`},
		{"stringer", LevelInfo, "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatValue(tt.input))
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(log.New(&buf, "", 0))
	SetLevel(LevelWarn)
	defer SetLevel(LevelWarn)

	Debug("debug message")
	assert.Empty(t, buf.String())

	Warn("warn message")
	assert.Contains(t, buf.String(), "WARN: warn message")

	buf.Reset()
	With("component", "monitor").Error("error message")
	assert.Contains(t, buf.String(), "component=monitor")
	assert.Same(t, defaultLogger, Default())
}
