package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Default(t *testing.T) {
	t.Parallel()

	// Create temp directory without config file
	tmpDir := t.TempDir()

	cfg, err := LoadConfig(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, "exercises/info.toml", cfg.Manifest)
	assert.Equal(t, "seqc", cfg.Toolchain.Command)
	assert.Empty(t, cfg.Toolchain.TempDir)
	assert.Equal(t, "poll", cfg.Watch.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.RecencyWindow)
	assert.Equal(t, ColorAuto, cfg.Display.Color)
	assert.Equal(t, DefaultCompileOutputLines, cfg.Display.CompileOutputLines)
	assert.Equal(t, DefaultTestOutputLines, cfg.Display.TestOutputLines)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_ValidFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `manifest: course/info.toml
toolchain:
  command: docker run --rm seq seqc
  temp_dir: /var/tmp
watch:
  backend: watcher
  poll_interval: 100ms
  recency_window: 1s
display:
  color: never
  compile_output_lines: 5
  test_output_lines: 40
log:
  level: debug
`)

	cfg, err := LoadConfig(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, "course/info.toml", cfg.Manifest)
	assert.Equal(t, "docker run --rm seq seqc", cfg.Toolchain.Command)
	assert.Equal(t, "/var/tmp", cfg.Toolchain.TempDir)
	assert.Equal(t, "watcher", cfg.Watch.Backend)
	assert.Equal(t, 100*time.Millisecond, cfg.Watch.PollInterval)
	assert.Equal(t, time.Second, cfg.Watch.RecencyWindow)
	assert.Equal(t, ColorNever, cfg.Display.Color)
	assert.Equal(t, 5, cfg.Display.CompileOutputLines)
	assert.Equal(t, 40, cfg.Display.TestOutputLines)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_PartialFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	// Only set the test output limit, rest should keep defaults
	writeConfig(t, tmpDir, `display:
  test_output_lines: 50
`)

	cfg, err := LoadConfig(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Display.TestOutputLines)
	assert.Equal(t, DefaultCompileOutputLines, cfg.Display.CompileOutputLines)
	assert.Equal(t, ColorAuto, cfg.Display.Color)
	assert.Equal(t, "seqc", cfg.Toolchain.Command)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	other := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(other, []byte("toolchain:\n  command: seqc-nightly\n"), 0o644))

	cfg, err := LoadConfig(tmpDir, other)
	require.NoError(t, err)
	assert.Equal(t, "seqc-nightly", cfg.Toolchain.Command)
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `watch: [`)

	_, err := LoadConfig(tmpDir, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `toolchain:
  command: from-file
display:
  color: always
`)

	t.Setenv("SICPLINGS_TOOLCHAIN", "from-env --quiet")
	t.Setenv("SICPLINGS_POLL_INTERVAL", "1s")
	t.Setenv("SICPLINGS_TEST_OUTPUT_LINES", "7")
	t.Setenv("SICPLINGS_LOG_LEVEL", "error")

	cfg, err := LoadConfig(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, "from-env --quiet", cfg.Toolchain.Command)
	assert.Equal(t, time.Second, cfg.Watch.PollInterval)
	assert.Equal(t, 7, cfg.Display.TestOutputLines)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, ColorAlways, cfg.Display.Color, "unset variables leave file values alone")
}

func TestLoadConfig_EnvValidated(t *testing.T) {
	t.Setenv("SICPLINGS_WATCH_BACKEND", "inotify")

	_, err := LoadConfig(t.TempDir(), "")
	require.Error(t, err)

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "watch.backend", ve.Field)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name:    "empty manifest",
			content: "manifest: \"\"\n",
			field:   "manifest",
		},
		{
			name:    "absolute manifest",
			content: "manifest: /etc/info.toml\n",
			field:   "manifest",
		},
		{
			name:    "manifest outside the course",
			content: "manifest: ../other/info.toml\n",
			field:   "manifest",
		},
		{
			name:    "empty toolchain command",
			content: "toolchain:\n  command: \"\"\n",
			field:   "toolchain.command",
		},
		{
			name:    "unknown backend",
			content: "watch:\n  backend: fsnotify\n",
			field:   "watch.backend",
		},
		{
			name:    "zero poll interval",
			content: "watch:\n  poll_interval: 0s\n",
			field:   "watch.poll_interval",
		},
		{
			name:    "negative recency window",
			content: "watch:\n  recency_window: -1s\n",
			field:   "watch.recency_window",
		},
		{
			name:    "unknown color",
			content: "display:\n  color: rainbow\n",
			field:   "display.color",
		},
		{
			name:    "zero compile lines",
			content: "display:\n  compile_output_lines: 0\n",
			field:   "display.compile_output_lines",
		},
		{
			name:    "negative test lines",
			content: "display:\n  test_output_lines: -3\n",
			field:   "display.test_output_lines",
		},
		{
			name:    "unknown log level",
			content: "log:\n  level: chatty\n",
			field:   "log.level",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, tt.content)

			_, err := LoadConfig(tmpDir, "")
			require.Error(t, err)
			assert.True(t, IsValidationError(err))

			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidateColor(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"auto", "always", "never"} {
		assert.NoError(t, ValidateColor(mode), mode)
	}
	assert.True(t, IsValidationError(ValidateColor("sometimes")))
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := ValidationError{Field: "watch.backend", Message: "must be \"poll\" or \"watcher\""}
	assert.Equal(t, `validation error: watch.backend: must be "poll" or "watcher"`, err.Error())
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidationError(ValidationError{Field: "f", Message: "m"}))
	assert.False(t, IsValidationError(os.ErrNotExist))
	assert.False(t, IsValidationError(nil))
}
