package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// SetupCourse creates a temporary course root containing
// exercises/info.toml with the given manifest. The directory is removed
// when the test completes.
func SetupCourse(t *testing.T, manifest string) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "exercises")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "info.toml"), []byte(manifest), 0o644))
	return root
}

// WriteExercise writes content to root/rel, creating parent directories,
// and returns the full path.
func WriteExercise(t *testing.T, root, rel, content string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteHint writes root/hints/<chapter>/<stem>.md.
func WriteHint(t *testing.T, root, chapter, stem, content string) string {
	t.Helper()
	return WriteExercise(t, root, filepath.Join("hints", chapter, stem+".md"), content)
}

// Touch sets both access and modification time of path to mtime.
func Touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

// ModTime returns the modification time of path.
func ModTime(t *testing.T, path string) time.Time {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.ModTime()
}
