package exercise

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultManifestPath is where the course keeps its exercise list,
// relative to the course root.
const DefaultManifestPath = "exercises/info.toml"

// ErrManifestNotFound is returned when the manifest file does not exist.
var ErrManifestNotFound = errors.New("manifest not found")

// ManifestError describes a manifest that exists but cannot be used.
type ManifestError struct {
	Path    string
	Message string
	Err     error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

type manifestFile struct {
	Exercises []manifestEntry `toml:"exercises"`
}

type manifestEntry struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
	Mode Mode   `toml:"mode"`
}

// Loader reads the manifest from FS. Exercise paths in the manifest are
// relative to the course root; Root is joined onto them so the returned
// exercises can be opened directly.
type Loader struct {
	FS   fs.FS
	Root string
	// Path is the manifest location inside FS. Defaults to DefaultManifestPath.
	Path string
}

// Load reads, parses and validates the manifest, returning exercises in
// manifest order.
func (l *Loader) Load() ([]Exercise, error) {
	manifestPath := l.Path
	if manifestPath == "" {
		manifestPath = DefaultManifestPath
	}
	manifestPath = path.Clean(filepath.ToSlash(manifestPath))

	content, err := fs.ReadFile(l.FS, manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (are you in the course directory?)", ErrManifestNotFound, manifestPath)
		}
		return nil, &ManifestError{Path: manifestPath, Message: "failed to read manifest", Err: err}
	}

	var mf manifestFile
	if err := toml.Unmarshal(content, &mf); err != nil {
		return nil, &ManifestError{Path: manifestPath, Message: "failed to parse manifest", Err: err}
	}

	if len(mf.Exercises) == 0 {
		return nil, &ManifestError{Path: manifestPath, Message: "no exercises found"}
	}

	exercises := make([]Exercise, 0, len(mf.Exercises))
	seen := make(map[string]string, len(mf.Exercises))
	for i, entry := range mf.Exercises {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, &ManifestError{Path: manifestPath, Message: fmt.Sprintf("exercise %d: name is required", i+1)}
		}
		if strings.TrimSpace(entry.Path) == "" {
			return nil, &ManifestError{Path: manifestPath, Message: fmt.Sprintf("exercise %q: path is required", entry.Name)}
		}

		p := filepath.Join(l.Root, filepath.FromSlash(entry.Path))
		if other, ok := seen[p]; ok {
			return nil, &ManifestError{
				Path:    manifestPath,
				Message: fmt.Sprintf("exercises %q and %q share path %s", other, entry.Name, entry.Path),
			}
		}
		seen[p] = entry.Name

		exercises = append(exercises, Exercise{
			Name: entry.Name,
			Path: p,
			Mode: entry.Mode,
		})
	}

	return exercises, nil
}

// ChapterNotFoundError is returned by FilterByChapter when no exercise
// lives in a directory starting with Prefix.
type ChapterNotFoundError struct {
	Prefix    string
	Available []string
}

func (e *ChapterNotFoundError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "no exercises found for chapter '%s'\nAvailable chapters:", e.Prefix)
	for _, ch := range e.Available {
		sb.WriteString("\n  ")
		sb.WriteString(ch)
	}
	return sb.String()
}

// FilterByChapter returns the exercises whose chapter starts with prefix,
// keeping registry order. An empty prefix returns all exercises.
func FilterByChapter(exercises []Exercise, prefix string) ([]Exercise, error) {
	if prefix == "" {
		return exercises, nil
	}

	var filtered []Exercise
	for _, e := range exercises {
		if strings.HasPrefix(e.Chapter(), prefix) {
			filtered = append(filtered, e)
		}
	}

	if len(filtered) == 0 {
		return nil, &ChapterNotFoundError{Prefix: prefix, Available: Chapters(exercises)}
	}
	return filtered, nil
}

// Chapters returns the sorted, de-duplicated chapter names of exercises.
func Chapters(exercises []Exercise) []string {
	set := make(map[string]struct{})
	for _, e := range exercises {
		if ch := e.Chapter(); ch != "" {
			set[ch] = struct{}{}
		}
	}
	chapters := make([]string, 0, len(set))
	for ch := range set {
		chapters = append(chapters, ch)
	}
	sort.Strings(chapters)
	return chapters
}

// Find returns the exercise with the given name.
func Find(exercises []Exercise, name string) (Exercise, bool) {
	for _, e := range exercises {
		if e.Name == name {
			return e, true
		}
	}
	return Exercise{}, false
}
