package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thruflo/sicplings/internal/cache"
	"github.com/thruflo/sicplings/internal/config"
	"github.com/thruflo/sicplings/internal/evaluator"
	"github.com/thruflo/sicplings/internal/exercise"
	"github.com/thruflo/sicplings/internal/logging"
	"github.com/thruflo/sicplings/internal/metrics"
	"github.com/thruflo/sicplings/internal/session"
	"github.com/thruflo/sicplings/internal/toolchain"
	"github.com/thruflo/sicplings/internal/tui"
)

// courseDir is the course root. Empty means the working directory.
// It can be overridden in tests.
var courseDir string

// newToolchain builds the toolchain adapter. It can be overridden in tests.
var newToolchain = func(opts toolchain.Options) (toolchain.Toolchain, error) {
	return toolchain.New(opts)
}

// workspace is everything a command needs for one course.
type workspace struct {
	root      string
	cfg       *config.Config
	log       *logging.Logger
	metrics   *metrics.Recorder
	exercises []exercise.Exercise
	cache     *cache.Cache
	render    *tui.Renderer
	errRender *tui.Renderer
}

func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	root := courseDir
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		root = cwd
	}

	cfg, err := config.LoadConfig(root, configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if colorMode != "" {
		if err := config.ValidateColor(colorMode); err != nil {
			return nil, err
		}
		cfg.Display.Color = colorMode
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(level)
	log := logging.Default()

	loader := &exercise.Loader{FS: os.DirFS(root), Root: root, Path: cfg.Manifest}
	exercises, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load exercises: %w", err)
	}
	log.Debug("loaded manifest", "path", cfg.Manifest, "exercises", len(exercises))

	rec := metrics.New()
	tc, err := newToolchain(toolchain.Options{
		Command: cfg.Toolchain.Command,
		TempDir: cfg.Toolchain.TempDir,
		Logger:  log,
		Metrics: rec,
	})
	if err != nil {
		return nil, err
	}

	eval := evaluator.New(evaluator.Options{Toolchain: tc, Logger: log, Metrics: rec})

	ws := &workspace{
		root:      root,
		cfg:       cfg,
		log:       log,
		metrics:   rec,
		exercises: exercises,
		cache:     cache.New(cache.Options{Evaluator: eval, Logger: log, Metrics: rec}),
		render:    newRenderer(cmd.OutOrStdout(), cfg),
		errRender: newRenderer(cmd.ErrOrStderr(), cfg),
	}
	return ws, nil
}

func newRenderer(out io.Writer, cfg *config.Config) *tui.Renderer {
	r := tui.NewRenderer(tui.NewTerminal(out, cfg.Display.Color))
	r.CompileOutputLines = cfg.Display.CompileOutputLines
	r.TestOutputLines = cfg.Display.TestOutputLines
	return r
}

// controller returns a session over exercises.
func (ws *workspace) controller(exercises []exercise.Exercise) *session.Controller {
	return session.New(session.Options{
		Exercises: exercises,
		Reporter:  ws.cache,
		Logger:    ws.log,
	})
}

// filter narrows the exercises to one chapter. An empty prefix keeps all
// of them. A prefix that matches nothing is reported on stderr and turned
// into an ExitError.
func (ws *workspace) filter(prefix string) ([]exercise.Exercise, error) {
	if prefix == "" {
		return ws.exercises, nil
	}
	filtered, err := exercise.FilterByChapter(ws.exercises, prefix)
	if err != nil {
		var notFound *exercise.ChapterNotFoundError
		if errors.As(err, &notFound) {
			ws.errRender.ChapterNotFound(notFound)
			return nil, &ExitError{Code: 1}
		}
		return nil, err
	}
	ws.render.ChapterFilter(prefix, len(filtered))
	return filtered, nil
}
