package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Persistent flag values.
var (
	configPath string
	logLevel   string
	colorMode  string
)

var rootCmd = &cobra.Command{
	Use:   "sicplings",
	Short: "SICP exercises in Seq - a stack-based journey through computation",
	Long: `sicplings walks you through a course of small Seq exercises.

Run it in the course directory. Without a subcommand it watches the
exercises, showing the first unfinished one and re-checking it every time
you save. Remove the "# I AM NOT DONE" line from an exercise once you
think it is solved.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWatch,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("sicplings version {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default .sicplings.yaml in the course directory)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&colorMode, "color", "", "color output: auto, always, never")
}

// ExitError reports a failure that has already been explained to the user.
// main exits with Code without printing anything further.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "exit status"
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
