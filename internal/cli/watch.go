package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thruflo/sicplings/internal/monitor"
)

var watchChapter string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for file changes and auto-verify exercises",
	Long: `Shows the first unfinished exercise and re-checks it whenever an
exercise file is saved. Exits once every exercise is done; press Ctrl+C to
leave earlier.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchChapter, "chapter", "c", "", "only watch exercises in chapters starting with this prefix")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	exercises, err := ws.filter(watchChapter)
	if err != nil {
		return err
	}

	mon, err := monitor.New(monitor.Options{
		Backend:       ws.cfg.Watch.Backend,
		PollInterval:  ws.cfg.Watch.PollInterval,
		RecencyWindow: ws.cfg.Watch.RecencyWindow,
		Logger:        ws.log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ws.render.Welcome()
	err = ws.controller(exercises).Watch(ctx, mon, ws.render.Frame)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
