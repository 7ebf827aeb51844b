package cli

import (
	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to the next exercise",
	Args:  cobra.NoArgs,
	RunE:  runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	next, ok := ws.controller(ws.exercises).Next(commandContext(cmd))
	ws.render.SkipTo(next, ok)
	return nil
}
