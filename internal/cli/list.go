package cli

import (
	"github.com/spf13/cobra"
)

var listChapter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all exercises with their status",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listChapter, "chapter", "c", "", "only list exercises in chapters starting with this prefix")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	exercises, err := ws.filter(listChapter)
	if err != nil {
		return err
	}

	reports := ws.controller(exercises).Statuses(commandContext(cmd))
	ws.render.List(exercises, reports)
	return nil
}
