package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var solutionCmd = &cobra.Command{
	Use:   "solution [name]",
	Short: "Show the reference solution for the current or specified exercise",
	Long: `Prints solutions/<chapter>/<file> for the named exercise, or for the
first unfinished one when no name is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolution,
}

func init() {
	rootCmd.AddCommand(solutionCmd)
}

func runSolution(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	ex, ok, err := ws.target(cmd, args)
	if err != nil {
		return err
	}
	if !ok {
		ws.render.AllExercisesComplete()
		return nil
	}

	content, err := os.ReadFile(ex.SolutionPath(ws.root))
	if err != nil {
		if os.IsNotExist(err) {
			ws.render.NoSolution(ex)
			return nil
		}
		return fmt.Errorf("failed to read solution: %w", err)
	}
	ws.render.Solution(ex, string(content))
	return nil
}
