package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thruflo/sicplings/internal/exercise"
)

var hintCmd = &cobra.Command{
	Use:   "hint [name]",
	Short: "Show hint for the current or specified exercise",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHint,
}

func init() {
	rootCmd.AddCommand(hintCmd)
}

func runHint(cmd *cobra.Command, args []string) error {
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

	content, err := os.ReadFile(ex.HintPath(ws.root))
	if err != nil {
		if os.IsNotExist(err) {
			ws.render.NoHint(ex)
			return nil
		}
		return fmt.Errorf("failed to read hint: %w", err)
	}
	ws.render.Hint(ex, string(content))
	return nil
}

// target resolves the exercise named in args, or the current one when no
// name is given. ok is false when there is no current exercise.
func (ws *workspace) target(cmd *cobra.Command, args []string) (exercise.Exercise, bool, error) {
	ctl := ws.controller(ws.exercises)
	if len(args) > 0 {
		ex, found := ctl.Find(args[0])
		if !found {
			return exercise.Exercise{}, false, fmt.Errorf("unknown exercise %q", args[0])
		}
		return ex, true, nil
	}

	idx, ok := ctl.Current(commandContext(cmd))
	if !ok {
		return exercise.Exercise{}, false, nil
	}
	return ws.exercises[idx], true, nil
}
