package cmd

import (
	"github.com/spf13/cobra"

	errs "github.com/manav03panchal/trackedit/internal/errors"
	"github.com/manav03panchal/trackedit/internal/history"
	"github.com/manav03panchal/trackedit/internal/output"
)

// undoCmd represents the undo command.
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last change",
	Long: `Undo the most recent rename, colour or instrument change.

Examples:
  trackedit rename bass "Bass (DI)"
  trackedit undo
  # The track is called "Bass" again

  trackedit undo
  trackedit redo
  # Re-applies the change that was just undone`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

// redoCmd represents the redo command.
var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the last undone change",
	Long: `Re-apply the change most recently undone. Any new change made after an
undo discards the redo history.

Examples:
  trackedit undo
  trackedit redo`,
	Args: cobra.NoArgs,
	RunE: runRedo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	return step(ctx.Undo, errs.ErrNothingToUndo, "nothing_to_undo", "Nothing to undo",
		"undone", "Undid", output.StackRedo)
}

func runRedo(cmd *cobra.Command, args []string) error {
	return step(ctx.Redo, errs.ErrNothingToRedo, "nothing_to_redo", "Nothing to redo",
		"redone", "Redid", output.StackUndo)
}

// step runs one undo or redo. An empty stack is reported, not returned as
// an error.
func step(fn func() (history.Entry, error), empty error, emptyStatus, emptyMsg, status, verb, stack string) error {
	e, err := fn()
	if errs.Is(err, empty) {
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(map[string]string{
				"status":  emptyStatus,
				"message": emptyMsg,
			})
		}
		ctx.CLIFormatter().Muted(emptyMsg)
		return nil
	}
	if err != nil {
		return err
	}

	if err := ctx.Save(); err != nil {
		return err
	}
	return reportStep(status, verb, stack, e)
}
