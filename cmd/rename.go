package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/trackedit/internal/undo"
	"github.com/manav03panchal/trackedit/internal/validate"
)

// renameCmd represents the rename command.
var renameCmd = &cobra.Command{
	Use:   "rename TRACK_ID NAME",
	Short: "Rename a track",
	Long: `Rename a track. The change is recorded in the undo history.

Examples:
  trackedit rename lead-vocals "Vocals"
  trackedit rename bass "Bass (DI)"`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeTrackIDs,
	RunE:              runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	id := args[0]
	name := validate.SanitizeTrackName(args[1])
	if err := validate.TrackName(name); err != nil {
		return err
	}

	return performAndReport(undo.NewRenameAction(ctx.Document, id, name))
}
