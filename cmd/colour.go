package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/trackedit/internal/undo"
	"github.com/manav03panchal/trackedit/internal/validate"
)

// colourCmd represents the colour command.
var colourCmd = &cobra.Command{
	Use:     "colour TRACK_ID #RRGGBB",
	Aliases: []string{"color"},
	Short:   "Change a track's colour",
	Long: `Change a track's colour. The change is recorded in the undo history.

Examples:
  trackedit colour lead-vocals "#FF5733"
  trackedit colour bass 3366CC`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeTrackIDs,
	RunE:              runColour,
}

func init() {
	rootCmd.AddCommand(colourCmd)
}

func runColour(cmd *cobra.Command, args []string) error {
	colour, err := validate.HexColour(args[1])
	if err != nil {
		return err
	}

	return performAndReport(undo.NewChangeColourAction(ctx.Document, args[0], colour))
}
