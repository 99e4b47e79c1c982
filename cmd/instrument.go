package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/trackedit/internal/undo"
	"github.com/manav03panchal/trackedit/internal/validate"
)

// instrumentCmd represents the instrument command.
var instrumentCmd = &cobra.Command{
	Use:     "instrument TRACK_ID [INSTRUMENT_ID]",
	Aliases: []string{"inst"},
	Short:   "Bind a track to an instrument",
	Long: `Bind a track to an instrument, or clear the binding when no instrument
is given. The change is recorded in the undo history.

Examples:
  trackedit instrument bass fender-p
  trackedit instrument bass`,
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: completeTrackIDs,
	RunE:              runInstrument,
}

func init() {
	rootCmd.AddCommand(instrumentCmd)
}

func runInstrument(cmd *cobra.Command, args []string) error {
	var instrument string
	if len(args) > 1 {
		instrument = validate.SanitizeInstrumentID(args[1])
	}
	if err := validate.InstrumentID(instrument); err != nil {
		return err
	}

	return performAndReport(undo.NewChangeInstrumentAction(ctx.Document, args[0], instrument))
}
