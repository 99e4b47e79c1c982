package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/parser"
	"github.com/manav03panchal/trackedit/internal/validate"
)

// trackCmd represents the track command.
var trackCmd = &cobra.Command{
	Use:     "track [TRACK_ID]",
	Aliases: []string{"tracks", "tr"},
	Short:   "Manage tracks",
	Long: `List all tracks, show a single track, or create and delete tracks.

Creating and deleting tracks is not recorded in the undo history; only
rename, colour and instrument changes are. Deleting a track also drops
the history entries that edit it.

Examples:
  trackedit track
  trackedit track lead-vocals
  trackedit track create "Lead Vocals" --colour "#FF5733"
  trackedit track create "Bass" --id bass --instrument fender-p
  trackedit track delete bass`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeTrackIDs,
	RunE:              runTrackList,
}

// Track subcommand flags.
var (
	trackCreateFlagID         string
	trackCreateFlagColour     string
	trackCreateFlagInstrument string
)

// trackCreateCmd creates a new track.
var trackCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new track",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrackCreate,
}

// trackDeleteCmd deletes a track.
var trackDeleteCmd = &cobra.Command{
	Use:               "delete TRACK_ID",
	Aliases:           []string{"rm"},
	Short:             "Delete a track",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTrackIDs,
	RunE:              runTrackDelete,
}

func init() {
	trackCreateCmd.Flags().StringVar(&trackCreateFlagID, "id", "", "Custom track ID (derived from the name if omitted)")
	trackCreateCmd.Flags().StringVarP(&trackCreateFlagColour, "colour", "c", "", "Hex colour (#RRGGBB)")
	trackCreateCmd.Flags().StringVarP(&trackCreateFlagInstrument, "instrument", "i", "", "Instrument ID")

	trackCmd.AddCommand(trackCreateCmd)
	trackCmd.AddCommand(trackDeleteCmd)
	rootCmd.AddCommand(trackCmd)
}

func runTrackList(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return showTrack(args[0])
	}

	tracks := ctx.Document.Tracks()
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTracks(tracks)
	}

	ctx.CLIFormatter().PrintTracks(tracks)
	return nil
}

func showTrack(id string) error {
	track, err := ctx.Track(id)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTrack("ok", track)
	}

	ctx.CLIFormatter().PrintTrack(track)
	return nil
}

func runTrackCreate(cmd *cobra.Command, args []string) error {
	name := validate.SanitizeTrackName(args[0])
	if err := validate.TrackName(name); err != nil {
		return err
	}

	id := trackCreateFlagID
	if id == "" {
		id = newTrackID(name)
	}
	if err := validate.TrackID(id); err != nil {
		return err
	}

	colour := model.DefaultColour
	if trackCreateFlagColour != "" {
		c, err := validate.HexColour(trackCreateFlagColour)
		if err != nil {
			return err
		}
		colour = c
	}

	instrument := validate.SanitizeInstrumentID(trackCreateFlagInstrument)
	if err := validate.InstrumentID(instrument); err != nil {
		return err
	}

	track := model.NewTrack(id, name, colour, instrument)
	if err := ctx.AddTrack(track); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTrack("created", track)
	}

	cli := ctx.CLIFormatter()
	cli.Success("Created track: " + id)
	cli.PrintTrack(track)
	return nil
}

// newTrackID derives an id from the track name, falling back to a time
// ordered UUID when the name has no usable characters or the derived id
// is taken.
func newTrackID(name string) string {
	id := parser.ConvertToTrackID(name)
	if parser.ValidateTrackID(id) {
		if _, taken := ctx.Document.Track(id); !taken {
			return id
		}
	}
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}

func runTrackDelete(cmd *cobra.Command, args []string) error {
	track, err := ctx.RemoveTrack(args[0])
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTrack("deleted", track)
	}

	ctx.CLIFormatter().Success("Deleted track: " + track.ID)
	return nil
}
