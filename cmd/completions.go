package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/runtime"
)

// completeTrackIDs completes the first argument with track IDs.
func completeTrackIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	tracks := completionTracks()
	var completions []string
	for _, t := range tracks {
		if strings.HasPrefix(t.ID, toComplete) {
			completions = append(completions, t.ID+"\t"+t.Name())
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completionTracks lists tracks from the shared context, or from a short
// lived one when completion runs without the usual pre-run hook.
func completionTracks() []*model.Track {
	if ctx != nil && ctx.Document != nil {
		return ctx.Document.Tracks()
	}

	opts := runtime.DefaultOptions()
	opts.ConfigPath = flagConfig
	c, err := runtime.New(opts)
	if err != nil {
		return nil
	}
	defer c.Close()
	return c.Document.Tracks()
}
