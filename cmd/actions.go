package cmd

import (
	"time"

	"github.com/manav03panchal/trackedit/internal/history"
	"github.com/manav03panchal/trackedit/internal/output"
	"github.com/manav03panchal/trackedit/internal/undo"
)

// performAndReport runs a through the history, saves the workspace and
// prints the result.
func performAndReport(a undo.Action) error {
	if err := ctx.Perform(a); err != nil {
		return err
	}
	if err := ctx.Save(); err != nil {
		return err
	}

	entry := history.Entry{Action: a, At: time.Now()}
	if newest := ctx.History.UndoEntries(); len(newest) > 0 {
		entry = newest[0]
	}
	return reportStep("done", "Applied", output.StackUndo, entry)
}

// reportStep prints a performed, undone or redone entry. stack names the
// stack the entry now sits on.
func reportStep(status, verb, stack string, e history.Entry) error {
	if ctx.IsJSON() {
		track, _ := ctx.Document.Track(e.Action.TrackID())
		return ctx.JSONFormatter().PrintAction(status, stack, e, track)
	}

	ctx.CLIFormatter().PrintAction(verb, e)
	return nil
}
