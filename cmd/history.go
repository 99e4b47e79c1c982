package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/manav03panchal/trackedit/internal/errors"
	"github.com/manav03panchal/trackedit/internal/history"
	"github.com/manav03panchal/trackedit/internal/logging"
	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/parser"
	"github.com/manav03panchal/trackedit/internal/serial"
	"github.com/manav03panchal/trackedit/internal/validate"
)

// maxHistoryLimit bounds --limit.
const maxHistoryLimit = 10000

// History flags.
var (
	historyFlagSince    string
	historyFlagLimit    int
	historyFlagExportAs string
	historyFlagImportAs string
	historyFlagOutput   string
)

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"hist", "log"},
	Short:   "Show the undo history",
	Long: `List the entries that undo and redo will step through, newest first.

Examples:
  trackedit history
  trackedit history --since "2 hours ago"
  trackedit history --since yesterday --limit 5
  trackedit history export --as yaml --output history.yaml
  trackedit history import history.yaml
  trackedit history clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

// historyExportCmd writes the history to a file or stdout.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

// historyImportCmd replaces the history with a file's contents.
var historyImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the history with an exported one",
	Long: `Replace the undo and redo history with the contents of an exported file.
The format follows the file extension unless --as is given. Entries of
an unknown kind, or editing a track that no longer exists, are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryImport,
}

// historyClearCmd drops both stacks.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the undo and redo history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().StringVarP(&historyFlagSince, "since", "s", "", "Only entries recorded after this time (e.g. '2 hours ago')")
	historyCmd.Flags().IntVarP(&historyFlagLimit, "limit", "n", 0, "Show at most N entries per stack (0 for all)")

	historyExportCmd.Flags().StringVar(&historyFlagExportAs, "as", "json", "File format: json, yaml")
	historyExportCmd.Flags().StringVarP(&historyFlagOutput, "output", "o", "", "Write to FILE instead of stdout")
	historyImportCmd.Flags().StringVar(&historyFlagImportAs, "as", "", "File format: json, yaml (default from extension)")

	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyImportCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validate.InRange("limit", historyFlagLimit, 0, maxHistoryLimit); err != nil {
		return err
	}
	since, err := parser.ParseSince(historyFlagSince, time.Now())
	if err != nil {
		return err
	}

	undoEntries := filterEntries(ctx.History.UndoEntries(), since, historyFlagLimit)
	redoEntries := filterEntries(ctx.History.RedoEntries(), since, historyFlagLimit)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintHistory(undoEntries, redoEntries, ctx.History.Depth(), ctx.History.Units())
	}

	ctx.CLIFormatter().PrintHistory(undoEntries, redoEntries, ctx.History.Depth(), ctx.History.Units())
	return nil
}

// filterEntries keeps entries recorded at or after since, newest first,
// stopping at limit when it is positive.
func filterEntries(entries []history.Entry, since time.Time, limit int) []history.Entry {
	var out []history.Entry
	for _, e := range entries {
		if e.At.Before(since) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, err := parseFileFormat(historyFlagExportAs)
	if err != nil {
		return err
	}

	snapshot := ctx.History.Snapshot()
	data, err := serial.Marshal(snapshot, format)
	if err != nil {
		return errs.NewSystemErrorWithOp("export history", "cannot encode history", err)
	}

	if historyFlagOutput == "" {
		ctx.Formatter.Print(string(data))
		if len(data) > 0 && data[len(data)-1] != '\n' {
			ctx.Formatter.Println()
		}
		return nil
	}

	if err := os.WriteFile(historyFlagOutput, data, 0o644); err != nil {
		return errs.NewSystemErrorWithOp("export history", "cannot write "+historyFlagOutput, err)
	}
	logging.InfoContext(ctx.Session, "history exported",
		logging.KeyPath, historyFlagOutput,
		logging.KeyCount, snapshot.Len())

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status": "exported",
			"path":   historyFlagOutput,
		})
	}
	ctx.CLIFormatter().Success("Exported history to " + historyFlagOutput)
	return nil
}

func runHistoryImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	name := historyFlagImportAs
	if name == "" {
		name = filepath.Ext(path)
	}
	format, err := parseFileFormat(name)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errs.NewUserErrorWithField("file", path, "File not found", "Check the path and try again")
		}
		return errs.NewSystemErrorWithOp("import history", "cannot read "+path, err)
	}

	state := model.NewHistoryState()
	if err := serial.Unmarshal(data, state, format); err != nil {
		ue := errs.NewUserErrorWithField("file", path, "Cannot parse history file", err.Error())
		ue.Cause = errs.ErrInvalidFormat
		return ue
	}
	state.SetKey(model.KeyHistory)

	skipped := ctx.ImportHistory(state)
	if err := ctx.Save(); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"status":  "imported",
			"depth":   ctx.History.Depth(),
			"redo":    len(ctx.History.RedoEntries()),
			"skipped": skipped,
		})
	}

	cli := ctx.CLIFormatter()
	cli.Success("Imported history from " + path)
	if skipped > 0 {
		cli.Warning(fmt.Sprintf("Skipped %d entries that could not be read or edit missing tracks", skipped))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if err := ctx.ClearHistory(); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{"status": "cleared"})
	}
	ctx.CLIFormatter().Success("History cleared")
	return nil
}

func parseFileFormat(s string) (serial.Format, error) {
	format, err := serial.ParseFormat(s)
	if err != nil {
		ue := errs.NewUserErrorWithField("format", s, "Unsupported file format", errs.Suggestions[errs.ErrInvalidFormat])
		ue.Cause = errs.ErrInvalidFormat
		return "", ue
	}
	return format, nil
}
