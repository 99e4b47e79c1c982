package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/manav03panchal/trackedit/internal/history"
	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/undo"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#10B981") // Green
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorWarning   = lipgloss.Color("#F59E0B") // Yellow
	colorError     = lipgloss.Color("#EF4444") // Red

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSecondary)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleTrack = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleKind = lipgloss.NewStyle().
			Foreground(colorSecondary)
)

// swatch is drawn in the track colour next to its hex value.
const swatch = "●"

// minColumnWidth is the narrowest a table column is squeezed to.
const minColumnWidth = 4

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// TrackName formats a track name.
func (c *CLIFormatter) TrackName(name string) string {
	return c.render(styleTrack, name)
}

// Kind formats an action kind.
func (c *CLIFormatter) Kind(kind undo.Kind) string {
	return c.render(styleKind, string(kind))
}

// Colour formats a colour as its hex text, preceded by a swatch when
// color output is enabled.
func (c *CLIFormatter) Colour(col model.Colour) string {
	if !c.IsColorEnabled() {
		return col.String()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(col.String())).Render(swatch) + " " + col.String()
}

// value formats an action before/after value for display.
func (c *CLIFormatter) value(kind undo.Kind, text string) string {
	switch kind {
	case undo.KindChangeColour:
		if col, err := model.ParseColour(text); err == nil {
			return c.Colour(col)
		}
	case undo.KindChangeInstrument:
		if text == "" {
			return c.render(styleMuted, "(none)")
		}
	case undo.KindRename:
		return fmt.Sprintf("%q", text)
	}
	return text
}

// Change formats "before → after" for an action.
func (c *CLIFormatter) Change(a undo.Action) string {
	before, after := undo.Values(a)
	return c.value(a.Kind(), before) + " → " + c.value(a.Kind(), after)
}

// PrintTrack prints a single track.
func (c *CLIFormatter) PrintTrack(t *model.Track) {
	c.Printf("%s %s\n", c.TrackName(t.Name()), c.render(styleMuted, "("+t.ID+")"))
	c.Printf("  Colour: %s\n", c.Colour(t.Colour()))
	instrument := t.InstrumentID()
	if instrument == "" {
		instrument = c.render(styleMuted, "(none)")
	}
	c.Printf("  Instrument: %s\n", instrument)
}

// PrintTracks prints the track list.
func (c *CLIFormatter) PrintTracks(tracks []*model.Track) {
	if len(tracks) == 0 {
		c.Muted("No tracks.")
		c.Muted("Use 'trackedit track create <name>' to add one.")
		return
	}

	rows := make([]TableRow, len(tracks))
	for i, t := range tracks {
		rows[i] = TableRow{Columns: []string{t.ID, t.Name(), c.Colour(t.Colour()), t.InstrumentID()}}
	}
	c.PrintTable([]string{"ID", "NAME", "COLOUR", "INSTRUMENT"}, rows)
}

// PrintAction prints the result of a perform, undo or redo.
func (c *CLIFormatter) PrintAction(verb string, e history.Entry) {
	c.Success(fmt.Sprintf("%s %s on %s", verb, string(e.Action.Kind()), e.Action.TrackID()))
	c.Printf("  %s\n", c.Change(e.Action))
}

// PrintHistory prints both stacks, newest entries first.
func (c *CLIFormatter) PrintHistory(undoEntries, redoEntries []history.Entry, depth, units int) {
	if len(undoEntries) == 0 && len(redoEntries) == 0 {
		c.Muted("History is empty.")
		return
	}

	var rows []TableRow
	// Redo entries are listed oldest first so the table reads top to bottom
	// from the furthest redo down to the oldest undo.
	for i := len(redoEntries) - 1; i >= 0; i-- {
		rows = append(rows, c.historyRow(StackRedo, i+1, redoEntries[i]))
	}
	for i, e := range undoEntries {
		rows = append(rows, c.historyRow(StackUndo, i+1, e))
	}
	c.PrintTable([]string{"STACK", "#", "KIND", "TRACK", "CHANGE", "UNITS", "AT"}, rows)
	c.Println()
	c.Muted(fmt.Sprintf("%d undo, %d redo, %d units", depth, len(redoEntries), units))
}

func (c *CLIFormatter) historyRow(stack string, pos int, e history.Entry) TableRow {
	return TableRow{Columns: []string{
		stack,
		fmt.Sprint(pos),
		c.Kind(e.Action.Kind()),
		e.Action.TrackID(),
		c.Change(e.Action),
		fmt.Sprint(e.Action.SizeInUnits()),
		FormatTimeShort(e.At),
	}}
}

// TableRow is one table line.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table, squeezing the widest columns until the
// table fits the terminal width.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := columnWidths(headers, rows)
	fitWidths(widths, c.Width())

	// Print headers
	c.Println(c.render(styleBold, strings.TrimRight(joinCells(headers, widths), " ")))

	// Print separator
	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	// Print rows
	for _, row := range rows {
		c.Println(strings.TrimRight(joinCells(row.Columns, widths), " "))
	}
}

func columnWidths(headers []string, rows []TableRow) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) {
				widths[i] = max(widths[i], ansi.StringWidth(col))
			}
		}
	}
	return widths
}

// fitWidths shrinks the widest column one cell at a time until the row
// fits in total, or every column is at minColumnWidth.
func fitWidths(widths []int, total int) {
	used := func() int {
		n := 2 * (len(widths) - 1)
		for _, w := range widths {
			n += w
		}
		return n
	}
	for used() > total {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			return
		}
		widths[widest]--
	}
}

func joinCells(cells []string, widths []int) string {
	var sb strings.Builder
	for i, col := range cells {
		if i >= len(widths) {
			break
		}
		col = ansi.Truncate(col, widths[i], "…")
		sb.WriteString(col)
		sb.WriteString(strings.Repeat(" ", widths[i]-ansi.StringWidth(col)+2))
	}
	return sb.String()
}
