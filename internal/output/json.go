package output

import (
	"time"

	"github.com/manav03panchal/trackedit/internal/history"
	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/undo"
)

// Stack names used in history output.
const (
	StackUndo = "undo"
	StackRedo = "redo"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// TrackOutput represents a track in JSON output.
type TrackOutput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Colour       string `json:"colour"`
	InstrumentID string `json:"instrument_id,omitempty"`
}

// NewTrackOutput creates a TrackOutput from a Track.
func NewTrackOutput(t *model.Track) *TrackOutput {
	return &TrackOutput{
		ID:           t.ID,
		Name:         t.Name(),
		Colour:       t.Colour().String(),
		InstrumentID: t.InstrumentID(),
	}
}

// HistoryEntryOutput represents one history entry in JSON output.
type HistoryEntryOutput struct {
	Stack    string `json:"stack"`
	Position int    `json:"position"`
	Kind     string `json:"kind"`
	TrackID  string `json:"track_id"`
	Before   string `json:"before"`
	After    string `json:"after"`
	Units    int    `json:"units"`
	At       string `json:"at"`
}

// NewHistoryEntryOutput creates a HistoryEntryOutput. Position 1 is the
// entry the next undo (or redo) applies.
func NewHistoryEntryOutput(stack string, position int, e history.Entry) *HistoryEntryOutput {
	before, after := undo.Values(e.Action)
	return &HistoryEntryOutput{
		Stack:    stack,
		Position: position,
		Kind:     string(e.Action.Kind()),
		TrackID:  e.Action.TrackID(),
		Before:   before,
		After:    after,
		Units:    e.Action.SizeInUnits(),
		At:       e.At.Format(time.RFC3339),
	}
}

// TracksResponse represents the track list output in JSON.
type TracksResponse struct {
	Tracks []*TrackOutput `json:"tracks"`
	Count  int            `json:"count"`
}

// TrackResponse represents a single-track command result in JSON.
type TrackResponse struct {
	Status string       `json:"status"`
	Track  *TrackOutput `json:"track"`
}

// ActionResponse represents a perform, undo or redo result in JSON.
type ActionResponse struct {
	Status string              `json:"status"`
	Entry  *HistoryEntryOutput `json:"entry"`
	Track  *TrackOutput        `json:"track,omitempty"`
}

// HistoryResponse represents the history listing in JSON.
type HistoryResponse struct {
	Undo  []*HistoryEntryOutput `json:"undo"`
	Redo  []*HistoryEntryOutput `json:"redo"`
	Depth int                   `json:"depth"`
	Units int                   `json:"units"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// NewHistoryOutputs converts entries (newest first) into outputs.
func NewHistoryOutputs(stack string, entries []history.Entry) []*HistoryEntryOutput {
	out := make([]*HistoryEntryOutput, len(entries))
	for i, e := range entries {
		out[i] = NewHistoryEntryOutput(stack, i+1, e)
	}
	return out
}

// PrintTracks outputs the track list in JSON format.
func (j *JSONFormatter) PrintTracks(tracks []*model.Track) error {
	outputs := make([]*TrackOutput, len(tracks))
	for i, t := range tracks {
		outputs[i] = NewTrackOutput(t)
	}
	return j.JSON(TracksResponse{Tracks: outputs, Count: len(outputs)})
}

// PrintTrack outputs a track with a status in JSON format.
func (j *JSONFormatter) PrintTrack(status string, t *model.Track) error {
	return j.JSON(TrackResponse{Status: status, Track: NewTrackOutput(t)})
}

// PrintAction outputs a history step in JSON format. track may be nil.
func (j *JSONFormatter) PrintAction(status, stack string, e history.Entry, track *model.Track) error {
	resp := ActionResponse{
		Status: status,
		Entry:  NewHistoryEntryOutput(stack, 1, e),
	}
	if track != nil {
		resp.Track = NewTrackOutput(track)
	}
	return j.JSON(resp)
}

// PrintHistory outputs the history listing in JSON format.
func (j *JSONFormatter) PrintHistory(undoEntries, redoEntries []history.Entry, depth, units int) error {
	return j.JSON(HistoryResponse{
		Undo:  NewHistoryOutputs(StackUndo, undoEntries),
		Redo:  NewHistoryOutputs(StackRedo, redoEntries),
		Depth: depth,
		Units: units,
	})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     status,
		Error:      errMsg,
		Suggestion: suggestion,
	})
}
