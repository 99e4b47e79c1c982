// Package history sequences undo actions into undo and redo stacks,
// bounded by entry count and by total size units.
package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/manav03panchal/trackedit/internal/logging"
	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/undo"
)

var (
	// ErrNothingToUndo is returned by Undo on an empty undo stack.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Redo on an empty redo stack.
	ErrNothingToRedo = errors.New("nothing to redo")
	// ErrActionFailed is returned when an action reports false, which
	// means its track no longer exists.
	ErrActionFailed = errors.New("action could not be applied")
)

// Operation names passed to Observer.Failed.
const (
	OpPerform = "perform"
	OpUndo    = "undo"
	OpRedo    = "redo"
)

// Observer receives history events. metrics.Recorder implements it.
type Observer interface {
	Performed(kind undo.Kind)
	Undone(kind undo.Kind)
	Redone(kind undo.Kind)
	Failed(kind undo.Kind, op string)
	// Resized reports the undo depth and the units of both stacks.
	Resized(depth, units int)
}

// Options configures a Stack.
type Options struct {
	// MaxDepth bounds the number of undo entries. Zero means unbounded.
	MaxDepth int
	// MaxUnits bounds the summed SizeInUnits of all entries. Zero means
	// unbounded. The newest entry is always kept.
	MaxUnits int
	// Observer is optional.
	Observer Observer
	// Now stamps entries; defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns the default bounds.
func DefaultOptions() Options {
	return Options{
		MaxDepth: 100,
		MaxUnits: 64 * 1024,
	}
}

// Entry is one recorded action.
type Entry struct {
	Action undo.Action
	At     time.Time
}

// Stack is an undo/redo history. It is not safe for concurrent use.
type Stack struct {
	opts Options
	undo []Entry
	redo []Entry
}

// New creates an empty history.
func New(opts Options) *Stack {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Stack{opts: opts}
}

// Perform applies a and records it. A failed action is not recorded.
func (s *Stack) Perform(a undo.Action) error {
	if !a.Perform() {
		return s.fail(a, OpPerform)
	}
	s.undo = append(s.undo, Entry{Action: a, At: s.opts.Now()})
	s.redo = nil
	s.trim()

	logging.DebugLog("action performed",
		logging.KeyAction, string(a.Kind()),
		logging.KeyTrack, a.TrackID(),
		logging.KeyUnits, a.SizeInUnits())
	if s.opts.Observer != nil {
		s.opts.Observer.Performed(a.Kind())
	}
	s.resized()
	return nil
}

// Undo reverts the newest entry and moves it to the redo stack. When the
// action fails both stacks are left untouched and the failing entry is
// returned alongside the ErrActionFailed error, so callers can name the
// track it refers to. Forget or Prune drop such entries.
func (s *Stack) Undo() (Entry, error) {
	if len(s.undo) == 0 {
		return Entry{}, ErrNothingToUndo
	}
	e := s.undo[len(s.undo)-1]
	if !e.Action.Undo() {
		return e, s.fail(e.Action, OpUndo)
	}
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, e)

	logging.DebugLog("action undone",
		logging.KeyAction, string(e.Action.Kind()),
		logging.KeyTrack, e.Action.TrackID())
	if s.opts.Observer != nil {
		s.opts.Observer.Undone(e.Action.Kind())
	}
	s.resized()
	return e, nil
}

// Redo re-performs the most recently undone entry. Failure is reported
// like Undo's: stacks untouched, the failing entry returned with the error.
func (s *Stack) Redo() (Entry, error) {
	if len(s.redo) == 0 {
		return Entry{}, ErrNothingToRedo
	}
	e := s.redo[len(s.redo)-1]
	if !e.Action.Perform() {
		return e, s.fail(e.Action, OpRedo)
	}
	s.redo = s.redo[:len(s.redo)-1]
	e.At = s.opts.Now()
	s.undo = append(s.undo, e)
	s.trim()

	logging.DebugLog("action redone",
		logging.KeyAction, string(e.Action.Kind()),
		logging.KeyTrack, e.Action.TrackID())
	if s.opts.Observer != nil {
		s.opts.Observer.Redone(e.Action.Kind())
	}
	s.resized()
	return e, nil
}

// CanUndo reports whether Undo has an entry to work on.
func (s *Stack) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo reports whether Redo has an entry to work on.
func (s *Stack) CanRedo() bool {
	return len(s.redo) > 0
}

// Depth returns the number of undo entries, the count MaxDepth bounds.
func (s *Stack) Depth() int {
	return len(s.undo)
}

// Len returns the number of entries on both stacks.
func (s *Stack) Len() int {
	return len(s.undo) + len(s.redo)
}

// Units returns the summed size of every entry on both stacks.
func (s *Stack) Units() int {
	return sumUnits(s.undo) + sumUnits(s.redo)
}

// UndoEntries returns the undo stack, newest first.
func (s *Stack) UndoEntries() []Entry {
	return reversed(s.undo)
}

// RedoEntries returns the redo stack, next to redo first.
func (s *Stack) RedoEntries() []Entry {
	return reversed(s.redo)
}

// Clear drops every entry.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
	s.resized()
}

// Forget drops every entry on either stack that edits trackID and returns
// how many were dropped. Call it when a track is deleted; its entries could
// never be applied again and would block the entries beneath them.
func (s *Stack) Forget(trackID string) int {
	return s.drop(func(a undo.Action) bool { return a.TrackID() == trackID })
}

// Prune drops every entry whose track source cannot resolve and returns
// how many were dropped.
func (s *Stack) Prune(source undo.TrackSource) int {
	return s.drop(func(a undo.Action) bool {
		if source == nil {
			return true
		}
		_, ok := source.FindTrack(a.TrackID())
		return !ok
	})
}

func (s *Stack) drop(match func(undo.Action) bool) int {
	var dropped int
	s.undo, dropped = without(s.undo, match)
	var n int
	s.redo, n = without(s.redo, match)
	dropped += n
	if dropped > 0 {
		logging.DebugLog("history entries dropped",
			logging.KeyCount, dropped,
			logging.KeyDepth, len(s.undo))
		s.resized()
	}
	return dropped
}

func without(entries []Entry, match func(undo.Action) bool) ([]Entry, int) {
	kept := entries[:0]
	dropped := 0
	for _, e := range entries {
		if match(e.Action) {
			dropped++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(entries); i++ {
		entries[i] = Entry{}
	}
	return kept, dropped
}

// trim drops the oldest undo entries until both bounds hold.
func (s *Stack) trim() {
	dropped := 0
	for len(s.undo) > 1 && s.overBudget() {
		s.undo[0] = Entry{}
		s.undo = s.undo[1:]
		dropped++
	}
	if dropped > 0 {
		logging.DebugLog("history trimmed",
			logging.KeyCount, dropped,
			logging.KeyDepth, len(s.undo),
			logging.KeyUnits, s.Units())
	}
}

func (s *Stack) overBudget() bool {
	if s.opts.MaxDepth > 0 && len(s.undo) > s.opts.MaxDepth {
		return true
	}
	return s.opts.MaxUnits > 0 && s.Units() > s.opts.MaxUnits
}

func (s *Stack) fail(a undo.Action, op string) error {
	logging.Warn("action failed, track not found",
		logging.KeyOperation, op,
		logging.KeyAction, string(a.Kind()),
		logging.KeyTrack, a.TrackID())
	if s.opts.Observer != nil {
		s.opts.Observer.Failed(a.Kind(), op)
	}
	return fmt.Errorf("%w: %s of track %q", ErrActionFailed, a.Kind(), a.TrackID())
}

func (s *Stack) resized() {
	if s.opts.Observer != nil {
		s.opts.Observer.Resized(s.Depth(), s.Units())
	}
}

// Snapshot returns the persisted form of both stacks, oldest first.
func (s *Stack) Snapshot() *model.HistoryState {
	state := model.NewHistoryState()
	state.Undo = toRecords(s.undo)
	state.Redo = toRecords(s.redo)
	return state
}

// Restore replaces the stacks with the decoded records of state. Records
// whose tag is unknown are skipped; the number skipped is returned.
func (s *Stack) Restore(state *model.HistoryState, source undo.TrackSource) int {
	var skipped int
	s.undo, skipped = fromRecords(state.Undo, source)
	redo, n := fromRecords(state.Redo, source)
	s.redo = redo
	skipped += n
	s.trim()
	s.resized()
	return skipped
}

func toRecords(entries []Entry) []model.HistoryRecord {
	records := make([]model.HistoryRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, model.HistoryRecord{At: e.At, Node: e.Action.Serialize()})
	}
	return records
}

func fromRecords(records []model.HistoryRecord, source undo.TrackSource) ([]Entry, int) {
	entries := make([]Entry, 0, len(records))
	skipped := 0
	for _, r := range records {
		a, err := undo.Decode(r.Node, source)
		if err != nil {
			logging.Warn("skipping history record", logging.KeyError, err)
			skipped++
			continue
		}
		entries = append(entries, Entry{Action: a, At: r.At})
	}
	return entries, skipped
}

func sumUnits(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Action.SizeInUnits()
	}
	return total
}

func reversed(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}
