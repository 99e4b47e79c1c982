// Package undo implements reversible track edits.
//
// Every edit is an Action holding the target track id and the value to
// apply. Perform captures the value it replaces so Undo can restore it.
// Actions never hold on to a track: the id is resolved through the
// TrackSource on every Perform and Undo call, so a track that was removed
// and recreated under the same id is still found, and a missing track
// makes the call a no-op that reports false.
package undo

import (
	"errors"
	"fmt"

	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/serial"
)

// ErrUnknownKind is returned when a serialized node carries a tag no
// action kind is registered for.
var ErrUnknownKind = errors.New("unknown action kind")

// Track is the per-property getter/setter surface actions mutate.
type Track interface {
	Name() string
	SetName(name string, notify bool)
	Colour() model.Colour
	SetColour(colour model.Colour, notify bool)
	InstrumentID() string
	SetInstrumentID(id string, notify bool)
}

// TrackSource resolves a track id to a live track. Absence is a normal
// outcome, not an error.
type TrackSource interface {
	FindTrack(id string) (Track, bool)
}

// Action is the contract shared by every reversible edit.
type Action interface {
	// Kind identifies the concrete edit; its string is the serialized tag.
	Kind() Kind
	// TrackID returns the id of the edited track.
	TrackID() string
	// Perform applies the edit. It returns false, changing nothing, when
	// the track cannot be found.
	Perform() bool
	// Undo restores the value captured by the last successful Perform.
	Undo() bool
	// SizeInUnits is the cost of keeping this action in a history.
	SizeInUnits() int
	// Serialize returns a node holding the track id and both values.
	Serialize() *serial.Node
	// Deserialize replaces the action state with the node's. It never
	// fails; malformed values decode to their type's default.
	Deserialize(node *serial.Node)
	// Reset clears the track id and both values.
	Reset()
}

// Kind enumerates the action variants.
type Kind string

const (
	KindRename           Kind = "rename"
	KindChangeColour     Kind = "changeColour"
	KindChangeInstrument Kind = "changeInstrument"
)

// Kinds returns every registered kind.
func Kinds() []Kind {
	return []Kind{KindRename, KindChangeColour, KindChangeInstrument}
}

// New builds a blank action of the given kind bound to source.
func New(kind Kind, source TrackSource) (Action, error) {
	switch kind {
	case KindRename:
		return &RenameAction{source: source}, nil
	case KindChangeColour:
		return &ChangeColourAction{source: source}, nil
	case KindChangeInstrument:
		return &ChangeInstrumentAction{source: source}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}

// Decode rebuilds an action from a serialized node, dispatching on its tag.
func Decode(node *serial.Node, source TrackSource) (Action, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: empty node", ErrUnknownKind)
	}
	a, err := New(Kind(node.Tag), source)
	if err != nil {
		return nil, err
	}
	a.Deserialize(node)
	return a, nil
}

// Values returns the canonical text of an action's before and after
// values, read back from its serialized form.
func Values(a Action) (before, after string) {
	keys, ok := valueKeys[a.Kind()]
	if !ok {
		return "", ""
	}
	node := a.Serialize()
	return node.Get(keys.before), node.Get(keys.after)
}

func findTrack(source TrackSource, id string) (Track, bool) {
	if source == nil {
		return nil, false
	}
	return source.FindTrack(id)
}
