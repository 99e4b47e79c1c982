package undo

import (
	"unsafe"

	"github.com/manav03panchal/trackedit/internal/logging"
	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/serial"
)

// colourUnits is the in-memory footprint of one colour value.
const colourUnits = int(unsafe.Sizeof(model.Colour{}))

// ChangeColourAction changes a track's colour.
type ChangeColourAction struct {
	source       TrackSource
	trackID      string
	colourBefore model.Colour
	colourAfter  model.Colour
}

// NewChangeColourAction creates an action recolouring trackID.
func NewChangeColourAction(source TrackSource, trackID string, colour model.Colour) *ChangeColourAction {
	return &ChangeColourAction{
		source:      source,
		trackID:     trackID,
		colourAfter: colour,
	}
}

func (a *ChangeColourAction) Kind() Kind      { return KindChangeColour }
func (a *ChangeColourAction) TrackID() string { return a.trackID }

func (a *ChangeColourAction) Perform() bool {
	track, ok := findTrack(a.source, a.trackID)
	if !ok {
		return false
	}
	a.colourBefore = track.Colour()
	track.SetColour(a.colourAfter, true)
	return true
}

func (a *ChangeColourAction) Undo() bool {
	track, ok := findTrack(a.source, a.trackID)
	if !ok {
		return false
	}
	track.SetColour(a.colourBefore, true)
	return true
}

func (a *ChangeColourAction) SizeInUnits() int {
	return colourUnits + colourUnits
}

func (a *ChangeColourAction) Serialize() *serial.Node {
	node := serial.NewNode(string(KindChangeColour))
	node.Set(KeyTrackID, a.trackID)
	node.Set(KeyColourBefore, a.colourBefore.String())
	node.Set(KeyColourAfter, a.colourAfter.String())
	return node
}

func (a *ChangeColourAction) Deserialize(node *serial.Node) {
	a.trackID = node.Get(KeyTrackID)
	a.colourBefore = decodeColour(node, KeyColourBefore)
	a.colourAfter = decodeColour(node, KeyColourAfter)
}

func (a *ChangeColourAction) Reset() {
	a.trackID = ""
	a.colourBefore = model.DefaultColour
	a.colourAfter = model.DefaultColour
}

func decodeColour(node *serial.Node, key string) model.Colour {
	text := node.Get(key)
	c, ok := model.ColourFromString(text)
	if !ok {
		logging.Warn("malformed colour in serialized action, using default",
			logging.KeyAction, string(KindChangeColour),
			"key", key,
			"value", text,
			"default", model.DefaultColour.String())
	}
	return c
}
