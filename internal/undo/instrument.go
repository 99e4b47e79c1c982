package undo

import (
	"github.com/manav03panchal/trackedit/internal/serial"
)

// ChangeInstrumentAction rebinds a track to another instrument.
type ChangeInstrumentAction struct {
	source             TrackSource
	trackID            string
	instrumentIDBefore string
	instrumentIDAfter  string
}

// NewChangeInstrumentAction creates an action binding trackID to instrumentID.
func NewChangeInstrumentAction(source TrackSource, trackID, instrumentID string) *ChangeInstrumentAction {
	return &ChangeInstrumentAction{
		source:            source,
		trackID:           trackID,
		instrumentIDAfter: instrumentID,
	}
}

func (a *ChangeInstrumentAction) Kind() Kind      { return KindChangeInstrument }
func (a *ChangeInstrumentAction) TrackID() string { return a.trackID }

func (a *ChangeInstrumentAction) Perform() bool {
	track, ok := findTrack(a.source, a.trackID)
	if !ok {
		return false
	}
	a.instrumentIDBefore = track.InstrumentID()
	track.SetInstrumentID(a.instrumentIDAfter, true)
	return true
}

func (a *ChangeInstrumentAction) Undo() bool {
	track, ok := findTrack(a.source, a.trackID)
	if !ok {
		return false
	}
	track.SetInstrumentID(a.instrumentIDBefore, true)
	return true
}

func (a *ChangeInstrumentAction) SizeInUnits() int {
	return len(a.instrumentIDAfter) + len(a.instrumentIDBefore)
}

func (a *ChangeInstrumentAction) Serialize() *serial.Node {
	node := serial.NewNode(string(KindChangeInstrument))
	node.Set(KeyTrackID, a.trackID)
	node.Set(KeyInstrumentIDBefore, a.instrumentIDBefore)
	node.Set(KeyInstrumentIDAfter, a.instrumentIDAfter)
	return node
}

func (a *ChangeInstrumentAction) Deserialize(node *serial.Node) {
	a.trackID = node.Get(KeyTrackID)
	a.instrumentIDBefore = node.Get(KeyInstrumentIDBefore)
	a.instrumentIDAfter = node.Get(KeyInstrumentIDAfter)
}

func (a *ChangeInstrumentAction) Reset() {
	a.trackID = ""
	a.instrumentIDBefore = ""
	a.instrumentIDAfter = ""
}
