package undo

import (
	"github.com/manav03panchal/trackedit/internal/serial"
)

// RenameAction changes a track's display name.
type RenameAction struct {
	source      TrackSource
	trackID     string
	xPathBefore string
	xPathAfter  string
}

// NewRenameAction creates an action renaming trackID to xPath.
func NewRenameAction(source TrackSource, trackID, xPath string) *RenameAction {
	return &RenameAction{
		source:     source,
		trackID:    trackID,
		xPathAfter: xPath,
	}
}

func (a *RenameAction) Kind() Kind      { return KindRename }
func (a *RenameAction) TrackID() string { return a.trackID }

func (a *RenameAction) Perform() bool {
	track, ok := findTrack(a.source, a.trackID)
	if !ok {
		return false
	}
	a.xPathBefore = track.Name()
	track.SetName(a.xPathAfter, true)
	return true
}

func (a *RenameAction) Undo() bool {
	track, ok := findTrack(a.source, a.trackID)
	if !ok {
		return false
	}
	track.SetName(a.xPathBefore, true)
	return true
}

func (a *RenameAction) SizeInUnits() int {
	return len(a.xPathBefore) + len(a.xPathAfter)
}

func (a *RenameAction) Serialize() *serial.Node {
	node := serial.NewNode(string(KindRename))
	node.Set(KeyTrackID, a.trackID)
	node.Set(KeyXPathBefore, a.xPathBefore)
	node.Set(KeyXPathAfter, a.xPathAfter)
	return node
}

func (a *RenameAction) Deserialize(node *serial.Node) {
	a.trackID = node.Get(KeyTrackID)
	a.xPathBefore = node.Get(KeyXPathBefore)
	a.xPathAfter = node.Get(KeyXPathAfter)
}

func (a *RenameAction) Reset() {
	a.trackID = ""
	a.xPathBefore = ""
	a.xPathAfter = ""
}
