package undo

// Serialized property names. They are persisted; never change them.
const (
	KeyTrackID = "trackId"

	KeyXPathBefore = "xPathBefore"
	KeyXPathAfter  = "xPathAfter"

	KeyColourBefore = "colourBefore"
	KeyColourAfter  = "colourAfter"

	KeyInstrumentIDBefore = "instrumentIdBefore"
	KeyInstrumentIDAfter  = "instrumentIdAfter"
)

type keyPair struct {
	before string
	after  string
}

var valueKeys = map[Kind]keyPair{
	KindRename:           {before: KeyXPathBefore, after: KeyXPathAfter},
	KindChangeColour:     {before: KeyColourBefore, after: KeyColourAfter},
	KindChangeInstrument: {before: KeyInstrumentIDBefore, after: KeyInstrumentIDAfter},
}
