package model

import (
	"fmt"
)

// Property names a mutable track property.
type Property string

const (
	PropertyName       Property = "name"
	PropertyColour     Property = "colour"
	PropertyInstrument Property = "instrument"
)

// Change describes a notified property edit. Old and New hold the
// canonical text of the values.
type Change struct {
	TrackID  string
	Property Property
	Old      string
	New      string
}

// Track is a named lane of the arrangement.
type Track struct {
	Key        string `json:"key"`
	ID         string `json:"id"`
	Title      string `json:"name"`
	Color      Colour `json:"colour"`
	Instrument string `json:"instrument_id,omitempty"`

	observer func(Change)
}

// SetKey sets the database key for this track.
func (t *Track) SetKey(key string) {
	t.Key = key
}

// GetKey returns the database key for this track.
func (t *Track) GetKey() string {
	return t.Key
}

// GenerateTrackKey generates a database key for a track using its ID.
func GenerateTrackKey(id string) string {
	return fmt.Sprintf("%s:%s", PrefixTrack, id)
}

// NewTrack creates a new track with the given parameters.
func NewTrack(id, name string, colour Colour, instrumentID string) *Track {
	return &Track{
		Key:        GenerateTrackKey(id),
		ID:         id,
		Title:      name,
		Color:      colour,
		Instrument: instrumentID,
	}
}

// SetObserver installs the function notified on setter calls made with
// notify set. A nil observer disables notification.
func (t *Track) SetObserver(fn func(Change)) {
	t.observer = fn
}

// Name returns the display name.
func (t *Track) Name() string {
	return t.Title
}

// SetName replaces the display name.
func (t *Track) SetName(name string, notify bool) {
	old := t.Title
	t.Title = name
	if notify {
		t.emit(PropertyName, old, name)
	}
}

// Colour returns the track colour.
func (t *Track) Colour() Colour {
	return t.Color
}

// SetColour replaces the track colour.
func (t *Track) SetColour(c Colour, notify bool) {
	old := t.Color
	t.Color = c
	if notify {
		t.emit(PropertyColour, old.String(), c.String())
	}
}

// InstrumentID returns the id of the bound instrument.
func (t *Track) InstrumentID() string {
	return t.Instrument
}

// SetInstrumentID rebinds the track to another instrument.
func (t *Track) SetInstrumentID(id string, notify bool) {
	old := t.Instrument
	t.Instrument = id
	if notify {
		t.emit(PropertyInstrument, old, id)
	}
}

func (t *Track) emit(p Property, from, to string) {
	if t.observer == nil {
		return
	}
	t.observer(Change{TrackID: t.ID, Property: p, Old: from, New: to})
}
