// Package document holds the in-memory track registry undo actions resolve
// their targets through.
package document

import (
	"errors"
	"fmt"
	"sort"

	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/undo"
)

// ErrDuplicateTrack is returned when adding a track whose id is taken.
var ErrDuplicateTrack = errors.New("track already exists")

// Document is a set of tracks keyed by id. It is not safe for concurrent
// use; callers serialise access.
type Document struct {
	tracks    map[string]*model.Track
	listeners map[int]func(model.Change)
	nextID    int
	dirty     bool
}

// New creates an empty document.
func New() *Document {
	return &Document{
		tracks:    make(map[string]*model.Track),
		listeners: make(map[int]func(model.Change)),
	}
}

// Load creates a document holding the given tracks.
func Load(tracks []*model.Track) (*Document, error) {
	d := New()
	for _, t := range tracks {
		if err := d.Add(t); err != nil {
			return nil, err
		}
	}
	d.dirty = false
	return d, nil
}

// Add registers a track and starts forwarding its notifications.
func (d *Document) Add(t *model.Track) error {
	if _, exists := d.tracks[t.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTrack, t.ID)
	}
	t.SetObserver(d.publish)
	d.tracks[t.ID] = t
	d.dirty = true
	return nil
}

// Remove drops a track. It reports whether the track existed.
func (d *Document) Remove(id string) bool {
	t, ok := d.tracks[id]
	if !ok {
		return false
	}
	t.SetObserver(nil)
	delete(d.tracks, id)
	d.dirty = true
	return true
}

// FindTrack implements undo.TrackSource.
func (d *Document) FindTrack(id string) (undo.Track, bool) {
	t, ok := d.tracks[id]
	if !ok {
		return nil, false
	}
	return t, true
}

// Track returns the concrete track for id.
func (d *Document) Track(id string) (*model.Track, bool) {
	t, ok := d.tracks[id]
	return t, ok
}

// Tracks returns all tracks ordered by id.
func (d *Document) Tracks() []*model.Track {
	out := make([]*model.Track, 0, len(d.tracks))
	for _, t := range d.tracks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of tracks.
func (d *Document) Len() int {
	return len(d.tracks)
}

// Subscribe registers fn for every notified property change and returns
// a function that removes it.
func (d *Document) Subscribe(fn func(model.Change)) (unsubscribe func()) {
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	return func() { delete(d.listeners, id) }
}

// Dirty reports whether anything changed since the last ClearDirty.
func (d *Document) Dirty() bool {
	return d.dirty
}

// ClearDirty marks the document as persisted.
func (d *Document) ClearDirty() {
	d.dirty = false
}

func (d *Document) publish(c model.Change) {
	d.dirty = true
	ids := make([]int, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		d.listeners[id](c)
	}
}
