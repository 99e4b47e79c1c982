package storage

import (
	"github.com/manav03panchal/trackedit/internal/model"
)

// TrackRepo provides operations for Track entities.
type TrackRepo struct {
	db *DB
}

// NewTrackRepo creates a new track repository.
func NewTrackRepo(db *DB) *TrackRepo {
	return &TrackRepo{db: db}
}

// Create stores a new track.
func (r *TrackRepo) Create(track *model.Track) error {
	track.Key = model.GenerateTrackKey(track.ID)
	return r.db.Set(track)
}

// List retrieves all tracks ordered by key.
func (r *TrackRepo) List() ([]*model.Track, error) {
	return GetAllByPrefix(r.db, model.PrefixTrack+":", func() *model.Track {
		return &model.Track{}
	})
}

// Exists checks if a track exists by ID.
func (r *TrackRepo) Exists(id string) (bool, error) {
	return r.db.Exists(model.GenerateTrackKey(id))
}

// ReplaceAll makes the stored track set equal to tracks.
func (r *TrackRepo) ReplaceAll(tracks []*model.Track) error {
	return r.db.Replace(model.PrefixTrack+":", trackModels(tracks)...)
}

func trackModels(tracks []*model.Track) []model.Model {
	models := make([]model.Model, len(tracks))
	for i, t := range tracks {
		t.Key = model.GenerateTrackKey(t.ID)
		models[i] = t
	}
	return models
}
