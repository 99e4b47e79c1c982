package storage

import (
	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/trackedit/internal/model"
)

// HistoryRepo stores the persisted undo/redo history.
type HistoryRepo struct {
	db *DB
}

// NewHistoryRepo creates a new history repository.
func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Get retrieves the stored history, or nil when none was saved.
func (r *HistoryRepo) Get() (*model.HistoryState, error) {
	state := &model.HistoryState{}
	if err := r.db.Get(model.KeyHistory, state); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return state, nil
}

// Set saves the history.
func (r *HistoryRepo) Set(state *model.HistoryState) error {
	state.Key = model.KeyHistory
	return r.db.Set(state)
}

// Clear removes the stored history.
func (r *HistoryRepo) Clear() error {
	return r.db.Delete(model.KeyHistory)
}

// SaveWorkspace persists the whole track set together with the history in
// a single transaction, so a crash never leaves a history that refers to
// edits the stored tracks do not reflect.
func (d *DB) SaveWorkspace(tracks []*model.Track, state *model.HistoryState) error {
	state.Key = model.KeyHistory
	encodedTracks, err := encodeAll(trackModels(tracks)...)
	if err != nil {
		return err
	}
	encodedHistory, err := encodeAll(state)
	if err != nil {
		return err
	}

	return d.db.Update(func(txn *badger.Txn) error {
		if err := replaceIn(txn, model.PrefixTrack+":", encodedTracks); err != nil {
			return err
		}
		return txn.Set([]byte(model.KeyHistory), encodedHistory[model.KeyHistory])
	})
}
