package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/serial"
)

// Helper to create an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenClose(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		assert.NotNil(t, db)
		assert.NoError(t, db.Close())
	})

	t.Run("empty_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: ""})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		db.Close()
	})

	t.Run("on_disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "db")
		db, err := Open(Options{Path: dir})
		require.NoError(t, err)
		assert.Equal(t, dir, db.Path())
		assert.NoError(t, db.Close())
	})
}

func TestOpenLocked(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	first, err := Open(Options{Path: dir})
	require.NoError(t, err)
	defer first.Close()

	_, err = Open(Options{Path: dir})
	assert.ErrorIs(t, err, ErrLocked)
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Contains(t, path, "trackedit")
	assert.Contains(t, path, "db")
}

func TestExistsAndDelete(t *testing.T) {
	db := setupTestDB(t)
	track := model.NewTrack("t1", "Piano", model.DefaultColour, "")
	require.NoError(t, db.Set(track))

	exists, err := db.Exists(track.Key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, db.Delete(track.Key))
	exists, err = db.Exists(track.Key)
	require.NoError(t, err)
	assert.False(t, exists)

	err = db.Get(track.Key, &model.Track{})
	assert.True(t, IsErrKeyNotFound(err))
}

// =============================================================================
// TrackRepo Tests
// =============================================================================

func TestTrackRepoCreateExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTrackRepo(db)

	exists, err := repo.Exists("drums")
	require.NoError(t, err)
	assert.False(t, exists)

	track := model.NewTrack("drums", "Drums", model.RGB(0xFF, 0x57, 0x33), "kit-808")
	track.Key = ""
	require.NoError(t, repo.Create(track))
	assert.Equal(t, "track:drums", track.Key)

	exists, err = repo.Exists("drums")
	require.NoError(t, err)
	assert.True(t, exists)

	got := &model.Track{}
	require.NoError(t, db.Get("track:drums", got))
	assert.Equal(t, "drums", got.ID)
	assert.Equal(t, "Drums", got.Name())
	assert.Equal(t, model.RGB(0xFF, 0x57, 0x33), got.Colour())
	assert.Equal(t, "kit-808", got.InstrumentID())
}

func TestTrackRepoList(t *testing.T) {
	repo := NewTrackRepo(setupTestDB(t))
	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, repo.Create(model.NewTrack(id, id, model.DefaultColour, "")))
	}

	tracks, err := repo.List()
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	assert.Equal(t, "a", tracks[0].ID)
	assert.Equal(t, "track:a", tracks[0].Key)
}

func TestTrackRepoReplaceAll(t *testing.T) {
	repo := NewTrackRepo(setupTestDB(t))
	require.NoError(t, repo.Create(model.NewTrack("old", "Old", model.DefaultColour, "")))
	require.NoError(t, repo.Create(model.NewTrack("keep", "Keep", model.DefaultColour, "")))

	require.NoError(t, repo.ReplaceAll([]*model.Track{
		model.NewTrack("keep", "Kept", model.DefaultColour, ""),
		model.NewTrack("new", "New", model.DefaultColour, ""),
	}))

	tracks, err := repo.List()
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "keep", tracks[0].ID)
	assert.Equal(t, "Kept", tracks[0].Name())
	assert.Equal(t, "new", tracks[1].ID)
}

// =============================================================================
// HistoryRepo Tests
// =============================================================================

func sampleHistory() *model.HistoryState {
	rename := serial.NewNode("rename")
	rename.Set("trackId", "t1")
	rename.Set("xPathBefore", "Piano")
	rename.Set("xPathAfter", "Strings")

	colour := serial.NewNode("changeColour")
	colour.Set("trackId", "t1")
	colour.Set("colourBefore", "#000000")
	colour.Set("colourAfter", "#FF5733")

	state := model.NewHistoryState()
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	state.Undo = []model.HistoryRecord{{At: at, Node: rename}}
	state.Redo = []model.HistoryRecord{{At: at, Node: colour}}
	return state
}

func TestHistoryRepoEmpty(t *testing.T) {
	repo := NewHistoryRepo(setupTestDB(t))
	state, err := repo.Get()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestHistoryRepoSetGetClear(t *testing.T) {
	repo := NewHistoryRepo(setupTestDB(t))
	saved := sampleHistory()
	require.NoError(t, repo.Set(saved))

	got, err := repo.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Undo, 1)
	require.Len(t, got.Redo, 1)
	assert.True(t, saved.Undo[0].Node.Equal(got.Undo[0].Node))
	assert.True(t, saved.Redo[0].Node.Equal(got.Redo[0].Node))
	assert.True(t, saved.Undo[0].At.Equal(got.Undo[0].At))

	require.NoError(t, repo.Clear())
	got, err = repo.Get()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveWorkspace(t *testing.T) {
	db := setupTestDB(t)
	tracks := NewTrackRepo(db)
	require.NoError(t, tracks.Create(model.NewTrack("gone", "Gone", model.DefaultColour, "")))

	err := db.SaveWorkspace([]*model.Track{
		model.NewTrack("t1", "Strings", model.RGB(1, 2, 3), "violin"),
	}, sampleHistory())
	require.NoError(t, err)

	list, err := tracks.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Strings", list[0].Name())

	state, err := NewHistoryRepo(db).Get()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 2, state.Len())
}
