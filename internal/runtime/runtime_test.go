package runtime

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/trackedit/internal/config"
	errs "github.com/manav03panchal/trackedit/internal/errors"
	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/output"
	"github.com/manav03panchal/trackedit/internal/serial"
	"github.com/manav03panchal/trackedit/internal/undo"
)

func testConfig() *config.RuntimeConfig {
	cfg := config.DefaultRuntimeConfig()
	cfg.Storage.InMemory = true
	return cfg
}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	ctx, err := New(Options{Config: testConfig(), Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	t.Cleanup(func() { ctx.Close() })
	return ctx
}

// diskOptions returns options for a database that survives Close.
func diskOptions(t *testing.T) Options {
	cfg := config.DefaultRuntimeConfig()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "db")
	return Options{Config: cfg, Writer: &bytes.Buffer{}}
}

// =============================================================================
// Context Tests
// =============================================================================

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.False(t, opts.InMemory)
	assert.Equal(t, output.FormatCLI, opts.Format)
	assert.Equal(t, output.ColorAuto, opts.ColorMode)
	assert.Equal(t, os.Stdout, opts.Writer)
	assert.False(t, opts.Debug)
}

func TestNew(t *testing.T) {
	ctx := newTestContext(t)

	assert.NotNil(t, ctx.DB)
	assert.NotNil(t, ctx.Formatter)
	assert.NotNil(t, ctx.TrackRepo)
	assert.NotNil(t, ctx.HistoryRepo)
	assert.NotNil(t, ctx.Document)
	assert.NotNil(t, ctx.History)
	assert.NotNil(t, ctx.Metrics)
	assert.NotNil(t, ctx.Session)
	assert.Equal(t, 0, ctx.Document.Len())
	assert.False(t, ctx.Dirty())
}

func TestNewWithOptions(t *testing.T) {
	ctx, err := New(Options{
		Config:    testConfig(),
		Format:    output.FormatJSON,
		ColorMode: output.ColorNever,
	})
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, output.FormatJSON, ctx.Formatter.Format)
	assert.Equal(t, output.ColorNever, ctx.Formatter.ColorMode)
	assert.True(t, ctx.IsJSON())
	assert.False(t, ctx.IsCLI())
}

func TestNewMemoryPath(t *testing.T) {
	ctx, err := New(Options{Config: config.DefaultRuntimeConfig(), DBPath: ":memory:"})
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, "", ctx.DB.Path())
}

func TestNewWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("storage:\n  path: %s\nhistory:\n  max_depth: 2\n", filepath.Join(dir, "db"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0644))

	ctx, err := New(Options{ConfigPath: cfgPath, Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, filepath.Join(dir, "db"), ctx.DB.Path())
	assert.Equal(t, 2, ctx.Config.History.MaxDepth)
}

func TestNewMissingConfigFile(t *testing.T) {
	_, err := New(Options{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.True(t, errs.IsSystemError(err))
}

func TestContextClose(t *testing.T) {
	ctx, err := New(Options{Config: testConfig()})
	require.NoError(t, err)
	assert.NoError(t, ctx.Close())
}

func TestContextCloseWritesMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.TextfilePath = filepath.Join(t.TempDir(), "trackedit.prom")

	ctx, err := New(Options{Config: cfg})
	require.NoError(t, err)
	require.NoError(t, ctx.Document.Add(model.NewTrack("t1", "Piano", model.DefaultColour, "")))
	require.NoError(t, ctx.Perform(undo.NewRenameAction(ctx.Document, "t1", "Strings")))
	require.NoError(t, ctx.Close())

	data, err := os.ReadFile(cfg.Metrics.TextfilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `trackedit_history_actions_performed_total{kind="rename"} 1`)
}

func TestContextFormatters(t *testing.T) {
	ctx := newTestContext(t)
	assert.NotNil(t, ctx.CLIFormatter())
	assert.NotNil(t, ctx.JSONFormatter())
}

func TestContextDebugf(t *testing.T) {
	t.Run("debug_enabled", func(t *testing.T) {
		var buf bytes.Buffer
		ctx, err := New(Options{Config: testConfig(), Debug: true, Writer: &buf})
		require.NoError(t, err)
		defer ctx.Close()

		ctx.Debugf("test message %s", "arg1")

		assert.Contains(t, buf.String(), "[DEBUG]")
		assert.Contains(t, buf.String(), "test message arg1")
	})

	t.Run("debug_disabled", func(t *testing.T) {
		var buf bytes.Buffer
		ctx, err := New(Options{Config: testConfig(), Writer: &buf})
		require.NoError(t, err)
		defer ctx.Close()

		ctx.Debugf("test message")

		assert.Empty(t, buf.String())
	})
}

// =============================================================================
// Workspace Tests
// =============================================================================

func TestTrackLookup(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Document.Add(model.NewTrack("t1", "Piano", model.DefaultColour, "")))

	track, err := ctx.Track("t1")
	require.NoError(t, err)
	assert.Equal(t, "Piano", track.Name())

	_, err = ctx.Track("missing")
	assert.ErrorIs(t, err, errs.ErrTrackNotFound)
	assert.True(t, errs.IsUserError(err))
}

func TestPerformUndoRedo(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Document.Add(model.NewTrack("t1", "Piano", model.DefaultColour, "")))

	require.NoError(t, ctx.Perform(undo.NewRenameAction(ctx.Document, "t1", "Strings")))
	track, _ := ctx.Track("t1")
	assert.Equal(t, "Strings", track.Name())
	assert.True(t, ctx.Dirty())

	e, err := ctx.Undo()
	require.NoError(t, err)
	assert.Equal(t, undo.KindRename, e.Action.Kind())
	assert.Equal(t, "Piano", track.Name())

	_, err = ctx.Redo()
	require.NoError(t, err)
	assert.Equal(t, "Strings", track.Name())
}

func TestUndoRedoEmpty(t *testing.T) {
	ctx := newTestContext(t)

	_, err := ctx.Undo()
	assert.ErrorIs(t, err, errs.ErrNothingToUndo)
	assert.True(t, errs.IsUserError(err))

	_, err = ctx.Redo()
	assert.ErrorIs(t, err, errs.ErrNothingToRedo)
}

func TestPerformMissingTrack(t *testing.T) {
	ctx := newTestContext(t)

	err := ctx.Perform(undo.NewRenameAction(ctx.Document, "ghost", "Strings"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTrackNotFound)
	assert.ErrorIs(t, err, errs.ErrActionFailed)
	assert.Equal(t, 0, ctx.History.Depth())
	assert.False(t, ctx.Dirty())
}

func TestUndoAfterTrackDeleted(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Document.Add(model.NewTrack("t1", "Piano", model.DefaultColour, "")))
	require.NoError(t, ctx.Perform(undo.NewChangeInstrumentAction(ctx.Document, "t1", "violin")))
	require.True(t, ctx.Document.Remove("t1"))

	_, err := ctx.Undo()
	assert.ErrorIs(t, err, errs.ErrTrackNotFound)
	assert.Equal(t, 1, ctx.History.Depth())
}

func TestSaveAndReload(t *testing.T) {
	opts := diskOptions(t)

	ctx, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, ctx.Document.Add(model.NewTrack("t1", "Piano", model.DefaultColour, "")))
	require.NoError(t, ctx.Perform(undo.NewChangeColourAction(ctx.Document, "t1", model.RGB(0xFF, 0x57, 0x33))))
	require.NoError(t, ctx.Perform(undo.NewRenameAction(ctx.Document, "t1", "Strings")))
	_, err = ctx.Undo()
	require.NoError(t, err)
	require.NoError(t, ctx.Save())
	assert.False(t, ctx.Dirty())
	require.NoError(t, ctx.Close())

	reloaded, err := New(opts)
	require.NoError(t, err)
	defer reloaded.Close()

	track, err := reloaded.Track("t1")
	require.NoError(t, err)
	assert.Equal(t, "Piano", track.Name())
	assert.Equal(t, model.RGB(0xFF, 0x57, 0x33), track.Colour())
	assert.Equal(t, 1, reloaded.History.Depth())
	assert.True(t, reloaded.History.CanRedo())

	// The restored entries act on the reloaded document.
	_, err = reloaded.Redo()
	require.NoError(t, err)
	assert.Equal(t, "Strings", track.Name())

	_, err = reloaded.Undo()
	require.NoError(t, err)
	_, err = reloaded.Undo()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultColour, track.Colour())
}

func TestSaveNoop(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Save())

	state, err := ctx.HistoryRepo.Get()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestClearHistory(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Document.Add(model.NewTrack("t1", "Piano", model.DefaultColour, "")))
	require.NoError(t, ctx.Perform(undo.NewRenameAction(ctx.Document, "t1", "Strings")))
	require.NoError(t, ctx.Save())

	require.NoError(t, ctx.ClearHistory())
	assert.False(t, ctx.Dirty())
	assert.Equal(t, 0, ctx.History.Len())

	state, err := ctx.HistoryRepo.Get()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestImportHistory(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Document.Add(model.NewTrack("t1", "Piano", model.DefaultColour, "")))

	rename := serial.NewNode("rename")
	rename.Set("trackId", "t1")
	rename.Set("xPathBefore", "Piano")
	rename.Set("xPathAfter", "Strings")

	state := model.NewHistoryState()
	state.Undo = []model.HistoryRecord{
		{Node: rename},
		{Node: serial.NewNode("splitClip")},
	}

	skipped := ctx.ImportHistory(state)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, 1, ctx.History.Depth())
	assert.True(t, ctx.Dirty())

	// Importing does not apply anything to the document.
	track, _ := ctx.Track("t1")
	assert.Equal(t, "Piano", track.Name())
}

func TestImportHistoryPrunesMissingTracks(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Document.Add(model.NewTrack("t1", "Piano", model.DefaultColour, "")))

	ghost := serial.NewNode("rename")
	ghost.Set("trackId", "gone")
	ghost.Set("xPathBefore", "Old")
	ghost.Set("xPathAfter", "New")

	state := model.NewHistoryState()
	state.Redo = []model.HistoryRecord{{Node: ghost}}

	assert.Equal(t, 1, ctx.ImportHistory(state))
	assert.Equal(t, 0, ctx.History.Len())
}

func TestAddTrack(t *testing.T) {
	ctx := newTestContext(t)

	require.NoError(t, ctx.AddTrack(model.NewTrack("t1", "Piano", model.DefaultColour, "")))
	assert.False(t, ctx.Dirty())
	exists, err := ctx.TrackRepo.Exists("t1")
	require.NoError(t, err)
	assert.True(t, exists)

	err = ctx.AddTrack(model.NewTrack("t1", "Other", model.DefaultColour, ""))
	assert.ErrorIs(t, err, errs.ErrDuplicateTrack)
	assert.True(t, errs.IsUserError(err))

	// A stored track the document has not loaded still counts.
	require.NoError(t, ctx.TrackRepo.Create(model.NewTrack("t2", "Bass", model.DefaultColour, "")))
	err = ctx.AddTrack(model.NewTrack("t2", "Bass", model.DefaultColour, ""))
	assert.ErrorIs(t, err, errs.ErrDuplicateTrack)
	_, ok := ctx.Document.Track("t2")
	assert.False(t, ok)
}

func TestRemoveTrackForgetsHistory(t *testing.T) {
	opts := diskOptions(t)

	ctx, err := New(opts)
	require.NoError(t, err)
	require.NoError(t, ctx.AddTrack(model.NewTrack("t1", "Piano", model.DefaultColour, "")))
	require.NoError(t, ctx.AddTrack(model.NewTrack("t2", "Bass", model.DefaultColour, "")))
	require.NoError(t, ctx.Perform(undo.NewRenameAction(ctx.Document, "t1", "Strings")))
	require.NoError(t, ctx.Perform(undo.NewRenameAction(ctx.Document, "t2", "Bass (DI)")))
	require.NoError(t, ctx.Save())

	removed, err := ctx.RemoveTrack("t2")
	require.NoError(t, err)
	assert.Equal(t, "t2", removed.ID)
	assert.Equal(t, 1, ctx.History.Depth())
	assert.False(t, ctx.Dirty())
	require.NoError(t, ctx.Close())

	reloaded, err := New(opts)
	require.NoError(t, err)
	defer reloaded.Close()

	_, err = reloaded.Track("t2")
	assert.ErrorIs(t, err, errs.ErrTrackNotFound)
	assert.Equal(t, 1, reloaded.History.Depth())

	// The older entry is no longer blocked by the deleted track.
	_, err = reloaded.Undo()
	require.NoError(t, err)
	track, _ := reloaded.Track("t1")
	assert.Equal(t, "Piano", track.Name())

	_, err = reloaded.RemoveTrack("t2")
	assert.ErrorIs(t, err, errs.ErrTrackNotFound)
}

func TestSaveTracksOnly(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Document.Add(model.NewTrack("t1", "Piano", model.DefaultColour, "")))
	require.NoError(t, ctx.Save())

	tracks, err := ctx.TrackRepo.List()
	require.NoError(t, err)
	require.Len(t, tracks, 1)

	state, err := ctx.HistoryRepo.Get()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSaveHistoryOnly(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.AddTrack(model.NewTrack("t1", "Piano", model.DefaultColour, "")))

	rename := serial.NewNode("rename")
	rename.Set("trackId", "t1")
	rename.Set("xPathBefore", "Piano")
	rename.Set("xPathAfter", "Strings")
	state := model.NewHistoryState()
	state.Undo = []model.HistoryRecord{{Node: rename}}

	ctx.ImportHistory(state)
	assert.False(t, ctx.Document.Dirty())
	require.NoError(t, ctx.Save())
	assert.False(t, ctx.Dirty())

	stored, err := ctx.HistoryRepo.Get()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.Len())

	tracks, err := ctx.TrackRepo.List()
	require.NoError(t, err)
	assert.Len(t, tracks, 1)
}

// =============================================================================
// Error Tests
// =============================================================================

func TestGetSuggestion(t *testing.T) {
	assert.NotEmpty(t, GetSuggestion(errs.ErrTrackNotFound))
	assert.Empty(t, GetSuggestion(errors.New("odd")))
}

func TestFormatError(t *testing.T) {
	err := errs.Wrap(errs.ErrNothingToUndo, "undo")

	user := FormatError(err, false)
	assert.Contains(t, user, "undo: nothing to undo")
	assert.NotContains(t, user, "Error chain")

	debug := FormatError(err, true)
	assert.Contains(t, debug, "Error chain")
	assert.Contains(t, debug, "Category: user")
}

func TestNewDiskFullError(t *testing.T) {
	cause := errors.New("write failed")
	err := NewDiskFullError("save", "/data/db", cause)

	assert.Equal(t, "disk full during save on /data/db: write failed", err.Error())
	assert.ErrorIs(t, err, errs.ErrDiskFull)
	assert.ErrorIs(t, err, cause)
}

func TestDiskFullErrorWithoutPath(t *testing.T) {
	err := NewDiskFullError("save", "", errors.New("x"))
	assert.Equal(t, "disk full during save: x", err.Error())
}

func TestIsDiskFullError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"typed", NewDiskFullError("save", "", errors.New("x")), true},
		{"sentinel", fmt.Errorf("wrap: %w", errs.ErrDiskFull), true},
		{"enospc", fmt.Errorf("write: %w", syscall.ENOSPC), true},
		{"message", errors.New("write /db/000001.vlog: No space left on device"), true},
		{"other", errors.New("permission denied"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDiskFullError(tt.err))
		})
	}
}

func TestWrapDiskFullError(t *testing.T) {
	assert.Nil(t, WrapDiskFullError(nil, "save", ""))

	plain := errors.New("other")
	assert.Equal(t, plain, WrapDiskFullError(plain, "save", ""))

	wrapped := WrapDiskFullError(syscall.ENOSPC, "save", "/db")
	var dfe *DiskFullError
	require.ErrorAs(t, wrapped, &dfe)
	assert.Equal(t, "save", dfe.Op)
	assert.Equal(t, errs.ExitSystem, errs.ExitCode(wrapped))
}
