package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/trackedit/internal/document"
	"github.com/manav03panchal/trackedit/internal/history"
	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/undo"
)

func TestRecorderCounts(t *testing.T) {
	r, err := NewRecorder()
	require.NoError(t, err)

	r.Performed(undo.KindRename)
	r.Performed(undo.KindRename)
	r.Undone(undo.KindChangeColour)
	r.Redone(undo.KindChangeColour)
	r.Failed(undo.KindChangeInstrument, history.OpUndo)
	r.Resized(3, 42)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.performed.WithLabelValues("rename")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.undone.WithLabelValues("changeColour")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.redone.WithLabelValues("changeColour")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failed.WithLabelValues("changeInstrument", "undo")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.depth))
	assert.Equal(t, 42.0, testutil.ToFloat64(r.units))
}

func TestRecorderObservesHistory(t *testing.T) {
	r, err := NewRecorder()
	require.NoError(t, err)

	doc, err := document.Load([]*model.Track{model.NewTrack("t1", "Piano", model.DefaultColour, "")})
	require.NoError(t, err)

	h := history.New(history.Options{Observer: r})
	require.NoError(t, h.Perform(undo.NewRenameAction(doc, "t1", "Strings")))
	assert.Error(t, h.Perform(undo.NewRenameAction(doc, "missing", "x")))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.performed.WithLabelValues("rename")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failed.WithLabelValues("rename", "perform")))
	assert.Equal(t, float64(len("Piano")+len("Strings")), testutil.ToFloat64(r.units))
}

func TestWriteTextfile(t *testing.T) {
	r, err := NewRecorder()
	require.NoError(t, err)
	r.Performed(undo.KindRename)

	require.NoError(t, r.WriteTextfile(""))

	path := filepath.Join(t.TempDir(), "trackedit.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `trackedit_history_actions_performed_total{kind="rename"} 1`)
}
