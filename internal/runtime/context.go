// Package runtime provides application runtime context for Trackedit.
package runtime

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/manav03panchal/trackedit/internal/config"
	"github.com/manav03panchal/trackedit/internal/document"
	errs "github.com/manav03panchal/trackedit/internal/errors"
	"github.com/manav03panchal/trackedit/internal/history"
	"github.com/manav03panchal/trackedit/internal/logging"
	"github.com/manav03panchal/trackedit/internal/metrics"
	"github.com/manav03panchal/trackedit/internal/model"
	"github.com/manav03panchal/trackedit/internal/output"
	"github.com/manav03panchal/trackedit/internal/storage"
	"github.com/manav03panchal/trackedit/internal/undo"
)

// memoryPath selects an in-memory database when given as the database path.
const memoryPath = ":memory:"

// Context holds the application runtime context: the loaded document, its
// history and the storage they are saved to.
type Context struct {
	Config    *config.RuntimeConfig
	DB        *storage.DB
	Formatter *output.Formatter

	// Repositories
	TrackRepo   *storage.TrackRepo
	HistoryRepo *storage.HistoryRepo

	// Document and history
	Document *document.Document
	History  *history.Stack
	Metrics  *metrics.Recorder

	// Session carries the session id for log correlation.
	Session context.Context

	// Debug mode
	Debug bool

	historyChanged bool
	unsubscribe    func()
}

// Options configures the runtime context.
type Options struct {
	// ConfigPath is an explicit config file; empty uses the default location.
	ConfigPath string
	// Config skips loading when set.
	Config *config.RuntimeConfig
	// DBPath overrides the configured database path. ":memory:" selects
	// an in-memory database.
	DBPath    string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
	Writer    io.Writer
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Writer:    os.Stdout,
	}
}

// New creates a new runtime context: it loads configuration, opens the
// database and restores the document and its history.
func New(opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, errs.NewSystemErrorWithOp("load config", err.Error(), err)
		}
		cfg = loaded
	}
	initLogging(cfg, opts.Debug)

	session := logging.NewSessionContext()

	db, err := openDB(cfg, opts)
	if err != nil {
		return nil, err
	}

	c := &Context{
		Config:      cfg,
		DB:          db,
		Formatter:   newFormatter(opts),
		TrackRepo:   storage.NewTrackRepo(db),
		HistoryRepo: storage.NewHistoryRepo(db),
		Session:     session,
		Debug:       opts.Debug,
	}

	if err := c.load(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func initLogging(cfg *config.RuntimeConfig, debug bool) {
	if debug {
		logging.InitDebug()
		return
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	logCfg.JSON = cfg.Logging.JSON
	logging.Init(logCfg)
}

func openDB(cfg *config.RuntimeConfig, opts Options) (*storage.DB, error) {
	path := cfg.Storage.Path
	if opts.DBPath != "" {
		path = opts.DBPath
	}
	inMemory := opts.InMemory || cfg.Storage.InMemory || path == memoryPath
	if path == "" || path == memoryPath {
		path = storage.DefaultPath()
	}
	if inMemory {
		path = ""
	}

	db, err := storage.Open(storage.Options{Path: path, InMemory: inMemory})
	if err != nil {
		return nil, errs.NewSystemErrorWithOp("open database", "cannot open database", err)
	}
	return db, nil
}

func newFormatter(opts Options) *output.Formatter {
	formatter := output.NewFormatter()
	if opts.Format != "" {
		formatter.Format = opts.Format
	}
	if opts.ColorMode != "" {
		formatter.ColorMode = opts.ColorMode
	}
	if opts.Writer != nil {
		formatter.Writer = opts.Writer
	}
	return formatter
}

// load reads the tracks into the document and restores the history
// against it.
func (c *Context) load() error {
	tracks, err := c.TrackRepo.List()
	if err != nil {
		return errs.NewSystemErrorWithOp("load tracks", "cannot read tracks", err)
	}
	doc, err := document.Load(tracks)
	if err != nil {
		return errs.NewSystemErrorWithOp("load tracks", err.Error(), err)
	}

	recorder, err := metrics.NewRecorder()
	if err != nil {
		return errs.NewSystemErrorWithOp("init metrics", err.Error(), err)
	}

	hist := history.New(history.Options{
		MaxDepth: c.Config.History.MaxDepth,
		MaxUnits: c.Config.History.MaxUnits,
		Observer: recorder,
	})

	state, err := c.HistoryRepo.Get()
	if err != nil {
		return errs.NewSystemErrorWithOp("load history", "cannot read history", err)
	}
	if state != nil {
		skipped := hist.Restore(state, doc) + hist.Prune(doc)
		if skipped > 0 {
			logging.WarnContext(c.Session, "skipped unusable history entries",
				logging.KeyCount, skipped)
			c.historyChanged = true
		}
	}

	c.Document = doc
	c.History = hist
	c.Metrics = recorder
	c.unsubscribe = doc.Subscribe(c.logChange)

	logging.DebugContext(c.Session, "workspace loaded",
		logging.KeyCount, doc.Len(),
		logging.KeyDepth, hist.Depth(),
		logging.KeyUnits, hist.Units())
	return nil
}

func (c *Context) logChange(ch model.Change) {
	logging.DebugContext(c.Session, "track changed",
		logging.KeyTrack, ch.TrackID,
		logging.KeyProperty, string(ch.Property),
		"old", ch.Old,
		"new", ch.New)
}

// Track returns the track with the given id or a user error naming it.
func (c *Context) Track(id string) (*model.Track, error) {
	t, ok := c.Document.Track(id)
	if !ok {
		return nil, errs.UserErrorFrom(errs.ErrTrackNotFound, id)
	}
	return t, nil
}

// Perform runs a through the history.
func (c *Context) Perform(a undo.Action) error {
	if err := c.History.Perform(a); err != nil {
		return c.actionError(a, err)
	}
	c.historyChanged = true
	return nil
}

// Undo reverts the newest history entry.
func (c *Context) Undo() (history.Entry, error) {
	e, err := c.History.Undo()
	if err != nil {
		return e, c.stepError(e, err)
	}
	c.historyChanged = true
	return e, nil
}

// Redo re-applies the most recently undone entry.
func (c *Context) Redo() (history.Entry, error) {
	e, err := c.History.Redo()
	if err != nil {
		return e, c.stepError(e, err)
	}
	c.historyChanged = true
	return e, nil
}

// ClearHistory drops both stacks and removes the stored history.
func (c *Context) ClearHistory() error {
	c.History.Clear()
	if err := c.HistoryRepo.Clear(); err != nil {
		return WrapDiskFullError(err, "clear history", c.DB.Path())
	}
	c.historyChanged = false
	return nil
}

// ImportHistory replaces the history with state and returns how many
// records were skipped, either unreadable or naming a track the document
// does not have.
func (c *Context) ImportHistory(state *model.HistoryState) int {
	skipped := c.History.Restore(state, c.Document)
	skipped += c.History.Prune(c.Document)
	c.historyChanged = true
	return skipped
}

// AddTrack registers a new track and stores it.
func (c *Context) AddTrack(t *model.Track) error {
	exists, err := c.TrackRepo.Exists(t.ID)
	if err != nil {
		return errs.NewSystemErrorWithOp("create track", "cannot read tracks", err)
	}
	if _, ok := c.Document.Track(t.ID); ok || exists {
		return errs.UserErrorFrom(errs.ErrDuplicateTrack, t.ID)
	}

	wasDirty := c.Document.Dirty()
	if err := c.Document.Add(t); err != nil {
		return errs.UserErrorFrom(errs.ErrDuplicateTrack, t.ID)
	}
	if err := c.TrackRepo.Create(t); err != nil {
		return WrapDiskFullError(err, "create track", c.DB.Path())
	}
	if !wasDirty {
		c.Document.ClearDirty()
	}
	return nil
}

// RemoveTrack deletes a track together with every history entry that
// edits it, and saves both.
func (c *Context) RemoveTrack(id string) (*model.Track, error) {
	t, err := c.Track(id)
	if err != nil {
		return nil, err
	}
	c.Document.Remove(id)
	if n := c.History.Forget(id); n > 0 {
		c.historyChanged = true
		logging.DebugContext(c.Session, "dropped history of deleted track",
			logging.KeyTrack, id,
			logging.KeyCount, n)
	}
	return t, c.Save()
}

func (c *Context) actionError(a undo.Action, err error) error {
	if errs.Is(err, errs.ErrActionFailed) {
		if _, ok := c.Document.Track(a.TrackID()); !ok {
			ue := errs.UserErrorFrom(errs.ErrTrackNotFound, a.TrackID())
			ue.Cause = errors.Join(errs.ErrTrackNotFound, err)
			return ue
		}
	}
	return err
}

func (c *Context) stepError(e history.Entry, err error) error {
	if e.Action == nil {
		return errs.UserErrorFrom(err, "")
	}
	return c.actionError(e.Action, err)
}

// Dirty reports whether there is anything to save.
func (c *Context) Dirty() bool {
	return c.Document.Dirty() || c.historyChanged
}

// Save persists the document and history together when either changed.
func (c *Context) Save() error {
	if !c.Dirty() {
		return nil
	}
	var err error
	switch {
	case c.Document.Dirty() && c.historyChanged:
		err = c.DB.SaveWorkspace(c.Document.Tracks(), c.History.Snapshot())
	case c.Document.Dirty():
		err = c.TrackRepo.ReplaceAll(c.Document.Tracks())
	default:
		err = c.HistoryRepo.Set(c.History.Snapshot())
	}
	if err != nil {
		return WrapDiskFullError(err, "save", c.DB.Path())
	}
	c.Document.ClearDirty()
	c.historyChanged = false

	logging.DebugContext(c.Session, "workspace saved",
		logging.KeyCount, c.Document.Len(),
		logging.KeyDepth, c.History.Depth())
	return nil
}

// Close writes the metrics textfile, if configured, and closes the database.
func (c *Context) Close() error {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.Metrics != nil && c.Config != nil {
		if err := c.Metrics.WriteTextfile(c.Config.Metrics.TextfilePath); err != nil {
			logging.WarnContext(c.Session, "cannot write metrics textfile",
				logging.KeyError, err)
		}
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
