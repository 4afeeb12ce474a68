// Package fs persists note snapshots to the local filesystem: an atomically
// replaced latest file plus a pruned history of timestamped archives.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/daynotes/pkg/core"
)

const (
	// DefaultRetentionCount is the number of archives kept when none is configured.
	DefaultRetentionCount = 60
	// DefaultArchivePrefix is the fixed prefix of archive file names.
	DefaultArchivePrefix = "notes_"
	// DefaultArchiveExt is the extension of archive and latest files.
	DefaultArchiveExt = ".json"
	// DefaultApp identifies the writer in meta.app.
	DefaultApp = "daynotes"
	// SchemaVersion is written to meta.version.
	SchemaVersion = "1.0"
)

// Config holds the configuration for the persistence engine.
type Config struct {
	LatestPath     string // always-overwritten snapshot
	HistoryDir     string // directory for timestamped archives
	RetentionCount int    // archives kept after pruning; < 1 means DefaultRetentionCount
	ArchivePrefix  string
	ArchiveExt     string
	ArchivePattern string // doublestar glob selecting archives to prune; defaults to prefix*ext
	Range          core.Range
	App            string
	Version        string
	Perm           os.FileMode
	Logger         *slog.Logger
	Clock          func() time.Time
}

// SaveStage names the primary write that failed.
type SaveStage string

const (
	StageLatest  SaveStage = "latest"
	StageArchive SaveStage = "archive"
)

// SaveError reports a failed primary write. Pruning never produces one.
type SaveError struct {
	Stage SaveStage
	Path  string
	Err   error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save %s snapshot %s: %v", e.Stage, e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// LoadOutcome describes how startup recovery went.
type LoadOutcome int

const (
	// LoadFresh means no latest file exists yet (first run).
	LoadFresh LoadOutcome = iota
	// LoadOK means the latest file was read and validated.
	LoadOK
	// LoadRecovered means the latest file was unreadable or malformed and was ignored.
	LoadRecovered
)

func (o LoadOutcome) String() string {
	switch o {
	case LoadFresh:
		return "fresh"
	case LoadOK:
		return "ok"
	case LoadRecovered:
		return "recovered"
	default:
		return fmt.Sprintf("LoadOutcome(%d)", int(o))
	}
}

// Engine saves and restores note snapshots.
type Engine struct {
	config Config
	logger *slog.Logger
	codec  Serializer

	// saveMu serializes whole save operations.
	saveMu sync.Mutex

	mu            sync.RWMutex
	lastSave      *time.Time
	lastArchive   string
	lastPruned    int
	lastLoad      *LoadOutcome
	watcherActive bool
}

// NewEngine validates config, fills defaults and returns an Engine.
func NewEngine(config Config) (*Engine, error) {
	if config.LatestPath == "" {
		return nil, errors.New("latest path is required")
	}
	if config.HistoryDir == "" {
		return nil, errors.New("history directory is required")
	}
	if config.RetentionCount < 1 {
		config.RetentionCount = DefaultRetentionCount
	}
	if config.ArchivePrefix == "" {
		config.ArchivePrefix = DefaultArchivePrefix
	}
	if config.ArchiveExt == "" {
		config.ArchiveExt = DefaultArchiveExt
	}
	if config.ArchivePattern == "" {
		config.ArchivePattern = config.ArchivePrefix + "*" + config.ArchiveExt
	}
	if !doublestar.ValidatePattern(config.ArchivePattern) {
		return nil, fmt.Errorf("invalid archive pattern %q", config.ArchivePattern)
	}
	if config.App == "" {
		config.App = DefaultApp
	}
	if config.Version == "" {
		config.Version = SchemaVersion
	}
	if config.Perm == 0 {
		config.Perm = 0644
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		config: config,
		logger: logger,
		codec:  NewJSONSerializer(),
	}
	// Archives the pattern does not match would never be pruned.
	if sample := e.archiveName(time.Now()); !e.isArchive(sample) {
		return nil, fmt.Errorf("archive pattern %q does not match archive names such as %q", config.ArchivePattern, sample)
	}
	return e, nil
}

// Config returns the effective configuration, defaults applied.
func (e *Engine) Config() Config {
	return e.config
}

// Snapshot builds an immutable snapshot of src stamped with the current time.
func (e *Engine) Snapshot(src core.NoteSource) core.Snapshot {
	return core.NewSnapshot(src.All(), core.Meta{
		SavedAt: e.config.Clock(),
		Range:   e.config.Range,
		App:     e.config.App,
		Version: e.config.Version,
	})
}

// Save writes the notes of src to the latest file and to a new archive, both
// atomically, then prunes the history. Only the two writes can fail the save.
func (e *Engine) Save(ctx context.Context, src core.NoteSource) error {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	snap := e.Snapshot(src)
	data, err := e.codec.Serialize(snap)
	if err != nil {
		return &SaveError{Stage: StageLatest, Path: e.config.LatestPath, Err: err}
	}

	if err := e.write(e.config.LatestPath, data); err != nil {
		return &SaveError{Stage: StageLatest, Path: e.config.LatestPath, Err: err}
	}

	archivePath := filepath.Join(e.config.HistoryDir, e.archiveName(snap.Meta.SavedAt))
	if err := e.write(archivePath, data); err != nil {
		return &SaveError{Stage: StageArchive, Path: archivePath, Err: err}
	}

	e.mu.Lock()
	savedAt := snap.Meta.SavedAt
	e.lastSave = &savedAt
	e.lastArchive = filepath.Base(archivePath)
	e.mu.Unlock()

	e.logger.DebugContext(ctx, "snapshot saved",
		"latest", e.config.LatestPath,
		"archive", archivePath,
		"notes", snap.Len(),
	)

	e.Prune(ctx)
	return nil
}

func (e *Engine) write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return writeFileAtomic(path, data, e.config.Perm)
}

// LoadLatest reads the latest file. It never fails: a missing file yields an
// empty mapping (first run) and an unreadable or malformed one is logged and
// ignored. Temp files left by an interrupted save are cleared first.
func (e *Engine) LoadLatest(ctx context.Context) (map[core.Day]string, LoadOutcome) {
	e.sweepTemp(ctx)
	notes, outcome := e.loadLatest(ctx)

	e.mu.Lock()
	e.lastLoad = &outcome
	e.mu.Unlock()

	return notes, outcome
}

func (e *Engine) loadLatest(ctx context.Context) (map[core.Day]string, LoadOutcome) {
	path := e.config.LatestPath

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			e.logger.DebugContext(ctx, "no saved notes yet", "path", path)
			return map[core.Day]string{}, LoadFresh
		}
		e.logger.WarnContext(ctx, "failed to read saved notes, starting empty", "path", path, "error", err)
		return map[core.Day]string{}, LoadRecovered
	}

	dec, err := e.codec.Parse(bytes.NewReader(data))
	if err != nil {
		e.logger.WarnContext(ctx, "saved notes are malformed, starting empty", "path", path, "error", err)
		return map[core.Day]string{}, LoadRecovered
	}
	for _, reason := range dec.Dropped {
		e.logger.WarnContext(ctx, "dropped entry from saved notes", "path", path, "reason", reason)
	}

	e.logger.DebugContext(ctx, "loaded saved notes", "path", path, "notes", dec.Snapshot.Len())
	return dec.Snapshot.Notes(), LoadOK
}

// sweepTemp clears temp files left by a save that crashed before its rename.
func (e *Engine) sweepTemp(ctx context.Context) {
	for _, dir := range []string{filepath.Dir(e.config.LatestPath), e.config.HistoryDir} {
		removed, err := sweepTempFiles(dir, StaleTempAge, time.Now())
		if err != nil {
			e.logger.WarnContext(ctx, "failed to clear leftover temp files", "dir", dir, "error", err)
		}
		if len(removed) > 0 {
			e.logger.InfoContext(ctx, "cleared leftover temp files", "dir", dir, "removed", len(removed))
		}
	}
}

// LoadArchive reads one archive from the history directory by file name.
func (e *Engine) LoadArchive(ctx context.Context, name string) (core.Snapshot, error) {
	if name != filepath.Base(name) || !e.isArchive(name) {
		return core.Snapshot{}, fmt.Errorf("%w: %q", core.ErrArchiveNotFound, name)
	}

	path := filepath.Join(e.config.HistoryDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return core.Snapshot{}, fmt.Errorf("%w: %q", core.ErrArchiveNotFound, name)
		}
		return core.Snapshot{}, fmt.Errorf("failed to read archive %s: %w", name, err)
	}

	dec, err := e.codec.Parse(bytes.NewReader(data))
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("archive %s: %w", name, err)
	}
	for _, reason := range dec.Dropped {
		e.logger.WarnContext(ctx, "dropped entry from archive", "archive", name, "reason", reason)
	}
	return dec.Snapshot, nil
}
