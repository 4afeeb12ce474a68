package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/daynotes/pkg/adapters/fs"
	"github.com/aretw0/daynotes/pkg/core"
)

// Session owns the note store and its persistence for one application run.
// Presentation code reads through Note/Notes and mutates through Edit/Clear;
// every confirmed edit is saved immediately.
type Session struct {
	store  *core.Store
	engine *fs.Engine
	rng    core.Range
	logger *slog.Logger
}

// Open loads the latest saved notes into the store. It never fails; the
// outcome tells a fresh start from a recovered one.
func (s *Session) Open(ctx context.Context) fs.LoadOutcome {
	notes, outcome := s.engine.LoadLatest(ctx)
	s.store.Replace(notes)
	s.logger.DebugContext(ctx, "session opened", "outcome", outcome.String(), "notes", s.store.Len())
	return outcome
}

// Note returns the note for day, if any.
func (s *Session) Note(day core.Day) (string, bool) {
	return s.store.Get(day)
}

// Notes returns a copy of every note.
func (s *Session) Notes() map[core.Day]string {
	return s.store.All()
}

// Range returns the editable calendar range.
func (s *Session) Range() core.Range {
	return s.rng
}

// Edit sets the note for day and saves. Blank text clears the day.
// Days outside the calendar range are rejected before anything changes.
func (s *Session) Edit(ctx context.Context, day core.Day, text string) error {
	if !s.rng.Contains(day) {
		return fmt.Errorf("%w: %s not in %s", core.ErrOutOfRange, day, s.rng)
	}
	s.store.Set(day, text)
	return s.Save(ctx)
}

// Clear removes the note for day and saves.
func (s *Session) Clear(ctx context.Context, day core.Day) error {
	return s.Edit(ctx, day, "")
}

// Save persists the current store.
func (s *Session) Save(ctx context.Context) error {
	if err := s.engine.Save(ctx, s.store); err != nil {
		s.logger.ErrorContext(ctx, "save failed", "error", err)
		return err
	}
	return nil
}

// Restore replaces the store with an archived snapshot and saves it as the
// new current state.
func (s *Session) Restore(ctx context.Context, archive string) error {
	snap, err := s.engine.LoadArchive(ctx, archive)
	if err != nil {
		return err
	}
	s.store.Replace(snap.Notes())
	s.logger.InfoContext(ctx, "restored archive", "archive", archive, "notes", snap.Len())
	return s.Save(ctx)
}

// Snapshot returns an immutable export of the current notes.
func (s *Session) Snapshot() core.Snapshot {
	return s.engine.Snapshot(s.store)
}

// History lists saved archives, newest first.
func (s *Session) History(ctx context.Context) ([]fs.Archive, error) {
	return s.engine.History(ctx)
}

// Watch reports changes to the latest file.
func (s *Session) Watch(ctx context.Context) (<-chan core.Event, error) {
	return s.engine.Watch(ctx)
}

// Close performs the final save on shutdown.
func (s *Session) Close(ctx context.Context) error {
	return s.Save(ctx)
}

// Store exposes the underlying note store.
func (s *Session) Store() *core.Store {
	return s.store
}

// Engine exposes the underlying persistence engine.
func (s *Session) Engine() *fs.Engine {
	return s.engine
}
