package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/daynotes/internal/config"
	"github.com/aretw0/daynotes/pkg/adapters/fs"
	"github.com/aretw0/daynotes/pkg/core"
)

func testClock() func() time.Time {
	next := time.Date(2025, time.November, 1, 8, 0, 0, 0, time.Local)
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}

func newTestSession(t *testing.T, base string, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithBaseDir(base), WithClock(testClock())}, opts...)
	sess, err := New(nil, opts...)
	require.NoError(t, err)
	return sess
}

func TestSession_RememberTheMeeting(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()
	day := core.MustParseDay("2025-11-01")

	sess := newTestSession(t, base)
	assert.Equal(t, fs.LoadFresh, sess.Open(ctx))
	require.NoError(t, sess.Edit(ctx, day, "Remember the meeting"))
	require.NoError(t, sess.Close(ctx))

	// Restart
	restarted := newTestSession(t, base)
	assert.Equal(t, fs.LoadOK, restarted.Open(ctx))

	note, ok := restarted.Note(day)
	require.True(t, ok)
	assert.Equal(t, "Remember the meeting", note)

	_, err := os.Stat(filepath.Join(base, "saves", "calendar_notes.json"))
	assert.NoError(t, err, "latest file should live under saves/")
}

func TestSession_EditTrimsAndClears(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t, t.TempDir())
	sess.Open(ctx)
	day := core.MustParseDay("2025-09-15")

	require.NoError(t, sess.Edit(ctx, day, "  "))
	_, ok := sess.Note(day)
	assert.False(t, ok, "whitespace-only note must not be stored")

	require.NoError(t, sess.Edit(ctx, day, "\tlunch  "))
	note, _ := sess.Note(day)
	assert.Equal(t, "lunch", note)

	require.NoError(t, sess.Clear(ctx, day))
	_, ok = sess.Note(day)
	assert.False(t, ok)
	assert.Empty(t, sess.Notes())
}

func TestSession_EditOutOfRange(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t, t.TempDir())

	for _, d := range []string{"2025-08-31", "2025-12-02", "2024-10-01"} {
		err := sess.Edit(ctx, core.MustParseDay(d), "nope")
		assert.True(t, errors.Is(err, core.ErrOutOfRange), "%s: expected ErrOutOfRange, got %v", d, err)
	}
	assert.Empty(t, sess.Notes())

	// Bounds are editable
	assert.NoError(t, sess.Edit(ctx, core.MustParseDay("2025-09-01"), "first"))
	assert.NoError(t, sess.Edit(ctx, core.MustParseDay("2025-12-01"), "last"))
}

func TestSession_SixtyFiveSaves(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()
	sess := newTestSession(t, base)
	sess.Open(ctx)

	for i := 0; i < 65; i++ {
		require.NoError(t, sess.Edit(ctx, core.MustParseDay("2025-10-01"), fmt.Sprintf("revision %d", i)))
	}

	entries, err := os.ReadDir(filepath.Join(base, "saves", "history"))
	require.NoError(t, err)
	assert.Len(t, entries, 60)

	history, err := sess.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 60)
	assert.Equal(t, "notes_20251101_080104.json", history[0].Name)
}

func TestSession_WithRetention(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()
	sess := newTestSession(t, base, WithRetention(3))

	for i := 0; i < 5; i++ {
		require.NoError(t, sess.Save(ctx))
	}

	history, err := sess.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestSession_OpenRecoversFromCorruptFile(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()

	latest := filepath.Join(base, "saves", "calendar_notes.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(latest), 0755))
	require.NoError(t, os.WriteFile(latest, []byte(`{"notes": [1, 2, 3]}`), 0644))

	sess := newTestSession(t, base)
	assert.Equal(t, fs.LoadRecovered, sess.Open(ctx))
	assert.Empty(t, sess.Notes())

	// Saving afterwards replaces the corrupt file
	require.NoError(t, sess.Edit(ctx, core.MustParseDay("2025-10-05"), "fresh start"))
	again := newTestSession(t, base)
	assert.Equal(t, fs.LoadOK, again.Open(ctx))
}

func TestSession_SaveFailureSurfaces(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()

	// A regular file where the saves directory should be
	require.NoError(t, os.WriteFile(filepath.Join(base, "saves"), []byte("x"), 0644))

	sess := newTestSession(t, base)
	err := sess.Edit(ctx, core.MustParseDay("2025-10-05"), "cannot persist")

	var saveErr *fs.SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, fs.StageLatest, saveErr.Stage)

	// The in-memory edit is kept so a later save can succeed
	note, ok := sess.Note(core.MustParseDay("2025-10-05"))
	assert.True(t, ok)
	assert.Equal(t, "cannot persist", note)
}

func TestSession_Restore(t *testing.T) {
	base := t.TempDir()
	ctx := context.Background()
	sess := newTestSession(t, base)
	day := core.MustParseDay("2025-10-31")

	require.NoError(t, sess.Edit(ctx, day, "costume party"))
	history, err := sess.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	first := history[0].Name

	require.NoError(t, sess.Edit(ctx, day, "cancelled"))
	require.NoError(t, sess.Restore(ctx, first))

	note, _ := sess.Note(day)
	assert.Equal(t, "costume party", note)

	history, err = sess.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 3, "a restore is saved as a new snapshot")

	err = sess.Restore(ctx, "notes_19990101_000000.json")
	assert.ErrorIs(t, err, core.ErrArchiveNotFound)
}

func TestSession_ConfigOverrides(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Calendar.Start = "2026-01-01"
	cfg.Calendar.End = "2026-01-31"
	cfg.Storage.Dir = "data"
	cfg.Storage.ArchivePrefix = "snap_"

	sess, err := New(cfg, WithBaseDir(base), WithClock(testClock()))
	require.NoError(t, err)

	ctx := context.Background()
	assert.ErrorIs(t, sess.Edit(ctx, core.MustParseDay("2025-10-01"), "x"), core.ErrOutOfRange)
	require.NoError(t, sess.Edit(ctx, core.MustParseDay("2026-01-15"), "x"))

	_, err = os.Stat(filepath.Join(base, "data", "history", "snap_20251101_080000.json"))
	assert.NoError(t, err)

	cfg.Storage.ArchivePattern = "notes_*.json"
	_, err = New(cfg, WithBaseDir(base))
	assert.Error(t, err, "pattern must match the archives it prunes")

	cfg.Storage.ArchivePattern = ""
	cfg.Retention.Count = 0
	_, err = New(cfg, WithBaseDir(base))
	assert.Error(t, err)
}

func TestSession_State(t *testing.T) {
	ctx := context.Background()
	sess := newTestSession(t, t.TempDir())
	sess.Open(ctx)
	require.NoError(t, sess.Edit(ctx, core.MustParseDay("2025-09-20"), "x"))

	state, ok := sess.State().(SessionState)
	require.True(t, ok)
	assert.Equal(t, "2025-09-01..2025-12-01", state.Range)

	storeState, ok := state.Store.(core.StoreState)
	require.True(t, ok)
	assert.Equal(t, 1, storeState.Notes)

	engineState, ok := state.Persistence.(fs.EngineState)
	require.True(t, ok)
	assert.Equal(t, 1, engineState.Archives)
	assert.Equal(t, "fresh", engineState.LastLoad)
	assert.Equal(t, "session", sess.ComponentType())
}
