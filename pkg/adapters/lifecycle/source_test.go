package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/daynotes/pkg/adapters/fs"
	"github.com/aretw0/daynotes/pkg/core"
)

// scriptedLoader returns one prepared load result per call.
type scriptedLoader struct {
	results []map[core.Day]string
	calls   int
}

func (l *scriptedLoader) LoadLatest(ctx context.Context) (map[core.Day]string, fs.LoadOutcome) {
	notes := l.results[l.calls]
	l.calls++
	if notes == nil {
		return map[core.Day]string{}, fs.LoadRecovered
	}
	return notes, fs.LoadOK
}

func TestSource_ForwardsRawEventsWithoutLoader(t *testing.T) {
	in := make(chan core.Event, 2)
	in <- core.Event{Type: core.EventModify, ID: "calendar_notes.json"}
	in <- core.Event{Type: core.EventDelete, ID: "calendar_notes.json"}
	close(in)

	src := NewSource(in, nil)
	require.NoError(t, src.Start(context.Background()))

	var got []string
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-src.Events():
			if !ok {
				assert.Equal(t, []string{"MODIFY calendar_notes.json", "DELETE calendar_notes.json"}, got)
				return
			}
			got = append(got, e.String())
		case <-timeout:
			t.Fatal("timed out waiting for source to close")
		}
	}
}

func TestSource_ReportsLoadedSnapshots(t *testing.T) {
	day := core.MustParseDay("2025-11-01")
	loader := &scriptedLoader{results: []map[core.Day]string{
		{day: "Remember the meeting"},
		{day: "Remember the meeting"}, // same content, suppressed
		nil,                           // corrupted by another writer
		{day: "Remember the meeting"},
	}}

	in := make(chan core.Event, 6)
	modify := core.Event{Type: core.EventModify, ID: "calendar_notes.json"}
	in <- modify
	in <- modify
	in <- modify
	in <- core.Event{Type: core.EventDelete, ID: "calendar_notes.json"}
	in <- modify
	close(in)

	src := NewSource(in, loader)
	require.NoError(t, src.Start(context.Background()))

	var got []SnapshotEvent
	timeout := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case e, ok := <-src.Events():
			if !ok {
				done = true
				break
			}
			got = append(got, e.(SnapshotEvent))
		case <-timeout:
			t.Fatal("timed out waiting for source to close")
		}
	}

	require.Len(t, got, 4)
	assert.Equal(t, "MODIFY calendar_notes.json (ok, 1 notes)", got[0].String())
	assert.Equal(t, fs.LoadRecovered, got[1].Outcome)
	assert.Equal(t, 0, got[1].Notes)
	assert.False(t, got[2].Loaded)
	assert.Equal(t, core.EventDelete, got[2].Type)
	assert.Equal(t, "MODIFY calendar_notes.json (ok, 1 notes)", got[3].String(), "a delete resets the comparison")
	assert.Equal(t, 4, loader.calls)
}

func TestSource_StopsOnCancel(t *testing.T) {
	in := make(chan core.Event)
	ctx, cancel := context.WithCancel(context.Background())

	src := NewSource(in, nil)
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "expected closed channel after cancel")
	case <-time.After(5 * time.Second):
		t.Fatal("source did not stop after cancel")
	}
}
