package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/daynotes/internal/platform"
	"github.com/aretw0/daynotes/pkg/adapters/fs"
	"github.com/aretw0/daynotes/pkg/core"
)

func TestBuildSessionTree(t *testing.T) {
	tree := buildSessionTree(platform.SessionState{
		Range: "2025-09-01..2025-12-01",
		Store: core.StoreState{Notes: 2, First: "2025-09-03", Last: "2025-11-01"},
		Persistence: fs.EngineState{
			LatestPath:     "/tmp/saves/calendar_notes.json",
			RetentionCount: 60,
			Archives:       12,
			LastArchive:    "notes_20251101_080000.json",
			LastLoad:       "ok",
			WatcherActive:  true,
		},
	})

	assert.Equal(t, "Session", tree.Name)
	assert.Equal(t, "2025-09-01..2025-12-01", tree.Metadata["range"])
	require.Len(t, tree.Children, 2)

	store := tree.Children[0]
	assert.Equal(t, "Store", store.Name)
	assert.Equal(t, "2", store.Metadata["notes"])
	assert.Equal(t, "2025-11-01", store.Metadata["last"])

	engine := tree.Children[1]
	assert.Equal(t, "Persistence", engine.Name)
	assert.Equal(t, "12/60", engine.Metadata["archives"])
	assert.Equal(t, "notes_20251101_080000.json", engine.Metadata["last_archive"])
	require.Len(t, engine.Children, 1)
	assert.Equal(t, "running", engine.Children[0].Status)
}

func TestBuildSessionTree_IdleWatcherAndEmptyStore(t *testing.T) {
	tree := buildSessionTree(platform.SessionState{
		Store:       core.StoreState{},
		Persistence: fs.EngineState{RetentionCount: 60},
	})

	require.Len(t, tree.Children, 2)
	assert.NotContains(t, tree.Children[0].Metadata, "first")
	assert.Equal(t, "suspended", tree.Children[1].Children[0].Status)
}
