package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// EngineState exposes internal state for observability.
type EngineState struct {
	LatestPath     string     `json:"latest_path"`
	HistoryDir     string     `json:"history_dir"`
	ArchivePattern string     `json:"archive_pattern"`
	RetentionCount int        `json:"retention_count"`
	Archives       int        `json:"archives"`
	LastSave       *time.Time `json:"last_save,omitempty"`
	LastArchive    string     `json:"last_archive,omitempty"`
	LastPruned     int        `json:"last_pruned"`
	LastLoad       string     `json:"last_load,omitempty"`
	WatcherActive  bool       `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (e *Engine) State() any {
	archives, _ := e.listArchives()

	e.mu.RLock()
	defer e.mu.RUnlock()

	st := EngineState{
		LatestPath:     e.config.LatestPath,
		HistoryDir:     e.config.HistoryDir,
		ArchivePattern: e.config.ArchivePattern,
		RetentionCount: e.config.RetentionCount,
		Archives:       len(archives),
		LastSave:       e.lastSave,
		LastArchive:    e.lastArchive,
		LastPruned:     e.lastPruned,
		WatcherActive:  e.watcherActive,
	}
	if e.lastLoad != nil {
		st.LastLoad = e.lastLoad.String()
	}
	return st
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "persistence"
}

var _ introspection.Introspectable = (*Engine)(nil)
var _ introspection.Component = (*Engine)(nil)

func (e *Engine) setWatcherActive(active bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.watcherActive = active
}
