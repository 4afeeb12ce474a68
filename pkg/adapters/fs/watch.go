package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/daynotes/pkg/core"
)

// Watch reports changes to the latest file made by any writer, this process
// included. The returned channel is closed once ctx is cancelled.
func (e *Engine) Watch(ctx context.Context) (<-chan core.Event, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	dir := filepath.Dir(e.config.LatestPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// The latest file is replaced by rename, so watch its directory rather than the file.
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event)
	e.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer e.setWatcherActive(false)
		defer watcher.Close()
		return e.watchLoop(ctx, watcher, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		e.logger.Error("watcher stopped", "error", err)
	}))

	return events, nil
}

func (e *Engine) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, events chan<- core.Event) error {
	target := filepath.Clean(e.config.LatestPath)
	id := filepath.Base(target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}

			eType := mapEventType(event)
			if eType == "" {
				continue
			}
			e.logger.Debug("latest file changed", "op", event.Op.String())

			select {
			case events <- core.Event{Type: eType, ID: id, Timestamp: time.Now().Unix()}:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			e.logger.Error("fsnotify error", "error", wErr)
		}
	}
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		// A rename over the file arrives as Create, so both mean new content.
		return core.EventModify
	default:
		return ""
	}
}
