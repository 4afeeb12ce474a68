// Package lifecycle exposes changes to the saved notes as a lifecycle.Source.
package lifecycle

import (
	"context"
	"fmt"
	"maps"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/daynotes/pkg/adapters/fs"
	"github.com/aretw0/daynotes/pkg/core"
)

// SnapshotLoader reads the latest saved notes. *fs.Engine implements it.
type SnapshotLoader interface {
	LoadLatest(ctx context.Context) (map[core.Day]string, fs.LoadOutcome)
}

// SnapshotEvent is a change to the latest file together with what a load of
// the file found right after the change. Deletes carry no load.
type SnapshotEvent struct {
	core.Event
	Loaded  bool
	Outcome fs.LoadOutcome
	Notes   int
}

func (e SnapshotEvent) String() string {
	if !e.Loaded {
		return e.Event.String()
	}
	return fmt.Sprintf("%s (%s, %d notes)", e.Event, e.Outcome, e.Notes)
}

type snapshotSource struct {
	events <-chan core.Event
	loader SnapshotLoader
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source from the engine's watch channel. Each
// modification reloads the latest file through loader; a modification that
// leaves the notes and outcome unchanged is not reported again. A nil loader
// forwards the raw events.
func NewSource(events <-chan core.Event, loader SnapshotLoader) lifecycle.Source {
	return &snapshotSource{
		events: events,
		loader: loader,
		out:    make(chan lifecycle.Event),
	}
}

func (s *snapshotSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *snapshotSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)

		var last map[core.Day]string
		var lastOutcome fs.LoadOutcome
		seen := false

		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}

				ev := SnapshotEvent{Event: e}
				if e.Type != core.EventDelete && s.loader != nil {
					notes, outcome := s.loader.LoadLatest(ctx)
					if seen && outcome == lastOutcome && maps.Equal(notes, last) {
						continue
					}
					last, lastOutcome, seen = notes, outcome, true
					ev.Loaded, ev.Outcome, ev.Notes = true, outcome, len(notes)
				} else {
					seen = false
				}

				select {
				case s.out <- ev:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
