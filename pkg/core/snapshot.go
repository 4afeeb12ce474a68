package core

import "time"

// Meta describes when and how a snapshot was taken.
type Meta struct {
	SavedAt time.Time
	Range   Range
	App     string
	Version string
}

// Snapshot is an immutable point-in-time export of a Store.
// The zero value is an empty snapshot.
type Snapshot struct {
	Meta  Meta
	notes map[Day]string
}

// NewSnapshot copies notes into a new Snapshot. SavedAt is truncated to the second.
func NewSnapshot(notes map[Day]string, meta Meta) Snapshot {
	meta.SavedAt = meta.SavedAt.Truncate(time.Second)
	copied := make(map[Day]string, len(notes))
	for d, text := range notes {
		copied[d] = text
	}
	return Snapshot{Meta: meta, notes: copied}
}

// Notes returns a copy of the snapshot's notes.
func (s Snapshot) Notes() map[Day]string {
	out := make(map[Day]string, len(s.notes))
	for d, text := range s.notes {
		out[d] = text
	}
	return out
}

// Note returns the note stored for day in this snapshot.
func (s Snapshot) Note(day Day) (string, bool) {
	text, ok := s.notes[day]
	return text, ok
}

// Len returns the number of notes in the snapshot.
func (s Snapshot) Len() int {
	return len(s.notes)
}

// Days returns the snapshot's days, oldest first.
func (s Snapshot) Days() []Day {
	return sortedDays(s.notes)
}
