package core

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// NoteSource is anything that can hand out the full day -> note mapping.
// The persistence layer depends on this rather than on *Store.
type NoteSource interface {
	All() map[Day]string
}

// Store is the in-memory mapping from Day to note text.
// A day present in the store always maps to a non-empty, trimmed note.
type Store struct {
	mu    sync.RWMutex
	notes map[Day]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{notes: make(map[Day]string)}
}

// Get returns the note for day, if any. Any day is a valid key.
func (s *Store) Get(day Day) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.notes[day]
	return text, ok
}

// Set stores the trimmed text for day. Text that trims to empty removes the entry.
// The zero Day names no date and is ignored. Invalid UTF-8 bytes are replaced
// with U+FFFD so the stored note is exactly what a save writes.
func (s *Store) Set(day Day, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(day, text)
}

// Clear removes the note for day, if any.
func (s *Store) Clear(day Day) {
	s.Set(day, "")
}

func (s *Store) set(day Day, text string) {
	if day.IsZero() {
		return
	}
	text = strings.TrimSpace(text)
	if !utf8.ValidString(text) {
		// Each invalid byte becomes U+FFFD, the same coercion encoding/json applies.
		text = string([]rune(text))
	}
	if text == "" {
		delete(s.notes, day)
		return
	}
	s.notes[day] = text
}

// All returns a copy of the current mapping.
func (s *Store) All() map[Day]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Day]string, len(s.notes))
	for d, text := range s.notes {
		out[d] = text
	}
	return out
}

// Replace discards the current contents and loads notes in their place,
// applying the same trim rules as Set.
func (s *Store) Replace(notes map[Day]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = make(map[Day]string, len(notes))
	for d, text := range notes {
		s.set(d, text)
	}
}

// Len returns the number of days that carry a note.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Days returns the days that carry a note, oldest first.
func (s *Store) Days() []Day {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedDays(s.notes)
}

func sortedDays(notes map[Day]string) []Day {
	days := make([]Day, 0, len(notes))
	for d := range notes {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

var _ NoteSource = (*Store)(nil)
