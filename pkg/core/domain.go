// Package core holds the calendar domain: days, the note store and snapshots.
package core

import (
	"fmt"
	"time"
)

// DayLayout is the canonical ISO-8601 form of a Day.
const DayLayout = "2006-01-02"

// Day identifies a calendar date. It is comparable and safe to use as a map key.
// A Day is built only by ParseDay or DayOf, so every non-zero Day is a real
// date and each date has exactly one Day.
type Day struct {
	y int
	m time.Month
	d int
}

// ParseDay parses a YYYY-MM-DD string into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return DayOf(t), nil
}

// MustParseDay is like ParseDay but panics on invalid input.
// Intended for compiled-in constants and tests.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DayOf returns the Day containing t, in t's location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{y: y, m: m, d: d}
}

// Year returns the year of d.
func (d Day) Year() int { return d.y }

// Month returns the month of d.
func (d Day) Month() time.Month { return d.m }

// Day returns the day of the month of d.
func (d Day) Day() int { return d.d }

// Time returns midnight of the day in loc.
func (d Day) Time(loc *time.Location) time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, loc)
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d == Day{}
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.y, d.m, d.d)
}

// Before reports whether d comes strictly before o.
func (d Day) Before(o Day) bool {
	return d.Time(time.UTC).Before(o.Time(time.UTC))
}

// After reports whether d comes strictly after o.
func (d Day) After(o Day) bool {
	return o.Before(d)
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// MarshalText implements encoding.TextMarshaler so Day works as a JSON object key.
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Range is an inclusive span of days.
type Range struct {
	Start Day
	End   Day
}

// NewRange builds a Range, rejecting an end before the start.
func NewRange(start, end Day) (Range, error) {
	if end.Before(start) {
		return Range{}, fmt.Errorf("invalid range: end %s is before start %s", end, start)
	}
	return Range{Start: start, End: end}, nil
}

// Contains reports whether d falls within the range, bounds included.
func (r Range) Contains(d Day) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days lists every day in the range in ascending order.
func (r Range) Days() []Day {
	var days []Day
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

func (r Range) String() string {
	return r.Start.String() + ".." + r.End.String()
}

// EventType represents the type of change observed on the saved notes.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a persisted snapshot file.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
