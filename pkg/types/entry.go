package types

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Persisted text layouts. Both sort lexicographically in time order.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// MaxSecondaryMoods is the number of secondary moods the journal UI offers.
// Storage does not enforce it; SetSecondaryMoods does.
const MaxSecondaryMoods = 2

// Entry is one journal entry, at most one per calendar date.
type Entry struct {
	ID             int64     `json:"id"`              // Assigned by the store on Save.
	EntryDate      time.Time `json:"entry_date"`      // Calendar date the entry is about.
	Content        string    `json:"content"`         // HTML markup, opaque to storage.
	PrimaryMood    string    `json:"primary_mood"`    // May be empty.
	SecondaryMoods []string  `json:"secondary_moods"` // Ordered, never nil after a read.
	Tags           []string  `json:"tags"`            // Ordered, never nil after a read.
	CreatedAt      time.Time `json:"created_at"`      // Set once on creation.
}

// NewEntry returns an entry for the calendar date of date with empty lists.
func NewEntry(date time.Time) *Entry {
	return &Entry{
		EntryDate:      DateOf(date),
		SecondaryMoods: []string{},
		Tags:           []string{},
	}
}

// DateOf strips the clock from t, keeping its calendar date in the local
// time zone.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Today returns the current calendar date.
func Today() time.Time {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string into a local calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ParseTimestamp parses a YYYY-MM-DD HH:MM:SS string in the local time zone.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// storedLayouts are the timestamp layouts accepted when reading rows written
// by other tools. The canonical layouts come first.
var storedLayouts = []string{
	TimestampLayout,
	DateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04",
	"2006/01/02",
	"2006/01/02 15:04:05",
}

// ParseStored parses a persisted date or timestamp leniently. Values without
// a zone are read in the local time zone; values with one are converted to
// it.
func ParseStored(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range storedLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.In(time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing stored time %q: unrecognized layout", s)
}

// FormatDate renders the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatTimestamp renders t as YYYY-MM-DD HH:MM:SS.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// DateString returns the persisted form of EntryDate.
func (e *Entry) DateString() string {
	return FormatDate(e.EntryDate)
}

// SetSecondaryMoods replaces the secondary moods. Blank labels are dropped.
// Returns ErrTooManyMoods if more than MaxSecondaryMoods remain.
func (e *Entry) SetSecondaryMoods(moods ...string) error {
	cleaned := make([]string, 0, len(moods))
	for _, m := range moods {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		cleaned = append(cleaned, m)
	}
	if len(cleaned) > MaxSecondaryMoods {
		return fmt.Errorf("%w: got %d, at most %d", ErrTooManyMoods, len(cleaned), MaxSecondaryMoods)
	}
	e.SecondaryMoods = cleaned
	return nil
}

// AddTag appends tag unless it is already present.
// Returns ErrInvalidTag for a blank tag.
func (e *Entry) AddTag(tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ErrInvalidTag
	}
	if e.HasTag(tag) {
		return nil
	}
	e.Tags = append(e.Tags, tag)
	return nil
}

// HasTag reports whether tag is attached to the entry.
func (e *Entry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// Normalize makes the list fields non-nil so callers never see nil slices.
func (e *Entry) Normalize() {
	if e.SecondaryMoods == nil {
		e.SecondaryMoods = []string{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
}
