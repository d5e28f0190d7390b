package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// ErrInvalidRange is returned when a Filter's From date is after its To date.
var ErrInvalidRange = errors.New("export range start is after its end")

// Filter selects entries by calendar date. A zero bound leaves that side
// of the range open; both bounds are inclusive.
type Filter struct {
	From time.Time
	To   time.Time
}

// Validate reports ErrInvalidRange when both bounds are set and From > To.
func (f Filter) Validate() error {
	if !f.From.IsZero() && !f.To.IsZero() && types.DateOf(f.From).After(types.DateOf(f.To)) {
		return ErrInvalidRange
	}
	return nil
}

// Contains reports whether the calendar date of d falls inside the filter.
func (f Filter) Contains(d time.Time) bool {
	day := types.DateOf(d)
	if !f.From.IsZero() && day.Before(types.DateOf(f.From)) {
		return false
	}
	if !f.To.IsZero() && day.After(types.DateOf(f.To)) {
		return false
	}
	return true
}

// Apply returns the entries inside the filter, most recent date first.
// Entries sharing a date keep their relative order. The input is not
// modified.
func (f Filter) Apply(entries []*types.Entry) []*types.Entry {
	out := make([]*types.Entry, 0, len(entries))
	for _, e := range entries {
		if e != nil && f.Contains(e.EntryDate) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return types.DateOf(out[i].EntryDate).After(types.DateOf(out[j].EntryDate))
	})
	return out
}

// Renderer lays out entries into a document written to w.
type Renderer interface {
	Render(w io.Writer, entries []*types.Entry) error
}

// Source supplies entries for a date range. types.Journal satisfies it.
type Source interface {
	GetRange(ctx context.Context, from, to time.Time) ([]*types.Entry, error)
}

// Export loads the entries selected by f from src and renders them to w.
// It returns the number of entries rendered.
func Export(ctx context.Context, src Source, f Filter, r Renderer, w io.Writer) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	entries, err := src.GetRange(ctx, f.From, f.To)
	if err != nil {
		return 0, fmt.Errorf("loading entries for export: %w", err)
	}
	selected := f.Apply(entries)
	if err := r.Render(w, selected); err != nil {
		return 0, fmt.Errorf("rendering export: %w", err)
	}
	return len(selected), nil
}
