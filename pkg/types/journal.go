package types

import (
	"context"
	"errors"
	"time"
)

// Journal is the storage contract for journal entries. A Journal owns one
// local store; callers open it once and Close it when done.
type Journal interface {
	// Save inserts a new entry and returns the id assigned by the store.
	// entry.ID is ignored on input and set on success. Returns
	// ErrDuplicateDate when the store enforces one entry per date and the
	// date is already taken.
	Save(ctx context.Context, entry *Entry) (int64, error)

	// GetAll returns every entry ordered by EntryDate, most recent first.
	GetAll(ctx context.Context) ([]*Entry, error)

	// GetByID returns the entry with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Entry, error)

	// GetByDate returns the entry for the calendar date of date, or
	// ErrNotFound.
	GetByDate(ctx context.Context, date time.Time) (*Entry, error)

	// GetRange returns entries whose date falls in [from, to], most recent
	// first. A zero bound leaves that side open.
	GetRange(ctx context.Context, from, to time.Time) ([]*Entry, error)

	// Update overwrites content, moods and tags of the entry with
	// entry.ID. EntryDate, CreatedAt and ID are never changed. Reports
	// whether a row was affected; a missing id is not an error.
	Update(ctx context.Context, entry *Entry) (bool, error)

	// DeleteByID removes one entry. Reports whether a row was removed.
	DeleteByID(ctx context.Context, id int64) (bool, error)

	// DeleteAll removes every entry and returns how many were removed.
	// The backing table is kept.
	DeleteAll(ctx context.Context) (int64, error)

	// Close releases the store. Idempotent.
	Close() error
}

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("journal store is closed")
	ErrSchemaInit  = errors.New("journal schema initialization failed")
)
