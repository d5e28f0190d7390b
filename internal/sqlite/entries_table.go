// This file implements the entry operations of the SQLite store: create,
// read (all, by id, by date, by range), update, and delete.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/journal/internal/codec"
	"github.com/mesh-intelligence/journal/pkg/types"
)

// Save inserts entry as a new row and sets entry.ID to the assigned id.
// entry.ID is ignored on input. A zero CreatedAt is filled from the store
// clock; any CreatedAt is moved to the local zone at second precision, the
// form a later read returns. With UniqueDates, an existing row for the same
// date makes Save fail with types.ErrDuplicateDate and nothing is written.
// Mood or tag labels that are not valid UTF-8 fail with
// types.ErrInvalidText.
func (s *Store) Save(ctx context.Context, entry *types.Entry) (int64, error) {
	if entry == nil {
		return 0, types.ErrInvalidEntry
	}
	if entry.EntryDate.IsZero() {
		return 0, types.ErrInvalidDate
	}
	if err := validateLists(entry); err != nil {
		return 0, err
	}

	db, unlock, err := s.acquire()
	if err != nil {
		return 0, err
	}
	defer unlock()

	entry.EntryDate = types.DateOf(entry.EntryDate)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	entry.CreatedAt = entry.CreatedAt.In(time.Local).Truncate(time.Second)
	entry.Normalize()
	date := entry.DateString()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if s.config.UniqueDates {
		taken, err := dateTaken(ctx, tx, date)
		if err != nil {
			return 0, err
		}
		if taken {
			return 0, fmt.Errorf("%w: %s", types.ErrDuplicateDate, date)
		}
	}

	res, err := tx.ExecContext(ctx, insertEntry,
		date,
		entry.Content,
		entry.PrimaryMood,
		codec.EncodeList(entry.SecondaryMoods),
		codec.EncodeList(entry.Tags),
		types.FormatTimestamp(entry.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing entry: %w", err)
	}

	entry.ID = id
	s.logger.Debug("saved entry", "id", id, "entry_date", date)
	return id, nil
}

// GetAll returns every entry, most recent EntryDate first. Rows sharing a
// date come back in id order. Returns an empty slice, not nil, when the
// store is empty.
func (s *Store) GetAll(ctx context.Context) ([]*types.Entry, error) {
	db, unlock, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.queryEntries(ctx, db, selectAllEntries)
}

// GetByID returns the entry with the given id, or types.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (*types.Entry, error) {
	if id <= 0 {
		return nil, types.ErrNotFound
	}

	db, unlock, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()

	entry, err := scanEntry(db.QueryRowContext(ctx, selectEntryByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting entry %d: %w", id, err)
	}
	return entry, nil
}

// GetByDate returns the entry for the calendar date of date, or
// types.ErrNotFound. If duplicates exist the lowest id wins.
func (s *Store) GetByDate(ctx context.Context, date time.Time) (*types.Entry, error) {
	if date.IsZero() {
		return nil, types.ErrInvalidDate
	}

	db, unlock, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()

	day := types.FormatDate(date)
	entry, err := scanEntry(db.QueryRowContext(ctx, selectEntryByDate, day))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting entry for %s: %w", day, err)
	}
	return entry, nil
}

// GetRange returns entries dated within [from, to], most recent first. A
// zero from or to leaves that side of the range open.
func (s *Store) GetRange(ctx context.Context, from, to time.Time) ([]*types.Entry, error) {
	var conditions []string
	var args []any
	if !from.IsZero() {
		conditions = append(conditions, "EntryDate >= ?")
		args = append(args, types.FormatDate(from))
	}
	if !to.IsZero() {
		conditions = append(conditions, "EntryDate <= ?")
		args = append(args, types.FormatDate(to))
	}

	query := selectEntriesPrefix
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY EntryDate DESC, Id ASC"

	db, unlock, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.queryEntries(ctx, db, query, args...)
}

// Update overwrites Content, PrimaryMood, SecondaryMoods and Tags of the row
// with entry.ID. EntryDate, CreatedAt and ID in entry are ignored. Reports
// whether a row matched; an unknown id is a no-op, not an error.
func (s *Store) Update(ctx context.Context, entry *types.Entry) (bool, error) {
	if entry == nil {
		return false, types.ErrInvalidEntry
	}
	if entry.ID <= 0 {
		return false, nil
	}
	if err := validateLists(entry); err != nil {
		return false, err
	}

	db, unlock, err := s.acquire()
	if err != nil {
		return false, err
	}
	defer unlock()

	res, err := db.ExecContext(ctx, updateEntry,
		entry.Content,
		entry.PrimaryMood,
		codec.EncodeList(entry.SecondaryMoods),
		codec.EncodeList(entry.Tags),
		entry.ID,
	)
	if err != nil {
		return false, fmt.Errorf("updating entry %d: %w", entry.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}

	s.logger.Debug("updated entry", "id", entry.ID, "matched", n > 0)
	return n > 0, nil
}

// DeleteByID removes the entry with the given id. Reports whether a row was
// removed; deleting a missing id is a no-op.
func (s *Store) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}

	db, unlock, err := s.acquire()
	if err != nil {
		return false, err
	}
	defer unlock()

	res, err := db.ExecContext(ctx, deleteEntryByID, id)
	if err != nil {
		return false, fmt.Errorf("deleting entry %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}

	s.logger.Debug("deleted entry", "id", id, "matched", n > 0)
	return n > 0, nil
}

// DeleteAll removes every entry and returns the number removed. The table
// and the id counter survive, so ids are never reused.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	db, unlock, err := s.acquire()
	if err != nil {
		return 0, err
	}
	defer unlock()

	res, err := db.ExecContext(ctx, deleteAllEntries)
	if err != nil {
		return 0, fmt.Errorf("deleting all entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}

	s.logger.Info("deleted all entries", "count", n)
	return n, nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	db, unlock, err := s.acquire()
	if err != nil {
		return 0, err
	}
	defer unlock()

	var n int64
	if err := db.QueryRowContext(ctx, selectEntryCount).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

// validateLists rejects list labels the codec would alter.
func validateLists(entry *types.Entry) error {
	if err := codec.ValidateList(entry.SecondaryMoods); err != nil {
		return fmt.Errorf("%w: secondary moods: %w", types.ErrInvalidText, err)
	}
	if err := codec.ValidateList(entry.Tags); err != nil {
		return fmt.Errorf("%w: tags: %w", types.ErrInvalidText, err)
	}
	return nil
}

// dateTaken reports whether any row already holds date.
func dateTaken(ctx context.Context, tx *sql.Tx, date string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, selectDateExists, date).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking date %s: %w", date, err)
	}
	return true, nil
}

// queryEntries runs a SELECT over the entry columns and hydrates every row.
// Rows whose EntryDate cannot be read are logged and left out.
func (s *Store) queryEntries(ctx context.Context, db *sql.DB, query string, args ...any) ([]*types.Entry, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	entries := []*types.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if errors.Is(err, errUnreadableRow) {
			s.logger.Warn("skipping unreadable entry", "error", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("hydrating entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

// errUnreadableRow marks a row whose EntryDate matches no known layout.
var errUnreadableRow = errors.New("unreadable entry row")

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry converts one JournalItems row into an Entry. Nullable text
// columns decode to empty values; list columns decode through the codec.
// Dates are read leniently. An unreadable CreatedAt becomes the zero time;
// an unreadable EntryDate fails with errUnreadableRow.
func scanEntry(row rowScanner) (*types.Entry, error) {
	var (
		e              types.Entry
		entryDate      string
		createdAt      string
		primaryMood    sql.NullString
		secondaryMoods sql.NullString
		tags           sql.NullString
	)
	if err := row.Scan(&e.ID, &entryDate, &e.Content, &primaryMood, &secondaryMoods, &tags, &createdAt); err != nil {
		return nil, err
	}

	date, err := types.ParseStored(entryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: entry %d: %w", errUnreadableRow, e.ID, err)
	}
	e.EntryDate = types.DateOf(date)
	if created, err := types.ParseStored(createdAt); err == nil {
		e.CreatedAt = created
	}
	e.PrimaryMood = primaryMood.String
	e.SecondaryMoods = codec.DecodeNullable(secondaryMoods)
	e.Tags = codec.DecodeNullable(tags)
	return &e, nil
}
