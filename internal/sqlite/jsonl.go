// This file provides JSONL backup and restore of journal entries, using the
// temp-file, fsync, rename pattern for atomic writes.
package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// entryJSONLRecord is one line of a backup file. Dates keep their persisted
// text layouts so a backup reads the same as the table.
type entryJSONLRecord struct {
	ID             int64    `json:"id"`
	EntryDate      string   `json:"entry_date"`
	Content        string   `json:"content"`
	PrimaryMood    string   `json:"primary_mood"`
	SecondaryMoods []string `json:"secondary_moods"`
	Tags           []string `json:"tags"`
	CreatedAt      string   `json:"created_at"`
}

// ImportResult summarizes an ImportJSONL run.
type ImportResult struct {
	Imported   int // Rows inserted.
	Duplicates int // Records skipped because their date was taken.
	Malformed  int // Records skipped because they did not decode.
}

// ExportJSONL writes every entry, oldest date first, to path as JSONL. The
// file is replaced atomically. Returns the number of entries written.
func (s *Store) ExportJSONL(ctx context.Context, path string) (int, error) {
	entries, err := s.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	records := make([]json.RawMessage, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		data, err := json.Marshal(entryJSONLRecord{
			ID:             e.ID,
			EntryDate:      e.DateString(),
			Content:        e.Content,
			PrimaryMood:    e.PrimaryMood,
			SecondaryMoods: e.SecondaryMoods,
			Tags:           e.Tags,
			CreatedAt:      types.FormatTimestamp(e.CreatedAt),
		})
		if err != nil {
			return 0, fmt.Errorf("marshaling entry %d: %w", e.ID, err)
		}
		records = append(records, data)
	}

	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	s.logger.Info("exported entries", "path", path, "count", len(records))
	return len(records), nil
}

// ImportJSONL reads a backup written by ExportJSONL and saves each record as
// a new entry. Ids in the file are not reused; the store assigns fresh ones.
// Malformed lines and records with unparseable dates are skipped. With
// UniqueDates, records for dates already present are skipped.
func (s *Store) ImportJSONL(ctx context.Context, path string) (ImportResult, error) {
	var result ImportResult

	records, err := readJSONL(path)
	if err != nil {
		return result, err
	}

	for _, raw := range records {
		entry, ok := entryFromRecord(raw)
		if !ok {
			result.Malformed++
			continue
		}
		if _, err := s.Save(ctx, entry); err != nil {
			if errors.Is(err, types.ErrDuplicateDate) {
				result.Duplicates++
				continue
			}
			return result, fmt.Errorf("importing entry for %s: %w", entry.DateString(), err)
		}
		result.Imported++
	}

	s.logger.Info("imported entries", "path", path,
		"imported", result.Imported,
		"duplicates", result.Duplicates,
		"malformed", result.Malformed)
	return result, nil
}

// entryFromRecord decodes one backup line into a new, id-less Entry.
func entryFromRecord(raw json.RawMessage) (*types.Entry, bool) {
	var rec entryJSONLRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false
	}
	date, err := types.ParseDate(rec.EntryDate)
	if err != nil {
		return nil, false
	}
	entry := types.NewEntry(date)
	entry.Content = rec.Content
	entry.PrimaryMood = rec.PrimaryMood
	if rec.SecondaryMoods != nil {
		entry.SecondaryMoods = rec.SecondaryMoods
	}
	if rec.Tags != nil {
		entry.Tags = rec.Tags
	}
	if rec.CreatedAt != "" {
		createdAt, err := types.ParseTimestamp(rec.CreatedAt)
		if err != nil {
			return nil, false
		}
		entry.CreatedAt = createdAt
	}
	return entry, true
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	// Entry content can be long; allow lines up to 16 MiB.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(msg string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", msg, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
