// Package sqlite implements the SQLite storage backend for the journal.
//
// A Store owns one database file, <DataDir>/journal.db, holding the
// JournalItems table. Every operation borrows a connection for the
// duration of one statement (or one short transaction) and releases it on
// every exit path.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// busyTimeoutMillis bounds how long a statement waits on the file lock
// held by another process before failing with SQLITE_BUSY.
const busyTimeoutMillis = 5000

// Compile-time interface check: Store must implement Journal.
var _ types.Journal = (*Store)(nil)

// Store implements types.Journal on a local SQLite file.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	config types.Config
	path   string
	logger *slog.Logger

	// now is the clock used for CreatedAt; overridden in tests.
	now func() time.Time
}

// Open resolves <DataDir>/journal.db, creates DataDir if needed, opens the
// database, and initializes the schema. A schema failure is fatal: the
// returned error wraps types.ErrSchemaInit and no Store is returned.
func Open(ctx context.Context, config types.Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, types.DatabaseFileName)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", path, busyTimeoutMillis)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One writer: all statements go through a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &Store{
		db:     db,
		config: config,
		path:   path,
		logger: slog.Default().With("component", "store"),
		now:    time.Now,
	}

	if err := s.Initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("journal store opened", "path", path, "unique_dates", config.UniqueDates)
	return s, nil
}

// Initialize creates the JournalItems table and its index if they do not
// exist. It never touches existing rows and is safe to call repeatedly.
func (s *Store) Initialize(ctx context.Context) error {
	db, unlock, err := s.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	for _, stmt := range schemaDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %w", types.ErrSchemaInit, err)
		}
	}
	return nil
}

// Path returns the database file path resolved at Open.
func (s *Store) Path() string {
	return s.path
}

// Config returns the configuration the store was opened with.
func (s *Store) Config() types.Config {
	return s.config
}

// Close releases the database. Idempotent. After Close, operations return
// types.ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	s.logger.Debug("journal store closed", "path", s.path)
	return nil
}

// acquire read-locks the store for the duration of one operation and
// returns the open database. The caller must call unlock on every path.
func (s *Store) acquire() (*sql.DB, func(), error) {
	s.mu.RLock()
	if s.db == nil {
		s.mu.RUnlock()
		return nil, nil, types.ErrStoreClosed
	}
	return s.db, s.mu.RUnlock, nil
}
