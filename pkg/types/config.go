package types

import "errors"

// Config holds backend selection and parameters for opening a journal store.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// UniqueDates rejects a second Save for a calendar date that already
	// has an entry. When false, duplicates are stored and GetByDate returns
	// the lowest-id match.
	UniqueDates bool `json:"unique_dates" yaml:"unique_dates"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// DatabaseFileName is the fixed name of the store file inside DataDir.
const DatabaseFileName = "journal.db"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// DefaultConfig returns a SQLite config for dataDir with unique dates on.
func DefaultConfig(dataDir string) Config {
	return Config{
		Backend:     BackendSQLite,
		DataDir:     dataDir,
		UniqueDates: true,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}
