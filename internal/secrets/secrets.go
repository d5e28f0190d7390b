// Package secrets stores small sensitive values (such as the PIN hash)
// outside the journal database.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the secrets file inside the config directory.
const FileName = "secrets.yaml"

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("secret not found")

// ErrEmptyKey is returned when a key is empty.
var ErrEmptyKey = errors.New("secret key must not be empty")

// Store is a key-value store for secrets.
type Store interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Remove(key string) error
}

// FileStore persists secrets as a YAML map readable only by the owner.
// Every call reads the file fresh so separate processes see each other's
// writes.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a FileStore backed by <dir>/secrets.yaml. The file
// is created on the first Set.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, FileName)}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Set stores value under key, replacing any previous value.
func (s *FileStore) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// Get returns the value stored under key, or ErrNotFound.
func (s *FileStore) Get(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *FileStore) Remove(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets file: %w", err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing secrets file %s: %w", s.path, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

// save writes values through a temp file and rename so a crash never
// leaves a truncated secrets file.
func (s *FileStore) save(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding secrets: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating secrets directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp secrets file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting secrets file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing secrets: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing secrets: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing secrets: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replacing secrets file: %w", err)
	}
	return nil
}

// MemoryStore keeps secrets in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Get returns the value for key, or ErrNotFound.
func (m *MemoryStore) Get(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Remove deletes key if present.
func (m *MemoryStore) Remove(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
