// Package auth gates access to the journal behind an optional PIN.
package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/journal/internal/secrets"
)

// PINKey is the secrets key holding the PIN hash.
const PINKey = "journal_pin_hash"

// MaxPINLength is the longest PIN bcrypt can hash.
const MaxPINLength = 72

// ErrPINTooLong is returned by Set for PINs longer than MaxPINLength bytes.
var ErrPINTooLong = errors.New("PIN is too long")

// Session tracks whether the current user has proven knowledge of the PIN.
// The zero value is not usable; create one with NewSession.
type Session struct {
	store secrets.Store
	cost  int

	mu            sync.Mutex
	authenticated bool
}

// Option configures a Session.
type Option func(*Session)

// WithCost sets the bcrypt cost used when hashing a new PIN.
func WithCost(cost int) Option {
	return func(s *Session) { s.cost = cost }
}

// NewSession returns a locked session reading the PIN hash from store.
func NewSession(store secrets.Store, opts ...Option) *Session {
	s := &Session{store: store, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsSet reports whether a PIN hash is stored.
func (s *Session) IsSet() (bool, error) {
	hash, err := s.hash()
	if err != nil {
		return false, err
	}
	return hash != "", nil
}

// Set stores a hash of pin and authenticates the session. An empty pin
// clears the stored hash and locks the session.
func (s *Session) Set(pin string) error {
	if pin == "" {
		if err := s.store.Remove(PINKey); err != nil {
			return fmt.Errorf("clearing PIN: %w", err)
		}
		s.setAuthenticated(false)
		return nil
	}
	if len(pin) > MaxPINLength {
		return ErrPINTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), s.cost)
	if err != nil {
		return fmt.Errorf("hashing PIN: %w", err)
	}
	if err := s.store.Set(PINKey, string(hash)); err != nil {
		return fmt.Errorf("storing PIN: %w", err)
	}
	s.setAuthenticated(true)
	return nil
}

// Verify checks pin against the stored hash and authenticates the session
// on a match. With no PIN stored every call succeeds.
func (s *Session) Verify(pin string) (bool, error) {
	hash, err := s.hash()
	if err != nil {
		return false, err
	}
	if hash == "" {
		return true, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("checking PIN: %w", err)
	}
	s.setAuthenticated(true)
	return true, nil
}

// Lock drops authentication without touching the stored PIN.
func (s *Session) Lock() {
	s.setAuthenticated(false)
}

// Authenticated reports whether Set or Verify succeeded since the last Lock.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Session) setAuthenticated(v bool) {
	s.mu.Lock()
	s.authenticated = v
	s.mu.Unlock()
}

func (s *Session) hash() (string, error) {
	hash, err := s.store.Get(PINKey)
	if errors.Is(err, secrets.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading PIN: %w", err)
	}
	return hash, nil
}
