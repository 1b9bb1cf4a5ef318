// Package session tracks the identity a player instance acts as.
// One store lives for the lifetime of one player (one tab in the
// original UI); being anonymous is a valid state, not an error.
package session

import (
	"sync"

	"github.com/kmorley/bizenglish/internal/domain"
)

// Identity is the resolved user of a session. Key is the canonical
// account key; DisplayName is the form shown in the UI.
type Identity struct {
	Key         string
	DisplayName string
}

// Store holds the current identity. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	current *Identity
}

// NewStore creates an anonymous session store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the active identity, or false when anonymous.
func (s *Store) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// SetCurrent records the active identity. The name is normalized into
// the account key; display keeps the given form, falling back to the
// key when empty.
func (s *Store) SetCurrent(name, display string) {
	key := domain.NormalizeUsername(name)
	if key == "" {
		return
	}
	if display == "" {
		display = key
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Identity{Key: key, DisplayName: display}
}

// Clear drops the identity, returning the session to anonymous.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
