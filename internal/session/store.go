package session

import (
	"sync"
)

// MemoryStore keeps the session in memory only. Used by tests and as the
// fallback when no home directory is available.
type MemoryStore struct {
	mu      sync.RWMutex
	current Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Set implements Store.
func (s *MemoryStore) Set(token string, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{Token: token, Role: role}
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{}
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsAuthenticated implements Store.
func (s *MemoryStore) IsAuthenticated() bool {
	return s.Get().Authenticated()
}

// HasRole implements Store.
func (s *MemoryStore) HasRole(role Role) bool {
	current := s.Get()
	return current.Authenticated() && current.Role == role
}
