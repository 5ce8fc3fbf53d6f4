package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const sessionFileName = "session.json"

// FileStore persists the session as JSON under a configuration directory,
// so a login survives process restarts until it is explicitly cleared.
// The file holds only the credential/role pair and is written with 0600.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	current Session
}

// NewFileStore opens (or creates) a file-backed store under dir. An existing
// session file is loaded; a missing one just means anonymous. A corrupt file
// is treated as anonymous rather than blocking the user from logging in.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	s := &FileStore{path: filepath.Join(dir, sessionFileName)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err == nil {
		s.current = sess
	}
	return s, nil
}

// Set implements Store. The new session is written to disk before the
// in-memory copy changes, so a failed write never leaves the two diverged.
func (s *FileStore) Set(token string, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := Session{Token: token, Role: role}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	s.current = sess
	return nil
}

// Clear implements Store. The in-memory session is dropped even if removing
// the file fails; the visible session must never outlive the user's intent
// to leave.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *FileStore) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsAuthenticated implements Store.
func (s *FileStore) IsAuthenticated() bool {
	return s.Get().Authenticated()
}

// HasRole implements Store.
func (s *FileStore) HasRole(role Role) bool {
	current := s.Get()
	return current.Authenticated() && current.Role == role
}

// Path returns the location of the session file, for status output.
func (s *FileStore) Path() string {
	return s.path
}
