// Package session persists the auth token and username between runs.
// Absence of a token is the sole signal for an anonymous user.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

type credentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Store holds the session credentials, backed by a local file. Reads
// are synchronous and served from memory; writes go through to disk.
type Store struct {
	path   string
	logger zerolog.Logger

	mu    sync.RWMutex
	creds credentials
}

// NewStore creates a store backed by the given file. A missing file is
// not an error; it means no one is logged in yet.
func NewStore(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger.With().Str("component", "session").Logger(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := json.Unmarshal(data, &s.creds); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", path, err)
	}

	return s, nil
}

// Token returns the stored auth token, or "" for an anonymous user.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Token
}

// Username returns the stored username, or "" for an anonymous user.
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Username
}

// SetCredentials stores the token and username and persists them.
func (s *Store) SetCredentials(token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = credentials{Token: token, Username: username}
	if err := s.persist(); err != nil {
		return err
	}

	s.logger.Debug().Str("username", username).Msg("session credentials stored")
	return nil
}

// Clear removes the stored credentials, used on logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = credentials{}
	if err := s.persist(); err != nil {
		return err
	}

	s.logger.Debug().Msg("session credentials cleared")
	return nil
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.creds)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}
