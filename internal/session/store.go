// Package session persists the logged-in flag outside the relational store.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Store keeps the email of the logged-in account, if any.
type Store interface {
	LoggedInUser() (string, bool, error)
	SetLoggedInUser(email string) error
	Clear() error
}

type state struct {
	LoggedInUser string `toml:"loggedInUser,omitempty"`
}

// FileStore is a Store backed by a small TOML file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore at path. The file is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the session file.
func (s *FileStore) Path() string {
	return s.path
}

// LoggedInUser returns the persisted email. A missing file means nobody is
// logged in.
func (s *FileStore) LoggedInUser() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session file: %w", err)
	}

	var st state
	if err := toml.Unmarshal(data, &st); err != nil {
		return "", false, fmt.Errorf("failed to decode session file: %w", err)
	}
	return st.LoggedInUser, st.LoggedInUser != "", nil
}

// SetLoggedInUser persists email, replacing any previous value.
func (s *FileStore) SetLoggedInUser(email string) error {
	if email == "" {
		return fmt.Errorf("logged in email must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(state{LoggedInUser: email})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Clear removes the persisted email.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
