// Package store caches the last known user record on disk so the next
// launch can show the session immediately while the network check runs.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/linkcodelearn/campus/pkg/domain"
)

const userFileName = "user.json"

// Store persists a single user record under a fixed name in dir.
type Store struct {
	dir string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns ~/.campus.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".campus"), nil
}

// Save writes the user record, creating the directory on first use.
func (s *Store) Save(u *domain.User) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFileName), data, 0600); err != nil {
		return fmt.Errorf("write user record: %w", err)
	}
	return nil
}

// Load returns the cached user record, or nil when absent or unreadable.
// A corrupt cache is treated the same as a missing one.
func (s *Store) Load() *domain.User {
	data, err := os.ReadFile(filepath.Join(s.dir, userFileName))
	if err != nil {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}

// Clear removes the cached record. Removing an absent record is not an error.
func (s *Store) Clear() error {
	err := os.Remove(filepath.Join(s.dir, userFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove user record: %w", err)
	}
	return nil
}
