// Package storage provides the durable per-profile state store backing the
// cart and wishlist engines. Each key maps to one JSON file under the state
// directory; writes are synchronous and atomic via a temp-file rename.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Store is a durable key-value store of raw bytes.
type Store struct {
	dir    string
	logger zerolog.Logger
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &Store{
		dir:    dir,
		logger: logger.With().Str("component", "storage").Logger(),
	}, nil
}

// Read returns the bytes stored under key, or (nil, nil) when the key has
// never been written.
func (s *Store) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state for %q: %w", key, err)
	}
	return data, nil
}

// Write stores data under key. The write is synchronous: once Write returns,
// the new state survives a reload.
func (s *Store) Write(key string, data []byte) error {
	path := s.path(key)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state for %q: %w", key, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to commit state for %q: %w", key, err)
	}

	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
