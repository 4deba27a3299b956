package kvstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// LocalStore persists one JSON file per key under a data directory.
type LocalStore struct {
	mu  sync.RWMutex
	dir string
}

// NewLocalStore creates a file-backed store rooted at dir. The
// directory is created if it does not exist.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(key string) string {
	// Sanitize key for filename
	return filepath.Join(s.dir, filepath.Base(key)+".json")
}

func (s *LocalStore) Get(_ context.Context, key string, dest any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := os.Open(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(dest)
}

func (s *LocalStore) Set(_ context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Create(s.path(key))
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
