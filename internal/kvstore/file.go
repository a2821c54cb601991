package kvstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a JSON file-backed Store. The whole map is loaded at
// construction and rewritten atomically on every mutation.
type FileStore struct {
	mu      sync.RWMutex
	entries map[string]string
	path    string
}

var _ Store = (*FileStore)(nil)

// NewFileStore constructs a FileStore at the given path. If the file
// exists it is loaded; a missing file is an empty store.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		entries: make(map[string]string),
		path:    path,
	}
	if err := s.loadFromFile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) loadFromFile() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// no file yet; that's fine
			return nil
		}
		return err
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, &s.entries)
}

// saveToFile must be called with the write lock held.
func (s *FileStore) saveToFile() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

// Set writes value under key and rewrites the backing file.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return s.saveToFile()
}

// Remove deletes key and rewrites the backing file.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.saveToFile()
}

// Close is a no-op; every mutation is already flushed.
func (s *FileStore) Close() error {
	return nil
}
