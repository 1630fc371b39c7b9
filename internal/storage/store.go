package storage

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrCorrupt  = errors.New("document is not valid JSON")
)

// Store keeps one JSON document per key as a file under dir. Writes go
// through a temp file and rename so readers never observe a partial
// document.
type Store struct {
	dir string

	mu sync.Mutex
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) Put(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrap(err, "create data dir")
	}

	b, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, path), "rename %s", path)
}

// Get decodes the document at key into dst. A missing file yields
// ErrNotFound, an unparseable one ErrCorrupt; both are recoverable
// conditions for callers, not crashes.
func (s *Store) Get(key string, dst interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return errors.Wrapf(err, "read %s", key)
	}
	if err := sonic.Unmarshal(b, dst); err != nil {
		return errors.Wrapf(ErrCorrupt, "decode %s: %v", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", key)
	}
	return nil
}
