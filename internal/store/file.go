package store

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps each key in <dir>/<key>.json.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

var _ ByteStore = (*FileStore)(nil)

// Path returns the file that holds key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get implements ByteStore.
func (s *FileStore) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, &OpError{Op: "filestore.read", Key: key, Err: err}
	}
	return b, nil
}

// Set writes to a temp file and renames it over the old one, so a failed
// write leaves the previous value in place.
func (s *FileStore) Set(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return &OpError{Op: "filestore.mkdir", Key: key, Err: err}
	}

	path := s.Path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		_ = os.Remove(tmp)
		return &OpError{Op: "filestore.write", Key: key, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &OpError{Op: "filestore.rename", Key: key, Err: err}
	}
	return nil
}

// UpdatedAt returns the modification time of key's file.
func (s *FileStore) UpdatedAt(key string) (time.Time, error) {
	if err := checkKey(key); err != nil {
		return time.Time{}, err
	}
	fi, err := os.Stat(s.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, &OpError{Op: "filestore.stat", Key: key, Err: err}
	}
	return fi.ModTime(), nil
}

// Close implements ByteStore. FileStore holds no resources.
func (s *FileStore) Close() error { return nil }
