// Package store persists the expense collection as a single blob in a
// key-value byte store (a JSON file, a sqlite row, or memory).
package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Sentinel errors returned by ByteStore implementations.
var (
	ErrNotFound       = errors.New("key not found")
	ErrQuotaExceeded  = errors.New("storage quota exceeded")
	ErrInvalidKey     = errors.New("invalid key")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// ByteStore is a minimal key-value store of opaque blobs.
type ByteStore interface {
	// Get returns the value under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set replaces the value under key. On error the previous value is kept.
	Set(key string, value []byte) error
	Close() error
}

// Timestamped is implemented by backends that know when a key was last written.
type Timestamped interface {
	UpdatedAt(key string) (time.Time, error)
}

// OpError wraps a backend failure with the operation and key involved.
type OpError struct {
	Op  string
	Key string
	Err error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := e.Op
	if e.Key != "" {
		base += fmt.Sprintf(" (key=%s)", e.Key)
	}
	if e.Err != nil {
		base += ": " + e.Err.Error()
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the named backend rooted at dataDir. An empty name means file.
func Open(backend, dataDir string) (ByteStore, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(dataDir), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, "tally.db"))
	case BackendMemory:
		return NewMemoryStore(0), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

func checkKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
