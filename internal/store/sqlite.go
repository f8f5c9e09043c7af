package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteStore keeps blobs in the kv table of a sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ ByteStore = (*SQLiteStore)(nil)

// OpenSQLite opens or creates the database at dbPath and migrates it.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get implements ByteStore.
func (s *SQLiteStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &OpError{Op: "sqlite.get", Key: key, Err: err}
	}
	return value, nil
}

// Set implements ByteStore. The write is a single statement, so a failure
// leaves the previous row untouched.
func (s *SQLiteStore) Set(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, now)
	if err != nil {
		return &OpError{Op: "sqlite.set", Key: key, Err: err}
	}
	return nil
}

// UpdatedAt returns when key was last written.
func (s *SQLiteStore) UpdatedAt(key string) (time.Time, error) {
	var raw string
	err := s.db.QueryRow("SELECT updated_at FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, &OpError{Op: "sqlite.updated_at", Key: key, Err: err}
	}
	return time.Parse(time.RFC3339, raw)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
