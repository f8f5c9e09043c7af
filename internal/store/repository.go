package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/theirongolddev/tally/internal/model"
)

// DefaultKey is the key the expense collection lives under when no ledger is named.
const DefaultKey = "expenses"

// Encode serializes the collection as a compact JSON array.
// A nil collection encodes as [].
func Encode(expenses []model.Expense) ([]byte, error) {
	if expenses == nil {
		expenses = []model.Expense{}
	}
	return json.Marshal(expenses)
}

// Decode parses a JSON array of expenses. A JSON null yields an empty slice.
func Decode(data []byte) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := json.Unmarshal(data, &expenses); err != nil {
		return nil, fmt.Errorf("decoding expenses: %w", err)
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	return expenses, nil
}

// Repository loads and saves the whole expense collection through a
// ByteStore. Its methods never fail: read problems degrade to an empty
// collection and write problems are logged and kept in LastSaveErr.
type Repository struct {
	kv  ByteStore
	key string
	log *slog.Logger

	mu      sync.Mutex
	lastErr error
}

// Option configures a Repository.
type Option func(*Repository)

// WithKey stores the collection under a key other than DefaultKey.
// An empty key keeps the default.
func WithKey(key string) Option {
	return func(r *Repository) {
		if key != "" {
			r.key = key
		}
	}
}

// WithLogger sets the logger used for swallowed errors.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) { r.log = l }
}

// NewRepository wraps kv.
func NewRepository(kv ByteStore, opts ...Option) *Repository {
	r := &Repository{
		kv:  kv,
		key: DefaultKey,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the persisted collection, or an empty one when nothing is
// stored or the stored data cannot be parsed.
func (r *Repository) Load() []model.Expense {
	data, err := r.kv.Get(r.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.log.Warn("store.load_failed", "key", r.key, "err", err)
		}
		return []model.Expense{}
	}

	expenses, err := Decode(data)
	if err != nil {
		r.log.Warn("store.parse_failed", "key", r.key, "bytes", len(data), "err", err)
		return []model.Expense{}
	}
	r.log.Debug("store.loaded", "key", r.key, "count", len(expenses))
	return expenses
}

// Save overwrites the persisted collection. Failures are logged and
// recorded for LastSaveErr; the previously stored data stays as it was.
func (r *Repository) Save(expenses []model.Expense) {
	err := r.save(expenses)

	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()

	if err != nil {
		r.log.Error("store.save_failed", "key", r.key, "count", len(expenses), "err", err)
		return
	}
	r.log.Debug("store.saved", "key", r.key, "count", len(expenses))
}

func (r *Repository) save(expenses []model.Expense) error {
	data, err := Encode(expenses)
	if err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}
	return r.kv.Set(r.key, data)
}

// Key returns the key the collection is stored under.
func (r *Repository) Key() string { return r.key }

// LastSaveErr returns the error from the most recent Save, or nil.
func (r *Repository) LastSaveErr() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Add appends e and returns the resulting collection.
func (r *Repository) Add(e model.Expense) []model.Expense {
	expenses := append(r.Load(), e)
	r.Save(expenses)
	return expenses
}

// Update replaces the expense with e's id. When no such id exists the
// collection is returned unchanged and nothing is written.
func (r *Repository) Update(e model.Expense) []model.Expense {
	expenses := r.Load()
	for i := range expenses {
		if expenses[i].ID == e.ID {
			expenses[i] = e
			r.Save(expenses)
			return expenses
		}
	}
	return expenses
}

// Delete removes the expense with id. When no such id exists the
// collection is returned unchanged and nothing is written.
func (r *Repository) Delete(id string) []model.Expense {
	expenses := r.Load()
	filtered := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == len(expenses) {
		return expenses
	}
	r.Save(filtered)
	return filtered
}

// Find returns the expense with id.
func (r *Repository) Find(id string) (model.Expense, bool) {
	for _, e := range r.Load() {
		if e.ID == id {
			return e, true
		}
	}
	return model.Expense{}, false
}
