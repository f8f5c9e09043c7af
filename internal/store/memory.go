package store

import "sync"

// MemoryStore is an in-process ByteStore. With a positive quota, a Set that
// would push the total stored bytes past it fails with ErrQuotaExceeded.
type MemoryStore struct {
	mu    sync.Mutex
	quota int
	items map[string][]byte
	sets  int
}

// NewMemoryStore returns an empty store. quota <= 0 means unlimited.
func NewMemoryStore(quota int) *MemoryStore {
	return &MemoryStore{quota: quota, items: make(map[string][]byte)}
}

var _ ByteStore = (*MemoryStore)(nil)

// Get implements ByteStore.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set implements ByteStore.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		used := len(value)
		for k, v := range s.items {
			if k != key {
				used += len(v)
			}
		}
		if used > s.quota {
			return &OpError{Op: "memstore.set", Key: key, Err: ErrQuotaExceeded}
		}
	}

	s.items[key] = append([]byte(nil), value...)
	s.sets++
	return nil
}

// Writes returns how many successful Set calls the store has seen.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

// Close implements ByteStore.
func (s *MemoryStore) Close() error { return nil }
