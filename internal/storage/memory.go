package storage

import "sync"

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	values      map[string]string
	unavailable bool
	writes      int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// NewUnavailableStore creates a store whose every call fails with
// ErrUnavailable, like a browser with storage disabled.
func NewUnavailableStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string), unavailable: true}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.unavailable {
		return "", ErrUnavailable
	}
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return ErrUnavailable
	}
	s.values[key] = value
	s.writes++
	return nil
}

// Writes returns the number of successful writes.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
