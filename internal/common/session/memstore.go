package session

import "sync"

// MemStore is an in-memory Store. It backs tests and embedded use where no
// durable session is wanted.
type MemStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *MemStore) IsAuthenticated() bool {
	return s.Token() != ""
}

var _ Store = &MemStore{}
