package store

import (
	"context"
	"sync"

	"github.com/alirk24/sejam-porfiling/internal/token"
)

// InMemoryStore keeps the single cached token under a mutex, making the
// delete-all-then-insert-one replacement trivially atomic.
type InMemoryStore struct {
	mu  sync.RWMutex
	tok *token.AccessToken
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Current(_ context.Context) (*token.AccessToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tok == nil {
		return nil, token.ErrNotFound
	}
	cp := *s.tok
	return &cp, nil
}

func (s *InMemoryStore) Replace(_ context.Context, tok *token.AccessToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *tok
	s.tok = &cp
	return nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = nil
}
