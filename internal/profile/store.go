package profile

import (
	"context"
	"sync"
)

type Store interface {
	Get(ctx context.Context) (User, error)
	Put(ctx context.Context, u User) (User, error)
}

type InMemoryStore struct {
	mu   sync.RWMutex
	user User
}

func NewInMemoryStore(initial User) *InMemoryStore {
	return &InMemoryStore{user: initial}
}

func (s *InMemoryStore) Get(ctx context.Context) (User, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, nil
}

func (s *InMemoryStore) Put(ctx context.Context, u User) (User, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	return s.user, nil
}
