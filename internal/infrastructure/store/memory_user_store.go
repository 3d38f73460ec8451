package store

import (
	"context"
	"sync"

	"github.com/example/fleet-inventory/internal/auth"
)

// MemoryUserStore keeps accounts in memory. Used in tests and when the
// server runs without a database.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*auth.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*auth.User)}
}

func (s *MemoryUserStore) Save(ctx context.Context, u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Username]; ok {
		return auth.ErrUserExists
	}
	cp := *u
	s.users[u.Username] = &cp
	return nil
}

func (s *MemoryUserStore) ByUsername(ctx context.Context, username string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryUserStore) UpdateRole(ctx context.Context, username string, role auth.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.Role = role
	return nil
}
