package handlers

import (
	"context"
	"sync"
)

// User is the record served by the user function
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// UserStore looks up users by id
type UserStore interface {
	FindUser(ctx context.Context, id string) (*User, error)
}

// MemoryUserStore is a UserStore backed by a map
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryUserStore creates a store seeded with users
func NewMemoryUserStore(users ...User) *MemoryUserStore {
	s := &MemoryUserStore{users: make(map[string]User, len(users))}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

// FindUser returns the user with id or ErrUserNotFound
func (s *MemoryUserStore) FindUser(ctx context.Context, id string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// Put adds or replaces a user
func (s *MemoryUserStore) Put(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// SeedUsers returns the users the example function starts with
func SeedUsers() []User {
	return []User{
		{ID: "1", Name: "Ada Lovelace", Email: "ada@example.com"},
		{ID: "2", Name: "Grace Hopper", Email: "grace@example.com"},
	}
}
