// Package memory implements an in-memory session cart store.
package memory

import (
	"context"
	"sync"

	"lightshop/pkg/cart"
)

// Store provides an in-memory implementation of cart.Store. Carts live as
// long as the process.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]cart.Item
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{carts: make(map[string][]cart.Item)}
}

// Load returns the items saved for sessionID.
func (s *Store) Load(ctx context.Context, sessionID string) ([]cart.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]cart.Item(nil), s.carts[sessionID]...), nil
}

// Save replaces the items of sessionID. Saving no items forgets the session.
func (s *Store) Save(ctx context.Context, sessionID string, items []cart.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(items) == 0 {
		delete(s.carts, sessionID)
		return nil
	}
	s.carts[sessionID] = append([]cart.Item(nil), items...)
	return nil
}

// Delete forgets sessionID.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return nil }

// Len returns the number of sessions holding a cart.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
