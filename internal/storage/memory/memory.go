// Package memory provides an in-process storage.KV, used by tests and by
// sessions that should leave nothing behind.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/pocketledger/internal/storage"
)

var _ storage.KV = (*Store)(nil)

// Store is a storage.KV held in a map. It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	items map[string]string
}

// New returns an empty Store.
func New() *Store {
	return &Store{items: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *Store) Close() error { return nil }

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
