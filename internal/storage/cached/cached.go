// Package cached decorates a storage.KV with a bounded read-through cache.
//
// Writes go to the backing store first and only then update the cache, so the
// backing store stays the system of record. Misses are not cached.
package cached

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mmynk/pocketledger/internal/storage"
)

var _ storage.KV = (*Store)(nil)

// Store is a storage.KV with an LRU cache in front of it.
type Store struct {
	backend storage.KV
	cache   *lru.Cache[string, string]
}

// New wraps backend with a cache holding at most size entries.
func New(backend storage.KV, size int) (*Store, error) {
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &Store{backend: backend, cache: cache}, nil
}

// Get serves from the cache, falling back to the backend on a miss.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		return v, true, nil
	}
	v, ok, err := s.backend.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	s.cache.Add(key, v)
	return v, true, nil
}

// Set writes through to the backend and then caches the value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.backend.Set(ctx, key, value); err != nil {
		s.cache.Remove(key)
		return err
	}
	s.cache.Add(key, value)
	return nil
}

// Delete removes key from the backend and the cache.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.cache.Remove(key)
	return s.backend.Delete(ctx, key)
}

// Close purges the cache and closes the backend.
func (s *Store) Close() error {
	s.cache.Purge()
	return s.backend.Close()
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	return s.cache.Len()
}
