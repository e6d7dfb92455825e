// Package storage provides the keyed persistent store that backs every
// piece of application state.
//
// The store is the system of record: in-memory state held by the
// identity, settings and ledger stores is a cache that can always be
// rebuilt from it.
package storage

import (
	"context"
	"errors"
)

// ErrCorrupt is returned when a stored value cannot be decoded.
// Callers treat it as a cache miss.
var ErrCorrupt = errors.New("corrupt stored value")

// KV defines the interface for keyed storage operations.
// This abstraction allows swapping storage backends (SQLite, in-memory, cached)
// without changing the stores built on top of it.
type KV interface {
	// Get returns the value stored under key.
	// ok is false when the key does not exist.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
