package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// ReadJSON loads and decodes the value stored under key.
// It returns ok=false on a miss, and an error wrapping ErrCorrupt when the
// stored text does not decode into T.
func ReadJSON[T any](ctx context.Context, kv KV, key string) (T, bool, error) {
	var out T
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return out, false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return out, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return out, true, nil
}

// DecodeInto decodes the value stored under key over dst, so fields missing
// from the stored payload keep whatever dst already holds.
func DecodeInto(ctx context.Context, kv KV, key string, dst any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// WriteJSON encodes v and stores it under key.
func WriteJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
