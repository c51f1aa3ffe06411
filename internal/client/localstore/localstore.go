// Package localstore is the client's durable key-value cache. It survives
// restarts and is shared by every client process pointed at the same
// backing store. Writes are last-write-wins per key.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound = errors.New("localstore: key not found")
	ErrClosed   = errors.New("localstore: store closed")
)

// Change describes a write made through some Store. Watchers only see
// changes whose Origin differs from their own.
type Change struct {
	Key     string    `json:"key"`
	Origin  string    `json:"origin"`
	Deleted bool      `json:"deleted"`
	At      time.Time `json:"at"`
}

// Store is a durable key-value store with a cross-process change feed.
type Store interface {
	// Get returns ErrNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	// Keys lists keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Watch delivers changes written by other origins until ctx is done.
	// The channel is closed when watching stops.
	Watch(ctx context.Context) (<-chan Change, error)

	// Origin identifies this Store instance in the change feed.
	Origin() string

	Ping(ctx context.Context) error
	Close() error
}

// GetJSON decodes the value at key into v. A value that fails to decode is
// treated as absent so corrupt entries never block callers.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s holds malformed json", ErrNotFound, key)
	}
	return nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
