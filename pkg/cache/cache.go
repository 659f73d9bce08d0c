// Package cache stores rendered page payloads for a bounded time.
//
// Entries are keyed by route and expire after the TTL given at construction.
// Nothing is evicted on write unless a caller asks for it explicitly.
package cache

import (
	"context"
	"time"
)

// PageCache is the contract shared by the Redis and in-process backends.
type PageCache interface {
	// Get returns the cached payload and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	// Clear drops every entry owned by this cache.
	Clear(ctx context.Context) error
	TTL() time.Duration
}
