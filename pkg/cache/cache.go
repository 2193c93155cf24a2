// Package cache provides byte-level caching for content host responses and
// rendered article pages.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
//
// All backends implement [Cache]. Entries carry a TTL; a zero TTL never
// expires. Keys are built with a [Keyer] so the same backend can hold
// entries for several content repositories without collisions.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
