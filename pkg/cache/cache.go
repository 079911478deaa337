// Package cache stores solve results keyed by grid content and mode.
//
// Searches are deterministic, so a result computed once for a given grid
// text and mode can be served again without re-running the search. The
// [Cache] interface has four backends:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [MemoryCache] keeps entries in process, for the CLI and tests
//   - [FileCache] keeps entries on disk between CLI invocations
//   - [RedisCache] shares entries between server replicas
//
// Keys come from a [Keyer]; [ScopedKeyer] adds a namespace prefix so several
// deployments can share one Redis database.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long solve results live when no TTL is configured.
const DefaultTTL = time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero or less means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
