// Package cache provides byte caches for computed layouts and rendered
// artifacts.
//
// Three backends implement [Cache]:
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
//
// Keys are produced by a [Keyer] from a content hash and the options that
// influence the cached value, so identical requests hit the same entry.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached value and true, or false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default TTLs.
const (
	// LayoutTTL is how long computed layouts stay cached.
	LayoutTTL = 7 * 24 * time.Hour

	// ArtifactTTL is how long rendered artifacts stay cached.
	ArtifactTTL = 24 * time.Hour
)
