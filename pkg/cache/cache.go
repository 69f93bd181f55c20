// Package cache stores per-unit analysis outputs between runs.
//
// A unit whose source bytes and analysis-relevant configuration are unchanged
// since an earlier run produces the same artifacts, so the pipeline can skip
// every stage and commit the cached bytes instead. Keys come from
// [UnitKey]; values are opaque to this package.
//
// Two implementations are provided: [FileCache] for the CLI (one JSON file
// per entry under a cache directory) and [NullCache] when caching is off.
package cache

import (
	"context"
	"time"
)

// TTLUnit is how long a cached unit stays valid.
const TTLUnit = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value stored under key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is a cache that can drop every stored unit at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear() (int, error)
}
