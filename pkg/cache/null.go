package cache

import (
	"context"
	"time"
)

// NullCache turns incremental reuse off: every unit goes through all four
// analysis stages on every run. It backs "analyze --no-cache" and is the
// cache of a pipeline Runner until another one is set.
type NullCache struct{}

// NewNullCache returns a cache that keeps no unit.
func NewNullCache() *NullCache {
	return &NullCache{}
}

// Get reports a miss for every unit key.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the unit's artifacts.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

// Clear has no units to remove and always reports zero.
func (NullCache) Clear() (int, error) {
	return 0, nil
}

var (
	_ Cache   = NullCache{}
	_ Clearer = NullCache{}
)
