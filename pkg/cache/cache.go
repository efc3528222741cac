// Package cache stores computed layouts so repeated requests for the same
// canvas and settings skip the layout engine.
//
// Three backends implement [Cache]:
//   - [FileCache]: hashed files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are derived by a [Keyer] so the CLI and the service agree on them.
// [ScopedKeyer] adds a namespace prefix when several deployments share one
// Redis.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with hit=false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	// TTLLayout bounds how long a computed layout is reused.
	TTLLayout = 7 * 24 * time.Hour
)
