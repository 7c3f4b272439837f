// Package cache provides byte-level caching used to memoize node expansions.
//
// Remote graph sources (HTTP, Redis, Mongo) answer the same "links of node
// X" question over and over during a search session; the cache keeps those
// answers local. Two backends are provided: [FileCache] for the CLI
// (entries under ~/.cache/wayfinder/) and [NullCache] to disable caching.
//
// Keys are hashed with SHA-256 before use, so callers may use arbitrary
// strings (node IDs with URL prefixes included) without worrying about
// filesystem-safe characters.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for expansion-cache backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and fresh; expired or missing entries return (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of zero means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
