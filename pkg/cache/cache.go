// Package cache stores rendered artifacts keyed by avatar fingerprint.
//
// Three backends implement [Cache]:
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: one JSON entry per key under a local directory, for the CLI
//   - [RedisCache]: a shared redis instance, for the HTTP server
//
// Keys are produced by a [Keyer] so that every option affecting the output
// bytes (format, size, scale, seed, pinned clothing color) is part of the key.
// Only deterministic renders are cached; see pipeline.Runner.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default TTLs.
const (
	// ArtifactTTL bounds how long rendered outputs are kept.
	ArtifactTTL = 7 * 24 * time.Hour

	// SheetTTL bounds how long contact sheets are kept.
	SheetTTL = 24 * time.Hour
)
