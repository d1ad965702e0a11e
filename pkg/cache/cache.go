// Package cache stores translation results keyed by content hash.
//
// # Backends
//
//   - [FileCache]: one JSON entry per key under a local directory (CLI default)
//   - [RedisCache]: shared cache for multiple server instances
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys from the source hash and every option that changes
// the output, so two requests share an entry only if they would produce the
// same bytes. [ScopedKeyer] prefixes keys for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// TTLTranslation is how long translated outputs are kept.
const TTLTranslation = 7 * 24 * time.Hour

// TranslationKeyOpts lists the inputs that change a translation's output.
// Params is an opaque, already canonical encoding of the remaining options
// (theme, layout, ID strategy).
type TranslationKeyOpts struct {
	Input  string
	Output string
	Kind   string
	Params string
}
