// Package cache stores converted frames so repeated conversions of the same
// image with the same options are served from disk.
//
// Keys are derived from a content hash of the input plus every option that
// affects the output. [FileCache] persists entries as JSON files under the
// user cache directory; [NullCache] disables caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// TTLConvert is how long a converted image stays cached.
const TTLConvert = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the data for key and whether it was found.
	// Expired or unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ConvertKeyOpts holds the options that change a conversion's output.
type ConvertKeyOpts struct {
	Width     int     `json:"width"`
	Sharpness float64 `json:"sharpness"`
	Ramp      string  `json:"ramp"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ConvertKey returns the key for converting content with contentHash.
	ConvertKey(contentHash string, opts ConvertKeyOpts) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ConvertKey returns "convert:<sha256>" over the content hash and options.
func (DefaultKeyer) ConvertKey(contentHash string, opts ConvertKeyOpts) string {
	return hashKey("convert", contentHash, opts)
}

// hashKey joins prefix with the SHA-256 of the JSON-encoded parts.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache never stores anything. It is used when caching is disabled.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)       { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

// Ensure NullCache implements Cache.
var _ Cache = NullCache{}
