// Package cache provides content-addressed caching for layouts and rendered
// artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the server
//   - [NullCache]: stores nothing, for tests and --no-cache
//
// # Keys
//
// A [Keyer] derives keys from content hashes. Layout entries are keyed by
// the hash of the floorplan config that produced them; artifacts by the
// layout hash and output format. [ScopedKeyer] adds a prefix so several
// deployments can share one Redis.
//
//	k := cache.NewDefaultKeyer()
//	data, hit, err := c.Get(ctx, k.LayoutKey(cfg.Hash()))
package cache

import (
	"context"
	"time"
)

// Default time-to-live values. Layouts are pure functions of their config,
// so entries only expire to bound disk and memory use.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache stores opaque values by key.
type Cache interface {
	// Get returns the value for key. A miss is reported as hit == false with
	// a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout built from a config hash.
	LayoutKey(configHash string) string

	// ArtifactKey returns the key of a layout rendered to format.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Width    int    `json:"width,omitempty"`
	Pins     bool   `json:"pins,omitempty"`
	Labels   bool   `json:"labels,omitempty"`
	Fillers  bool   `json:"fillers,omitempty"`
	Collapse bool   `json:"collapse,omitempty"`
	Design   string `json:"design,omitempty"`
}

// DefaultKeyer builds keys as prefix:sha256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(configHash string) string {
	return hashKey("layout", configHash)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
