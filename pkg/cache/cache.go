// Package cache stores derived artifacts of a family tree: node positions
// that must survive between CLI invocations, and rendered diagrams keyed by
// the hash of the layout they were drawn from.
//
// Backends:
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: shared cache for multi-instance servers
//   - [NullCache]: caching disabled
//
// Keys are built by a [Keyer] so every consumer agrees on the layout of the
// key space; [NewScopedKeyer] prefixes keys per tree.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value cache with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired and
	// corrupt entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key type labels reported to observability hooks.
const (
	KeyTypePositions = "positions"
	KeyTypeRender    = "render"
)

// Keyer builds cache keys.
type Keyer interface {
	// PositionsKey addresses the last known node positions of a tree.
	PositionsKey(treeKey string) string

	// RenderKey addresses a rendered diagram. layoutHash identifies the
	// positioned diagram it was drawn from.
	RenderKey(layoutHash string, opts RenderKeyOpts) string
}

// RenderKeyOpts are the render options that change the output bytes.
type RenderKeyOpts struct {
	Format    string `json:"format"`
	Highlight string `json:"highlight,omitempty"`
	Theme     string `json:"theme,omitempty"`
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PositionsKey returns "positions:<treeKey>".
func (DefaultKeyer) PositionsKey(treeKey string) string {
	return KeyTypePositions + ":" + treeKey
}

// RenderKey returns "render:<sha256(layoutHash, opts)>".
func (DefaultKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return hashKey(KeyTypeRender, layoutHash, opts)
}
