// Package cache stores resolved render trees and rendered artifacts.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// servers sharing a cache, and [NullCache] when caching is disabled. Keys are
// built by a [Keyer] from content hashes, so identical state always maps to
// the same entry and any change to the state produces a new key.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per entry kind.
const (
	TTLTree     = 10 * time.Minute
	TTLArtifact = time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// TreeKey identifies the render tree resolved from a state snapshot.
	TreeKey(stateHash string, opts TreeKeyOpts) string

	// ArtifactKey identifies a render tree rendered in one output format.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// TreeKeyOpts are the options that change a resolved tree.
type TreeKeyOpts struct {
	// Version is the engine version; trees from other versions are not reused.
	Version string `json:"version,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer builds keys of the form kind:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TreeKey implements Keyer.
func (DefaultKeyer) TreeKey(stateHash string, opts TreeKeyOpts) string {
	return hashKey("tree", stateHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}

var _ Keyer = DefaultKeyer{}
