// Package cache stores rendered diagram artifacts.
//
// # Overview
//
// Rendering a diagram is cheap but not free, and the HTTP server renders the
// same diagram under the same highlight state many times. The [Cache]
// interface keeps the bytes of finished artifacts (SVG, DOT, JSON) keyed by
// a hash of the diagram content plus the render options, so any change to
// the diagram produces new keys and stale entries simply age out.
//
// Implementations:
//
//   - [FileCache]: one file per entry below a directory, used by the CLI
//   - [RedisCache]: shared cache for several server replicas
//   - [NullCache]: caching disabled
//
// [Instrument] wraps any Cache so hits, misses and writes are reported to
// the registered [observability.CacheHooks].
//
// # Keys
//
// Keys are built by a [Keyer]. The [DefaultKeyer] hashes the options with
// SHA-256; [ScopedKeyer] adds a prefix so several deployments can share one
// Redis database.
//
// [observability.CacheHooks]: github.com/matzehuels/tocview/pkg/observability.CacheHooks
package cache

import (
	"context"
	"slices"
	"time"
)

// TTLArtifact is the default lifetime of a cached artifact.
const TTLArtifact = 24 * time.Hour

// Cache is a byte store with expiry. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found. A missing or
	// expired entry is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts are the render inputs that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string   `json:"format"` // "svg", "dot", "json", "pdf", "png"
	View     string   `json:"view"`   // "columns" or "nodelink"
	Seeds    []string `json:"seeds,omitempty"`
	Focus    string   `json:"focus,omitempty"`
	Expanded []string `json:"expanded,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Links    string   `json:"links,omitempty"` // Base URL used for click-through links
	Title    string   `json:"title,omitempty"`
	Scale    float64  `json:"scale,omitempty"` // PNG only
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact of the diagram
	// whose content hashes to diagramHash.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes diagramHash and opts into "artifact:<sha256>". Seed and
// expanded sets are order-independent.
func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	opts.Seeds = sortedCopy(opts.Seeds)
	opts.Expanded = sortedCopy(opts.Expanded)
	return hashKey("artifact", diagramHash, opts)
}

func sortedCopy(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := slices.Clone(s)
	slices.Sort(out)
	return slices.Compact(out)
}
