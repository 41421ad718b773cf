package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tocview/pkg/cache"
	"github.com/matzehuels/tocview/pkg/highlight"
	"github.com/matzehuels/tocview/pkg/layout"
	"github.com/matzehuels/tocview/pkg/observability"
	"github.com/matzehuels/tocview/pkg/toc"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute resolves, lays out and renders g.
func (r *Runner) Execute(ctx context.Context, g *toc.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hash, err := DiagramHash(g)
	if err != nil {
		return nil, fmt.Errorf("hash diagram: %w", err)
	}

	result := &Result{DiagramHash: hash}
	result.Stats.ColumnCount = g.ColumnCount()
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Stats.DanglingCount = len(g.Dangling())

	start := time.Now()
	result.Snapshot = r.Resolve(ctx, g, opts)
	result.Stats.ResolveTime = time.Since(start)

	result.Layout = layout.Build(g, layout.Options{Expanded: toc.NewSet(opts.Expanded...)})

	start = time.Now()
	artifacts, hit, err := r.renderWithCache(ctx, g, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Debug("rendered diagram",
		"diagram", opts.Name,
		"formats", opts.Formats,
		"connected", result.Snapshot.Connected.Len(),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Resolve derives the highlight snapshot for opts and reports it to the
// resolve hooks.
func (r *Runner) Resolve(ctx context.Context, g *toc.Graph, opts Options) highlight.Snapshot {
	start := time.Now()
	snap := highlight.Resolve(g, opts.State())
	observability.Resolve().OnResolve(ctx, opts.Name,
		snap.Seeds.Len(), snap.Connected.Len(), snap.Neighbors.Len(), time.Since(start))
	return snap
}

func (r *Runner) renderWithCache(ctx context.Context, g *toc.Graph, res *Result, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(res.DiagramHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache lookup failed", "format", format, "error", err)
				break
			}
			if !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := renderFormats(ctx, g, res, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(res.DiagramHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// DiagramHash returns the content hash of g's diagram. Diagrams that decode
// to the same columns and nodes hash equally whatever file format they came
// from.
func DiagramHash(g *toc.Graph) (string, error) {
	return cache.HashJSON(g.Data())
}
