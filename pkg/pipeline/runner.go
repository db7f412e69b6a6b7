package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/contentstack/pkg/cache"
	"github.com/matzehuels/contentstack/pkg/layout"
	"github.com/matzehuels/contentstack/pkg/observability"
	"github.com/matzehuels/contentstack/pkg/state"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute resolves st and renders the tree in opts.Format.
func (r *Runner) Execute(ctx context.Context, st state.State, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}
	hash, err := cache.HashJSON(st)
	if err != nil {
		return nil, err
	}
	result.StateHash = hash

	resolveStart := time.Now()
	tree, hit, err := r.resolve(ctx, st, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	result.Tree = tree
	if result.Stats.Tree, err = tree.Stats(); err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.CacheInfo.ResolveHit = hit

	r.Logger.Info("resolved layout",
		"rows", result.Stats.Tree.Rows,
		"components", result.Stats.Tree.Components,
		"placeholders", result.Stats.Tree.Placeholders,
		"cached", hit,
		"duration", result.Stats.ResolveTime)

	renderStart := time.Now()
	artifact, hit, err := r.Render(ctx, tree, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Resolve returns the render tree for st, from cache when possible, and
// whether it was a cache hit.
func (r *Runner) Resolve(ctx context.Context, st state.State, opts Options) (layout.RenderTree, bool, error) {
	r.applyLogger(&opts)
	opts.SetResolveDefaults()
	hash, err := cache.HashJSON(st)
	if err != nil {
		return layout.RenderTree{}, false, err
	}
	return r.resolve(ctx, st, hash, opts)
}

func (r *Runner) resolve(ctx context.Context, st state.State, hash string, opts Options) (layout.RenderTree, bool, error) {
	hooks := observability.Resolve()
	key := r.Keyer.TreeKey(hash, cache.TreeKeyOpts{Version: opts.Version})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var tree layout.RenderTree
			if err := json.Unmarshal(data, &tree); err == nil {
				observability.Cache().OnCacheHit(ctx, "tree")
				return tree, true, nil
			}
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "key", key, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "tree")
	}

	start := time.Now()
	hooks.OnResolveStart(ctx, len(st.Layout))
	tree, err := layout.Resolve(st.Input())
	if err != nil {
		hooks.OnResolveComplete(ctx, 0, 0, time.Since(start), err)
		return layout.RenderTree{}, false, err
	}
	stats, err := tree.Stats()
	hooks.OnResolveComplete(ctx, stats.Components, stats.Placeholders, time.Since(start), err)
	if err != nil {
		return layout.RenderTree{}, false, err
	}

	// Trees with placeholders describe a loading page; they are cheap to
	// recompute and go stale as soon as data arrives.
	if stats.Placeholders == 0 {
		if data, err := json.Marshal(tree); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLTree); err == nil {
				observability.Cache().OnCacheSet(ctx, "tree", len(data))
			}
		}
	}
	return tree, false, nil
}

// Render encodes tree in opts.Format, from cache when possible, and reports
// whether it was a cache hit.
func (r *Runner) Render(ctx context.Context, tree layout.RenderTree, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	hooks := observability.Resolve()
	treeHash, err := cache.HashJSON(tree)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(treeHash, cache.ArtifactKeyOpts{Format: artifactFormat(opts)})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Format)
	data, err := RenderTree(ctx, tree, opts.Format, opts.Detailed)
	hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// JSON is a plain re-encoding; caching it would only duplicate the tree.
	if opts.Format != FormatJSON {
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return data, false, nil
}

// Apply replays events onto st and returns the resulting state and the
// number of events applied. Gated events arriving before the state is ready
// are dropped, as they would be in a live store.
func (r *Runner) Apply(ctx context.Context, st state.State, events []state.Event) (state.State, int) {
	store := state.NewStore(st, r.Logger)
	applied := store.DispatchAll(ctx, events)
	r.Logger.Info("applied events",
		"total", len(events),
		"applied", applied,
		"dropped", len(events)-applied,
		"ready", state.IsReady(store.Snapshot()))
	return store.Snapshot(), applied
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func artifactFormat(opts Options) string {
	if opts.Detailed {
		return opts.Format + "+detailed"
	}
	return opts.Format
}
