package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/collage/pkg/cache"
	"github.com/matzehuels/collage/pkg/layout"
	"github.com/matzehuels/collage/pkg/observability"
	"github.com/matzehuels/collage/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// The CLI and the preview server both use it so caching logic lives in one
// place.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Loader source.Loader
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache, keyer and photo loader.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If loader is nil, photos are decoded from the local filesystem.
func NewRunner(c cache.Cache, keyer cache.Keyer, loader source.Loader, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if loader == nil {
		loader = source.FileLoader{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Loader: loader,
		Logger: logger,
	}
}

// Execute runs the complete build → render pipeline with caching.
//
// Every requested format is looked up first; only when one of them is
// missing is the scene built and rendered, and then all formats are
// rewritten to the cache.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	sources, proj, err := ResolveSources(opts)
	if err != nil {
		return nil, fmt.Errorf("sources: %w", err)
	}
	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	result.Stats.Sources = len(sources)

	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.RenderKey(opts.RenderKeyOpts(format, sources))
	}

	if !opts.Refresh {
		if artifacts, ok := r.lookup(ctx, keys); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Debug("render cache hit", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 1: Build
	buildStart := time.Now()
	sc, err := Build(ctx, r.Loader, opts, sources, proj)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Scene = sc
	result.Stats.Frames = len(sc.Frames())
	result.Stats.BuildTime = time.Since(buildStart)

	r.Logger.Info("built scene",
		"layout", sc.Layout().String(),
		"frames", result.Stats.Frames,
		"sources", result.Stats.Sources,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := Render(ctx, sc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	r.store(ctx, keys, artifacts, cache.RenderTTL)
	return result, nil
}

// RenderLayout renders a layout preview with caching. The bool reports a
// cache hit.
func (r *Runner) RenderLayout(ctx context.Context, spec string, w, h int, format string) ([]byte, bool, error) {
	desc, err := layout.Parse(spec)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.LayoutKey(desc.String(), cache.LayoutKeyOpts{Width: w, Height: h, Format: format})

	if data, hit := r.get(ctx, key, "layout"); hit {
		return data, true, nil
	}

	data, err := RenderLayout(desc, w, h, format, nil)
	if err != nil {
		return nil, false, err
	}
	r.set(ctx, key, "layout", data, cache.LayoutTTL)
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup returns every artifact from the cache, or false when any one is
// missing.
func (r *Runner) lookup(ctx context.Context, keys map[string]string) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(keys))
	for format, key := range keys {
		data, hit := r.get(ctx, key, "render")
		if !hit {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, keys map[string]string, artifacts map[string][]byte, ttl time.Duration) {
	for format, data := range artifacts {
		r.set(ctx, keys[format], "render", data, ttl)
	}
}

// get reads key, retrying transient backend failures. Backend errors are
// logged and reported as a miss so a broken cache never fails a render.
func (r *Runner) get(ctx context.Context, key, keyType string) ([]byte, bool) {
	var (
		data []byte
		hit  bool
	)
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	err := cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, ttl)
	})
	if err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
