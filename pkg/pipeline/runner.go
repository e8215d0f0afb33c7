package pipeline

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/avatarkit/pkg/cache"
	"github.com/matzehuels/avatarkit/pkg/errors"
	"github.com/matzehuels/avatarkit/pkg/observability"
)

// Runner encapsulates rendering with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner keeps no per-run state. Multiple goroutines can safely use the
// same Runner with different options.
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

// Execute renders every requested format. Deterministic runs (Seed != 0)
// read and write the cache; the others always render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	cacheable := opts.Cacheable()
	if !cacheable {
		opts.Seed = newSeed()
	}

	fp := opts.Config.Fingerprint()
	result := &Result{
		Config:      opts.Config,
		Fingerprint: fp,
		Seed:        opts.Seed,
		Artifacts:   make(map[string][]byte, len(opts.Formats)),
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, fp, opts.Formats)
	start := time.Now()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, hit, err := r.renderFormat(gctx, format, fp, opts, cacheable)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			result.Artifacts[format] = data
			result.Stats.Bytes += len(data)
			if hit {
				result.Stats.CacheHits++
			}
			return nil
		})
	}
	err := g.Wait()
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, fp, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.CacheHit = result.Stats.CacheHits == len(opts.Formats)

	opts.Logger.Debug("rendered avatar",
		"formats", opts.Formats,
		"bytes", result.Stats.Bytes,
		"cached", result.Stats.CacheHits,
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (r *Runner) renderFormat(ctx context.Context, format, fp string, opts Options, cacheable bool) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var key string
	if cacheable {
		key = r.Keyer.ArtifactKey(fp, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			switch {
			case err != nil:
				opts.Logger.Warn("cache read failed", "format", format, "err", err)
			case hit:
				observability.Cache().OnCacheHit(ctx, "artifact")
				return data, true, nil
			default:
				observability.Cache().OnCacheMiss(ctx, "artifact")
			}
		}
	}

	data, err := Render(format, opts)
	if err != nil {
		if errors.IsValidation(err) {
			return nil, false, err
		}
		return nil, false, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}

	if cacheable {
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func newSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
