package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diagramkit/pkg/cache"
	"github.com/matzehuels/diagramkit/pkg/notation"
	"github.com/matzehuels/diagramkit/pkg/observability"
	"github.com/matzehuels/diagramkit/pkg/render/excalidraw"
)

// cacheKeyType labels translation entries in cache hooks.
const cacheKeyType = "translation"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, logger and hooks. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache      cache.Cache
	Keyer      cache.Keyer
	Logger     *log.Logger
	Hooks      observability.PipelineHooks
	CacheHooks observability.CacheHooks

	// TTL is the lifetime of stored results. Zero means cache.TTLTranslation.
	TTL time.Duration

	// OnJobDone, if set, is called after each batch job finishes with the
	// number of finished jobs so far. Calls may come from several goroutines.
	OnJobDone func(done, total int)
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Hooks are taken from the observability registry.
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
		Cache:      c,
		Keyer:      keyer,
		Logger:     logger,
		Hooks:      observability.Pipeline(),
		CacheHooks: observability.Cache(),
	}
}

// cachedTranslation is the cache payload for one translation.
type cachedTranslation struct {
	Kind   notation.Kind `json:"kind"`
	Output []byte        `json:"output"`
	Nodes  int           `json:"nodes"`
	Edges  int           `json:"edges"`
	Levels int           `json:"levels"`
	Cyclic bool          `json:"cyclic,omitempty"`
}

// TranslateWithCacheInfo translates src with caching and reports whether the
// output came from cache.
//
// Translations with UUID element IDs are never cached: every call must mint
// fresh identifiers.
func (r *Runner) TranslateWithCacheInfo(ctx context.Context, src string, opts Options) (*Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := r.hooks()
	hooks.OnTranslateStart(ctx, opts.Input, opts.Output)
	start := time.Now()

	cacheable := opts.Deterministic()
	var key string
	if cacheable {
		key = r.cacheKey(src, opts)
		if !opts.Refresh {
			if res, ok := r.lookup(ctx, key, opts.Output); ok {
				r.Logger.Debug("cache hit", "output", opts.Output, "key", key)
				hooks.OnTranslateComplete(ctx, opts.Input, opts.Output, time.Since(start), nil)
				return res, true, nil
			}
		}
	}

	res, err := Translate(src, opts)
	if err != nil {
		hooks.OnTranslateComplete(ctx, opts.Input, opts.Output, time.Since(start), err)
		return nil, false, err
	}
	res.CacheInfo.Key = key

	hooks.OnStageComplete(ctx, observability.StageParse, res.Stats.ParseTime)
	hooks.OnStageComplete(ctx, observability.StageLayout, res.Stats.LayoutTime)
	hooks.OnStageComplete(ctx, observability.StageRender, res.Stats.RenderTime)

	r.Logger.Debug("parsed diagram",
		"kind", res.Kind,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"duration", res.Stats.ParseTime)
	r.Logger.Debug("computed layout",
		"levels", res.Stats.LevelCount,
		"duration", res.Stats.LayoutTime)

	if res.Report != nil {
		hooks.OnStageComplete(ctx, observability.StageValidate, res.Stats.ValidateTime)
		hooks.OnValidate(ctx, res.Report.Valid, len(res.Report.Errors))
		if !res.Report.Valid {
			r.Logger.Warn("document failed validation", "violations", len(res.Report.Errors))
		}
	}

	if cacheable {
		r.store(ctx, key, res)
	}

	r.Logger.Info("translated",
		"input", opts.Input,
		"output", opts.Output,
		"kind", res.Kind,
		"bytes", len(res.Output),
		"duration", time.Since(start))
	hooks.OnTranslateComplete(ctx, opts.Input, opts.Output, time.Since(start), nil)
	return res, false, nil
}

// Translate is a convenience wrapper that calls TranslateWithCacheInfo and discards the cache hit info.
func (r *Runner) Translate(ctx context.Context, src string, opts Options) (*Result, error) {
	res, _, err := r.TranslateWithCacheInfo(ctx, src, opts)
	return res, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cacheKey derives the key from the source hash and every output-affecting option.
func (r *Runner) cacheKey(src string, opts Options) string {
	params, _ := json.Marshal(struct {
		Layout   any   `json:"layout"`
		Theme    any   `json:"theme"`
		IDs      any   `json:"ids"`
		GridSize int   `json:"grid_size"`
		Detailed bool  `json:"detailed"`
		Updated  int64 `json:"updated"`
	}{opts.Layout, opts.Theme, opts.IDs, opts.GridSize, opts.Detailed, updatedMillis(opts.Updated)})

	return r.Keyer.TranslationKey(cache.HashSource(src), cache.TranslationKeyOpts{
		Input:  opts.Input,
		Output: opts.Output,
		Kind:   opts.Kind,
		Params: string(params),
	})
}

// lookup returns a cached result. Undecodable entries count as misses.
func (r *Runner) lookup(ctx context.Context, key, output string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	}
	if err != nil || !hit {
		r.cacheHooks().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}

	var entry cachedTranslation
	if err := json.Unmarshal(data, &entry); err != nil {
		r.cacheHooks().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	r.cacheHooks().OnCacheHit(ctx, cacheKeyType)

	res := &Result{
		Output:    entry.Output,
		Kind:      entry.Kind,
		CacheInfo: CacheInfo{Hit: true, Key: key},
		Stats: Stats{
			NodeCount:  entry.Nodes,
			EdgeCount:  entry.Edges,
			LevelCount: entry.Levels,
			Cyclic:     entry.Cyclic,
		},
	}
	if output == FormatExcalidraw {
		doc, err := excalidraw.Unmarshal(entry.Output)
		if err != nil {
			return nil, false
		}
		report := excalidraw.Validate(entry.Output)
		res.Document, res.Report = doc, &report
	}
	return res, true
}

// store writes a result to the cache. Failures are logged, never returned.
func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(cachedTranslation{
		Kind:   res.Kind,
		Output: res.Output,
		Nodes:  res.Stats.NodeCount,
		Edges:  res.Stats.EdgeCount,
		Levels: res.Stats.LevelCount,
		Cyclic: res.Stats.Cyclic,
	})
	if err != nil {
		return
	}
	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.TTLTranslation
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	r.cacheHooks().OnCacheSet(ctx, cacheKeyType, len(data))
}

func (r *Runner) hooks() observability.PipelineHooks {
	if r.Hooks == nil {
		return observability.NoopPipelineHooks{}
	}
	return r.Hooks
}

func (r *Runner) cacheHooks() observability.CacheHooks {
	if r.CacheHooks == nil {
		return observability.NoopCacheHooks{}
	}
	return r.CacheHooks
}

func updatedMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
