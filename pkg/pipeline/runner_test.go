package pipeline

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diagramkit/pkg/cache"
	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/observability"
	"github.com/matzehuels/diagramkit/pkg/render/excalidraw"
)

// memCache is an in-memory Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
	ttl  time.Duration
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.ttl = ttl
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu        sync.Mutex
	completed int
	stages    []string
	hits      int
	misses    int
}

func (h *recordingHooks) OnTranslateComplete(context.Context, string, string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completed++
}

func (h *recordingHooks) OnStageComplete(_ context.Context, stage string, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stages = append(h.stages, stage)
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, ok := r.Cache.(cache.NullCache); !ok {
		t.Errorf("Cache = %T, want cache.NullCache", r.Cache)
	}
	if r.Keyer == nil || r.Logger == nil || r.Hooks == nil || r.CacheHooks == nil {
		t.Errorf("NewRunner left nil fields: %+v", r)
	}
}

func TestRunnerCaching(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	hooks := &recordingHooks{}
	r := NewRunner(mc, nil, quietLogger())
	r.Hooks, r.CacheHooks = hooks, hooks

	src := "graph TD\nA[Start] --> B[End]"
	opts := Options{Input: FormatMermaid, Output: FormatExcalidraw}

	first, hit, err := r.TranslateWithCacheInfo(ctx, src, opts)
	if err != nil {
		t.Fatalf("first translate: %v", err)
	}
	if hit {
		t.Error("first translate should miss")
	}
	if mc.sets != 1 {
		t.Errorf("cache sets = %d, want 1", mc.sets)
	}

	second, hit, err := r.TranslateWithCacheInfo(ctx, src, opts)
	if err != nil {
		t.Fatalf("second translate: %v", err)
	}
	if !hit || !second.CacheInfo.Hit {
		t.Error("second translate should hit")
	}
	if string(first.Output) != string(second.Output) {
		t.Error("cached output differs from computed output")
	}
	if second.Document == nil || second.Report == nil || !second.Report.Valid {
		t.Errorf("cached excalidraw result should carry document and valid report")
	}
	if second.Kind != first.Kind || second.Stats.NodeCount != 2 {
		t.Errorf("cached result = kind %v, nodes %d", second.Kind, second.Stats.NodeCount)
	}

	if hooks.hits != 1 || hooks.misses != 1 || hooks.completed != 2 {
		t.Errorf("hooks: hits %d, misses %d, completed %d", hooks.hits, hooks.misses, hooks.completed)
	}
	wantStages := []string{
		observability.StageParse, observability.StageLayout,
		observability.StageRender, observability.StageValidate,
	}
	if strings.Join(hooks.stages, ",") != strings.Join(wantStages, ",") {
		t.Errorf("stages = %v, want %v", hooks.stages, wantStages)
	}
}

func TestRunnerTTL(t *testing.T) {
	ctx := context.Background()
	opts := Options{Input: FormatMermaid, Output: FormatPlantUML}

	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())
	if _, err := r.Translate(ctx, "A --> B", opts); err != nil {
		t.Fatal(err)
	}
	if mc.ttl != cache.TTLTranslation {
		t.Errorf("default ttl = %v, want %v", mc.ttl, cache.TTLTranslation)
	}

	mc = newMemCache()
	r = NewRunner(mc, nil, quietLogger())
	r.TTL = time.Hour
	if _, err := r.Translate(ctx, "A --> B", opts); err != nil {
		t.Fatal(err)
	}
	if mc.ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", mc.ttl)
	}
}

func TestRunnerCacheKeyDependsOnOptions(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())
	src := "A --> B"

	for _, out := range []string{FormatPlantUML, FormatExcalidraw, FormatDOT} {
		if _, err := r.Translate(ctx, src, Options{Input: FormatMermaid, Output: out}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := r.Translate(ctx, src, Options{Input: FormatMermaid, Output: FormatExcalidraw, GridSize: 20}); err != nil {
		t.Fatal(err)
	}
	if len(mc.data) != 4 {
		t.Errorf("cache entries = %d, want 4", len(mc.data))
	}
}

func TestRunnerRefreshAndUUID(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())
	src := "A --> B"

	opts := Options{Input: FormatMermaid, Output: FormatPlantUML}
	if _, err := r.Translate(ctx, src, opts); err != nil {
		t.Fatal(err)
	}
	opts.Refresh = true
	_, hit, err := r.TranslateWithCacheInfo(ctx, src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("Refresh should bypass the cache lookup")
	}

	uuidOpts := Options{Input: FormatMermaid, Output: FormatExcalidraw, IDs: excalidraw.UUIDIDs}
	a, err := r.Translate(ctx, src, uuidOpts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Translate(ctx, src, uuidOpts)
	if err != nil {
		t.Fatal(err)
	}
	if string(a.Output) == string(b.Output) {
		t.Error("uuid translations should not be served from cache")
	}
}

func TestRunnerUnsupported(t *testing.T) {
	hooks := &recordingHooks{}
	r := NewRunner(nil, nil, quietLogger())
	r.Hooks = hooks

	_, err := r.Translate(context.Background(), "A --> B", Options{Input: "excalidraw", Output: "mermaid"})
	if !errors.Is(err, errors.ErrCodeUnsupportedTranslation) {
		t.Errorf("err = %v, want unsupported translation", err)
	}
	if hooks.completed != 0 {
		t.Error("rejected options should not emit translation events")
	}
}

func TestTranslateBatch(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	jobs := []Job{
		{Name: "a.mmd", Source: "A --> B", Options: Options{Input: FormatMermaid, Output: FormatPlantUML}},
		{Name: "bad.mmd", Source: "A --> B", Options: Options{Input: FormatMermaid, Output: "png"}},
		{Name: "c.mmd", Source: "stateDiagram\nX --> Y", Options: Options{Input: FormatMermaid, Output: FormatPlantUML}},
		{Name: "d.mmd", Source: "P --> Q", Options: Options{Input: FormatMermaid, Output: FormatExcalidraw}},
	}

	results, err := r.TranslateBatch(context.Background(), jobs, 2)
	if err != nil {
		t.Fatalf("TranslateBatch error: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(jobs))
	}
	for i, br := range results {
		if br.Name != jobs[i].Name {
			t.Errorf("results[%d].Name = %q, want %q", i, br.Name, jobs[i].Name)
		}
	}
	if results[1].Err == nil || results[1].Result != nil {
		t.Error("unsupported job should fail alone")
	}
	if results[0].Err != nil || results[2].Err != nil || results[3].Err != nil {
		t.Errorf("unexpected failures: %v, %v, %v", results[0].Err, results[2].Err, results[3].Err)
	}
	if !strings.Contains(string(results[2].Result.Output), "X --> Y") {
		t.Errorf("state job output:\n%s", results[2].Result.Output)
	}
}

func TestTranslateBatchReportsProgress(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	var (
		mu    sync.Mutex
		calls int
		last  int
	)
	r.OnJobDone = func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		last = max(last, done)
	}

	opts := Options{Input: FormatMermaid, Output: FormatDOT}
	jobs := []Job{
		{Name: "a", Source: "A --> B", Options: opts},
		{Name: "b", Source: "B --> C", Options: Options{Input: FormatMermaid, Output: "svg"}},
		{Name: "c", Source: "C --> D", Options: opts},
	}
	if _, err := r.TranslateBatch(context.Background(), jobs, 2); err != nil {
		t.Fatal(err)
	}
	if calls != 3 || last != 3 {
		t.Errorf("OnJobDone calls = %d, last done = %d, want 3 and 3", calls, last)
	}
}

func TestRunnerCachedCyclic(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, quietLogger())
	opts := Options{Input: FormatMermaid, Output: FormatPlantUML}

	if _, err := r.Translate(ctx, "A --> B\nB --> A", opts); err != nil {
		t.Fatal(err)
	}
	res, hit, err := r.TranslateWithCacheInfo(ctx, "A --> B\nB --> A", opts)
	if err != nil {
		t.Fatal(err)
	}
	if !hit || !res.Stats.Cyclic {
		t.Errorf("hit = %v, Cyclic = %v, want both true", hit, res.Stats.Cyclic)
	}
}

func TestTranslateBatchCancelled(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{{Name: "a", Source: "A --> B", Options: Options{Input: FormatMermaid, Output: FormatDOT}}}
	results, err := r.TranslateBatch(ctx, jobs, 1)
	if err == nil {
		t.Fatal("expected context error")
	}
	if results[0].Err == nil {
		t.Error("job should carry the context error")
	}
}
