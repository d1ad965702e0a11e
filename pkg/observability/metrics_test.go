package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsTranslation(t *testing.T) {
	m := NewMetrics()
	ctx := context.Background()

	m.OnTranslateStart(ctx, "mermaid", "plantuml")
	m.OnTranslateComplete(ctx, "mermaid", "plantuml", time.Millisecond, nil)
	m.OnTranslateComplete(ctx, "mermaid", "plantuml", time.Millisecond, errors.New("boom"))
	m.OnTranslateComplete(ctx, "mermaid", "excalidraw", time.Millisecond, nil)

	if got := testutil.ToFloat64(m.TranslationsTotal.WithLabelValues("mermaid", "plantuml", "ok")); got != 1 {
		t.Errorf("ok translations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.TranslationsTotal.WithLabelValues("mermaid", "plantuml", "error")); got != 1 {
		t.Errorf("failed translations = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.TranslationsTotal); got != 3 {
		t.Errorf("series = %d, want 3", got)
	}
}

func TestMetricsValidation(t *testing.T) {
	m := NewMetrics()
	ctx := context.Background()

	m.OnValidate(ctx, true, 0)
	m.OnValidate(ctx, false, 3)

	if got := testutil.ToFloat64(m.ValidationsTotal.WithLabelValues("false")); got != 1 {
		t.Errorf("invalid validations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Violations); got != 3 {
		t.Errorf("violations = %v, want 3", got)
	}
}

func TestMetricsCache(t *testing.T) {
	m := NewMetrics()
	ctx := context.Background()

	m.OnCacheMiss(ctx, "translation")
	m.OnCacheSet(ctx, "translation", 512)
	m.OnCacheHit(ctx, "translation")
	m.OnCacheHit(ctx, "translation")

	if got := testutil.ToFloat64(m.CacheOpsTotal.WithLabelValues("translation", "hit")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.CacheWriteBytes); got != 512 {
		t.Errorf("bytes = %v, want 512", got)
	}
}

func TestMetricsHTTP(t *testing.T) {
	m := NewMetrics()
	ctx := context.Background()

	m.OnRequest(ctx, "POST", "/v1/translate")
	if got := testutil.ToFloat64(m.HTTPInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	m.OnResponse(ctx, "POST", "/v1/translate", 200, time.Millisecond)
	if got := testutil.ToFloat64(m.HTTPInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/v1/translate", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestMetricsRegistryGathers(t *testing.T) {
	m := NewMetrics()
	m.OnStageComplete(context.Background(), StageParse, time.Millisecond)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "diagramkit_stage_duration_seconds" {
			found = true
		}
	}
	if !found {
		t.Error("stage duration histogram not gathered")
	}
}
