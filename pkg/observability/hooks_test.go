package observability_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diagramkit/pkg/observability"
	"github.com/matzehuels/diagramkit/pkg/pipeline"
)

// stageRecorder records the stages of every translation it observes.
type stageRecorder struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	stages []string
	valid  []bool
}

func (r *stageRecorder) OnStageComplete(_ context.Context, stage string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage)
}

func (r *stageRecorder) OnValidate(_ context.Context, valid bool, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.valid = append(r.valid, valid)
}

func TestRegistryDefaultsAreNoop(t *testing.T) {
	observability.Reset()
	t.Cleanup(observability.Reset)

	if _, ok := observability.Pipeline().(observability.NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", observability.Pipeline())
	}
	if _, ok := observability.Cache().(observability.NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", observability.Cache())
	}
	if _, ok := observability.HTTP().(observability.NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", observability.HTTP())
	}
}

func TestRunnerUsesRegisteredHooks(t *testing.T) {
	observability.Reset()
	t.Cleanup(observability.Reset)

	rec := &stageRecorder{}
	observability.SetPipelineHooks(rec)
	observability.SetPipelineHooks(nil) // ignored

	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	_, err := runner.Translate(context.Background(), "A --> B", pipeline.Options{
		Input:  pipeline.FormatMermaid,
		Output: pipeline.FormatExcalidraw,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		observability.StageParse, observability.StageLayout,
		observability.StageRender, observability.StageValidate,
	}
	if len(rec.stages) != len(want) {
		t.Fatalf("stages = %v, want %v", rec.stages, want)
	}
	for i := range want {
		if rec.stages[i] != want[i] {
			t.Errorf("stages[%d] = %q, want %q", i, rec.stages[i], want[i])
		}
	}
	if len(rec.valid) != 1 || !rec.valid[0] {
		t.Errorf("OnValidate calls = %v, want [true]", rec.valid)
	}
}

func TestResetRestoresNoop(t *testing.T) {
	observability.SetCacheHooks(struct{ observability.NoopCacheHooks }{})
	observability.Reset()
	if _, ok := observability.Cache().(observability.NoopCacheHooks); !ok {
		t.Errorf("Cache() after Reset = %T", observability.Cache())
	}
}
