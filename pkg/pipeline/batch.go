package pipeline

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Job is one translation in a batch.
type Job struct {
	// Name identifies the job in results and logs, typically a file path.
	Name    string
	Source  string
	Options Options
}

// BatchResult is the outcome of one Job. Exactly one of Result and Err is set.
type BatchResult struct {
	Name   string
	Result *Result
	Err    error
}

// TranslateBatch runs independent translations concurrently and returns the
// results in job order. A failing job does not stop the others; its error is
// recorded in its BatchResult. concurrency <= 0 uses GOMAXPROCS.
//
// The returned error is non-nil only when ctx is cancelled; jobs not yet
// started at that point carry ctx.Err().
func (r *Runner) TranslateBatch(ctx context.Context, jobs []Job, concurrency int) ([]BatchResult, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	results := make([]BatchResult, len(jobs))
	var done atomic.Int64
	finish := func() {
		n := int(done.Add(1))
		if r.OnJobDone != nil {
			r.OnJobDone(n, len(jobs))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, job := range jobs {
		results[i].Name = job.Name
		g.Go(func() error {
			defer finish()
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			res, err := r.Translate(gctx, job.Source, job.Options)
			results[i].Result, results[i].Err = res, err
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, br := range results {
		if br.Err != nil {
			failed++
		}
	}
	r.Logger.Info("batch complete", "jobs", len(jobs), "failed", failed)
	return results, ctx.Err()
}
