package xtest

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xlg-lang/xlg/pkg/hm"
	"github.com/xlg-lang/xlg/pkg/types"
)

// Config controls a Run (test_runner.rs's TestRunnerConfig, minus the
// fields — timeout, compiler pipeline — that only make sense once a
// definition can actually execute).
type Config struct {
	ForceRerun  bool
	Parallelism int // 0 means errgroup.WithContext's own default (unbounded)
}

// Result is one Case's outcome plus whether it came from Cache.
type Result struct {
	Case
	Outcome Outcome
	Cached  bool
}

// Run type-checks every discovered Case not already cached under its
// current content hash, in parallel across definitions the way
// reindexAll does (test_runner.rs's TestRunner::run_all, minus the
// process-per-test isolation an actual execution engine would need).
func Run(ctx context.Context, resolve types.HashResolver, cases []Case, cache *Cache, cfg Config) ([]Result, error) {
	out := make([]Result, len(cases))

	eg, gctx := errgroup.WithContext(ctx)
	if cfg.Parallelism > 0 {
		eg.SetLimit(cfg.Parallelism)
	}
	var mu sync.Mutex

	for i, tc := range cases {
		i, tc := i, tc
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if !cfg.ForceRerun {
				if cached, ok := cache.Lookup(tc.Hash); ok {
					mu.Lock()
					out[i] = Result{Case: tc, Outcome: cached, Cached: true}
					mu.Unlock()
					return nil
				}
			}

			o := exercise(resolve, tc)
			cache.Record(tc.Hash, o)

			mu.Lock()
			out[i] = Result{Case: tc, Outcome: o}
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func exercise(resolve types.HashResolver, tc Case) Outcome {
	if tc.Attributes.Skip {
		return Outcome{Status: StatusSkipped, Message: tc.Attributes.SkipReason, RanAt: time.Now()}
	}

	start := time.Now()
	checker := types.NewChecker(resolve)
	col := &types.Collector{}
	typ := checker.TypeOf(checker.NewRootScope(), tc.Root, col)
	duration := time.Since(start)

	pass := col.OK()
	if tc.Attributes.ShouldFail {
		pass = !pass
	}
	if pass {
		return Outcome{Status: StatusPass, DurationMs: duration.Milliseconds(), RanAt: start}
	}
	return Outcome{Status: StatusFail, Message: failureMessage(typ, col), DurationMs: duration.Milliseconds(), RanAt: start}
}

func failureMessage(typ hm.Type, col *types.Collector) string {
	if len(col.Failures()) == 0 {
		return "expected type check to fail, but it passed"
	}
	return col.Failures()[0].Error()
}
