package main

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/xlg-lang/xlg/pkg/diag"
	"github.com/xlg-lang/xlg/pkg/types"
)

// reindexAll type-checks every committed definition's head concurrently
// (spec.md §5: "implementations may parallelize multi-file reindexing
// after a batch commit"), grounded on pkg/querybuilder.marshalArguments's
// errgroup.WithContext fan-out. Each definition gets its own Checker root
// scope — inference across definitions never shares mutable state beyond
// the read-only HashResolver the Store supplies — so there is nothing to
// lock between goroutines.
func reindexAll(ctx context.Context, app *App) (map[string][]diag.Diagnostic, error) {
	defs := allDefinitions(app.Store.Root())

	var mu sync.Mutex
	out := make(map[string][]diag.Diagnostic, len(defs))

	eg, gctx := errgroup.WithContext(ctx)
	for _, def := range defs {
		def := def
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			head := def.Head()
			if head == nil {
				return nil
			}
			checker := types.NewChecker(app.Store.HashResolver())
			col := &types.Collector{}
			checker.TypeOf(checker.NewRootScope(), head.Root, col)

			ds := diag.FromFailures(col.Failures())
			mu.Lock()
			out[def.Path] = ds
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
