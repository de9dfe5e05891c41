package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xlg-lang/xlg/pkg/ioctx"
	"github.com/xlg-lang/xlg/pkg/xtest"
)

// testCmd implements `test [pattern]`, a supplemented feature grounded
// on original_source/x-testing's discovery/cache/runner/report
// subsystem, which the distillation this codebase was built from
// dropped entirely. Since runtime evaluation is a spec.md Non-goal, a
// "test" here is exercised by type-checking its definition rather than
// running it — a test passes when it type-checks (or, for a
// should_fail-named test, when it doesn't) — with content-hash-keyed
// caching ported unchanged from the original's design.
func testCmd() *cobra.Command {
	var (
		cacheDir    string
		forceRerun  bool
		filter      string
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "test [pattern]",
		Short: "type-check every discovered test definition, cached by content hash",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				filter = args[0]
			}

			app := appFromContext(cmd.Context())
			cases := xtest.Discover(app.Store.Root())
			if filter != "" {
				var filtered []xtest.Case
				for _, c := range cases {
					if strings.Contains(c.Path, filter) {
						filtered = append(filtered, c)
					}
				}
				cases = filtered
			}

			cache, err := xtest.OpenCache(cacheDir)
			if err != nil {
				return internalError(err)
			}

			results, err := xtest.Run(cmd.Context(), app.Store.HashResolver(), cases, cache, xtest.Config{
				ForceRerun:  forceRerun,
				Parallelism: parallelism,
			})
			if err != nil {
				return internalError(err)
			}
			if err := cache.Save(); err != nil {
				return internalError(err)
			}

			out := ioctx.StdoutFromContext(cmd.Context())
			for _, r := range results {
				fmt.Fprintln(out, resultLine(r))
			}

			summary := xtest.Summarize(results)
			fmt.Fprintf(out, "%d total, %s, %s, %s (%d cached)\n",
				summary.Total,
				passStyle.Render(fmt.Sprintf("%d passed", summary.Passed)),
				failStyle.Render(fmt.Sprintf("%d failed", summary.Failed)),
				skipStyle.Render(fmt.Sprintf("%d skipped", summary.Skipped)),
				summary.Cached,
			)
			if summary.Failed > 0 {
				return userError(fmt.Errorf("xlg: %d test(s) failed", summary.Failed))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cacheDir, "cache-dir", ".xlg-test-cache", "directory storing cached test outcomes")
	cmd.Flags().BoolVar(&forceRerun, "force", false, "ignore cached outcomes and re-check every test")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "maximum tests checked concurrently (0: unbounded)")
	return cmd
}

func resultLine(r xtest.Result) string {
	label := skipStyle.Render("skip")
	switch r.Outcome.Status {
	case xtest.StatusPass:
		label = passStyle.Render("pass")
	case xtest.StatusFail:
		label = failStyle.Render("fail")
	}
	suffix := ""
	if r.Cached {
		suffix = " (cached)"
	}
	if r.Outcome.Message != "" {
		return fmt.Sprintf("%s  %s%s: %s", label, r.Path, suffix, r.Outcome.Message)
	}
	return fmt.Sprintf("%s  %s%s", label, r.Path, suffix)
}
