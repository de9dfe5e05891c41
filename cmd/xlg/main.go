// Command xlg is the CLI surface over the core (spec.md §6): a thin
// cobra/fang wrapper that opens the Namespace Store rooted at the current
// codebase, dispatches one subcommand against it, and renders whatever
// diagnostics come back. It never reimplements core logic.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/xlg-lang/xlg/pkg/ioctx"
)

func main() {
	ctx := context.Background()
	ctx = ioctx.StdoutToContext(ctx, os.Stdout)
	ctx = ioctx.StderrToContext(ctx, os.Stderr)

	rootCmd := newRootCmd()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(exitCodeOf(err))
	}
}

func newRootCmd() *cobra.Command {
	var storeRoot string

	cmd := &cobra.Command{
		Use:   "xlg",
		Short: "content-addressed AST toolchain",
		Long: `xlg manages a namespace of content-addressed, typed definitions.

Every edit auto-commits a new version; history is never discarded.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&storeRoot, "store", "", "namespace store root directory (default: discovered from xlg.toml)")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		app, err := newApp(storeRoot)
		if err != nil {
			return err
		}
		cmd.SetContext(withApp(cmd.Context(), app))
		return nil
	}

	cmd.AddCommand(
		namespaceCmd(),
		versionCmd(),
		outdatedCmd(),
		hashCmd(),
		similarCmd(),
		testCmd(),
		docCmd(),
		statsCmd(),
	)
	return cmd
}
