package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/bridge"
	"github.com/xlg-lang/xlg/pkg/diag"
	"github.com/xlg-lang/xlg/pkg/hash"
	"github.com/xlg-lang/xlg/pkg/ioctx"
	"github.com/xlg-lang/xlg/pkg/namespace"
	"github.com/xlg-lang/xlg/pkg/types"
)

func pendingEdit(path string, node *ast.Node) namespace.PendingEdit {
	return namespace.PendingEdit{Path: path, Root: node}
}

func namespaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "namespace",
		Short: "inspect and edit the namespace tree",
	}
	cmd.AddCommand(
		namespaceShowCmd(),
		namespaceEditCmd(),
		namespaceLogCmd(),
		namespaceExportCmd(),
		namespaceImportCmd(),
	)
	return cmd
}

// namespaceShowCmd implements `namespace show <path>` (list children) and
// `namespace show <path>#<hash>` (render a historical version), spec.md §6.
func namespaceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>[#<hash>]",
		Short: "list a namespace's children, or render a definition's current or historical version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFromContext(cmd.Context())
			out := ioctx.StdoutFromContext(cmd.Context())

			path, wantHash, hasHash := strings.Cut(args[0], "#")
			if hasHash {
				return showVersion(app, out, path, wantHash)
			}
			return showPathOrDefinition(app, out, path)
		},
	}
}

func showVersion(app *App, out io.Writer, path, hexHash string) error {
	def, err := app.Store.Resolve(path)
	if err != nil {
		return userError(err)
	}
	h, err := hash.ParseHash(hexHash)
	if err != nil {
		return userError(err)
	}
	for _, v := range def.History {
		if v.Hash == h {
			fmt.Fprint(out, bridge.Render(v.Root))
			return nil
		}
	}
	return userError(fmt.Errorf("xlg: %s has no version %s in its history", path, hexHash))
}

func showPathOrDefinition(app *App, out io.Writer, path string) error {
	if def, err := app.Store.Resolve(path); err == nil {
		fmt.Fprint(out, bridge.Render(def.Head().Root))
		return nil
	}
	ns, ok := findNamespace(app.Store.Root(), path)
	if !ok {
		return userError(fmt.Errorf("xlg: no namespace or definition at %q", path))
	}
	for _, child := range ns.Children() {
		fmt.Fprintf(out, "%s/\n", child.Name)
	}
	for _, def := range ns.Definitions() {
		fmt.Fprintln(out, lastSegment(def.Path))
	}
	return nil
}

func lastSegment(path string) string {
	segs := splitPath(path)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// namespaceEditCmd implements `namespace edit <path>`: reads a replacement
// definition from stdin and commits it as a new version (spec.md §6: "begin
// an editing session" — CLI argument parsing/interactive editing is an
// external collaborator concern per spec.md §1, so this command's own
// "session" is a Unix filter over stdin). It does not print the
// definition's current form.
func namespaceEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <path>",
		Short: "replace a definition with a new version read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFromContext(cmd.Context())
			path := args[0]

			src, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return internalError(err)
			}

			tree := ast.NewTree()
			node, err := bridge.ParseDefinition(tree, string(src))
			if err != nil {
				return userError(fmt.Errorf("xlg: parsing replacement for %s: %w", path, err))
			}

			v, err := app.Store.Commit(app.Session, pendingEdit(path, node))
			if err != nil {
				return userError(err)
			}
			if err := app.save(); err != nil {
				return err
			}
			out := ioctx.StdoutFromContext(cmd.Context())
			if v == nil {
				fmt.Fprintf(out, "%s: unchanged\n", path)
				return nil
			}
			fmt.Fprintf(out, "%s: committed %s\n", path, styledHash(v.Hash))

			checker := types.NewChecker(app.Store.HashResolver())
			col := &types.Collector{}
			checker.TypeOf(checker.NewRootScope(), v.Root, col)
			fmt.Fprint(out, renderDiagnostics(diag.FromFailures(col.Failures())))
			return nil
		},
	}
}

// namespaceLogCmd implements `namespace log <path>`.
func namespaceLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <path>",
		Short: "show a definition's commit history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFromContext(cmd.Context())
			def, err := app.Store.Resolve(args[0])
			if err != nil {
				return userError(err)
			}
			out := bufio.NewWriter(ioctx.StdoutFromContext(cmd.Context()))
			defer out.Flush()
			for i := len(def.History) - 1; i >= 0; i-- {
				v := def.History[i]
				fmt.Fprintf(out, "%s  %s  %s\n", styledHash(v.Hash), v.Timestamp.Format("2006-01-02T15:04:05Z07:00"), v.Author)
				fmt.Fprintf(out, "    %s\n", v.Message)
			}
			return nil
		},
	}
}

func namespaceExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <dir>",
		Short: "materialize the namespace tree (or a subtree) as .x files",
		Args:  cobra.ExactArgs(1),
	}
	var source string
	cmd.Flags().StringVar(&source, "path", "", "namespace path to export (default: whole tree)")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		app := appFromContext(cmd.Context())
		if err := bridge.Export(app.Store, source, args[0]); err != nil {
			return integrityError(err)
		}
		return nil
	}
	return cmd
}

func namespaceImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "ingest a tree of .x files, committing each as a new version",
		Args:  cobra.ExactArgs(1),
	}
	var target string
	cmd.Flags().StringVar(&target, "path", "", "namespace path to import under")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		app := appFromContext(cmd.Context())
		versions, err := bridge.Import(app.Store, args[0], target, app.Session)
		if err != nil {
			return userError(err)
		}
		if err := app.save(); err != nil {
			return err
		}
		out := ioctx.StdoutFromContext(cmd.Context())
		committed := 0
		for _, v := range versions {
			if v != nil {
				committed++
			}
		}
		fmt.Fprintf(out, "imported %d definitions, %d new commits\n", len(versions), committed)

		byPath, err := reindexAll(cmd.Context(), app)
		if err != nil {
			return internalError(err)
		}
		for _, path := range sortedKeys(byPath) {
			if ds := byPath[path]; len(ds) > 0 {
				fmt.Fprintf(out, "%s:\n%s", path, renderDiagnostics(ds))
			}
		}
		return nil
	}
	return cmd
}
