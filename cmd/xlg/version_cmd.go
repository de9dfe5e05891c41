package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
	"github.com/xlg-lang/xlg/pkg/ioctx"
	"github.com/xlg-lang/xlg/pkg/namespace"

	blangsemver "github.com/blang/semver"
)

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "inspect and manage semver tags on definitions",
	}
	cmd.AddCommand(
		versionShowCmd(),
		versionTagCmd(),
		versionCheckCmd(),
		versionDepsCmd(),
	)
	return cmd
}

func versionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: "list a definition's semver tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFromContext(cmd.Context())
			def, err := app.Store.Resolve(args[0])
			if err != nil {
				return userError(err)
			}
			out := ioctx.StdoutFromContext(cmd.Context())
			if len(def.Tags) == 0 {
				fmt.Fprintf(out, "%s: no tags (head %s)\n", args[0], styledHash(def.Head().Hash))
				return nil
			}
			for tag, h := range def.Tags {
				fmt.Fprintf(out, "%s -> %s\n", tag, styledHash(h))
			}
			return nil
		},
	}
}

func versionTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <path> <semver>",
		Short: "tag a definition's current head with a semver label",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFromContext(cmd.Context())
			if _, err := blangsemver.Parse(args[1]); err != nil {
				return userError(fmt.Errorf("xlg: %q is not a valid semver: %w", args[1], err))
			}
			if err := app.Store.Tag(args[0], args[1]); err != nil {
				return userError(err)
			}
			return app.save()
		},
	}
}

// versionCheckCmd implements `version check <path> <v1> <v2>` (spec.md
// §6): resolves both tags against the definition's history and reports
// the structural diff between them (pkg/hash.Diff, SPEC_FULL.md §3's
// diff primitive), the CLI's answer to "is v2 compatible with v1."
func versionCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path> <v1> <v2>",
		Short: "report the structural diff between two tagged versions",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFromContext(cmd.Context())
			def, err := app.Store.Resolve(args[0])
			if err != nil {
				return userError(err)
			}
			root1, err := rootAtTag(def, args[1])
			if err != nil {
				return userError(err)
			}
			root2, err := rootAtTag(def, args[2])
			if err != nil {
				return userError(err)
			}

			diffs, err := hash.Diff(root1, root2)
			if err != nil {
				return internalError(err)
			}
			out := ioctx.StdoutFromContext(cmd.Context())
			if len(diffs) == 0 {
				fmt.Fprintf(out, "%s: %s and %s are structurally identical\n", args[0], args[1], args[2])
				return nil
			}
			fmt.Fprintf(out, "%s: %d differing subtree(s) between %s and %s\n", args[0], len(diffs), args[1], args[2])
			for _, d := range diffs {
				fmt.Fprintf(out, "  at %v\n", []int(d.Path))
			}
			return nil
		},
	}
}

func rootAtTag(def *namespace.Definition, tag string) (*ast.Node, error) {
	h, ok := def.Tags[tag]
	if !ok {
		return nil, fmt.Errorf("xlg: %s has no tag %q", def.Path, tag)
	}
	for _, v := range def.History {
		if v.Hash == h {
			return v.Root, nil
		}
	}
	return nil, fmt.Errorf("xlg: tag %q on %s points at %s, which is not in its history", tag, def.Path, h.Short())
}

func versionDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps <path>",
		Short: "list a definition's resolved dependency hashes at head",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFromContext(cmd.Context())
			def, err := app.Store.Resolve(args[0])
			if err != nil {
				return userError(err)
			}
			out := ioctx.StdoutFromContext(cmd.Context())
			head := def.Head()
			if len(head.Deps) == 0 {
				fmt.Fprintf(out, "%s: no dependencies\n", args[0])
				return nil
			}
			for _, d := range head.Deps {
				fmt.Fprintln(out, styledHash(d))
			}
			return nil
		},
	}
}
