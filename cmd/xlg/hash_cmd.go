package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/bridge"
	"github.com/xlg-lang/xlg/pkg/hash"
	"github.com/xlg-lang/xlg/pkg/ioctx"
)

// hashCmd implements `hash <file>` (spec.md §6): parse a single
// definition out of its canonical ".x" text and print its content hash,
// independent of any namespace store.
func hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <file>",
		Short: "print a definition's content hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return userError(err)
			}
			tree := ast.NewTree()
			node, err := bridge.ParseDefinition(tree, string(src))
			if err != nil {
				return userError(fmt.Errorf("xlg: parsing %s: %w", args[0], err))
			}
			h, err := hash.DefinitionHash(node)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintln(ioctx.StdoutFromContext(cmd.Context()), styledHash(h))
			return nil
		},
	}
}
