package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
	"github.com/xlg-lang/xlg/pkg/ioctx"
	"github.com/xlg-lang/xlg/pkg/namespace"
)

// staleRef is one RefHash found pinned to a non-head version of the
// definition it names.
type staleRef struct {
	From, Target string
	Pinned, Head hash.Hash
}

// outdatedCmd implements `outdated` (spec.md §6: "report stale
// references"): a `RefHash` node pins a specific historical content hash
// (spec.md §3's "hash-anchored Reference"); this walks every committed
// definition for `RefHash` nodes whose pinned hash is a known but
// non-current version of some other definition in the store.
func outdatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outdated",
		Short: "report pinned hash references that are behind their target's current head",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFromContext(cmd.Context())
			stale := findStaleRefs(app.Store.Root())

			out := ioctx.StdoutFromContext(cmd.Context())
			if len(stale) == 0 {
				fmt.Fprintln(out, "no outdated references")
				return nil
			}
			for _, s := range stale {
				fmt.Fprintf(out, "%s -> %s is pinned to %s, head is %s\n", s.From, s.Target, styledHash(s.Pinned), styledHash(s.Head))
			}
			return nil
		},
	}
}

func findStaleRefs(root *namespace.Namespace) []staleRef {
	byHash := make(map[hash.Hash]string) // every historical hash -> owning path
	headOf := make(map[string]hash.Hash) // path -> current head hash
	for _, def := range allDefinitions(root) {
		for _, v := range def.History {
			byHash[v.Hash] = def.Path
		}
		if head := def.Head(); head != nil {
			headOf[def.Path] = head.Hash
		}
	}

	var out []staleRef
	for _, def := range allDefinitions(root) {
		head := def.Head()
		if head == nil {
			continue
		}
		for n := range ast.TraversePreorder(head.Root) {
			ref, ok := n.Data().(ast.RefHash)
			if !ok {
				continue
			}
			target, known := byHash[ref.Hash]
			if !known {
				continue
			}
			if targetHead := headOf[target]; targetHead != ref.Hash {
				out = append(out, staleRef{From: def.Path, Target: target, Pinned: ref.Hash, Head: targetHead})
			}
		}
	}
	return out
}
