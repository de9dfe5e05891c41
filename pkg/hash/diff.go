package hash

import (
	"github.com/xlg-lang/xlg/pkg/ast"
)

// NodePath addresses a node by its sequence of child indices from a
// diff's root, e.g. []int{1, 0} means "root's 2nd child's 1st child".
type NodePath []int

// NodeDiff is one structural difference found by Diff: the two nodes at
// Path disagree at this point in the tree (their content hashes differ),
// and neither side has a matching substructure beneath it worth
// descending into further.
type NodeDiff struct {
	Path NodePath
	Old  *ast.Node // nil if Path only exists in the new tree
	New  *ast.Node // nil if Path only exists in the old tree
}

// Diff walks a and b in lockstep and reports every point where their
// subtrees diverge (SPEC_FULL.md §3's structural-diff primitive,
// supplementing the hasher so the Editor and CLI can render "what
// changed" without re-deriving it from two independent hash trees).
// Diff short-circuits at the first hash match between corresponding
// subtrees: identical content hashes imply identical subtrees (spec §8's
// determinism property), so there is nothing further to report there.
func Diff(a, b *ast.Node) ([]NodeDiff, error) {
	h := NewHasher()
	var out []NodeDiff
	if err := diffNode(h, nil, a, b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func diffNode(h *Hasher, path NodePath, a, b *ast.Node, out *[]NodeDiff) error {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil || b == nil:
		*out = append(*out, NodeDiff{Path: append(NodePath{}, path...), Old: a, New: b})
		return nil
	}

	ha, err := h.HashNode(a)
	if err != nil {
		return err
	}
	hb, err := h.HashNode(b)
	if err != nil {
		return err
	}
	if ha == hb {
		return nil
	}

	if a.Kind() != b.Kind() {
		*out = append(*out, NodeDiff{Path: append(NodePath{}, path...), Old: a, New: b})
		return nil
	}

	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		*out = append(*out, NodeDiff{Path: append(NodePath{}, path...), Old: a, New: b})
		return nil
	}
	if len(ac) == 0 {
		// Same kind, no children, different hash: the leaf fields differ.
		*out = append(*out, NodeDiff{Path: append(NodePath{}, path...), Old: a, New: b})
		return nil
	}
	for i := range ac {
		if err := diffNode(h, append(path, i), ac[i], bc[i], out); err != nil {
			return err
		}
	}
	return nil
}
