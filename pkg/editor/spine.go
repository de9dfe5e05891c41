package editor

import "github.com/xlg-lang/xlg/pkg/ast"

// rebuildTree walks root, substituting any node whose ID appears in
// replacements with its mapped value (already a finished node — the
// substitution isn't recursed into further, so arity-changing edits are
// fine: the replacement's own Children() is whatever the caller built),
// and rebuilding every ancestor whose subtree changed along the way via
// Tree.Build (spec §4.B: Nodes are persistent and structurally shared, so
// only the path from an edit to the root needs a fresh NodeID — everything
// off that path, including subtrees untouched by any replacement, keeps
// its original identity). It returns the new root and every freshly built
// node (replacements and rebuilt ancestors alike), which is the "affected
// nodes" set the Editor rechecks (spec §4.F step 4).
//
// A map-keyed substitution, rather than a single replace-at-index walk,
// is what lets Move touch two unrelated parents (the node's old parent and
// its new one) in one pass without staging through an intermediate tree.
func (e *Editor) rebuildTree(root *ast.Node, replacements map[ast.NodeID]*ast.Node) (*ast.Node, []*ast.Node) {
	if len(replacements) == 0 {
		return root, nil
	}
	if newNode, ok := replacements[root.ID()]; ok {
		return newNode, []*ast.Node{newNode}
	}
	children := root.Children()
	if len(children) == 0 {
		return root, nil
	}
	changed := false
	newChildren := make([]*ast.Node, len(children))
	var affected []*ast.Node
	for i, c := range children {
		nc, aff := e.rebuildTree(c, replacements)
		newChildren[i] = nc
		if nc != c {
			changed = true
		}
		affected = append(affected, aff...)
	}
	if !changed {
		return root, affected
	}
	newData := root.Data().WithChildren(newChildren)
	newRoot := e.tree.Build(root.Span(), newData).WithAnnotations(root.Annotations())
	affected = append(affected, newRoot)
	return newRoot, affected
}

func childIndex(parent, child *ast.Node) int {
	for i, c := range parent.Children() {
		if c.ID() == child.ID() {
			return i
		}
	}
	return -1
}
