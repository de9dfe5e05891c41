package index

import "github.com/xlg-lang/xlg/pkg/ast"

// HierarchyIndex maps a node_id to its parent's node_id (spec §4.D:
// "node_id → parent_id"), answering `parent_of` without storing parent
// pointers on Node itself (spec §4.B: "answered by the hierarchy index,
// not by storing parent pointers on the node itself").
type HierarchyIndex struct {
	parentOf map[ast.NodeID]*ast.Node
	children map[ast.NodeID][]*ast.Node
}

func newHierarchyIndex() *HierarchyIndex {
	return &HierarchyIndex{
		parentOf: make(map[ast.NodeID]*ast.Node),
		children: make(map[ast.NodeID][]*ast.Node),
	}
}

func (idx *HierarchyIndex) insert(parent, n *ast.Node) {
	if parent != nil {
		idx.parentOf[n.ID()] = parent
	}
	idx.children[n.ID()] = n.Children()
}

func (idx *HierarchyIndex) delete(n *ast.Node) {
	delete(idx.parentOf, n.ID())
	delete(idx.children, n.ID())
}

// ParentOf returns n's parent, or nil if n is a root or unindexed.
func (idx *HierarchyIndex) ParentOf(n *ast.Node) *ast.Node {
	return idx.parentOf[n.ID()]
}

// ChildrenOf returns the indexed children of n.
func (idx *HierarchyIndex) ChildrenOf(n *ast.Node) []*ast.Node {
	return idx.children[n.ID()]
}

// SiblingsOf returns n's siblings (n's parent's children, excluding n).
func (idx *HierarchyIndex) SiblingsOf(n *ast.Node) []*ast.Node {
	parent := idx.ParentOf(n)
	if parent == nil {
		return nil
	}
	var out []*ast.Node
	for _, c := range idx.ChildrenOf(parent) {
		if c.ID() != n.ID() {
			out = append(out, c)
		}
	}
	return out
}
