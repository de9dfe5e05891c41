package editor

import "github.com/xlg-lang/xlg/pkg/ast"

// Insert splices node into parent's children at index (spec §4.F's
// structural edit primitives). parent must be a node whose Data tolerates
// a child-count change (CompilationUnit, Module, LitList, LitTuple, Do,
// Application's argument list, and similarly list-shaped kinds); inserting
// into a fixed-arity kind (If, Lambda, …) is rejected with an IllFormedTree,
// because the rebuilt node would not carry every child it was given.
func (e *Editor) Insert(parent *ast.Node, index int, node *ast.Node) (*OperationResult, error) {
	return e.apply(e.InsertStep(parent, index, node))
}

// InsertStep builds the Insert operation without applying it, so Batch and
// Transaction can chain it alongside other steps under one undo record.
func (e *Editor) InsertStep(parent *ast.Node, index int, node *ast.Node) Step {
	return func(root *ast.Node) (*ast.Node, []*ast.Node, error) {
		children := parent.Children()
		if index < 0 || index > len(children) {
			return nil, nil, IllFormedTree{Reason: "insert index out of range"}
		}
		next := make([]*ast.Node, 0, len(children)+1)
		next = append(next, children[:index]...)
		next = append(next, node)
		next = append(next, children[index:]...)

		newParent := e.rebuiltWith(parent, next)
		if len(newParent.Children()) != len(next) {
			return nil, nil, IllFormedTree{Reason: "insert into fixed-arity node"}
		}
		newRoot, affected := e.rebuildTree(root, map[ast.NodeID]*ast.Node{parent.ID(): newParent})
		if newRoot == root {
			return nil, nil, NodeNotFound{NodeID: uint64(parent.ID())}
		}
		return newRoot, append(affected, node), nil
	}
}

// Delete removes node from its parent's children. Deleting the tree's
// root produces an error.
func (e *Editor) Delete(node *ast.Node) (*OperationResult, error) {
	return e.apply(e.DeleteStep(node))
}

// DeleteStep builds the Delete operation without applying it.
func (e *Editor) DeleteStep(node *ast.Node) Step {
	return func(root *ast.Node) (*ast.Node, []*ast.Node, error) {
		if node.ID() == root.ID() {
			return nil, nil, IllFormedTree{Reason: "cannot delete the tree root"}
		}
		parent := e.col.Hierarchy.ParentOf(node)
		if parent == nil {
			return nil, nil, NodeNotFound{NodeID: uint64(node.ID())}
		}
		idx := childIndex(parent, node)
		if idx < 0 {
			return nil, nil, NodeNotFound{NodeID: uint64(node.ID())}
		}
		children := parent.Children()
		next := make([]*ast.Node, 0, len(children)-1)
		next = append(next, children[:idx]...)
		next = append(next, children[idx+1:]...)

		newParent := e.rebuiltWith(parent, next)
		newRoot, affected := e.rebuildTree(root, map[ast.NodeID]*ast.Node{parent.ID(): newParent})
		return newRoot, affected, nil
	}
}

// Replace substitutes node for an existing node one-for-one (spec §4.F;
// the common case is swapping an expression subtree for a structurally
// different one).
func (e *Editor) Replace(old, node *ast.Node) (*OperationResult, error) {
	return e.apply(e.ReplaceStep(old, node))
}

// ReplaceStep builds the Replace operation without applying it.
func (e *Editor) ReplaceStep(old, node *ast.Node) Step {
	return func(root *ast.Node) (*ast.Node, []*ast.Node, error) {
		newRoot, affected := e.rebuildTree(root, map[ast.NodeID]*ast.Node{old.ID(): node})
		if newRoot == root && old.ID() != root.ID() {
			return nil, nil, NodeNotFound{NodeID: uint64(old.ID())}
		}
		return newRoot, affected, nil
	}
}

// Move relocates node to index within newParent's children, removing it
// from its current parent. Both parents are rebuilt in the same pass, so
// no intermediate tree is ever materialized. Moving a node under one of
// its own descendants would create a cycle and is rejected.
func (e *Editor) Move(node, newParent *ast.Node, index int) (*OperationResult, error) {
	return e.apply(e.MoveStep(node, newParent, index))
}

// MoveStep builds the Move operation without applying it.
func (e *Editor) MoveStep(node, newParent *ast.Node, index int) Step {
	return func(root *ast.Node) (*ast.Node, []*ast.Node, error) {
		for anc := newParent; anc != nil; anc = e.col.Hierarchy.ParentOf(anc) {
			if anc.ID() == node.ID() {
				return nil, nil, IllFormedTree{Reason: "move would create a cycle"}
			}
		}
		oldParent := e.col.Hierarchy.ParentOf(node)
		if oldParent == nil {
			return nil, nil, IllFormedTree{Reason: "cannot move the tree root"}
		}

		if oldParent.ID() == newParent.ID() {
			children := oldParent.Children()
			idx := childIndex(oldParent, node)
			if idx < 0 {
				return nil, nil, NodeNotFound{NodeID: uint64(node.ID())}
			}
			without := make([]*ast.Node, 0, len(children))
			without = append(without, children[:idx]...)
			without = append(without, children[idx+1:]...)
			if index < 0 || index > len(without) {
				return nil, nil, IllFormedTree{Reason: "move index out of range"}
			}
			next := make([]*ast.Node, 0, len(without)+1)
			next = append(next, without[:index]...)
			next = append(next, node)
			next = append(next, without[index:]...)
			newParentNode := e.rebuiltWith(oldParent, next)
			newRoot, affected := e.rebuildTree(root, map[ast.NodeID]*ast.Node{oldParent.ID(): newParentNode})
			return newRoot, affected, nil
		}

		oldChildren := oldParent.Children()
		oldIdx := childIndex(oldParent, node)
		if oldIdx < 0 {
			return nil, nil, NodeNotFound{NodeID: uint64(node.ID())}
		}
		withoutNode := make([]*ast.Node, 0, len(oldChildren)-1)
		withoutNode = append(withoutNode, oldChildren[:oldIdx]...)
		withoutNode = append(withoutNode, oldChildren[oldIdx+1:]...)

		newChildren := newParent.Children()
		if index < 0 || index > len(newChildren) {
			return nil, nil, IllFormedTree{Reason: "move index out of range"}
		}
		withNode := make([]*ast.Node, 0, len(newChildren)+1)
		withNode = append(withNode, newChildren[:index]...)
		withNode = append(withNode, node)
		withNode = append(withNode, newChildren[index:]...)

		newOldParent := e.rebuiltWith(oldParent, withoutNode)
		newNewParent := e.rebuiltWith(newParent, withNode)
		newRoot, affected := e.rebuildTree(root, map[ast.NodeID]*ast.Node{
			oldParent.ID(): newOldParent,
			newParent.ID(): newNewParent,
		})
		return newRoot, affected, nil
	}
}

// rebuiltWith returns a fresh node carrying parent's span and annotations
// but children (Data.Kind() doesn't change shape under WithChildren).
func (e *Editor) rebuiltWith(parent *ast.Node, children []*ast.Node) *ast.Node {
	newData := parent.Data().WithChildren(children)
	return e.tree.Build(parent.Span(), newData).WithAnnotations(parent.Annotations())
}
