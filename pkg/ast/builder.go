package ast

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/xlg-lang/xlg/pkg/symbol"
)

// Tree allocates NodeIDs for one AST version (spec §4.B). NodeIDs are
// monotonically increasing and never reused within the Tree, but a fresh
// Tree is created per AST version (carrying forward no state), since
// NodeID is "stable only within a single AST version" (spec §3).
type Tree struct {
	counter atomic.Uint64
}

// NewTree creates an empty Tree (id allocator) for a new AST version.
func NewTree() *Tree {
	return &Tree{}
}

func (t *Tree) nextID() NodeID {
	return NodeID(t.counter.Add(1))
}

// Build allocates a fresh Node of the given span and kind, wrapping data
// (spec §4.B: "build(span, kind) -> Node").
func (t *Tree) Build(span symbol.Span, data Data) *Node {
	return &Node{
		id:          t.nextID(),
		span:        span,
		kind:        data.Kind(),
		data:        data,
		annotations: NewAnnotations(),
	}
}

// ReplaceChild returns a new node sharing all of node's other children and
// a new root-ward spine: callers replace_child all the way up to whatever
// root they track. The replaced node's parent isn't touched here — this
// primitive only produces the new node at this index (spec §4.B); wiring
// it into the parent is the caller's (pkg/editor's) job, since only the
// Editor tracks "the root" for any given edit.
func (t *Tree) ReplaceChild(node *Node, index int, newChild *Node) (*Node, error) {
	children := node.Children()
	if index < 0 || index >= len(children) {
		return nil, fmt.Errorf("ast: index %d out of range [0,%d)", index, len(children))
	}
	next := make([]*Node, len(children))
	copy(next, children)
	next[index] = newChild

	newData := node.data.WithChildren(next)
	return &Node{
		id:          t.nextID(),
		span:        node.span,
		kind:        node.kind,
		data:        newData,
		typeInfo:    nil, // stale after structural change; E recomputes it
		annotations: node.annotations,
	}, nil
}

// TraversePreorder returns a lazy preorder sequence rooted at node (spec
// §4.B).
func TraversePreorder(node *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		var walk func(*Node) bool
		walk = func(n *Node) bool {
			if n == nil {
				return true
			}
			if !yield(n) {
				return false
			}
			for _, c := range n.Children() {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(node)
	}
}
