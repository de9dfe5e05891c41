package index

import (
	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/symbol"
)

// intervalNode is one node of the Position index's augmented BST, keyed
// by byte offset (spec §4.D: "byte offset → innermost containing node,
// O(log n) interval tree"). maxEnd is the largest ByteEnd in the subtree
// rooted here, which lets ContainingNode prune subtrees that cannot
// possibly contain a query position.
type intervalNode struct {
	node   *ast.Node
	maxEnd int
	left   *intervalNode
	right  *intervalNode
}

// PositionIndex answers "innermost node containing byte offset p" over
// one file's worth of spans. It is rebuilt per file, not per AST version,
// since spans (unlike node_ids) are file-relative.
type PositionIndex struct {
	root *intervalNode
}

func newPositionIndex() *PositionIndex {
	return &PositionIndex{}
}

func (idx *PositionIndex) insert(n *ast.Node) {
	idx.root = insertInterval(idx.root, n)
}

func insertInterval(root *intervalNode, n *ast.Node) *intervalNode {
	sp := n.Span()
	if root == nil {
		return &intervalNode{node: n, maxEnd: sp.ByteEnd}
	}
	if sp.ByteEnd > root.maxEnd {
		root.maxEnd = sp.ByteEnd
	}
	if sp.ByteStart < root.node.Span().ByteStart {
		root.left = insertInterval(root.left, n)
	} else {
		root.right = insertInterval(root.right, n)
	}
	return root
}

func (idx *PositionIndex) delete(n *ast.Node) {
	idx.root = deleteInterval(idx.root, n)
}

func deleteInterval(root *intervalNode, n *ast.Node) *intervalNode {
	if root == nil {
		return nil
	}
	if root.node.ID() == n.ID() {
		// Re-insert the remaining subtrees' nodes; simple and correct,
		// if not minimal — deletions are rare relative to queries.
		var nodes []*ast.Node
		collectIntervalNodes(root.left, &nodes)
		collectIntervalNodes(root.right, &nodes)
		var rebuilt *intervalNode
		for _, m := range nodes {
			rebuilt = insertInterval(rebuilt, m)
		}
		return rebuilt
	}
	root.left = deleteInterval(root.left, n)
	root.right = deleteInterval(root.right, n)
	root.maxEnd = maxEndOf(root)
	return root
}

func maxEndOf(root *intervalNode) int {
	m := root.node.Span().ByteEnd
	if root.left != nil && root.left.maxEnd > m {
		m = root.left.maxEnd
	}
	if root.right != nil && root.right.maxEnd > m {
		m = root.right.maxEnd
	}
	return m
}

func collectIntervalNodes(root *intervalNode, out *[]*ast.Node) {
	if root == nil {
		return
	}
	*out = append(*out, root.node)
	collectIntervalNodes(root.left, out)
	collectIntervalNodes(root.right, out)
}

// ContainingNode returns the smallest-span node whose interval contains
// pos, or nil if none does (spec §4.D, "Position" row; Editor surface
// query "containing node at position").
func (idx *PositionIndex) ContainingNode(pos int) *ast.Node {
	var best *ast.Node
	containingSearch(idx.root, pos, &best)
	return best
}

func containingSearch(root *intervalNode, pos int, best **ast.Node) {
	if root == nil || pos > root.maxEnd {
		return
	}
	if root.node.Span().Contains(pos) {
		if *best == nil || spanLen(root.node.Span()) < spanLen((*best).Span()) {
			*best = root.node
		}
	}
	containingSearch(root.left, pos, best)
	containingSearch(root.right, pos, best)
}

func spanLen(s symbol.Span) int {
	return s.ByteEnd - s.ByteStart
}

// NodesInRange returns every indexed node whose span overlaps
// [start, end), unordered.
func (idx *PositionIndex) NodesInRange(start, end int) []*ast.Node {
	var out []*ast.Node
	rangeSearch(idx.root, start, end, &out)
	return out
}

func rangeSearch(root *intervalNode, start, end int, out *[]*ast.Node) {
	if root == nil || start > root.maxEnd {
		return
	}
	sp := root.node.Span()
	if sp.ByteStart < end && sp.ByteEnd > start {
		*out = append(*out, root.node)
	}
	rangeSearch(root.left, start, end, out)
	rangeSearch(root.right, start, end, out)
}
