package index

import (
	"github.com/xlg-lang/xlg/pkg/ast"
)

// TypeIndex maps a node Kind ("kind-tag") to the set of node_ids of that
// kind (spec §4.D's Type index: "kind-tag → set of node_ids").
type TypeIndex struct {
	byKind map[ast.Kind]map[ast.NodeID]*ast.Node
}

func newTypeIndex() *TypeIndex {
	return &TypeIndex{byKind: make(map[ast.Kind]map[ast.NodeID]*ast.Node)}
}

func (idx *TypeIndex) insert(n *ast.Node) {
	set, ok := idx.byKind[n.Kind()]
	if !ok {
		set = make(map[ast.NodeID]*ast.Node)
		idx.byKind[n.Kind()] = set
	}
	set[n.ID()] = n
}

func (idx *TypeIndex) delete(n *ast.Node) {
	if set, ok := idx.byKind[n.Kind()]; ok {
		delete(set, n.ID())
	}
}

// FindByKind returns every currently-indexed node of the given kind.
func (idx *TypeIndex) FindByKind(k ast.Kind) []*ast.Node {
	set := idx.byKind[k]
	out := make([]*ast.Node, 0, len(set))
	for _, n := range set {
		out = append(out, n)
	}
	return out
}
