package index

import (
	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
)

// Collection is the five cooperating indices the Editor maintains
// incrementally over one AST version (spec §4.D).
type Collection struct {
	Type       *TypeIndex
	Symbol     *SymbolIndex
	Position   *PositionIndex
	Dependency *DependencyIndex
	Hierarchy  *HierarchyIndex
}

// New returns an empty Collection.
func New() *Collection {
	return &Collection{
		Type:       newTypeIndex(),
		Symbol:     newSymbolIndex(),
		Position:   newPositionIndex(),
		Dependency: newDependencyIndex(),
		Hierarchy:  newHierarchyIndex(),
	}
}

// Rebuild discards all indexed state and re-derives the Type, Symbol,
// Position, and Hierarchy indices from root by a single preorder walk.
// The Dependency index is untouched: it is keyed by definition_hash and
// populated only on namespace commit (spec §4.D's "Updated on: Definition
// commit"), not by structural traversal.
func (c *Collection) Rebuild(root *ast.Node) {
	c.Type = newTypeIndex()
	c.Symbol = newSymbolIndex()
	c.Position = newPositionIndex()
	c.Hierarchy = newHierarchyIndex()
	c.walk(nil, root)
}

func (c *Collection) walk(parent, n *ast.Node) {
	if n == nil || n.Kind() == ast.KindHole {
		return
	}
	c.Type.insert(n)
	c.Symbol.insert(n)
	c.Position.insert(n)
	c.Hierarchy.insert(parent, n)
	for _, child := range n.Children() {
		c.walk(n, child)
	}
}

// Insert indexes a single newly created node under parent (spec §4.D:
// indices are "updated on Insert/Delete" rather than fully rebuilt).
func (c *Collection) Insert(parent, n *ast.Node) {
	c.Type.insert(n)
	c.Symbol.insert(n)
	c.Position.insert(n)
	c.Hierarchy.insert(parent, n)
}

// Delete removes a single node's own entries from every index (its
// children, if still reachable some other way, are untouched).
func (c *Collection) Delete(n *ast.Node) {
	c.Type.delete(n)
	c.Symbol.delete(n)
	c.Position.delete(n)
	c.Hierarchy.delete(n)
}

// CommitDependencies records def's dependency set, keeping the
// Dependency index current as of a namespace commit.
func (c *Collection) CommitDependencies(def hash.Hash, deps []hash.Hash) {
	c.Dependency.Set(def, deps)
}

// FindByName returns def and reference occurrences of name, matching the
// Editor-surface query "find by name in scope" (scope resolution itself
// is pkg/types's job; this returns every occurrence, scoped or not).
func (c *Collection) FindByName(name string) (defs, refs []*ast.Node) {
	return c.Symbol.DefiningNodes(name), c.Symbol.ReferencingNodes(name)
}
