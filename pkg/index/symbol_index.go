package index

import "github.com/xlg-lang/xlg/pkg/ast"

// occurrenceSet tracks the node_ids that define and that reference a given
// symbol (spec §4.D: "symbol → (defining_node_ids, referencing_node_ids)").
type occurrenceSet struct {
	defs map[ast.NodeID]*ast.Node
	refs map[ast.NodeID]*ast.Node
}

// SymbolIndex maps a name to its defining and referencing occurrences.
type SymbolIndex struct {
	byName map[string]*occurrenceSet
}

func newSymbolIndex() *SymbolIndex {
	return &SymbolIndex{byName: make(map[string]*occurrenceSet)}
}

func (idx *SymbolIndex) entry(name string) *occurrenceSet {
	e, ok := idx.byName[name]
	if !ok {
		e = &occurrenceSet{defs: make(map[ast.NodeID]*ast.Node), refs: make(map[ast.NodeID]*ast.Node)}
		idx.byName[name] = e
	}
	return e
}

func (idx *SymbolIndex) insert(n *ast.Node) {
	for _, name := range definingNames(n) {
		idx.entry(name).defs[n.ID()] = n
	}
	for _, name := range referencingNames(n) {
		idx.entry(name).refs[n.ID()] = n
	}
}

func (idx *SymbolIndex) delete(n *ast.Node) {
	for _, name := range definingNames(n) {
		if e, ok := idx.byName[name]; ok {
			delete(e.defs, n.ID())
		}
	}
	for _, name := range referencingNames(n) {
		if e, ok := idx.byName[name]; ok {
			delete(e.refs, n.ID())
		}
	}
}

// DefiningNodes returns every node that binds name.
func (idx *SymbolIndex) DefiningNodes(name string) []*ast.Node {
	e, ok := idx.byName[name]
	if !ok {
		return nil
	}
	out := make([]*ast.Node, 0, len(e.defs))
	for _, n := range e.defs {
		out = append(out, n)
	}
	return out
}

// ReferencingNodes returns every node that references name.
func (idx *SymbolIndex) ReferencingNodes(name string) []*ast.Node {
	e, ok := idx.byName[name]
	if !ok {
		return nil
	}
	out := make([]*ast.Node, 0, len(e.refs))
	for _, n := range e.refs {
		out = append(out, n)
	}
	return out
}

// definingNames returns the names n introduces a binding for, covering
// every binder form in the closed node-kind set.
func definingNames(n *ast.Node) []string {
	switch d := n.Data().(type) {
	case ast.ValueDef:
		return []string{d.Name}
	case ast.TypeDef:
		return []string{d.Name}
	case ast.EffectDef:
		return []string{d.Name}
	case ast.HandlerDef:
		return nil // handlers bind no top-level name of their own (they target an effect)
	case ast.Interface:
		return []string{d.Name}
	case ast.Let:
		return []string{d.Name}
	case ast.LetRec:
		names := make([]string, len(d.Bindings))
		for i, b := range d.Bindings {
			names[i] = b.Name
		}
		return names
	case ast.Lambda:
		names := make([]string, len(d.Params))
		for i, p := range d.Params {
			names[i] = p.Name
		}
		return names
	case ast.PatVariable:
		return []string{d.Name}
	case ast.PatConstructor:
		return nil
	default:
		return nil
	}
}

// referencingNames returns the names n reads (never binds).
func referencingNames(n *ast.Node) []string {
	if ref, ok := n.Data().(ast.RefSymbolic); ok {
		return []string{ref.Name}
	}
	return nil
}
