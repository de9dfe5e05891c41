package ast

import (
	"github.com/xlg-lang/xlg/pkg/hm"
	"github.com/xlg-lang/xlg/pkg/symbol"
)

// NodeID uniquely identifies a Node within a single AST version. It is
// never reused within that version; across versions identity is carried
// by content hash, not NodeID (spec §3, invariant 3).
type NodeID uint64

// TypeInfo is the type and effect information attached to a Node once the
// checker has run (spec §3: "optional, assigned by E"). Quantified holds
// the scheme's bound type and row variables (let-generalization is over
// both, spec §4.E); Mono and Effects are the underlying monotype and
// effect row.
type TypeInfo struct {
	Quantified []hm.TypeVariable
	Mono       hm.Type
	Effects    *hm.EffectRow
}

// Scheme reconstructs the *hm.Scheme this TypeInfo describes.
func (ti *TypeInfo) Scheme() *hm.Scheme {
	if ti == nil {
		return nil
	}
	return hm.NewScheme(ti.Quantified, ti.Mono)
}

// Data is the kind-specific payload of a Node: a closed sum, one
// implementation per Kind (spec §3's "Node kinds (closed set)"). Adding a
// new Kind means adding a new Data implementation and updating every
// exhaustive switch over Kind elsewhere (pkg/hash, pkg/index, pkg/types).
type Data interface {
	Kind() Kind
	// Children returns this node's direct child nodes in source order,
	// addressable by index for replace_child (spec §4.B).
	Children() []*Node
	// HashFields returns this node's fields in the fixed, per-kind order
	// the content hasher serializes (spec §4.C). Child node fields carry
	// the child itself (its hash is read by the hasher, recursively).
	HashFields() []Field
	// WithChildren returns a copy of this Data with its Children()
	// replaced in order; len(children) must equal len(d.Children()).
	WithChildren(children []*Node) Data
}

// Node is an immutable AST node (spec §3). Nodes are value-typed and
// cheaply cloneable: copying a Node copies only the top-level struct, never
// its children, since children are shared by reference (spec §4.B).
type Node struct {
	id          NodeID
	span        symbol.Span
	kind        Kind
	data        Data
	typeInfo    *TypeInfo
	annotations Annotations
}

func (n *Node) ID() NodeID                 { return n.id }
func (n *Node) Span() symbol.Span          { return n.span }
func (n *Node) Kind() Kind                 { return n.kind }
func (n *Node) Data() Data                 { return n.data }
func (n *Node) TypeInfo() *TypeInfo        { return n.typeInfo }
func (n *Node) Annotations() Annotations   { return n.annotations }
func (n *Node) Children() []*Node          { return n.data.Children() }
func (n *Node) HashFields() []Field        { return n.data.HashFields() }

// WithTypeInfo returns a copy of n carrying ti. Only the Checker (E) calls
// this; it never allocates a new NodeID, since attaching type info is not
// a structural edit (spec §4.E: "attached back as metadata").
func (n *Node) WithTypeInfo(ti *TypeInfo) *Node {
	out := *n
	out.typeInfo = ti
	return &out
}

// WithAnnotations returns a copy of n with its annotations replaced.
func (n *Node) WithAnnotations(a Annotations) *Node {
	out := *n
	out.annotations = a
	return &out
}
