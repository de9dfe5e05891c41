package ast

// Hole is a pattern-template placeholder (SPEC_FULL.md §3): it stands in
// for "any node of Match (or any node at all, if Match is nil)" inside a
// query predicate built with pkg/index's template matching. A Hole never
// appears in a real AST produced by the Editor and pkg/hash refuses to
// hash one.
type Hole struct {
	Match Kind // KindInvalid means "matches any kind"
	Name  string
}

func (Hole) Kind() Kind          { return KindHole }
func (h Hole) Children() []*Node { return nil }

// HashFields panics: a Hole is never part of a hashable tree.
func (h Hole) HashFields() []Field {
	panic("ast: Hole is not hashable")
}

func (h Hole) WithChildren([]*Node) Data { return h }
