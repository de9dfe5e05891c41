package ast

// RefSymbolic is a Reference resolved by name through the enclosing scope
// chain or a qualified namespace path (spec §3, invariant 4).
type RefSymbolic struct {
	Name string
	Path []string // qualified path segments, e.g. ["Core", "List"]; nil for a bare local name
}

func (RefSymbolic) Kind() Kind { return KindReferenceSymbolic }

func (r RefSymbolic) Children() []*Node { return nil }

func (r RefSymbolic) HashFields() []Field {
	segs := make([]Field, len(r.Path))
	for i, s := range r.Path {
		segs[i] = Text(s)
	}
	return []Field{Text(r.Name), List(segs...)}
}

func (r RefSymbolic) WithChildren([]*Node) Data { return r }

// RefHash is a Reference anchored directly to a content hash in the
// Namespace Store, bypassing name resolution (spec §3, invariant 4).
type RefHash struct {
	Hash [32]byte
}

func (RefHash) Kind() Kind { return KindReferenceHash }

func (r RefHash) Children() []*Node { return nil }

func (r RefHash) HashFields() []Field {
	return []Field{Text(string(r.Hash[:]))}
}

func (r RefHash) WithChildren([]*Node) Data { return r }
