package ast

// LitInt is an integer literal (spec §3 Literal variants).
type LitInt struct{ Value int64 }

func (LitInt) Kind() Kind                  { return KindLitInt }
func (l LitInt) Children() []*Node         { return nil }
func (l LitInt) HashFields() []Field       { return []Field{Int(l.Value)} }
func (l LitInt) WithChildren([]*Node) Data { return l }

// LitFloat is a floating-point literal.
type LitFloat struct{ Value float64 }

func (LitFloat) Kind() Kind                  { return KindLitFloat }
func (l LitFloat) Children() []*Node         { return nil }
func (l LitFloat) HashFields() []Field       { return []Field{Float(l.Value)} }
func (l LitFloat) WithChildren([]*Node) Data { return l }

// LitText is a text (string) literal.
type LitText struct{ Value string }

func (LitText) Kind() Kind                  { return KindLitText }
func (l LitText) Children() []*Node         { return nil }
func (l LitText) HashFields() []Field       { return []Field{Text(l.Value)} }
func (l LitText) WithChildren([]*Node) Data { return l }

// LitBool is a boolean literal.
type LitBool struct{ Value bool }

func (LitBool) Kind() Kind                  { return KindLitBool }
func (l LitBool) Children() []*Node         { return nil }
func (l LitBool) HashFields() []Field       { return []Field{Bool(l.Value)} }
func (l LitBool) WithChildren([]*Node) Data { return l }

// LitUnit is the sole value of the unit type.
type LitUnit struct{}

func (LitUnit) Kind() Kind                  { return KindLitUnit }
func (l LitUnit) Children() []*Node         { return nil }
func (l LitUnit) HashFields() []Field       { return nil }
func (l LitUnit) WithChildren([]*Node) Data { return l }

// LitList is a list literal.
type LitList struct{ Elements []*Node }

func (LitList) Kind() Kind          { return KindLitList }
func (l LitList) Children() []*Node { return l.Elements }

func (l LitList) HashFields() []Field {
	fs := make([]Field, len(l.Elements))
	for i, e := range l.Elements {
		fs[i] = Child(e)
	}
	return []Field{List(fs...)}
}

func (l LitList) WithChildren(children []*Node) Data {
	return LitList{Elements: children}
}

// LitTuple is a fixed-arity tuple literal.
type LitTuple struct{ Elements []*Node }

func (LitTuple) Kind() Kind          { return KindLitTuple }
func (l LitTuple) Children() []*Node { return l.Elements }

func (l LitTuple) HashFields() []Field {
	fs := make([]Field, len(l.Elements))
	for i, e := range l.Elements {
		fs[i] = Child(e)
	}
	return []Field{List(fs...)}
}

func (l LitTuple) WithChildren(children []*Node) Data {
	return LitTuple{Elements: children}
}
