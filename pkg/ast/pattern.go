package ast

// PatWildcard matches anything and binds nothing ("_").
type PatWildcard struct{}

func (PatWildcard) Kind() Kind                  { return KindPatWildcard }
func (p PatWildcard) Children() []*Node         { return nil }
func (p PatWildcard) HashFields() []Field       { return nil }
func (p PatWildcard) WithChildren([]*Node) Data { return p }

// PatLiteral matches a value equal to a literal node.
type PatLiteral struct{ Literal *Node }

func (PatLiteral) Kind() Kind          { return KindPatLiteral }
func (p PatLiteral) Children() []*Node { return []*Node{p.Literal} }
func (p PatLiteral) HashFields() []Field {
	return []Field{Child(p.Literal)}
}
func (p PatLiteral) WithChildren(children []*Node) Data {
	return PatLiteral{Literal: children[0]}
}

// PatVariable binds the matched value to Name.
type PatVariable struct{ Name string }

func (PatVariable) Kind() Kind                  { return KindPatVariable }
func (p PatVariable) Children() []*Node         { return nil }
func (p PatVariable) HashFields() []Field       { return []Field{Sym(p.Name)} }
func (p PatVariable) WithChildren([]*Node) Data { return p }

// PatConstructor matches a sum-type variant by name and destructures its
// arguments positionally.
type PatConstructor struct {
	Name string
	Args []*Node
}

func (PatConstructor) Kind() Kind          { return KindPatConstructor }
func (p PatConstructor) Children() []*Node { return p.Args }

func (p PatConstructor) HashFields() []Field {
	fs := make([]Field, len(p.Args))
	for i, a := range p.Args {
		fs[i] = Child(a)
	}
	return []Field{Sym(p.Name), List(fs...)}
}

func (p PatConstructor) WithChildren(children []*Node) Data {
	return PatConstructor{Name: p.Name, Args: children}
}

// PatRecordField is one field pattern inside PatRecord, in source order.
type PatRecordField struct {
	Name    string
	Pattern *Node
}

// PatRecord destructures a record by field name. Rest reports whether the
// pattern is open (trailing "...", matches records with additional fields)
// or closed.
type PatRecord struct {
	Fields []PatRecordField
	Rest   bool
}

func (PatRecord) Kind() Kind { return KindPatRecord }

func (p PatRecord) Children() []*Node {
	out := make([]*Node, len(p.Fields))
	for i, f := range p.Fields {
		out[i] = f.Pattern
	}
	return out
}

func (p PatRecord) HashFields() []Field {
	fs := make([]Field, len(p.Fields))
	for i, f := range p.Fields {
		fs[i] = List(Sym(f.Name), Child(f.Pattern))
	}
	return []Field{List(fs...), Bool(p.Rest)}
}

func (p PatRecord) WithChildren(children []*Node) Data {
	out := make([]PatRecordField, len(p.Fields))
	for i, f := range p.Fields {
		out[i] = PatRecordField{Name: f.Name, Pattern: children[i]}
	}
	return PatRecord{Fields: out, Rest: p.Rest}
}

// PatCons matches a non-empty list as a head element and a tail list
// ("x :: xs").
type PatCons struct {
	Head *Node
	Tail *Node
}

func (PatCons) Kind() Kind          { return KindPatCons }
func (p PatCons) Children() []*Node { return []*Node{p.Head, p.Tail} }
func (p PatCons) HashFields() []Field {
	return []Field{Child(p.Head), Child(p.Tail)}
}
func (p PatCons) WithChildren(children []*Node) Data {
	return PatCons{Head: children[0], Tail: children[1]}
}

// PatTuple destructures a fixed-arity tuple positionally.
type PatTuple struct{ Elements []*Node }

func (PatTuple) Kind() Kind          { return KindPatTuple }
func (p PatTuple) Children() []*Node { return p.Elements }

func (p PatTuple) HashFields() []Field {
	fs := make([]Field, len(p.Elements))
	for i, e := range p.Elements {
		fs[i] = Child(e)
	}
	return []Field{List(fs...)}
}

func (p PatTuple) WithChildren(children []*Node) Data {
	return PatTuple{Elements: children}
}
