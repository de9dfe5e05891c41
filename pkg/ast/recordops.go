package ast

// RecordFieldInit is one field initializer, in source order, inside Record
// or RecordUpdate.
type RecordFieldInit struct {
	Name  string
	Value *Node
}

// Record constructs a record value from field initializers.
type Record struct{ Fields []RecordFieldInit }

func (Record) Kind() Kind { return KindRecord }

func (r Record) Children() []*Node {
	out := make([]*Node, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = f.Value
	}
	return out
}

func (r Record) HashFields() []Field {
	fs := make([]Field, len(r.Fields))
	for i, f := range r.Fields {
		fs[i] = List(Sym(f.Name), Child(f.Value))
	}
	return []Field{List(fs...)}
}

func (r Record) WithChildren(children []*Node) Data {
	out := make([]RecordFieldInit, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = RecordFieldInit{Name: f.Name, Value: children[i]}
	}
	return Record{Fields: out}
}

// RecordAccess projects a single field off a record value ("r.field").
type RecordAccess struct {
	Target *Node
	Field  string
}

func (RecordAccess) Kind() Kind          { return KindRecordAccess }
func (a RecordAccess) Children() []*Node { return []*Node{a.Target} }
func (a RecordAccess) HashFields() []Field {
	return []Field{Child(a.Target), Sym(a.Field)}
}
func (a RecordAccess) WithChildren(children []*Node) Data {
	return RecordAccess{Target: children[0], Field: a.Field}
}

// RecordUpdate produces a new record from Target with Fields overridden
// ("{ r | field = value }").
type RecordUpdate struct {
	Target *Node
	Fields []RecordFieldInit
}

func (RecordUpdate) Kind() Kind { return KindRecordUpdate }

func (u RecordUpdate) Children() []*Node {
	out := make([]*Node, 0, len(u.Fields)+1)
	out = append(out, u.Target)
	for _, f := range u.Fields {
		out = append(out, f.Value)
	}
	return out
}

func (u RecordUpdate) HashFields() []Field {
	fs := make([]Field, len(u.Fields))
	for i, f := range u.Fields {
		fs[i] = List(Sym(f.Name), Child(f.Value))
	}
	return []Field{Child(u.Target), List(fs...)}
}

func (u RecordUpdate) WithChildren(children []*Node) Data {
	out := make([]RecordFieldInit, len(u.Fields))
	for i, f := range u.Fields {
		out[i] = RecordFieldInit{Name: f.Name, Value: children[i+1]}
	}
	return RecordUpdate{Target: children[0], Fields: out}
}
