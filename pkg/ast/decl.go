package ast

// CompilationUnit is the root node of a parsed file: a flat list of
// modules (spec §3).
type CompilationUnit struct{ Modules []*Node }

func (CompilationUnit) Kind() Kind          { return KindCompilationUnit }
func (c CompilationUnit) Children() []*Node { return c.Modules }

func (c CompilationUnit) HashFields() []Field {
	fs := make([]Field, len(c.Modules))
	for i, m := range c.Modules {
		fs[i] = Child(m)
	}
	return []Field{List(fs...)}
}

func (c CompilationUnit) WithChildren(children []*Node) Data {
	return CompilationUnit{Modules: children}
}

// Module groups a name, its imports, and its definitions.
type Module struct {
	Name        string
	Imports     []*Node
	Definitions []*Node
}

func (Module) Kind() Kind { return KindModule }

func (m Module) Children() []*Node {
	out := make([]*Node, 0, len(m.Imports)+len(m.Definitions))
	out = append(out, m.Imports...)
	out = append(out, m.Definitions...)
	return out
}

func (m Module) HashFields() []Field {
	imp := make([]Field, len(m.Imports))
	for i, n := range m.Imports {
		imp[i] = Child(n)
	}
	defs := make([]Field, len(m.Definitions))
	for i, n := range m.Definitions {
		defs[i] = Child(n)
	}
	return []Field{Sym(m.Name), List(imp...), List(defs...)}
}

func (m Module) WithChildren(children []*Node) Data {
	imports := children[:len(m.Imports)]
	defs := children[len(m.Imports):]
	return Module{Name: m.Name, Imports: imports, Definitions: defs}
}

// Import brings a namespace path into scope, optionally under Alias
// ("" means unaliased).
type Import struct {
	Path  []string
	Alias string
}

func (Import) Kind() Kind          { return KindImport }
func (i Import) Children() []*Node { return nil }

func (i Import) HashFields() []Field {
	segs := make([]Field, len(i.Path))
	for j, s := range i.Path {
		segs[j] = Text(s)
	}
	return []Field{List(segs...), Text(i.Alias)}
}

func (i Import) WithChildren([]*Node) Data { return i }

// ValueDef binds Name to the value of Body, with an optional explicit
// type Signature (nil defers entirely to inference).
type ValueDef struct {
	Name      string
	Signature *Node
	Body      *Node
}

func (ValueDef) Kind() Kind { return KindValueDef }

func (v ValueDef) Children() []*Node {
	if v.Signature != nil {
		return []*Node{v.Signature, v.Body}
	}
	return []*Node{v.Body}
}

func (v ValueDef) HashFields() []Field {
	return []Field{Sym(v.Name), Opt(v.Signature != nil, Child(v.Signature)), Child(v.Body)}
}

func (v ValueDef) WithChildren(children []*Node) Data {
	if v.Signature != nil {
		return ValueDef{Name: v.Name, Signature: children[0], Body: children[1]}
	}
	return ValueDef{Name: v.Name, Body: children[0]}
}

// TypeDefVariant distinguishes the three shapes a TypeDef can take.
type TypeDefVariant uint8

const (
	TypeDefAlias TypeDefVariant = iota
	TypeDefRecord
	TypeDefSum
)

// TypeRecordField is one field of a record type definition.
type TypeRecordField struct {
	Name string
	Type *Node
}

// TypeSumVariant is one constructor of a sum type definition, with
// positional argument types.
type TypeSumVariant struct {
	Name string
	Args []*Node
}

// TypeDef defines a named type: a type alias, a record type, or a sum
// (tagged union) type, each generic over Params (spec §3).
type TypeDef struct {
	Name    string
	Params  []string
	Variant TypeDefVariant

	Alias   *Node             // TypeDefAlias
	Fields  []TypeRecordField // TypeDefRecord
	Sum     []TypeSumVariant  // TypeDefSum
}

func (TypeDef) Kind() Kind { return KindTypeDef }

func (t TypeDef) Children() []*Node {
	switch t.Variant {
	case TypeDefAlias:
		return []*Node{t.Alias}
	case TypeDefRecord:
		out := make([]*Node, len(t.Fields))
		for i, f := range t.Fields {
			out[i] = f.Type
		}
		return out
	case TypeDefSum:
		var out []*Node
		for _, v := range t.Sum {
			out = append(out, v.Args...)
		}
		return out
	default:
		return nil
	}
}

func (t TypeDef) HashFields() []Field {
	params := make([]Field, len(t.Params))
	for i, p := range t.Params {
		params[i] = Sym(p)
	}
	head := []Field{Sym(t.Name), List(params...), Int(int64(t.Variant))}

	switch t.Variant {
	case TypeDefAlias:
		return append(head, Child(t.Alias))
	case TypeDefRecord:
		fs := make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			fs[i] = List(Sym(f.Name), Child(f.Type))
		}
		return append(head, List(fs...))
	case TypeDefSum:
		fs := make([]Field, len(t.Sum))
		for i, v := range t.Sum {
			args := make([]Field, len(v.Args))
			for j, a := range v.Args {
				args[j] = Child(a)
			}
			fs[i] = List(Sym(v.Name), List(args...))
		}
		return append(head, List(fs...))
	default:
		return head
	}
}

func (t TypeDef) WithChildren(children []*Node) Data {
	switch t.Variant {
	case TypeDefAlias:
		return TypeDef{Name: t.Name, Params: t.Params, Variant: t.Variant, Alias: children[0]}
	case TypeDefRecord:
		fields := make([]TypeRecordField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = TypeRecordField{Name: f.Name, Type: children[i]}
		}
		return TypeDef{Name: t.Name, Params: t.Params, Variant: t.Variant, Fields: fields}
	case TypeDefSum:
		variants := make([]TypeSumVariant, len(t.Sum))
		idx := 0
		for i, v := range t.Sum {
			args := make([]*Node, len(v.Args))
			copy(args, children[idx:idx+len(v.Args)])
			idx += len(v.Args)
			variants[i] = TypeSumVariant{Name: v.Name, Args: args}
		}
		return TypeDef{Name: t.Name, Params: t.Params, Variant: t.Variant, Sum: variants}
	default:
		return t
	}
}

// EffectOperationDef declares one operation of an effect: its name,
// parameter types, and return type.
type EffectOperationDef struct {
	Name       string
	ParamTypes []*Node
	ReturnType *Node
}

// EffectDef declares an algebraic effect as a set of operation
// signatures (spec §3, §4.E).
type EffectDef struct {
	Name       string
	Operations []EffectOperationDef
}

func (EffectDef) Kind() Kind { return KindEffectDef }

func (e EffectDef) Children() []*Node {
	var out []*Node
	for _, op := range e.Operations {
		out = append(out, op.ParamTypes...)
		out = append(out, op.ReturnType)
	}
	return out
}

func (e EffectDef) HashFields() []Field {
	fs := make([]Field, len(e.Operations))
	for i, op := range e.Operations {
		params := make([]Field, len(op.ParamTypes))
		for j, p := range op.ParamTypes {
			params[j] = Child(p)
		}
		fs[i] = List(Sym(op.Name), List(params...), Child(op.ReturnType))
	}
	return []Field{Sym(e.Name), List(fs...)}
}

func (e EffectDef) WithChildren(children []*Node) Data {
	ops := make([]EffectOperationDef, len(e.Operations))
	idx := 0
	for i, op := range e.Operations {
		params := make([]*Node, len(op.ParamTypes))
		copy(params, children[idx:idx+len(op.ParamTypes)])
		idx += len(op.ParamTypes)
		ret := children[idx]
		idx++
		ops[i] = EffectOperationDef{Name: op.Name, ParamTypes: params, ReturnType: ret}
	}
	return EffectDef{Name: e.Name, Operations: ops}
}

// HandlerClause handles one operation of the effect a HandlerDef targets.
// Params names the operation's arguments plus, implicitly, a resumption;
// the Editor and checker bind the resumption under a fixed reserved name
// rather than listing it here.
type HandlerClause struct {
	OpName string
	Params []string
	Body   *Node
}

// HandlerDef defines a handler for EffectName: a clause per operation plus
// an optional Return clause run on the handled computation's final value
// (spec §4.E; an absent Return clause is the identity).
type HandlerDef struct {
	EffectName string
	Clauses    []HandlerClause
	Return     *Node
}

func (HandlerDef) Kind() Kind { return KindHandlerDef }

func (h HandlerDef) Children() []*Node {
	out := make([]*Node, 0, len(h.Clauses)+1)
	for _, c := range h.Clauses {
		out = append(out, c.Body)
	}
	if h.Return != nil {
		out = append(out, h.Return)
	}
	return out
}

func (h HandlerDef) HashFields() []Field {
	fs := make([]Field, len(h.Clauses))
	for i, c := range h.Clauses {
		params := make([]Field, len(c.Params))
		for j, p := range c.Params {
			params[j] = Sym(p)
		}
		fs[i] = List(Sym(c.OpName), List(params...), Child(c.Body))
	}
	return []Field{Sym(h.EffectName), List(fs...), Opt(h.Return != nil, Child(h.Return))}
}

func (h HandlerDef) WithChildren(children []*Node) Data {
	clauses := make([]HandlerClause, len(h.Clauses))
	for i, c := range h.Clauses {
		clauses[i] = HandlerClause{OpName: c.OpName, Params: c.Params, Body: children[i]}
	}
	var ret *Node
	if h.Return != nil {
		ret = children[len(children)-1]
	}
	return HandlerDef{EffectName: h.EffectName, Clauses: clauses, Return: ret}
}

// InterfaceMember declares one named member (a value of the given type)
// that implementations of the Interface must provide.
type InterfaceMember struct {
	Name string
	Type *Node
}

// Interface declares a named collection of member signatures, used for
// ad hoc polymorphism over records/modules (spec §3).
type Interface struct {
	Name    string
	Members []InterfaceMember
}

func (Interface) Kind() Kind { return KindInterface }

func (i Interface) Children() []*Node {
	out := make([]*Node, len(i.Members))
	for j, m := range i.Members {
		out[j] = m.Type
	}
	return out
}

func (i Interface) HashFields() []Field {
	fs := make([]Field, len(i.Members))
	for j, m := range i.Members {
		fs[j] = List(Sym(m.Name), Child(m.Type))
	}
	return []Field{Sym(i.Name), List(fs...)}
}

func (i Interface) WithChildren(children []*Node) Data {
	members := make([]InterfaceMember, len(i.Members))
	for j, m := range i.Members {
		members[j] = InterfaceMember{Name: m.Name, Type: children[j]}
	}
	return Interface{Name: i.Name, Members: members}
}
