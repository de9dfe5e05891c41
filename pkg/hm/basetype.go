package hm

import "fmt"

// TypeConst is a nullary nominal base type: Int, Float, Text, Bool, Unit
// (spec §4.E).
type TypeConst string

const (
	Int  TypeConst = "Int"
	Float TypeConst = "Float"
	Text  TypeConst = "Text"
	Bool  TypeConst = "Bool"
	Unit  TypeConst = "Unit"
)

func (t TypeConst) Name() string                           { return string(t) }
func (t TypeConst) Apply(Subs) Substitutable                { return t }
func (t TypeConst) FreeTypeVar() TypeVarSet                 { return nil }
func (t TypeConst) Normalize(TypeVarSet, TypeVarSet) (Type, error) { return t, nil }
func (t TypeConst) Types() Types                            { return nil }
func (t TypeConst) Eq(other Type) bool {
	ot, ok := other.(TypeConst)
	return ok && t == ot
}
func (t TypeConst) String() string     { return string(t) }

// ListType is List[a].
type ListType struct{ Elem Type }

func (t ListType) Name() string { return t.String() }
func (t ListType) Apply(subs Subs) Substitutable {
	return ListType{t.Elem.Apply(subs).(Type)}
}
func (t ListType) FreeTypeVar() TypeVarSet { return t.Elem.FreeTypeVar() }
func (t ListType) Normalize(k, v TypeVarSet) (Type, error) {
	e, err := t.Elem.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	return ListType{e}, nil
}
func (t ListType) Types() Types { return Types{t.Elem} }
func (t ListType) Eq(other Type) bool {
	ot, ok := other.(ListType)
	return ok && t.Elem.Eq(ot.Elem)
}
func (t ListType) String() string     { return fmt.Sprintf("List[%s]", t.Elem) }

// TupleType is a fixed-arity positional product.
type TupleType struct{ Elems []Type }

func (t TupleType) Name() string { return t.String() }
func (t TupleType) Apply(subs Subs) Substitutable {
	out := make([]Type, len(t.Elems))
	for i, e := range t.Elems {
		out[i] = e.Apply(subs).(Type)
	}
	return TupleType{out}
}
func (t TupleType) FreeTypeVar() TypeVarSet {
	ftv := NewTypeVarSet()
	for _, e := range t.Elems {
		ftv = ftv.Union(e.FreeTypeVar())
	}
	return ftv
}
func (t TupleType) Normalize(k, v TypeVarSet) (Type, error) {
	out := make([]Type, len(t.Elems))
	for i, e := range t.Elems {
		n, err := e.Normalize(k, v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return TupleType{out}, nil
}
func (t TupleType) Types() Types { return Types(t.Elems) }
func (t TupleType) Eq(other Type) bool {
	ot, ok := other.(TupleType)
	if !ok || len(ot.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Eq(ot.Elems[i]) {
			return false
		}
	}
	return true
}
func (t TupleType) String() string {
	strs := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		strs[i] = e.String()
	}
	return "(" + joinStrings(strs, ", ") + ")"
}

// MaybeType is Maybe[a].
type MaybeType struct{ Elem Type }

func (t MaybeType) Name() string { return t.String() }
func (t MaybeType) Apply(subs Subs) Substitutable {
	return MaybeType{t.Elem.Apply(subs).(Type)}
}
func (t MaybeType) FreeTypeVar() TypeVarSet { return t.Elem.FreeTypeVar() }
func (t MaybeType) Normalize(k, v TypeVarSet) (Type, error) {
	e, err := t.Elem.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	return MaybeType{e}, nil
}
func (t MaybeType) Types() Types { return Types{t.Elem} }
func (t MaybeType) Eq(other Type) bool {
	ot, ok := other.(MaybeType)
	return ok && t.Elem.Eq(ot.Elem)
}
func (t MaybeType) String() string     { return fmt.Sprintf("Maybe[%s]", t.Elem) }

// EitherType is Either[e,a].
type EitherType struct{ Left, Right Type }

func (t EitherType) Name() string { return t.String() }
func (t EitherType) Apply(subs Subs) Substitutable {
	return EitherType{t.Left.Apply(subs).(Type), t.Right.Apply(subs).(Type)}
}
func (t EitherType) FreeTypeVar() TypeVarSet {
	return t.Left.FreeTypeVar().Union(t.Right.FreeTypeVar())
}
func (t EitherType) Normalize(k, v TypeVarSet) (Type, error) {
	l, err := t.Left.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	r, err := t.Right.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	return EitherType{l, r}, nil
}
func (t EitherType) Types() Types { return Types{t.Left, t.Right} }
func (t EitherType) Eq(other Type) bool {
	ot, ok := other.(EitherType)
	return ok && t.Left.Eq(ot.Left) && t.Right.Eq(ot.Right)
}
func (t EitherType) String() string     { return fmt.Sprintf("Either[%s, %s]", t.Left, t.Right) }

// ResultType is Result[a,e].
type ResultType struct{ Ok, Err Type }

func (t ResultType) Name() string { return t.String() }
func (t ResultType) Apply(subs Subs) Substitutable {
	return ResultType{t.Ok.Apply(subs).(Type), t.Err.Apply(subs).(Type)}
}
func (t ResultType) FreeTypeVar() TypeVarSet {
	return t.Ok.FreeTypeVar().Union(t.Err.FreeTypeVar())
}
func (t ResultType) Normalize(k, v TypeVarSet) (Type, error) {
	o, err := t.Ok.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	e, err := t.Err.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	return ResultType{o, e}, nil
}
func (t ResultType) Types() Types { return Types{t.Ok, t.Err} }
func (t ResultType) Eq(other Type) bool {
	ot, ok := other.(ResultType)
	return ok && t.Ok.Eq(ot.Ok) && t.Err.Eq(ot.Err)
}
func (t ResultType) String() string     { return fmt.Sprintf("Result[%s, %s]", t.Ok, t.Err) }

// VariantType is a nominal algebraic data type reference: a name plus
// instantiated type arguments (spec §4.E: "Variants ... are nominal").
// Two VariantTypes are equal only if their Name and Args match; structural
// similarity of their underlying constructors is irrelevant.
type VariantType struct {
	Name_ string
	Args  []Type
}

func (t VariantType) Name() string { return t.String() }
func (t VariantType) Apply(subs Subs) Substitutable {
	out := make([]Type, len(t.Args))
	for i, a := range t.Args {
		out[i] = a.Apply(subs).(Type)
	}
	return VariantType{t.Name_, out}
}
func (t VariantType) FreeTypeVar() TypeVarSet {
	ftv := NewTypeVarSet()
	for _, a := range t.Args {
		ftv = ftv.Union(a.FreeTypeVar())
	}
	return ftv
}
func (t VariantType) Normalize(k, v TypeVarSet) (Type, error) {
	out := make([]Type, len(t.Args))
	for i, a := range t.Args {
		n, err := a.Normalize(k, v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return VariantType{t.Name_, out}, nil
}
func (t VariantType) Types() Types { return Types(t.Args) }
func (t VariantType) Eq(other Type) bool {
	ot, ok := other.(VariantType)
	if !ok || t.Name_ != ot.Name_ || len(t.Args) != len(ot.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Eq(ot.Args[i]) {
			return false
		}
	}
	return true
}
func (t VariantType) String() string {
	if len(t.Args) == 0 {
		return t.Name_
	}
	strs := make([]string, len(t.Args))
	for i, a := range t.Args {
		strs[i] = a.String()
	}
	return t.Name_ + "[" + joinStrings(strs, ", ") + "]"
}
