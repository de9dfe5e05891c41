package hm

import "fmt"

// RecordField is one named, typed field of a RecordType.
type RecordField struct {
	Name string
	Type Type
}

// RecordType is a structurally-typed record, optionally extensible by a
// row variable (spec §4.E: "row polymorphism permits extension by a row
// variable"). Tail is nil for a closed record ({exactly these fields}), a
// TypeVariable for an open record ({these fields, ...r}), or another
// *RecordType once row unification has resolved the tail to a concrete
// extension.
type RecordType struct {
	Fields []RecordField
	Tail   Type
}

// ClosedRecord builds a record type with no row variable.
func ClosedRecord(fields ...RecordField) *RecordType {
	return &RecordType{Fields: fields}
}

// OpenRecord builds a record type extensible by the row variable tail.
func OpenRecord(tail TypeVariable, fields ...RecordField) *RecordType {
	return &RecordType{Fields: fields, Tail: tail}
}

// FieldType returns the type of the named field, if present directly in
// this record (not following the tail).
func (t *RecordType) FieldType(name string) (Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

func (t *RecordType) Name() string { return t.String() }

func (t *RecordType) Apply(subs Subs) Substitutable {
	out := make([]RecordField, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = RecordField{f.Name, f.Type.Apply(subs).(Type)}
	}
	var tail Type
	if t.Tail != nil {
		tail = t.Tail.Apply(subs).(Type)
	}
	return &RecordType{Fields: out, Tail: tail}
}

func (t *RecordType) FreeTypeVar() TypeVarSet {
	ftv := NewTypeVarSet()
	for _, f := range t.Fields {
		ftv = ftv.Union(f.Type.FreeTypeVar())
	}
	if t.Tail != nil {
		ftv = ftv.Union(t.Tail.FreeTypeVar())
	}
	return ftv
}

func (t *RecordType) Normalize(k, v TypeVarSet) (Type, error) {
	out := make([]RecordField, len(t.Fields))
	for i, f := range t.Fields {
		n, err := f.Type.Normalize(k, v)
		if err != nil {
			return nil, err
		}
		out[i] = RecordField{f.Name, n}
	}
	var tail Type
	if t.Tail != nil {
		n, err := t.Tail.Normalize(k, v)
		if err != nil {
			return nil, err
		}
		tail = n
	}
	return &RecordType{Fields: out, Tail: tail}, nil
}

func (t *RecordType) Types() Types {
	out := make(Types, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = f.Type
	}
	return out
}

// Eq treats two records as equal when they carry the same field set with
// the same types and the same tail shape (spec §4.E: "row equality is set
// equality modulo the row variable tail" — here we additionally require
// the tails themselves to match, since Eq is used for exact-scheme
// comparison, not unifiability).
func (t *RecordType) Eq(other Type) bool {
	ot, ok := other.(*RecordType)
	if !ok || len(t.Fields) != len(ot.Fields) {
		return false
	}
	for _, f := range t.Fields {
		oft, found := ot.FieldType(f.Name)
		if !found || !f.Type.Eq(oft) {
			return false
		}
	}
	if (t.Tail == nil) != (ot.Tail == nil) {
		return false
	}
	if t.Tail != nil && !t.Tail.Eq(ot.Tail) {
		return false
	}
	return true
}

func (t *RecordType) String() string {
	strs := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		strs[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
	}
	body := joinStrings(strs, ", ")
	if t.Tail != nil {
		if body != "" {
			body += ", "
		}
		body += "..." + t.Tail.String()
	}
	return "{" + body + "}"
}
