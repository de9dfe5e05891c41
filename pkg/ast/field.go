package ast

// FieldKind tags the value carried by a Field, mirroring the serialization
// primitives enumerated in spec §4.C.
type FieldKind uint8

const (
	FieldSymbol FieldKind = iota
	FieldInt
	FieldFloat
	FieldBool
	FieldText
	FieldChild
	FieldList
	FieldOptional
)

// Field is one entry in a node's canonical field order (spec §4.C: "for
// each field, in a fixed field order per kind"). Exactly one of the value
// members is meaningful, selected by Kind.
type Field struct {
	Kind FieldKind

	SymbolName string  // FieldSymbol: canonical name, never the numeric id
	Int        int64   // FieldInt: zig-zag varint encoded by the hasher
	Float      float64 // FieldFloat: IEEE-754 little-endian
	Bool       bool    // FieldBool
	Text       string  // FieldText: length-prefixed UTF-8

	Child *Node // FieldChild: hashed recursively

	List []Field // FieldList: length-prefixed, elements in source order

	Present bool   // FieldOptional: presence byte
	Inner   *Field // FieldOptional: the wrapped field, only read if Present
}

// Sym builds a FieldSymbol field.
func Sym(name string) Field { return Field{Kind: FieldSymbol, SymbolName: name} }

// Int builds a FieldInt field.
func Int(v int64) Field { return Field{Kind: FieldInt, Int: v} }

// Float builds a FieldFloat field.
func Float(v float64) Field { return Field{Kind: FieldFloat, Float: v} }

// Bool builds a FieldBool field.
func Bool(v bool) Field { return Field{Kind: FieldBool, Bool: v} }

// Text builds a FieldText field.
func Text(v string) Field { return Field{Kind: FieldText, Text: v} }

// Child builds a FieldChild field. n may be nil only when wrapped in Opt.
func Child(n *Node) Field { return Field{Kind: FieldChild, Child: n} }

// List builds a FieldList field.
func List(fs ...Field) Field { return Field{Kind: FieldList, List: fs} }

// Opt builds a FieldOptional field. When present is false, f is ignored and
// the result carries no Inner field.
func Opt(present bool, f Field) Field {
	if !present {
		return Field{Kind: FieldOptional, Present: false}
	}
	return Field{Kind: FieldOptional, Present: true, Inner: &f}
}
