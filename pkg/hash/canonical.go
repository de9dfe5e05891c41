package hash

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/xlg-lang/xlg/pkg/ast"
)

// encoder accumulates the canonical byte stream for one node's hash input
// (spec §4.C). It never allocates per field beyond append growth, mirroring
// how the teacher's schema cache built up digest input incrementally.
type encoder struct {
	buf []byte
}

func newEncoder() *encoder {
	return &encoder{buf: make([]byte, 0, 256)}
}

func (e *encoder) byte(b byte) {
	e.buf = append(e.buf, b)
}

func (e *encoder) bytes(b []byte) {
	e.buf = append(e.buf, b...)
}

// varint appends an unsigned LEB128 varint.
func (e *encoder) varint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	e.bytes(tmp[:n])
}

// zigzag appends a signed integer as a zig-zag encoded varint (spec §4.C).
func (e *encoder) zigzag(v int64) {
	e.varint(uint64((v << 1) ^ (v >> 63)))
}

func (e *encoder) float64(v float64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	e.bytes(tmp[:])
}

func (e *encoder) boolean(v bool) {
	if v {
		e.byte(1)
	} else {
		e.byte(0)
	}
}

// text appends a length-prefixed UTF-8 string. Symbols and Text fields
// share this framing; the distinction spec §4.C draws (symbol name vs.
// text) is purely about what the caller passes, not the wire shape.
func (e *encoder) text(s string) {
	e.varint(uint64(len(s)))
	e.bytes([]byte(s))
}

func (e *encoder) child(h Hash) {
	e.bytes(h[:])
}

// field writes one Field per the canonical encoding table in spec §4.C,
// recursing into h for FieldChild and FieldList members.
func (e *encoder) field(f ast.Field, h *Hasher) error {
	switch f.Kind {
	case ast.FieldSymbol:
		e.text(f.SymbolName)
	case ast.FieldInt:
		e.zigzag(f.Int)
	case ast.FieldFloat:
		e.float64(f.Float)
	case ast.FieldBool:
		e.boolean(f.Bool)
	case ast.FieldText:
		e.text(f.Text)
	case ast.FieldChild:
		ch, err := h.HashNode(f.Child)
		if err != nil {
			return err
		}
		e.child(ch)
	case ast.FieldList:
		e.varint(uint64(len(f.List)))
		for _, elem := range f.List {
			if err := e.field(elem, h); err != nil {
				return err
			}
		}
	case ast.FieldOptional:
		e.boolean(f.Present)
		if f.Present {
			if err := e.field(*f.Inner, h); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("hash: unknown field kind %d", f.Kind)
	}
	return nil
}
