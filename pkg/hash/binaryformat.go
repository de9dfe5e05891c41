package hash

import (
	"crypto/sha256"
	"fmt"

	"github.com/pkg/errors"

	"github.com/xlg-lang/xlg/pkg/ast"
)

// magic identifies the binary AST file format (spec §6: "file magic
// `\0xlg`").
var magic = [4]byte{0x00, 'x', 'l', 'g'}

// formatVersion is the single version byte following magic. Bump it and
// add a migration path, never reinterpret an existing version's layout.
const formatVersion byte = 1

// Encode serializes root (expected to be a CompilationUnit) into the
// binary AST file format: magic + version byte + canonical bytes +
// SHA-256 integrity footer (spec §6's binary AST file format table).
func Encode(root *ast.Node) ([]byte, error) {
	if root.Kind() != ast.KindCompilationUnit {
		return nil, errors.Errorf("hash: Encode expects a CompilationUnit root, got %s", root.Kind())
	}

	h := NewHasher()
	body := newEncoder()
	body.byte(byte(root.Kind()))
	for _, f := range root.HashFields() {
		if err := body.field(f, h); err != nil {
			return nil, errors.Wrap(err, "hash: canonicalizing CompilationUnit")
		}
	}

	out := make([]byte, 0, len(magic)+1+len(body.buf)+sha256.Size)
	out = append(out, magic[:]...)
	out = append(out, formatVersion)
	out = append(out, body.buf...)

	footer := sha256.Sum256(out)
	out = append(out, footer[:]...)
	return out, nil
}

// VerifyIntegrity checks that data's trailing SHA-256 footer matches the
// hash of everything preceding it, without attempting to decode the body.
// Decode calls it before decoding; nothing outside this package does, as the
// Bridge reads and writes `.x` text files, not this binary format (spec §7:
// StorageError category includes `HashMismatch`).
func VerifyIntegrity(data []byte) error {
	if len(data) < len(magic)+1+sha256.Size {
		return errors.New("hash: file too short to be a valid xlg binary AST file")
	}
	if [4]byte(data[:4]) != magic {
		return errors.New("hash: bad magic, not an xlg binary AST file")
	}
	body, footer := data[:len(data)-sha256.Size], data[len(data)-sha256.Size:]
	want := sha256.Sum256(body)
	if [32]byte(footer) != want {
		return fmt.Errorf("hash: integrity footer mismatch (HashMismatch)")
	}
	return nil
}

// Version reports the format version byte of a binary AST file, after
// verifying its integrity footer.
func Version(data []byte) (byte, error) {
	if err := VerifyIntegrity(data); err != nil {
		return 0, err
	}
	return data[4], nil
}
