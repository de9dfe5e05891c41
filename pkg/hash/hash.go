package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/xlg-lang/xlg/pkg/ast"
)

// Hash is a 32-byte SHA-256 content hash (spec §4.C).
type Hash [32]byte

// String renders the full 64-hex-character form.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short renders the 8-hex-character display form (spec §4.C: "Short
// display hash: first 8 hex characters").
func (h Hash) Short() string {
	return h.String()[:8]
}

// IsZero reports whether h is the zero hash, used as the sentinel
// placeholder during cyclic fixed-point commits (spec §9).
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Hasher computes content hashes over ast.Node trees, memoizing by
// NodeID within a single AST version so a definition containing the same
// subtree twice (by sharing, not by coincidence) is hashed once (spec §4.B
// invariant: nodes are "deeply hashable... O(1) — references only").
type Hasher struct {
	cache map[ast.NodeID]Hash
}

// NewHasher returns a Hasher with an empty memoization cache.
func NewHasher() *Hasher {
	return &Hasher{cache: make(map[ast.NodeID]Hash)}
}

// HashNode computes the content hash of n and everything beneath it,
// per the canonical serialization in spec §4.C. A ast.KindHole node is
// rejected: holes are query-only placeholders, never real content.
func (h *Hasher) HashNode(n *ast.Node) (Hash, error) {
	if n == nil {
		return Hash{}, fmt.Errorf("hash: cannot hash a nil node")
	}
	if n.Kind() == ast.KindHole {
		return Hash{}, fmt.Errorf("hash: node %d is a Hole, not hashable", n.ID())
	}
	if cached, ok := h.cache[n.ID()]; ok {
		return cached, nil
	}

	enc := newEncoder()
	enc.byte(byte(n.Kind()))
	for _, f := range n.HashFields() {
		if err := enc.field(f, h); err != nil {
			return Hash{}, err
		}
	}
	for _, key := range n.Annotations().HashedKeys() {
		v, _ := n.Annotations().Get(key)
		enc.text(key)
		enc.text(fmt.Sprint(v))
	}

	sum := sha256.Sum256(enc.buf)
	out := Hash(sum)
	h.cache[n.ID()] = out
	return out, nil
}

// DefinitionHash is the content hash of a top-level definition: the
// content hash of its root node (spec §4.C: "the content hash of its
// root node").
func DefinitionHash(root *ast.Node) (Hash, error) {
	if !root.Kind().IsDefinition() {
		return Hash{}, fmt.Errorf("hash: node of kind %s is not a Definition", root.Kind())
	}
	return NewHasher().HashNode(root)
}

// ParseHash parses a 64-character hex string into a Hash.
func ParseHash(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("hash: invalid hex: %w", err)
	}
	if len(b) != 32 {
		return Hash{}, fmt.Errorf("hash: want 32 bytes, got %d", len(b))
	}
	var out Hash
	copy(out[:], b)
	return out, nil
}
