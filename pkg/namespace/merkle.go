package namespace

import (
	"crypto/sha256"

	"github.com/xlg-lang/xlg/pkg/hash"
)

// MerkleHash summarizes ns's entire subtree: every definition's head
// hash combined, recursively, with every sub-namespace's own
// MerkleHash (SPEC_FULL.md §3 "Merkle hashing over the whole
// namespace"). Two Namespaces (or two points in one Namespace's
// history) can be compared for equality in O(1) by comparing this
// single hash instead of walking either tree.
func (ns *Namespace) MerkleHash() hash.Hash {
	h := sha256.New()
	for _, def := range ns.Definitions() { // sorted by path already
		head := def.Head()
		if head == nil {
			continue
		}
		h.Write([]byte(def.Path))
		h.Write(head.Hash[:])
	}
	for _, child := range ns.Children() { // sorted by name already
		childHash := child.MerkleHash()
		h.Write([]byte(child.Name))
		h.Write(childHash[:])
	}
	var out hash.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// MerkleHash is the whole-store summary rooted at s's tree.
func (s *Store) MerkleHash() hash.Hash {
	return s.root.MerkleHash()
}
