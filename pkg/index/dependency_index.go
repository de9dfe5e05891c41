package index

import "github.com/xlg-lang/xlg/pkg/hash"

// DependencyIndex maps a definition's content hash to the set of content
// hashes it directly references (spec §4.D: "definition_hash → set of
// referenced definition_hashes", updated "on Definition commit"), and
// supports the reverse query the Editor surface needs: transitive
// dependents (reverse dependency closure).
type DependencyIndex struct {
	forward map[hash.Hash]map[hash.Hash]bool
	reverse map[hash.Hash]map[hash.Hash]bool
}

func newDependencyIndex() *DependencyIndex {
	return &DependencyIndex{
		forward: make(map[hash.Hash]map[hash.Hash]bool),
		reverse: make(map[hash.Hash]map[hash.Hash]bool),
	}
}

// Set records that def depends on exactly deps (replacing any previous
// record for def), called once per definition commit.
func (idx *DependencyIndex) Set(def hash.Hash, deps []hash.Hash) {
	if old, ok := idx.forward[def]; ok {
		for d := range old {
			if rev, ok := idx.reverse[d]; ok {
				delete(rev, def)
			}
		}
	}
	set := make(map[hash.Hash]bool, len(deps))
	for _, d := range deps {
		set[d] = true
		rev, ok := idx.reverse[d]
		if !ok {
			rev = make(map[hash.Hash]bool)
			idx.reverse[d] = rev
		}
		rev[def] = true
	}
	idx.forward[def] = set
}

// DirectDependencies returns the set def's definition directly references.
func (idx *DependencyIndex) DirectDependencies(def hash.Hash) []hash.Hash {
	set := idx.forward[def]
	out := make([]hash.Hash, 0, len(set))
	for h := range set {
		out = append(out, h)
	}
	return out
}

// TransitiveDependents returns every definition whose dependency set
// contains def, directly or transitively (reverse dependency closure,
// spec §4.D's Editor-surface query).
func (idx *DependencyIndex) TransitiveDependents(def hash.Hash) []hash.Hash {
	seen := make(map[hash.Hash]bool)
	queue := []hash.Hash{def}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		for dependent := range idx.reverse[h] {
			if !seen[dependent] {
				seen[dependent] = true
				queue = append(queue, dependent)
			}
		}
	}
	out := make([]hash.Hash, 0, len(seen))
	for h := range seen {
		out = append(out, h)
	}
	return out
}
