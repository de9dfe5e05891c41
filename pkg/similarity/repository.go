package similarity

import (
	"sort"
	"sync"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
)

type entry struct {
	Path        string
	Hash        hash.Hash
	Fingerprint Fingerprint
}

// Repository indexes committed definitions by content hash and semantic
// fingerprint, answering similarity queries over them the way
// content_addressing.rs's ContentRepository does over the original's
// namespace. Safe for concurrent use, in the teacher's sync.RWMutex
// style for read-heavy shared state.
type Repository struct {
	mu              sync.RWMutex
	entries         map[hash.Hash]entry
	byStructureHash map[hash.Hash][]hash.Hash
}

// NewRepository returns an empty Repository.
func NewRepository() *Repository {
	return &Repository{
		entries:         map[hash.Hash]entry{},
		byStructureHash: map[hash.Hash][]hash.Hash{},
	}
}

// Index adds path's definition, identified by its content hash h, to the
// repository.
func (r *Repository) Index(path string, h hash.Hash, def ast.ValueDef) error {
	fp, err := Compute(def)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[h] = entry{Path: path, Hash: h, Fingerprint: fp}
	r.byStructureHash[fp.StructureHash] = append(r.byStructureHash[fp.StructureHash], h)
	return nil
}

// Match is one result of FindSimilar: a path, its content hash, a
// combined similarity score in [0,1], and whether the match is an exact
// structural duplicate (differing at most by name).
type Match struct {
	Path  string
	Hash  hash.Hash
	Score float64
	Exact bool
}

// FindSimilar reports every indexed definition scoring at least
// threshold against target, sorted by descending score and then by path
// (find_similar_functions / find_similar_functions_detailed in
// content_addressing.rs). Exact structural duplicates (same
// StructureHash) always score 1 and are marked Exact, bypassing the
// text/feature blend entirely.
func (r *Repository) FindSimilar(target ast.ValueDef, threshold float64) ([]Match, error) {
	targetFP, err := Compute(target)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[hash.Hash]bool{}
	var out []Match
	for _, h := range r.byStructureHash[targetFP.StructureHash] {
		e := r.entries[h]
		out = append(out, Match{Path: e.Path, Hash: e.Hash, Score: 1, Exact: true})
		seen[h] = true
	}

	for h, e := range r.entries {
		if seen[h] {
			continue
		}
		score := combinedScore(targetFP, e.Fingerprint)
		if score >= threshold {
			out = append(out, Match{Path: e.Path, Hash: h, Score: score})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}
