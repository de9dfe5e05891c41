// Package similarity finds functions that are structurally identical or
// semantically close to a given one, content-hash-keyed the way the rest
// of the store is (original_source/x-editor/src/content_addressing.rs's
// ContentRepository, ported to this codebase's ValueDef definitions —
// the original's tree-edit-distance term is replaced here by a
// normalized-render Levenshtein score, disclosed in DESIGN.md).
package similarity

import (
	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/bridge"
	"github.com/xlg-lang/xlg/pkg/hash"
)

// FeatureVector summarizes a definition's shape independent of its exact
// text, mirroring content_addressing.rs's FeatureVector (param count,
// expression depth, operation kinds, effects performed, recursion).
type FeatureVector struct {
	ParamCount  int
	ExprDepth   int
	Operations  map[string]bool
	Effects     map[string]bool
	IsRecursive bool
}

// Fingerprint is everything FindSimilar needs about one ValueDef: an
// exact structural hash for identical-modulo-name matches, a feature
// vector for the fuzzy score, and a normalized rendering to diff against
// other fingerprints' renderings.
type Fingerprint struct {
	StructureHash  hash.Hash
	Features       FeatureVector
	NormalizedForm string
}

// Compute builds def's Fingerprint. StructureHash covers only def.Body,
// not def.Name or def.Signature: content_addressing.rs hashes a
// name-erased AST so alpha-renamed duplicates still match exactly; this
// hashes the body subtree directly instead of erasing names throughout,
// a deliberate simplification (see DESIGN.md) that still catches the
// common case of two functions with identical bodies and different
// names, at the cost of missing bodies that merely reference the
// function's own parameters under different names.
func Compute(def ast.ValueDef) (Fingerprint, error) {
	h, err := hash.NewHasher().HashNode(def.Body)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{
		StructureHash:  h,
		Features:       computeFeatures(def),
		NormalizedForm: bridge.Render(def.Body),
	}, nil
}

func computeFeatures(def ast.ValueDef) FeatureVector {
	fv := FeatureVector{
		Operations: map[string]bool{},
		Effects:    map[string]bool{},
	}
	if l, ok := def.Body.Data().(ast.Lambda); ok {
		fv.ParamCount = len(l.Params)
	}
	fv.ExprDepth = depthOf(def.Body)
	for n := range ast.TraversePreorder(def.Body) {
		fv.Operations[n.Kind().String()] = true
		switch d := n.Data().(type) {
		case ast.Perform:
			fv.Effects[d.EffectName] = true
		case ast.RefSymbolic:
			if d.Name == def.Name {
				fv.IsRecursive = true
			}
		}
	}
	return fv
}

func depthOf(n *ast.Node) int {
	if n == nil {
		return 0
	}
	max := 0
	for _, c := range n.Children() {
		if d := depthOf(c); d > max {
			max = d
		}
	}
	return max + 1
}
