package similarity

import (
	"math"

	"github.com/agnivade/levenshtein"
)

// combinedScore blends a text-similarity term over each fingerprint's
// normalized rendering with a feature-vector term, weighted 0.6/0.4 the
// way content_addressing.rs's calculate_similarity combines tree
// similarity and feature similarity. Levenshtein distance over the
// canonical render stands in for the original's APTED tree-edit
// distance: no tree-edit-distance library appears anywhere in the
// example pack, and agnivade/levenshtein is already an indirect
// dependency of the teacher's own go.mod.
func combinedScore(a, b Fingerprint) float64 {
	return 0.6*textSimilarity(a.NormalizedForm, b.NormalizedForm) + 0.4*featureSimilarity(a.Features, b.Features)
}

func textSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	m := max(len(a), len(b))
	if m == 0 {
		return 1
	}
	return 1 - float64(dist)/float64(m)
}

func featureSimilarity(a, b FeatureVector) float64 {
	total := closeness(float64(a.ParamCount), float64(b.ParamCount))
	total += closeness(float64(a.ExprDepth), float64(b.ExprDepth))
	total += jaccard(a.Operations, b.Operations)
	total += jaccard(a.Effects, b.Effects)
	if a.IsRecursive == b.IsRecursive {
		total++
	}
	return total / 5
}

func closeness(a, b float64) float64 {
	m := math.Max(a, b)
	if m == 0 {
		return 1
	}
	return math.Max(0, 1-math.Abs(a-b)/m)
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	union := map[string]bool{}
	for k := range a {
		union[k] = true
	}
	for k := range b {
		union[k] = true
	}
	inter := 0
	for k := range a {
		if b[k] {
			inter++
		}
	}
	return float64(inter) / float64(len(union))
}
