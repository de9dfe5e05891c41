package index

import "github.com/xlg-lang/xlg/pkg/ast"

// Predicate is a composable node test for Filter (spec §4.D: "has type
// info, is pure, has effect X, matches pattern P").
type Predicate func(*ast.Node) bool

// And returns the intersection of sets, by NodeID.
func And(sets ...[]*ast.Node) []*ast.Node {
	if len(sets) == 0 {
		return nil
	}
	counts := make(map[ast.NodeID]int)
	byID := make(map[ast.NodeID]*ast.Node)
	for _, set := range sets {
		seen := make(map[ast.NodeID]bool, len(set))
		for _, n := range set {
			if seen[n.ID()] {
				continue
			}
			seen[n.ID()] = true
			counts[n.ID()]++
			byID[n.ID()] = n
		}
	}
	var out []*ast.Node
	for id, count := range counts {
		if count == len(sets) {
			out = append(out, byID[id])
		}
	}
	return out
}

// Or returns the union of sets, deduplicated by NodeID.
func Or(sets ...[]*ast.Node) []*ast.Node {
	seen := make(map[ast.NodeID]bool)
	var out []*ast.Node
	for _, set := range sets {
		for _, n := range set {
			if !seen[n.ID()] {
				seen[n.ID()] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// Filter returns the subset of nodes satisfying pred.
func Filter(nodes []*ast.Node, pred Predicate) []*ast.Node {
	var out []*ast.Node
	for _, n := range nodes {
		if pred(n) {
			out = append(out, n)
		}
	}
	return out
}

// HasTypeInfo is a Predicate selecting nodes the Checker has annotated.
func HasTypeInfo(n *ast.Node) bool {
	return n.TypeInfo() != nil
}

// IsPure is a Predicate selecting nodes whose type info carries an empty
// effect row.
func IsPure(n *ast.Node) bool {
	ti := n.TypeInfo()
	return ti != nil && ti.Effects != nil && ti.Effects.IsEmpty()
}

// HasEffect returns a Predicate selecting nodes whose inferred effect row
// contains name.
func HasEffect(name string) Predicate {
	return func(n *ast.Node) bool {
		ti := n.TypeInfo()
		return ti != nil && ti.Effects != nil && ti.Effects.Contains(name)
	}
}

// MatchesPattern returns a Predicate selecting nodes structurally matched
// by pattern, an AST template that may contain ast.Hole nodes (spec §4.D:
// "Pattern P is an AST template with holes").
func MatchesPattern(pattern *ast.Node) Predicate {
	return func(n *ast.Node) bool {
		return matches(pattern, n)
	}
}

// matches reports whether candidate structurally matches pattern. A Hole
// matches anything (or, if Hole.Match is set, anything of that Kind)
// without descending further; any other kind must agree on Kind and
// recurse pairwise over children. Leaf field values (literal payloads,
// names) beyond Kind are not compared — MatchesPattern is a structural
// shape filter, not an equality check.
func matches(pattern, candidate *ast.Node) bool {
	if pattern == nil || candidate == nil {
		return pattern == candidate
	}
	if pattern.Kind() == ast.KindHole {
		hole := pattern.Data().(ast.Hole)
		return hole.Match == ast.KindInvalid || hole.Match == candidate.Kind()
	}
	if pattern.Kind() != candidate.Kind() {
		return false
	}
	pc, cc := pattern.Children(), candidate.Children()
	if len(pc) != len(cc) {
		return false
	}
	for i := range pc {
		if !matches(pc[i], cc[i]) {
			return false
		}
	}
	return true
}
