package namespace

import (
	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
)

type resolvedEdit struct {
	index int
	hash  hash.Hash
	deps  []hash.Hash
}

// topoGroups orders a batch's edits by their internal (same-batch)
// reference graph using Kahn's algorithm, exactly as the teacher's
// topologicalSort does (pkg/dang/block.go) — except a stalled residual
// (a cycle) becomes one trailing group instead of an error, since mutual
// recursion between definitions is expected here, not malformed input
// (spec §9).
func topoGroups(edits []PendingEdit, declaredName map[string]int) [][]int {
	n := len(edits)
	if n <= 1 {
		groups := make([][]int, n)
		for i := range groups {
			groups[i] = []int{i}
		}
		return groups
	}

	deps := make([][]int, n)
	for i, e := range edits {
		seen := make(map[int]bool)
		for _, name := range bareReferencedNames(e.Root) {
			j, ok := declaredName[name]
			if ok && j != i && !seen[j] {
				deps[i] = append(deps[i], j)
				seen[j] = true
			}
		}
	}

	inDegree := make([]int, n)
	for i := range deps {
		inDegree[i] = len(deps[i])
	}
	dependents := make([][]int, n)
	for i, ds := range deps {
		for _, d := range ds {
			dependents[d] = append(dependents[d], i)
		}
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	var groups [][]int
	done := make([]bool, n)
	processed := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		groups = append(groups, []int{cur})
		done[cur] = true
		processed++
		for _, dep := range dependents[cur] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if processed != n {
		var residual []int
		for i := 0; i < n; i++ {
			if !done[i] {
				residual = append(residual, i)
			}
		}
		groups = append(groups, residual)
	}

	return groups
}

// bareReferencedNames collects every unqualified RefSymbolic.Name
// reachable from root: the same check SymbolIndex.referencingNames does
// per-node (pkg/index/symbol_index.go), generalized across a whole
// subtree since the Namespace Store has no index of its own to consult
// before a definition is committed.
func bareReferencedNames(root *ast.Node) []string {
	var names []string
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n == nil {
			return
		}
		if ref, ok := n.Data().(ast.RefSymbolic); ok && ref.Path == nil {
			names = append(names, ref.Name)
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)
	return names
}

// resolveGroup computes the content hash and Deps set for every edit in
// group. known carries the hashes of edits from earlier groups in the
// same batch (already committed by the time a later group runs).
// Because RefSymbolic's content-hash fields are the referenced name/path
// text, never the referenced definition's own hash (pkg/ast/reference.go),
// a definition's hash never depends on a peer's hash — only its Deps
// bookkeeping does. That means the "recompute to convergence" fixed
// point spec §9 describes collapses to exactly one pass under this
// representation: every member of group has its hash computed below
// before any of their Deps slices are built, whether group is a
// singleton or a mutually-recursive cycle.
func (s *Store) resolveGroup(group []int, declaredName map[string]int, edits []PendingEdit, known map[int]hash.Hash) ([]resolvedEdit, error) {
	hashes := make(map[int]hash.Hash, len(group))
	for _, i := range group {
		h, err := hash.DefinitionHash(edits[i].Root)
		if err != nil {
			return nil, err
		}
		hashes[i] = h
	}

	out := make([]resolvedEdit, 0, len(group))
	for _, i := range group {
		var deps []hash.Hash
		seen := make(map[hash.Hash]bool)
		for _, name := range bareReferencedNames(edits[i].Root) {
			h, ok := resolveDepHash(s, name, i, declaredName, hashes, known)
			if !ok {
				continue // unresolved external name: not every reference is to a committed definition (e.g. a builtin)
			}
			if !seen[h] {
				seen[h] = true
				deps = append(deps, h)
			}
		}
		out = append(out, resolvedEdit{index: i, hash: hashes[i], deps: deps})
	}
	return out, nil
}

func resolveDepHash(s *Store, name string, self int, declaredName map[string]int, hashes, known map[int]hash.Hash) (hash.Hash, bool) {
	if j, ok := declaredName[name]; ok && j != self {
		if h, ok := hashes[j]; ok {
			return h, true
		}
		if h, ok := known[j]; ok {
			return h, true
		}
	}
	def, err := s.Resolve(name)
	if err != nil {
		return hash.Hash{}, false
	}
	return def.Head().Hash, true
}
