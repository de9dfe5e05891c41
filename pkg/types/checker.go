package types

import (
	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
	"github.com/xlg-lang/xlg/pkg/hm"
)

// memoEntry is one query-driven memoization record (spec §4.E: "Each
// query ... is memoized"). deps is the set of content hashes this
// result's correctness depends on (populated when inference resolves a
// RefHash), so a dependency's content change can invalidate it even
// without a structural edit to the node itself.
type memoEntry struct {
	typ     hm.Type
	effects *hm.EffectRow
	deps    map[hash.Hash]bool
}

// HashResolver looks up the type scheme of an already-committed
// definition by content hash, so a RefHash node (spec §3's "hash-anchored
// Reference") can be typed without re-inferring the referenced
// definition from scratch. The Namespace Store supplies this.
type HashResolver func(hash.Hash) (*hm.Scheme, bool)

// Checker is the query-driven, incremental Type & Effect Checker
// (spec §4.E). One Checker is long-lived across edits to a single AST
// version; ResolveHash lets it answer queries about definitions that
// live in the Namespace Store rather than the in-memory tree.
type Checker struct {
	fresher hm.Fresher
	counter scopeCounter
	memo    map[ast.NodeID]*memoEntry
	reg     *registry

	ResolveHash HashResolver
}

// NewChecker returns a Checker with an empty memoization cache and
// declaration registry.
func NewChecker(resolve HashResolver) *Checker {
	return &Checker{
		fresher:     hm.NewSimpleFresher(),
		memo:        make(map[ast.NodeID]*memoEntry),
		reg:         newRegistry(),
		ResolveHash: resolve,
	}
}

// NewRootScope returns a fresh top-level Scope for this Checker.
func (c *Checker) NewRootScope() *Scope {
	return newRootScope(&c.counter)
}

func (c *Checker) memoized(n *ast.Node) (*memoEntry, bool) {
	e, ok := c.memo[n.ID()]
	return e, ok
}

// TypeOf answers `type_of(node_id)` (spec §4.E), inferring and
// memoizing on first access.
func (c *Checker) TypeOf(scope *Scope, n *ast.Node, col *Collector) hm.Type {
	if e, ok := c.memoized(n); ok {
		return e.typ
	}
	t, eff, deps := c.infer(scope, n, col)
	c.memo[n.ID()] = &memoEntry{typ: t, effects: eff, deps: deps}
	return t
}

// EffectsOf answers `effects_of(node_id)` (spec §4.E).
func (c *Checker) EffectsOf(scope *Scope, n *ast.Node, col *Collector) *hm.EffectRow {
	if e, ok := c.memoized(n); ok {
		return e.effects
	}
	t, eff, deps := c.infer(scope, n, col)
	c.memo[n.ID()] = &memoEntry{typ: t, effects: eff, deps: deps}
	return eff
}

// ResolveSymbol answers `resolve_symbol(symbol, scope_id)` (spec §4.E).
func (c *Checker) ResolveSymbol(scope *Scope, name string) (*hm.Scheme, int, bool) {
	return scope.Lookup(name)
}

// Invalidate discards memoized results for every node on the spine from
// an edited subtree to the root (spec §4.E, incremental recheck step 1).
func (c *Checker) Invalidate(spine []*ast.Node) {
	for _, n := range spine {
		delete(c.memo, n.ID())
	}
}

// InvalidateDependents discards every memoized result whose dependency
// set contains changed (spec §4.E, incremental recheck step 2).
func (c *Checker) InvalidateDependents(changed hash.Hash) {
	for id, e := range c.memo {
		if e.deps[changed] {
			delete(c.memo, id)
		}
	}
}

// Check runs type/effect inference over root (typically a Module or
// CompilationUnit), returning every collected Failure (spec §4.E:
// "Errors are collected (checker does not short-circuit)").
func (c *Checker) Check(root *ast.Node) []Failure {
	col := &Collector{}
	c.hoistDeclarations(root)
	scope := c.NewRootScope()
	c.TypeOf(scope, root, col)
	return col.Failures()
}

// hoistDeclarations walks root registering every TypeDef/EffectDef it
// finds, so later value definitions (wherever they appear relative to
// the declaration) can reference constructors and effect operations.
func (c *Checker) hoistDeclarations(n *ast.Node) {
	if n == nil {
		return
	}
	switch d := n.Data().(type) {
	case ast.TypeDef:
		c.RegisterTypeDef(d)
	case ast.EffectDef:
		c.RegisterEffectDef(d)
	}
	for _, child := range n.Children() {
		c.hoistDeclarations(child)
	}
}
