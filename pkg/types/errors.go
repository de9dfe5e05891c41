package types

import (
	"fmt"

	"github.com/xlg-lang/xlg/pkg/hm"
	"github.com/xlg-lang/xlg/pkg/symbol"
)

// Failure is the closed taxonomy of checker errors (spec §4.E, "Failure
// taxonomy (E only)"). Every variant carries the span of its site so the
// CLI/diagnostics layer can render it without re-walking the tree.
type Failure interface {
	error
	Site() symbol.Span
}

type UnhandledEffect struct {
	Required  string
	Available *hm.EffectRow
	At        symbol.Span
}

func (f UnhandledEffect) Error() string {
	return fmt.Sprintf("effect %q is performed but not handled (available: %s)", f.Required, f.Available)
}
func (f UnhandledEffect) Site() symbol.Span { return f.At }

type TypeMismatch struct {
	Expected hm.Type
	Found    hm.Type
	At       symbol.Span
}

func (f TypeMismatch) Error() string {
	return fmt.Sprintf("expected type %s, found %s", f.Expected, f.Found)
}
func (f TypeMismatch) Site() symbol.Span { return f.At }

type UnresolvedName struct {
	Symbol string
	ScopeID int
	At      symbol.Span
}

func (f UnresolvedName) Error() string {
	return fmt.Sprintf("unresolved name %q in scope %d", f.Symbol, f.ScopeID)
}
func (f UnresolvedName) Site() symbol.Span { return f.At }

type OccursCheck struct {
	Var  hm.TypeVariable
	Type hm.Type
	At   symbol.Span
}

func (f OccursCheck) Error() string {
	return fmt.Sprintf("occurs check failed: %s occurs in %s", string(f.Var), f.Type)
}
func (f OccursCheck) Site() symbol.Span { return f.At }

type PatternNonExhaustive struct {
	ScrutineeType hm.Type
	Missing       []string
	At            symbol.Span
}

func (f PatternNonExhaustive) Error() string {
	return fmt.Sprintf("non-exhaustive match on %s, missing: %v", f.ScrutineeType, f.Missing)
}
func (f PatternNonExhaustive) Site() symbol.Span { return f.At }

type PatternUnreachable struct {
	At symbol.Span
}

func (f PatternUnreachable) Error() string      { return "unreachable match arm" }
func (f PatternUnreachable) Site() symbol.Span  { return f.At }

type EffectConstraintUnsatisfied struct {
	RequiredRow *hm.EffectRow
	ContextRow  *hm.EffectRow
	At          symbol.Span
}

func (f EffectConstraintUnsatisfied) Error() string {
	return fmt.Sprintf("effect constraint %s not satisfied by context %s", f.RequiredRow, f.ContextRow)
}
func (f EffectConstraintUnsatisfied) Site() symbol.Span { return f.At }

// EffectEscape reports a handler-capturing closure: a Perform reachable
// from inside a Lambda/HandlerDef body whose handler scope is no longer
// on the active With stack by the time the closure could run (the
// rejected Open Question behavior recorded in SPEC_FULL.md §4).
type EffectEscape struct {
	Effect string
	At     symbol.Span
}

func (f EffectEscape) Error() string {
	return fmt.Sprintf("handler for effect %q does not outlive the closure that performs it", f.Effect)
}
func (f EffectEscape) Site() symbol.Span { return f.At }

// Collector accumulates Failures without short-circuiting inference
// (spec §4.E: "Errors are collected (checker does not short-circuit)").
type Collector struct {
	failures []Failure
}

func (c *Collector) Add(f Failure) {
	c.failures = append(c.failures, f)
}

func (c *Collector) Failures() []Failure {
	return c.failures
}

func (c *Collector) OK() bool {
	return len(c.failures) == 0
}
