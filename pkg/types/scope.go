package types

import "github.com/xlg-lang/xlg/pkg/hm"

// scopeCounter allocates scope ids; scopes are per-Checker-run, not
// persisted, since `resolve_symbol(symbol, scope_id)` (spec §4.E) is a
// query over the current tree, not a stored value.
type scopeCounter struct{ next int }

func (c *scopeCounter) alloc() int {
	c.next++
	return c.next
}

// Scope is one lexical binding frame in the chain Algorithm W threads
// through inference, extended with the set of effects any enclosing With
// currently discharges (for the EffectEscape check).
type Scope struct {
	id       int
	parent   *Scope
	bindings map[string]*hm.Scheme

	// handled is the set of effect names a With at or above this scope
	// discharges, not crossing a Lambda boundary: ChildClosure resets it
	// to empty, since handler scope does not extend lexically over a
	// closure (SPEC_FULL.md §4 decision 2).
	handled map[string]bool

	// enclosing is the handled set that was active immediately before
	// the nearest Lambda boundary wrapping this scope (empty at and
	// above the root, unchanged by ordinary Child nesting). A Perform
	// naming an effect absent from handled but present in enclosing is
	// exactly the escape case: the handler was active when the closure
	// was written down, not when it can run.
	enclosing map[string]bool
}

func newRootScope(counter *scopeCounter) *Scope {
	return &Scope{id: counter.alloc(), bindings: map[string]*hm.Scheme{}}
}

// Child returns a new Scope nested under s, inheriting both its handled
// and enclosing sets unchanged (ordinary lexical nesting: Let, Match
// arms, If branches, the body of a With itself).
func (s *Scope) Child(counter *scopeCounter) *Scope {
	handled := make(map[string]bool, len(s.handled))
	for e := range s.handled {
		handled[e] = true
	}
	return &Scope{id: counter.alloc(), parent: s, bindings: map[string]*hm.Scheme{}, handled: handled, enclosing: s.enclosing}
}

// ChildClosure returns a new Scope for a Lambda's body: it does not
// inherit s's handled set (a closure's handlers are whatever is active
// when it runs, not when it was written down), but records s.handled as
// enclosing, so Perform can tell an escape apart from a plain
// UnhandledEffect.
func (s *Scope) ChildClosure(counter *scopeCounter) *Scope {
	enclosing := make(map[string]bool, len(s.handled))
	for e := range s.handled {
		enclosing[e] = true
	}
	return &Scope{id: counter.alloc(), parent: s, bindings: map[string]*hm.Scheme{}, enclosing: enclosing}
}

// WithHandled returns a child Scope additionally discharging effect.
func (s *Scope) WithHandled(counter *scopeCounter, effect string) *Scope {
	child := s.Child(counter)
	child.handled[effect] = true
	return child
}

// Bind returns s with name bound to scheme (mutates and returns s, in the
// teacher's Env.Add style).
func (s *Scope) Bind(name string, scheme *hm.Scheme) *Scope {
	s.bindings[name] = scheme
	return s
}

// Lookup resolves name by walking the scope chain outward, reporting the
// scope id it was found in.
func (s *Scope) Lookup(name string) (*hm.Scheme, int, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if scheme, ok := cur.bindings[name]; ok {
			return scheme, cur.id, true
		}
	}
	return nil, s.id, false
}

// ID returns this scope's id.
func (s *Scope) ID() int { return s.id }

// Handles reports whether effect is discharged by some enclosing With at
// or above this scope, without crossing a Lambda boundary.
func (s *Scope) Handles(effect string) bool {
	return s.handled[effect]
}

// Escaped reports whether effect was handled at the point the nearest
// enclosing closure was created but is not handled now — the condition
// SPEC_FULL.md §4 decision 2 rejects as EffectEscape rather than a plain
// UnhandledEffect.
func (s *Scope) Escaped(effect string) bool {
	return !s.handled[effect] && s.enclosing[effect]
}
