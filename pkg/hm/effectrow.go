package hm

import "sort"

// EffectRow is ε ::= ∅ | {eff₁ … effₙ} | α | ε ∪ ε (spec §4.E). It
// implements Type so that a row variable can be bound to a row exactly
// like any other type variable is bound to a type during unification.
//
// Effects names are treated as a set: Names may be stored in any order,
// but String and Eq normalize to sorted order so two rows naming the same
// effects in different orders compare equal.
type EffectRow struct {
	names []string
	tail  Type // nil (closed, ∅ beyond names), TypeVariable, or *EffectRow
}

// EmptyRow is the closed, empty effect row ∅.
func EmptyRow() *EffectRow { return &EffectRow{} }

// ClosedRow builds a closed row naming exactly the given effects.
func ClosedRow(names ...string) *EffectRow {
	return &EffectRow{names: dedupSorted(names)}
}

// OpenRow builds a row naming the given effects with an open tail.
func OpenRow(tail TypeVariable, names ...string) *EffectRow {
	return &EffectRow{names: dedupSorted(names), tail: tail}
}

func dedupSorted(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Names returns the effect names mentioned directly by this row (not
// following the tail).
func (r *EffectRow) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Tail returns the row's open tail, or nil if the row is closed.
func (r *EffectRow) Tail() Type { return r.tail }

// IsEmpty reports whether this row names no effects and has no open tail.
func (r *EffectRow) IsEmpty() bool {
	return len(r.names) == 0 && r.tail == nil
}

// Contains reports whether name is named directly by this row.
func (r *EffectRow) Contains(name string) bool {
	for _, n := range r.names {
		if n == name {
			return true
		}
	}
	return false
}

// Union computes the row containing every effect of r and other. If
// either row is open, the result is open; a closed row merged with a
// closed row stays closed.
func (r *EffectRow) Union(other *EffectRow) *EffectRow {
	names := dedupSorted(append(append([]string{}, r.names...), other.names...))
	switch {
	case r.tail == nil && other.tail == nil:
		return &EffectRow{names: names}
	case r.tail != nil && other.tail == nil:
		return &EffectRow{names: names, tail: r.tail}
	case r.tail == nil && other.tail != nil:
		return &EffectRow{names: names, tail: other.tail}
	default:
		return &EffectRow{names: names, tail: r.tail}
	}
}

// Remove returns the row with the named effects deleted (spec §4.E:
// "each With handler removes the handled effects from the row of its
// body"). Removing from an open row only removes names mentioned
// directly; effects hidden behind the open tail are unaffected (they are
// not statically known yet).
func (r *EffectRow) Remove(names ...string) *EffectRow {
	remove := make(map[string]bool, len(names))
	for _, n := range names {
		remove[n] = true
	}
	var out []string
	for _, n := range r.names {
		if !remove[n] {
			out = append(out, n)
		}
	}
	return &EffectRow{names: out, tail: r.tail}
}

func (r *EffectRow) Name() string { return r.String() }

func (r *EffectRow) Apply(subs Subs) Substitutable {
	if r.tail == nil {
		return &EffectRow{names: r.Names()}
	}
	applied := r.tail.Apply(subs).(Type)
	if applied.Eq(r.tail) {
		return &EffectRow{names: r.Names(), tail: r.tail}
	}
	// The tail resolved to a concrete row (or another open variable):
	// fold its names/tail into ours.
	if resolved, ok := applied.(*EffectRow); ok {
		return r.withoutTail().Union(resolved)
	}
	return &EffectRow{names: r.Names(), tail: applied}
}

func (r *EffectRow) withoutTail() *EffectRow {
	return &EffectRow{names: r.Names()}
}

func (r *EffectRow) FreeTypeVar() TypeVarSet {
	if r.tail == nil {
		return NewTypeVarSet()
	}
	return r.tail.FreeTypeVar()
}

func (r *EffectRow) Normalize(k, v TypeVarSet) (Type, error) {
	if r.tail == nil {
		return &EffectRow{names: r.Names()}, nil
	}
	nt, err := r.tail.Normalize(k, v)
	if err != nil {
		return nil, err
	}
	return &EffectRow{names: r.Names(), tail: nt}, nil
}

func (r *EffectRow) Types() Types {
	if r.tail == nil {
		return nil
	}
	return Types{r.tail}
}

// Eq is set equality of Names modulo the tail's own identity (spec §4.E),
// i.e. two rows with the same named effects and "the same kind of tail"
// (both closed, or both the same variable) are equal.
func (r *EffectRow) Eq(other Type) bool {
	ot, ok := other.(*EffectRow)
	if !ok || len(r.names) != len(ot.names) {
		return false
	}
	for i := range r.names {
		if r.names[i] != ot.names[i] {
			return false
		}
	}
	if (r.tail == nil) != (ot.tail == nil) {
		return false
	}
	if r.tail != nil {
		return r.tail.Eq(ot.tail)
	}
	return true
}

func (r *EffectRow) String() string {
	body := "{" + joinStrings(r.names, ", ") + "}"
	if r.tail == nil {
		if len(r.names) == 0 {
			return "∅"
		}
		return body
	}
	if len(r.names) == 0 {
		return r.tail.String()
	}
	return body + "∪" + r.tail.String()
}
