package namespace

import "github.com/xlg-lang/xlg/pkg/hm"

// Compatibility is the result of comparing two Versions' type schemes
// (spec §4.G "Compatibility check").
type Compatibility int

const (
	Unknown Compatibility = iota
	Identical
	MinorCompatible
	Major
)

func (c Compatibility) String() string {
	switch c {
	case Identical:
		return "identical"
	case MinorCompatible:
		return "minor"
	case Major:
		return "major"
	default:
		return "unknown"
	}
}

// Compare implements spec §4.G's compatibility check between two
// Versions of the same Definition. It is structural, not syntactic — it
// only ever looks at the attached TypeInfo, never at Root's spans,
// annotations, or doc comments, so those never affect the verdict.
//
// This is a deliberately narrower proxy for the spec's fuller "callers
// of v1 still type-check" semantics (an Open Question decision, see
// DESIGN.md): identical schemes are Identical; otherwise a successful
// hm.Unify between the two monotypes stands in for "v2 is a refinement
// callers of v1 still accept" (MinorCompatible); anything Unify can't
// reconcile is Major.
func Compare(v1, v2 *Version) Compatibility {
	t1 := schemeType(v1)
	t2 := schemeType(v2)
	if t1 == nil || t2 == nil {
		return Unknown
	}
	if t1.Eq(t2) {
		return Identical
	}
	if _, err := hm.Unify(t1, t2); err == nil {
		return MinorCompatible
	}
	return Major
}

func schemeType(v *Version) hm.Type {
	if v == nil || v.Root == nil {
		return nil
	}
	ti := v.Root.TypeInfo()
	if ti == nil {
		return nil
	}
	return ti.Mono
}
