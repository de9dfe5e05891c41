package hm

import "fmt"

// UnificationError represents errors during unification.
type UnificationError struct {
	msg string
}

func (e UnificationError) Error() string { return e.msg }

func errf(format string, args ...any) error {
	return UnificationError{fmt.Sprintf(format, args...)}
}

// Unify attempts to unify two types, returning the substitution that makes
// them equal or an error (spec §4.E, Algorithm W's unification step).
func Unify(t1, t2 Type) (Subs, error) {
	return unify(t1, t2)
}

func unify(t1, t2 Type) (Subs, error) {
	if tv1, ok := t1.(TypeVariable); ok {
		return bindVar(tv1, t2)
	}
	if tv2, ok := t2.(TypeVariable); ok {
		return bindVar(tv2, t1)
	}

	switch a := t1.(type) {
	case TypeConst:
		b, ok := t2.(TypeConst)
		if !ok || a != b {
			return nil, errf("cannot unify %s with %s", t1, t2)
		}
		return NewSubs(), nil

	case *FunctionType:
		b, ok := t2.(*FunctionType)
		if !ok {
			return nil, errf("cannot unify function type %s with %s", t1, t2)
		}
		s1, err := unify(a.arg, b.arg)
		if err != nil {
			return nil, err
		}
		s2, err := unify(s1.Apply(a.ret), s1.Apply(b.ret))
		if err != nil {
			return nil, err
		}
		s12 := s1.Compose(s2)
		s3, err := unifyRows(asEffectRow(s12.Apply(a.effects)), asEffectRow(s12.Apply(b.effects)))
		if err != nil {
			return nil, err
		}
		return s12.Compose(s3), nil

	case ListType:
		b, ok := t2.(ListType)
		if !ok {
			return nil, errf("cannot unify %s with %s", t1, t2)
		}
		return unify(a.Elem, b.Elem)

	case TupleType:
		b, ok := t2.(TupleType)
		if !ok || len(a.Elems) != len(b.Elems) {
			return nil, errf("cannot unify %s with %s", t1, t2)
		}
		return unifySeq(a.Elems, b.Elems)

	case MaybeType:
		b, ok := t2.(MaybeType)
		if !ok {
			return nil, errf("cannot unify %s with %s", t1, t2)
		}
		return unify(a.Elem, b.Elem)

	case EitherType:
		b, ok := t2.(EitherType)
		if !ok {
			return nil, errf("cannot unify %s with %s", t1, t2)
		}
		return unifySeq([]Type{a.Left, a.Right}, []Type{b.Left, b.Right})

	case ResultType:
		b, ok := t2.(ResultType)
		if !ok {
			return nil, errf("cannot unify %s with %s", t1, t2)
		}
		return unifySeq([]Type{a.Ok, a.Err}, []Type{b.Ok, b.Err})

	case VariantType:
		b, ok := t2.(VariantType)
		if !ok || a.Name_ != b.Name_ || len(a.Args) != len(b.Args) {
			return nil, errf("cannot unify %s with %s", t1, t2)
		}
		return unifySeq(a.Args, b.Args)

	case *RecordType:
		b, ok := t2.(*RecordType)
		if !ok {
			return nil, errf("cannot unify record %s with %s", t1, t2)
		}
		return unifyRecords(a, b)

	case *EffectRow:
		b, ok := t2.(*EffectRow)
		if !ok {
			return nil, errf("cannot unify effect row %s with %s", t1, t2)
		}
		return unifyRows(a, b)
	}

	return nil, errf("cannot unify %s with %s", t1, t2)
}

func unifySeq(as, bs []Type) (Subs, error) {
	subs := NewSubs()
	for i := range as {
		s, err := unify(subs.Apply(as[i]), subs.Apply(bs[i]))
		if err != nil {
			return nil, err
		}
		subs = subs.Compose(s)
	}
	return subs, nil
}

// bindVar binds a type variable to a type, subject to the occurs check.
func bindVar(tv TypeVariable, t Type) (Subs, error) {
	if tv2, ok := t.(TypeVariable); ok && tv == tv2 {
		return NewSubs(), nil
	}
	if occursCheck(tv, t) {
		return nil, errf("occurs check failed: %s occurs in %s", tv, t)
	}
	subs := NewSubs()
	subs.Add(tv, t)
	return subs, nil
}

func occursCheck(tv TypeVariable, t Type) bool {
	return t.FreeTypeVar().Contains(tv)
}

// unifyRecords implements row unification for records (spec §4.E: "Row
// unification (treat rows as finite multisets plus a tail variable; unify
// by extracting common prefix, opening the shorter with a fresh tail)").
// Fields present in both records must unify; fields present in only one
// side require the other side's tail be open (and get bound to absorb them);
// two closed records must share exactly the same field set.
func unifyRecords(a, b *RecordType) (Subs, error) {
	subs := NewSubs()
	var onlyA, onlyB []RecordField
	matchedB := make(map[string]bool)

	for _, fa := range a.Fields {
		fb, found := b.FieldType(fa.Name)
		if !found {
			onlyA = append(onlyA, fa)
			continue
		}
		matchedB[fa.Name] = true
		s, err := unify(subs.Apply(fa.Type), subs.Apply(fb))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fa.Name, err)
		}
		subs = subs.Compose(s)
	}
	for _, fb := range b.Fields {
		if !matchedB[fb.Name] {
			onlyB = append(onlyB, fb)
		}
	}

	if len(onlyA) > 0 {
		tailB, ok := b.Tail.(TypeVariable)
		if !ok {
			return nil, errf("record %s is missing fields present in %s", b, a)
		}
		s, err := bindVar(tailB, &RecordType{Fields: onlyA, Tail: nil})
		if err != nil {
			return nil, err
		}
		subs = subs.Compose(s)
	}
	if len(onlyB) > 0 {
		tailA, ok := a.Tail.(TypeVariable)
		if !ok {
			return nil, errf("record %s is missing fields present in %s", a, b)
		}
		s, err := bindVar(tailA, &RecordType{Fields: onlyB, Tail: nil})
		if err != nil {
			return nil, err
		}
		subs = subs.Compose(s)
	}
	if len(onlyA) == 0 && len(onlyB) == 0 && a.Tail != nil && b.Tail != nil {
		s, err := unify(a.Tail, b.Tail)
		if err != nil {
			return nil, err
		}
		subs = subs.Compose(s)
	}
	return subs, nil
}

// unifyRows implements the effect-row counterpart of unifyRecords: named
// effects form the multiset, the tail is the polymorphic remainder.
func unifyRows(a, b *EffectRow) (Subs, error) {
	var onlyA, onlyB []string
	bNames := make(map[string]bool, len(b.names))
	for _, n := range b.names {
		bNames[n] = true
	}
	aNames := make(map[string]bool, len(a.names))
	for _, n := range a.names {
		aNames[n] = true
	}
	for _, n := range a.names {
		if !bNames[n] {
			onlyA = append(onlyA, n)
		}
	}
	for _, n := range b.names {
		if !aNames[n] {
			onlyB = append(onlyB, n)
		}
	}

	subs := NewSubs()
	if len(onlyA) > 0 {
		tailB, ok := b.tail.(TypeVariable)
		if !ok {
			return nil, errf("effect row %s is missing effects present in %s", b, a)
		}
		s, err := bindVar(tailB, &EffectRow{names: dedupSorted(onlyA)})
		if err != nil {
			return nil, err
		}
		subs = subs.Compose(s)
	}
	if len(onlyB) > 0 {
		tailA, ok := a.tail.(TypeVariable)
		if !ok {
			return nil, errf("effect row %s is missing effects present in %s", a, b)
		}
		s, err := bindVar(tailA, &EffectRow{names: dedupSorted(onlyB)})
		if err != nil {
			return nil, err
		}
		subs = subs.Compose(s)
	}
	if len(onlyA) == 0 && len(onlyB) == 0 && a.tail != nil && b.tail != nil {
		s, err := unify(a.tail, b.tail)
		if err != nil {
			return nil, err
		}
		subs = subs.Compose(s)
	}
	return subs, nil
}
