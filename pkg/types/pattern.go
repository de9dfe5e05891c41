package types

import (
	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hm"
	"github.com/xlg-lang/xlg/pkg/symbol"
)

// bindPattern binds every variable a pattern introduces into scope and, where
// the pattern's shape constrains it, unifies against scrutT. It never fails
// hard: a shape mismatch is reported to col and binding continues with fresh
// type variables, so the case body still gets checked.
func (c *Checker) bindPattern(scope *Scope, pattern *ast.Node, scrutT hm.Type, col *Collector) {
	switch p := pattern.Data().(type) {

	case ast.PatWildcard:
		return

	case ast.PatVariable:
		scope.Bind(p.Name, hm.NewScheme(nil, scrutT))

	case ast.PatLiteral:
		litT := c.TypeOf(scope, p.Literal, col)
		if _, err := hm.Unify(litT, scrutT); err != nil {
			col.Add(TypeMismatch{Expected: scrutT, Found: litT, At: pattern.Span()})
		}

	case ast.PatConstructor:
		sig, ok := c.reg.constructors[p.Name]
		if !ok {
			col.Add(UnresolvedName{Symbol: p.Name, ScopeID: scope.ID(), At: pattern.Span()})
			for _, arg := range p.Args {
				c.bindPattern(scope, arg, c.fresher.Fresh(), col)
			}
			return
		}
		want := hm.Type(hm.VariantType{Name_: sig.VariantName})
		if _, err := hm.Unify(want, scrutT); err != nil {
			col.Add(TypeMismatch{Expected: scrutT, Found: want, At: pattern.Span()})
		}
		for i, arg := range p.Args {
			var argT hm.Type = c.fresher.Fresh()
			if i < len(sig.ArgTypes) {
				argT = sig.ArgTypes[i]
			}
			c.bindPattern(scope, arg, argT, col)
		}

	case ast.PatTuple:
		elems := make([]hm.Type, len(p.Elements))
		for i := range elems {
			elems[i] = c.fresher.Fresh()
		}
		want := hm.TupleType{Elems: elems}
		if _, err := hm.Unify(want, scrutT); err != nil {
			col.Add(TypeMismatch{Expected: scrutT, Found: want, At: pattern.Span()})
		}
		for i, el := range p.Elements {
			c.bindPattern(scope, el, elems[i], col)
		}

	case ast.PatCons:
		elem := c.fresher.Fresh()
		want := hm.ListType{Elem: elem}
		if _, err := hm.Unify(want, scrutT); err != nil {
			col.Add(TypeMismatch{Expected: scrutT, Found: want, At: pattern.Span()})
		}
		c.bindPattern(scope, p.Head, elem, col)
		c.bindPattern(scope, p.Tail, hm.ListType{Elem: elem}, col)

	case ast.PatRecord:
		var tail hm.Type
		if p.Rest {
			tail = c.fresher.Fresh()
		}
		fields := make([]hm.RecordField, len(p.Fields))
		for i, f := range p.Fields {
			ft := c.fresher.Fresh()
			fields[i] = hm.RecordField{Name: f.Name, Type: ft}
		}
		var want *hm.RecordType
		if tail != nil {
			want = hm.OpenRecord(tail.(hm.TypeVariable), fields...)
		} else {
			want = hm.ClosedRecord(fields...)
		}
		if _, err := hm.Unify(want, scrutT); err != nil {
			col.Add(TypeMismatch{Expected: scrutT, Found: want, At: pattern.Span()})
		}
		for i, f := range p.Fields {
			c.bindPattern(scope, f.Pattern, fields[i].Type, col)
		}

	default:
		col.Add(TypeMismatch{Expected: scrutT, Found: scrutT, At: pattern.Span()})
	}
}

// checkExhaustiveness reports PatternNonExhaustive when the scrutinee is a
// registered sum type and no catch-all or guard-free case covers every
// variant constructor. It only looks at top-level PatConstructor/PatWildcard/
// PatVariable arms; nested or record/tuple scrutinees are not analyzed.
func (c *Checker) checkExhaustiveness(scrutT hm.Type, cases []ast.MatchCase, at symbol.Span, col *Collector) {
	variant, ok := scrutT.(hm.VariantType)
	if !ok {
		return
	}
	ctors, ok := c.reg.variantConstructors[variant.Name_]
	if !ok {
		return
	}
	covered := make(map[string]bool, len(ctors))
	for _, cs := range cases {
		if cs.Guard != nil {
			continue
		}
		switch p := cs.Pattern.Data().(type) {
		case ast.PatWildcard, ast.PatVariable:
			return
		case ast.PatConstructor:
			covered[p.Name] = true
		}
	}
	var missing []string
	for _, name := range ctors {
		if !covered[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		col.Add(PatternNonExhaustive{ScrutineeType: scrutT, Missing: missing, At: at})
	}
}
