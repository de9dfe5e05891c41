package types

import (
	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
	"github.com/xlg-lang/xlg/pkg/hm"
)

const resumeBinding = "resume"

// infer is Algorithm W's per-node step, extended with effect rows
// (spec §4.E). It never returns early on a Failure: every branch that
// detects one records it on col and keeps going with a best-effort type
// (usually a fresh type variable), so the rest of the tree still gets
// checked in the same pass.
func (c *Checker) infer(scope *Scope, n *ast.Node, col *Collector) (hm.Type, *hm.EffectRow, map[hash.Hash]bool) {
	switch d := n.Data().(type) {

	case ast.LitInt:
		return hm.Int, hm.EmptyRow(), nil
	case ast.LitFloat:
		return hm.Float, hm.EmptyRow(), nil
	case ast.LitText:
		return hm.Text, hm.EmptyRow(), nil
	case ast.LitBool:
		return hm.Bool, hm.EmptyRow(), nil
	case ast.LitUnit:
		return hm.Unit, hm.EmptyRow(), nil

	case ast.LitList:
		elem := hm.Type(c.fresher.Fresh())
		effects := hm.EmptyRow()
		for i, el := range d.Elements {
			t := c.TypeOf(scope, el, col)
			effects = effects.Union(c.EffectsOf(scope, el, col))
			if i == 0 {
				elem = t
				continue
			}
			if _, err := hm.Unify(elem, t); err != nil {
				col.Add(TypeMismatch{Expected: elem, Found: t, At: el.Span()})
			}
		}
		return hm.ListType{Elem: elem}, effects, nil

	case ast.LitTuple:
		elems := make([]hm.Type, len(d.Elements))
		effects := hm.EmptyRow()
		for i, el := range d.Elements {
			elems[i] = c.TypeOf(scope, el, col)
			effects = effects.Union(c.EffectsOf(scope, el, col))
		}
		return hm.TupleType{Elems: elems}, effects, nil

	case ast.RefSymbolic:
		if sig, ok := c.reg.constructors[d.Name]; ok {
			return c.constructorType(sig), hm.EmptyRow(), nil
		}
		scheme, scopeID, ok := scope.Lookup(d.Name)
		if !ok {
			col.Add(UnresolvedName{Symbol: d.Name, ScopeID: scopeID, At: n.Span()})
			return c.fresher.Fresh(), hm.EmptyRow(), nil
		}
		return hm.Instantiate(c.fresher, scheme), hm.EmptyRow(), nil

	case ast.RefHash:
		if c.ResolveHash == nil {
			col.Add(UnresolvedName{Symbol: hash.Hash(d.Hash).Short(), ScopeID: scope.ID(), At: n.Span()})
			return c.fresher.Fresh(), hm.EmptyRow(), nil
		}
		scheme, ok := c.ResolveHash(hash.Hash(d.Hash))
		if !ok {
			col.Add(UnresolvedName{Symbol: hash.Hash(d.Hash).Short(), ScopeID: scope.ID(), At: n.Span()})
			return c.fresher.Fresh(), hm.EmptyRow(), nil
		}
		return hm.Instantiate(c.fresher, scheme), hm.EmptyRow(), map[hash.Hash]bool{hash.Hash(d.Hash): true}

	case ast.Lambda:
		child := scope.ChildClosure(&c.counter)
		paramTypes := make([]hm.Type, len(d.Params))
		for i, p := range d.Params {
			var pt hm.Type
			if p.Type != nil {
				pt = c.TypeOf(scope, p.Type, col)
			} else {
				pt = c.fresher.Fresh()
			}
			paramTypes[i] = pt
			child.Bind(p.Name, hm.NewScheme(nil, pt))
		}
		bodyT := c.TypeOf(child, d.Body, col)
		bodyEff := c.EffectsOf(child, d.Body, col)
		result := bodyT
		for i := len(paramTypes) - 1; i >= 0; i-- {
			if i == len(paramTypes)-1 {
				result = hm.NewFnTypeWithEffects(paramTypes[i], bodyT, bodyEff)
			} else {
				result = hm.NewFnType(paramTypes[i], result)
			}
		}
		return result, hm.EmptyRow(), nil

	case ast.Application:
		cur := c.TypeOf(scope, d.Func, col)
		effects := c.EffectsOf(scope, d.Func, col)
		for _, arg := range d.Args {
			argT := c.TypeOf(scope, arg, col)
			effects = effects.Union(c.EffectsOf(scope, arg, col))
			ft, ok := cur.(*hm.FunctionType)
			if !ok {
				retv := c.fresher.Fresh()
				want := hm.NewFnType(argT, retv)
				subs, err := hm.Unify(cur, want)
				if err != nil {
					col.Add(TypeMismatch{Expected: want, Found: cur, At: n.Span()})
					cur = c.fresher.Fresh()
					continue
				}
				cur = subs.Apply(retv)
				continue
			}
			subs, err := hm.Unify(ft.Arg(), argT)
			if err != nil {
				col.Add(TypeMismatch{Expected: ft.Arg(), Found: argT, At: arg.Span()})
				cur = ft.Ret()
				effects = effects.Union(ft.Effects())
				continue
			}
			effects = effects.Union(ft.Effects())
			cur = subs.Apply(ft.Ret())
		}
		return cur, effects, nil

	case ast.Let:
		valT := c.TypeOf(scope, d.Value, col)
		valEff := c.EffectsOf(scope, d.Value, col)
		scheme := c.generalize(scope, valT, valEff)
		child := scope.Child(&c.counter)
		child.Bind(d.Name, scheme)
		bodyT := c.TypeOf(child, d.Body, col)
		bodyEff := c.EffectsOf(child, d.Body, col)
		return bodyT, valEff.Union(bodyEff), nil

	case ast.LetRec:
		child := scope.Child(&c.counter)
		placeholders := make(map[string]hm.TypeVariable, len(d.Bindings))
		for _, b := range d.Bindings {
			tv := c.fresher.Fresh()
			placeholders[b.Name] = tv
			child.Bind(b.Name, hm.NewScheme(nil, tv))
		}
		effects := hm.EmptyRow()
		for _, b := range d.Bindings {
			t := c.TypeOf(child, b.Value, col)
			effects = effects.Union(c.EffectsOf(child, b.Value, col))
			if _, err := hm.Unify(placeholders[b.Name], t); err != nil {
				col.Add(OccursCheck{Var: placeholders[b.Name], Type: t, At: b.Value.Span()})
			}
		}
		bodyT := c.TypeOf(child, d.Body, col)
		bodyEff := c.EffectsOf(child, d.Body, col)
		return bodyT, effects.Union(bodyEff), nil

	case ast.If:
		condT := c.TypeOf(scope, d.Cond, col)
		effects := c.EffectsOf(scope, d.Cond, col)
		if _, err := hm.Unify(condT, hm.Bool); err != nil {
			col.Add(TypeMismatch{Expected: hm.Bool, Found: condT, At: d.Cond.Span()})
		}
		thenT := c.TypeOf(scope, d.Then, col)
		effects = effects.Union(c.EffectsOf(scope, d.Then, col))
		elseT := c.TypeOf(scope, d.Else, col)
		effects = effects.Union(c.EffectsOf(scope, d.Else, col))
		if _, err := hm.Unify(thenT, elseT); err != nil {
			col.Add(TypeMismatch{Expected: thenT, Found: elseT, At: d.Else.Span()})
		}
		return thenT, effects, nil

	case ast.Match:
		scrutT := c.TypeOf(scope, d.Scrutinee, col)
		effects := c.EffectsOf(scope, d.Scrutinee, col)
		var resultT hm.Type
		for i, cs := range d.Cases {
			child := scope.Child(&c.counter)
			c.bindPattern(child, cs.Pattern, scrutT, col)
			if cs.Guard != nil {
				guardT := c.TypeOf(child, cs.Guard, col)
				effects = effects.Union(c.EffectsOf(child, cs.Guard, col))
				if _, err := hm.Unify(guardT, hm.Bool); err != nil {
					col.Add(TypeMismatch{Expected: hm.Bool, Found: guardT, At: cs.Guard.Span()})
				}
			}
			bodyT := c.TypeOf(child, cs.Body, col)
			effects = effects.Union(c.EffectsOf(child, cs.Body, col))
			if resultT == nil {
				resultT = bodyT
			} else if _, err := hm.Unify(resultT, bodyT); err != nil {
				col.Add(TypeMismatch{Expected: resultT, Found: bodyT, At: cs.Body.Span()})
			}
			if i > 0 && cs.Pattern.Kind() == ast.KindPatWildcard && cs.Guard == nil && i != len(d.Cases)-1 {
				col.Add(PatternUnreachable{At: d.Cases[i+1].Pattern.Span()})
			}
		}
		c.checkExhaustiveness(scrutT, d.Cases, n.Span(), col)
		if resultT == nil {
			resultT = c.fresher.Fresh()
		}
		return resultT, effects, nil

	case ast.Do:
		effects := hm.EmptyRow()
		for _, stmt := range d.Statements {
			c.TypeOf(scope, stmt, col)
			effects = effects.Union(c.EffectsOf(scope, stmt, col))
		}
		resultT := c.TypeOf(scope, d.Result, col)
		effects = effects.Union(c.EffectsOf(scope, d.Result, col))
		return resultT, effects, nil

	case ast.With:
		handlerData, ok := d.Handler.Data().(ast.HandlerDef)
		if !ok {
			col.Add(TypeMismatch{Expected: hm.Unit, Found: hm.Unit, At: d.Handler.Span()})
			return c.fresher.Fresh(), hm.EmptyRow(), nil
		}
		c.TypeOf(scope, d.Handler, col)
		bodyScope := scope.WithHandled(&c.counter, handlerData.EffectName)
		bodyT := c.TypeOf(bodyScope, d.Body, col)
		bodyEff := c.EffectsOf(bodyScope, d.Body, col)
		return bodyT, bodyEff.Remove(handlerData.EffectName), nil

	case ast.Perform:
		switch {
		case scope.Handles(d.EffectName):
			// discharged by an enclosing With without crossing a closure boundary
		case scope.Escaped(d.EffectName):
			col.Add(EffectEscape{Effect: d.EffectName, At: n.Span()})
		default:
			col.Add(UnhandledEffect{Required: d.EffectName, Available: hm.ClosedRow(), At: n.Span()})
		}
		effects := hm.ClosedRow(d.EffectName)
		ops, ok := c.reg.effectOps[d.EffectName]
		if !ok {
			col.Add(UnresolvedName{Symbol: d.EffectName, ScopeID: scope.ID(), At: n.Span()})
			return c.fresher.Fresh(), effects, nil
		}
		sig, ok := ops[d.OpName]
		if !ok {
			col.Add(UnresolvedName{Symbol: d.EffectName + "." + d.OpName, ScopeID: scope.ID(), At: n.Span()})
			return c.fresher.Fresh(), effects, nil
		}
		for i, arg := range d.Args {
			argT := c.TypeOf(scope, arg, col)
			effects = effects.Union(c.EffectsOf(scope, arg, col))
			if i < len(sig.Params) {
				if _, err := hm.Unify(sig.Params[i], argT); err != nil {
					col.Add(TypeMismatch{Expected: sig.Params[i], Found: argT, At: arg.Span()})
				}
			}
		}
		return sig.Return, effects, nil

	case ast.Pipe:
		rightT := c.TypeOf(scope, d.Right, col)
		leftT := c.TypeOf(scope, d.Left, col)
		effects := c.EffectsOf(scope, d.Right, col).Union(c.EffectsOf(scope, d.Left, col))
		ft, ok := rightT.(*hm.FunctionType)
		if !ok {
			retv := c.fresher.Fresh()
			subs, err := hm.Unify(rightT, hm.NewFnType(leftT, retv))
			if err != nil {
				col.Add(TypeMismatch{Expected: hm.NewFnType(leftT, retv), Found: rightT, At: d.Right.Span()})
				return c.fresher.Fresh(), effects, nil
			}
			return subs.Apply(retv), effects, nil
		}
		subs, err := hm.Unify(ft.Arg(), leftT)
		if err != nil {
			col.Add(TypeMismatch{Expected: ft.Arg(), Found: leftT, At: d.Left.Span()})
			return ft.Ret(), effects.Union(ft.Effects()), nil
		}
		return subs.Apply(ft.Ret()), effects.Union(ft.Effects()), nil

	case ast.Record:
		fields := make([]hm.RecordField, len(d.Fields))
		effects := hm.EmptyRow()
		for i, f := range d.Fields {
			t := c.TypeOf(scope, f.Value, col)
			effects = effects.Union(c.EffectsOf(scope, f.Value, col))
			fields[i] = hm.RecordField{Name: f.Name, Type: t}
		}
		return hm.ClosedRecord(fields...), effects, nil

	case ast.RecordAccess:
		targetT := c.TypeOf(scope, d.Target, col)
		effects := c.EffectsOf(scope, d.Target, col)
		if rt, ok := targetT.(*hm.RecordType); ok {
			if ft, found := rt.FieldType(d.Field); found {
				return ft, effects, nil
			}
			col.Add(UnresolvedName{Symbol: d.Field, ScopeID: scope.ID(), At: n.Span()})
			return c.fresher.Fresh(), effects, nil
		}
		fieldT := c.fresher.Fresh()
		tailv := c.fresher.Fresh()
		want := hm.OpenRecord(tailv, hm.RecordField{Name: d.Field, Type: fieldT})
		subs, err := hm.Unify(targetT, want)
		if err != nil {
			col.Add(TypeMismatch{Expected: want, Found: targetT, At: n.Span()})
			return c.fresher.Fresh(), effects, nil
		}
		return subs.Apply(fieldT), effects, nil

	case ast.RecordUpdate:
		targetT := c.TypeOf(scope, d.Target, col)
		effects := c.EffectsOf(scope, d.Target, col)
		for _, f := range d.Fields {
			vt := c.TypeOf(scope, f.Value, col)
			effects = effects.Union(c.EffectsOf(scope, f.Value, col))
			if rt, ok := targetT.(*hm.RecordType); ok {
				if ft, found := rt.FieldType(f.Name); found {
					if _, err := hm.Unify(ft, vt); err != nil {
						col.Add(TypeMismatch{Expected: ft, Found: vt, At: f.Value.Span()})
					}
				}
			}
		}
		return targetT, effects, nil

	case ast.ValueDef:
		var sigT hm.Type
		if d.Signature != nil {
			sigT = c.TypeOf(scope, d.Signature, col)
		}
		bodyT := c.TypeOf(scope, d.Body, col)
		bodyEff := c.EffectsOf(scope, d.Body, col)
		if sigT != nil {
			if _, err := hm.Unify(sigT, bodyT); err != nil {
				col.Add(TypeMismatch{Expected: sigT, Found: bodyT, At: d.Body.Span()})
			}
		}
		return bodyT, bodyEff, nil

	case ast.HandlerDef:
		for _, clause := range d.Clauses {
			child := scope.Child(&c.counter)
			sig, hasSig := c.reg.effectOps[d.EffectName][clause.OpName]
			for i, p := range clause.Params {
				var pt hm.Type = c.fresher.Fresh()
				if hasSig && i < len(sig.Params) {
					pt = sig.Params[i]
				}
				child.Bind(p, hm.NewScheme(nil, pt))
			}
			retT := c.fresher.Fresh()
			var opOut hm.Type = c.fresher.Fresh()
			if hasSig {
				opOut = sig.Return
			}
			child.Bind(resumeBinding, hm.NewScheme(nil, hm.NewFnType(opOut, retT)))
			c.TypeOf(child, clause.Body, col)
		}
		if d.Return != nil {
			c.TypeOf(scope, d.Return, col)
		}
		return hm.Unit, hm.EmptyRow(), nil

	case ast.EffectDef, ast.TypeDef, ast.Interface, ast.Import:
		return hm.Unit, hm.EmptyRow(), nil

	case ast.Module:
		effects := hm.EmptyRow()
		for _, def := range d.Definitions {
			c.TypeOf(scope, def, col)
			effects = effects.Union(c.EffectsOf(scope, def, col))
		}
		return hm.Unit, effects, nil

	case ast.CompilationUnit:
		for _, m := range d.Modules {
			c.TypeOf(scope, m, col)
		}
		return hm.Unit, hm.EmptyRow(), nil

	default:
		return c.fresher.Fresh(), hm.EmptyRow(), nil
	}
}

// constructorType builds the (possibly 0-ary) function type of a
// registered constructor: arg1 -> arg2 -> ... -> VariantType.
func (c *Checker) constructorType(sig ConstructorSig) hm.Type {
	result := hm.Type(hm.VariantType{Name_: sig.VariantName})
	for i := len(sig.ArgTypes) - 1; i >= 0; i-- {
		result = hm.NewFnType(sig.ArgTypes[i], result)
	}
	return result
}

// generalize quantifies t over the type and effect variables free in t
// but not in scope, except that variables appearing only in eff are
// excluded when eff carries observable effects (spec §4.E: "values with
// observable effects are not generalized over effect variables").
func (c *Checker) generalize(scope *Scope, t hm.Type, eff *hm.EffectRow) *hm.Scheme {
	scheme := hm.Generalize(scopeEnv{scope}, t)
	if eff == nil || eff.IsEmpty() {
		return scheme
	}
	effFtv := eff.FreeTypeVar()
	restricted := make([]hm.TypeVariable, 0, len(scheme.TypeVars()))
	for _, tv := range scheme.TypeVars() {
		if !effFtv.Contains(tv) {
			restricted = append(restricted, tv)
		}
	}
	mono, _ := scheme.Type()
	return hm.NewScheme(restricted, mono)
}

// scopeEnv adapts *Scope to hm.Env so hm.Generalize can compute the
// environment's free type variables across the whole enclosing chain.
type scopeEnv struct{ s *Scope }

func (e scopeEnv) SchemeOf(name string) (*hm.Scheme, bool) {
	scheme, _, ok := e.s.Lookup(name)
	return scheme, ok
}
func (e scopeEnv) Clone() hm.Env { return e }
func (e scopeEnv) Add(name string, scheme *hm.Scheme) hm.Env {
	e.s.Bind(name, scheme)
	return e
}
func (e scopeEnv) Remove(string) hm.Env { return e }
func (e scopeEnv) FreeTypeVar() hm.TypeVarSet {
	ftv := hm.NewTypeVarSet()
	for cur := e.s; cur != nil; cur = cur.parent {
		for _, scheme := range cur.bindings {
			ftv = ftv.Union(scheme.FreeTypeVar())
		}
	}
	return ftv
}
func (e scopeEnv) Apply(hm.Subs) hm.Substitutable { return e }
