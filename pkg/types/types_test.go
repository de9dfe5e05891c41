package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
	"github.com/xlg-lang/xlg/pkg/hm"
	"github.com/xlg-lang/xlg/pkg/symbol"
)

func noSpan() symbol.Span { return symbol.Span{} }

func newCheckerForTest() (*Checker, *ast.Tree) {
	return NewChecker(nil), ast.NewTree()
}

func TestLiteralsInferBaseTypes(t *testing.T) {
	c, tree := newCheckerForTest()
	scope := c.NewRootScope()
	col := &Collector{}

	n := tree.Build(noSpan(), ast.LitInt{Value: 42})
	typ := c.TypeOf(scope, n, col)

	assert.True(t, typ.Eq(hm.Int))
	assert.True(t, col.OK())
}

func TestLambdaApplicationInfersArrow(t *testing.T) {
	c, tree := newCheckerForTest()
	scope := c.NewRootScope()
	col := &Collector{}

	param := tree.Build(noSpan(), ast.RefSymbolic{Name: "x"})
	lambda := tree.Build(noSpan(), ast.Lambda{
		Params: []ast.LambdaParam{{Name: "x"}},
		Body:   param,
	})
	arg := tree.Build(noSpan(), ast.LitInt{Value: 1})
	app := tree.Build(noSpan(), ast.Application{Func: lambda, Args: []*ast.Node{arg}})

	typ := c.TypeOf(scope, app, col)

	require.True(t, col.OK())
	assert.True(t, typ.Eq(hm.Int))
}

func TestUnresolvedNameIsReported(t *testing.T) {
	c, tree := newCheckerForTest()
	scope := c.NewRootScope()
	col := &Collector{}

	n := tree.Build(noSpan(), ast.RefSymbolic{Name: "nope"})
	c.TypeOf(scope, n, col)

	require.Len(t, col.Failures(), 1)
	_, ok := col.Failures()[0].(UnresolvedName)
	assert.True(t, ok)
}

func TestIfBranchMismatchIsReported(t *testing.T) {
	c, tree := newCheckerForTest()
	scope := c.NewRootScope()
	col := &Collector{}

	cond := tree.Build(noSpan(), ast.LitBool{Value: true})
	then := tree.Build(noSpan(), ast.LitInt{Value: 1})
	els := tree.Build(noSpan(), ast.LitText{Value: "no"})
	ifNode := tree.Build(noSpan(), ast.If{Cond: cond, Then: then, Else: els})

	c.TypeOf(scope, ifNode, col)

	require.Len(t, col.Failures(), 1)
	_, ok := col.Failures()[0].(TypeMismatch)
	assert.True(t, ok)
}

func TestPerformWithoutHandlerIsUnhandledEffect(t *testing.T) {
	c, tree := newCheckerForTest()
	scope := c.NewRootScope()
	col := &Collector{}

	c.RegisterEffectDef(ast.EffectDef{
		Name: "Console",
		Operations: []ast.EffectOperationDef{
			{Name: "print", ParamTypes: []*ast.Node{tree.Build(noSpan(), ast.RefSymbolic{Name: "Text"})}, ReturnType: tree.Build(noSpan(), ast.RefSymbolic{Name: "Unit"})},
		},
	})

	arg := tree.Build(noSpan(), ast.LitText{Value: "hi"})
	perform := tree.Build(noSpan(), ast.Perform{EffectName: "Console", OpName: "print", Args: []*ast.Node{arg}})

	c.TypeOf(scope, perform, col)

	require.Len(t, col.Failures(), 1)
	_, ok := col.Failures()[0].(UnhandledEffect)
	assert.True(t, ok)
}

func TestWithHandlerDischargesEffectFromBody(t *testing.T) {
	c, tree := newCheckerForTest()
	scope := c.NewRootScope()
	col := &Collector{}

	c.RegisterEffectDef(ast.EffectDef{
		Name: "Console",
		Operations: []ast.EffectOperationDef{
			{Name: "print", ParamTypes: []*ast.Node{tree.Build(noSpan(), ast.RefSymbolic{Name: "Text"})}, ReturnType: tree.Build(noSpan(), ast.RefSymbolic{Name: "Unit"})},
		},
	})

	arg := tree.Build(noSpan(), ast.LitText{Value: "hi"})
	perform := tree.Build(noSpan(), ast.Perform{EffectName: "Console", OpName: "print", Args: []*ast.Node{arg}})
	handler := tree.Build(noSpan(), ast.HandlerDef{
		EffectName: "Console",
		Clauses: []ast.HandlerClause{
			{OpName: "print", Params: []string{"msg"}, Body: tree.Build(noSpan(), ast.LitUnit{})},
		},
	})
	with := tree.Build(noSpan(), ast.With{Handler: handler, Body: perform})

	_, eff, _ := c.infer(scope, with, col)

	require.True(t, col.OK())
	assert.True(t, eff.IsEmpty())
}

func TestLambdaCapturingHandledEffectIsEffectEscape(t *testing.T) {
	c, tree := newCheckerForTest()
	scope := c.NewRootScope()
	col := &Collector{}

	c.RegisterEffectDef(ast.EffectDef{
		Name: "Console",
		Operations: []ast.EffectOperationDef{
			{Name: "print", ParamTypes: []*ast.Node{tree.Build(noSpan(), ast.RefSymbolic{Name: "Text"})}, ReturnType: tree.Build(noSpan(), ast.RefSymbolic{Name: "Unit"})},
		},
	})

	arg := tree.Build(noSpan(), ast.LitText{Value: "hi"})
	perform := tree.Build(noSpan(), ast.Perform{EffectName: "Console", OpName: "print", Args: []*ast.Node{arg}})
	closure := tree.Build(noSpan(), ast.Lambda{Body: perform})
	handler := tree.Build(noSpan(), ast.HandlerDef{
		EffectName: "Console",
		Clauses: []ast.HandlerClause{
			{OpName: "print", Params: []string{"msg"}, Body: tree.Build(noSpan(), ast.LitUnit{})},
		},
	})
	with := tree.Build(noSpan(), ast.With{Handler: handler, Body: closure})

	c.TypeOf(scope, with, col)

	require.Len(t, col.Failures(), 1)
	escape, ok := col.Failures()[0].(EffectEscape)
	require.True(t, ok)
	assert.Equal(t, "Console", escape.Effect)
}

func TestPerformInsideHandlerBodyItselfStillDischarges(t *testing.T) {
	c, tree := newCheckerForTest()
	scope := c.NewRootScope()
	col := &Collector{}

	c.RegisterEffectDef(ast.EffectDef{
		Name: "Console",
		Operations: []ast.EffectOperationDef{
			{Name: "print", ParamTypes: []*ast.Node{tree.Build(noSpan(), ast.RefSymbolic{Name: "Text"})}, ReturnType: tree.Build(noSpan(), ast.RefSymbolic{Name: "Unit"})},
		},
	})

	arg := tree.Build(noSpan(), ast.LitText{Value: "hi"})
	perform := tree.Build(noSpan(), ast.Perform{EffectName: "Console", OpName: "print", Args: []*ast.Node{arg}})
	ifNode := tree.Build(noSpan(), ast.If{
		Cond: tree.Build(noSpan(), ast.LitBool{Value: true}),
		Then: perform,
		Else: tree.Build(noSpan(), ast.LitUnit{}),
	})
	handler := tree.Build(noSpan(), ast.HandlerDef{
		EffectName: "Console",
		Clauses: []ast.HandlerClause{
			{OpName: "print", Params: []string{"msg"}, Body: tree.Build(noSpan(), ast.LitUnit{})},
		},
	})
	with := tree.Build(noSpan(), ast.With{Handler: handler, Body: ifNode})

	c.TypeOf(scope, with, col)

	assert.True(t, col.OK())
}

func TestConstructorPatternBindsArgsAndChecksExhaustiveness(t *testing.T) {
	c, tree := newCheckerForTest()
	scope := c.NewRootScope()
	col := &Collector{}

	c.RegisterTypeDef(ast.TypeDef{
		Name:    "Option",
		Variant: ast.TypeDefSum,
		Sum: []ast.TypeSumVariant{
			{Name: "Some", Args: []*ast.Node{tree.Build(noSpan(), ast.RefSymbolic{Name: "Int"})}},
			{Name: "None"},
		},
	})

	scrutinee := tree.Build(noSpan(), ast.RefSymbolic{Name: "opt"})
	scope.Bind("opt", hm.NewScheme(nil, hm.VariantType{Name_: "Option"}))

	somePat := tree.Build(noSpan(), ast.PatConstructor{Name: "Some", Args: []*ast.Node{
		tree.Build(noSpan(), ast.PatVariable{Name: "n"}),
	}})
	someBody := tree.Build(noSpan(), ast.RefSymbolic{Name: "n"})

	match := tree.Build(noSpan(), ast.Match{
		Scrutinee: scrutinee,
		Cases: []ast.MatchCase{
			{Pattern: somePat, Body: someBody},
		},
	})

	typ := c.TypeOf(scope, match, col)

	assert.True(t, typ.Eq(hm.Int))
	require.Len(t, col.Failures(), 1)
	nonExh, ok := col.Failures()[0].(PatternNonExhaustive)
	require.True(t, ok)
	assert.Equal(t, []string{"None"}, nonExh.Missing)
}

func TestLetRecSupportsSelfReference(t *testing.T) {
	c, tree := newCheckerForTest()
	scope := c.NewRootScope()
	col := &Collector{}

	self := tree.Build(noSpan(), ast.RefSymbolic{Name: "loop"})
	body := tree.Build(noSpan(), ast.LitInt{Value: 0})
	letrec := tree.Build(noSpan(), ast.LetRec{
		Bindings: []ast.LetRecBinding{{Name: "loop", Value: self}},
		Body:     body,
	})

	typ := c.TypeOf(scope, letrec, col)

	assert.True(t, typ.Eq(hm.Int))
}

func TestInvalidateDependentsDropsHashDependentMemo(t *testing.T) {
	c, tree := newCheckerForTest()
	scope := c.NewRootScope()
	col := &Collector{}

	var target [32]byte
	target[0] = 7
	n := tree.Build(noSpan(), ast.RefHash{Hash: target})
	c.ResolveHash = func(h hash.Hash) (*hm.Scheme, bool) {
		if h == hash.Hash(target) {
			return hm.NewScheme(nil, hm.Int), true
		}
		return nil, false
	}

	typ := c.TypeOf(scope, n, col)
	assert.True(t, typ.Eq(hm.Int))

	_, ok := c.memoized(n)
	require.True(t, ok)

	c.InvalidateDependents(hash.Hash(target))
	_, ok = c.memoized(n)
	assert.False(t, ok)
}
