package bridge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/bridge"
	"github.com/xlg-lang/xlg/pkg/namespace"
	"github.com/xlg-lang/xlg/pkg/symbol"
)

func span() symbol.Span { return symbol.Span{} }

func build(t *testing.T, tree *ast.Tree, data ast.Data) *ast.Node {
	t.Helper()
	return tree.Build(span(), data)
}

func roundTrip(t *testing.T, n *ast.Node) *ast.Node {
	t.Helper()
	text := bridge.Render(n)
	got, err := bridge.ParseDefinition(ast.NewTree(), text)
	require.NoError(t, err)
	return got
}

func TestRoundTripValueDefWithArithmeticBody(t *testing.T) {
	tree := ast.NewTree()
	body := build(t, tree, ast.Application{
		Func: build(t, tree, ast.RefSymbolic{Name: "+"}),
		Args: []*ast.Node{
			build(t, tree, ast.RefSymbolic{Name: "x"}),
			build(t, tree, ast.LitInt{Value: 1}),
		},
	})
	def := build(t, tree, ast.ValueDef{
		Name: "incr",
		Body: build(t, tree, ast.Lambda{
			Params: []ast.LambdaParam{{Name: "x"}},
			Body:   body,
		}),
	})

	got := roundTrip(t, def)
	gotDef, ok := got.Data().(ast.ValueDef)
	require.True(t, ok)
	assert.Equal(t, "incr", gotDef.Name)
	lambda, ok := gotDef.Body.Data().(ast.Lambda)
	require.True(t, ok)
	require.Len(t, lambda.Params, 1)
	assert.Equal(t, "x", lambda.Params[0].Name)
	app, ok := lambda.Body.Data().(ast.Application)
	require.True(t, ok)
	require.Len(t, app.Args, 2)
	assert.Equal(t, ast.RefSymbolic{Name: "x"}, app.Args[0].Data())
	assert.Equal(t, ast.LitInt{Value: 1}, app.Args[1].Data())
}

func TestRoundTripPreservesDocAnnotation(t *testing.T) {
	tree := ast.NewTree()
	def := build(t, tree, ast.ValueDef{Name: "one", Body: build(t, tree, ast.LitInt{Value: 1})})
	def = def.WithAnnotations(def.Annotations().Set("doc", "the constant one"))

	text := bridge.Render(def)
	assert.Contains(t, text, ";; the constant one")

	got, err := bridge.ParseDefinition(ast.NewTree(), text)
	require.NoError(t, err)
	doc, ok := got.Annotations().Get("doc")
	require.True(t, ok)
	assert.Equal(t, "the constant one", doc)
}

func TestRoundTripTypeDefSumVariant(t *testing.T) {
	tree := ast.NewTree()
	def := build(t, tree, ast.TypeDef{
		Name:    "Option",
		Params:  []string{"a"},
		Variant: ast.TypeDefSum,
		Sum: []ast.TypeSumVariant{
			{Name: "None"},
			{Name: "Some", Args: []*ast.Node{build(t, tree, ast.RefSymbolic{Name: "a"})}},
		},
	})

	got := roundTrip(t, def)
	gotDef, ok := got.Data().(ast.TypeDef)
	require.True(t, ok)
	assert.Equal(t, "Option", gotDef.Name)
	require.Len(t, gotDef.Sum, 2)
	assert.Equal(t, "None", gotDef.Sum[0].Name)
	assert.Equal(t, "Some", gotDef.Sum[1].Name)
	require.Len(t, gotDef.Sum[1].Args, 1)
}

func TestRoundTripMatchWithGuardAndRecordPattern(t *testing.T) {
	tree := ast.NewTree()
	def := build(t, tree, ast.ValueDef{
		Name: "describe",
		Body: build(t, tree, ast.Match{
			Scrutinee: build(t, tree, ast.RefSymbolic{Name: "r"}),
			Cases: []ast.MatchCase{
				{
					Pattern: build(t, tree, ast.PatRecord{
						Fields: []ast.PatRecordField{{Name: "age", Pattern: build(t, tree, ast.PatVariable{Name: "age"})}},
						Rest:   true,
					}),
					Guard: build(t, tree, ast.Application{
						Func: build(t, tree, ast.RefSymbolic{Name: ">"}),
						Args: []*ast.Node{build(t, tree, ast.RefSymbolic{Name: "age"}), build(t, tree, ast.LitInt{Value: 18})},
					}),
					Body: build(t, tree, ast.LitText{Value: "adult"}),
				},
				{
					Pattern: build(t, tree, ast.PatWildcard{}),
					Body:    build(t, tree, ast.LitText{Value: "minor"}),
				},
			},
		}),
	})

	got := roundTrip(t, def)
	gotDef := got.Data().(ast.ValueDef)
	match := gotDef.Body.Data().(ast.Match)
	require.Len(t, match.Cases, 2)
	assert.NotNil(t, match.Cases[0].Guard)
	assert.Nil(t, match.Cases[1].Guard)
	rec := match.Cases[0].Pattern.Data().(ast.PatRecord)
	assert.True(t, rec.Rest)
	assert.Equal(t, "age", rec.Fields[0].Name)
}

func TestRoundTripEffectAndHandler(t *testing.T) {
	tree := ast.NewTree()
	effect := build(t, tree, ast.EffectDef{
		Name: "Console",
		Operations: []ast.EffectOperationDef{
			{Name: "print", ParamTypes: []*ast.Node{build(t, tree, ast.RefSymbolic{Name: "Text"})}, ReturnType: build(t, tree, ast.RefSymbolic{Name: "Unit"})},
		},
	})
	gotEffect := roundTrip(t, effect)
	eff := gotEffect.Data().(ast.EffectDef)
	assert.Equal(t, "Console", eff.Name)
	require.Len(t, eff.Operations, 1)
	assert.Equal(t, "print", eff.Operations[0].Name)

	handler := build(t, tree, ast.HandlerDef{
		EffectName: "Console",
		Clauses: []ast.HandlerClause{
			{OpName: "print", Params: []string{"msg"}, Body: build(t, tree, ast.LitUnit{})},
		},
	})
	gotHandler := roundTrip(t, handler)
	h := gotHandler.Data().(ast.HandlerDef)
	assert.Equal(t, "Console", h.EffectName)
	require.Len(t, h.Clauses, 1)
	assert.Equal(t, "print", h.Clauses[0].OpName)
	assert.Nil(t, h.Return)
}

func TestRoundTripNegativeAndFloatLiterals(t *testing.T) {
	tree := ast.NewTree()
	def := build(t, tree, ast.ValueDef{
		Name: "values",
		Body: build(t, tree, ast.LitTuple{Elements: []*ast.Node{
			build(t, tree, ast.LitInt{Value: -42}),
			build(t, tree, ast.LitFloat{Value: 3.5}),
			build(t, tree, ast.LitBool{Value: false}),
		}}),
	})

	got := roundTrip(t, def)
	tuple := got.Data().(ast.ValueDef).Body.Data().(ast.LitTuple)
	assert.Equal(t, ast.LitInt{Value: -42}, tuple.Elements[0].Data())
	assert.Equal(t, ast.LitFloat{Value: 3.5}, tuple.Elements[1].Data())
	assert.Equal(t, ast.LitBool{Value: false}, tuple.Elements[2].Data())
}

func TestParseDefinitionRejectsTrailingGarbage(t *testing.T) {
	_, err := bridge.ParseDefinition(ast.NewTree(), `(ValueDef one #nil (LitInt 1)) garbage`)
	require.Error(t, err)
}

func TestExportImportRoundTripsThroughFilesystem(t *testing.T) {
	dir := t.TempDir()
	tree := ast.NewTree()
	store := namespace.New()

	one := build(t, tree, ast.ValueDef{Name: "one", Body: build(t, tree, ast.LitInt{Value: 1})})
	helloType := build(t, tree, ast.TypeDef{Name: "Greeting", Variant: ast.TypeDefAlias, Alias: build(t, tree, ast.RefSymbolic{Name: "Text"})})

	_, err := store.CommitBatch(namespace.Session{Author: "ada"}, []namespace.PendingEdit{
		{Path: "Main.one", Root: one},
		{Path: "Main.Greeting", Root: helloType},
	})
	require.NoError(t, err)

	exportDir := filepath.Join(dir, "export")
	require.NoError(t, bridge.Export(store, "Main", exportDir))

	_, err = os.Stat(filepath.Join(exportDir, "one.x"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(exportDir, "greeting.x"))
	require.NoError(t, err)

	imported := namespace.New()
	versions, err := bridge.Import(imported, exportDir, "Reimported", namespace.Session{Author: "ada"})
	require.NoError(t, err)
	require.Len(t, versions, 2)

	got, err := imported.Resolve("Reimported.one")
	require.NoError(t, err)
	assert.Equal(t, ast.LitInt{Value: 1}, got.Head().Root.Data().(ast.ValueDef).Body.Data())

	gotType, err := imported.Resolve("Reimported.Greeting")
	require.NoError(t, err)
	assert.Equal(t, "Greeting", gotType.Head().Root.Data().(ast.TypeDef).Name)
}
