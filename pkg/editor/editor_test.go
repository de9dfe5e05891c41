package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/editor"
	"github.com/xlg-lang/xlg/pkg/index"
	"github.com/xlg-lang/xlg/pkg/symbol"
	"github.com/xlg-lang/xlg/pkg/types"
)

func span(start, end int) symbol.Span {
	return symbol.Span{ByteStart: start, ByteEnd: end}
}

// buildModule returns a CompilationUnit containing one Module with a
// single value definition `incr`, plus the incr ValueDef node itself and
// the Module node, for tests that need to target them directly.
func buildModule(tree *ast.Tree) (root, module, incrDef *ast.Node) {
	x := tree.Build(span(20, 21), ast.RefSymbolic{Name: "x"})
	one := tree.Build(span(24, 25), ast.LitInt{Value: 1})
	app := tree.Build(span(20, 25), ast.Application{
		Func: tree.Build(span(20, 21), ast.RefSymbolic{Name: "+"}),
		Args: []*ast.Node{x, one},
	})
	lambda := tree.Build(span(10, 25), ast.Lambda{
		Params: []ast.LambdaParam{{Name: "x"}},
		Body:   app,
	})
	incrDef = tree.Build(span(0, 25), ast.ValueDef{Name: "incr", Body: lambda})
	module = tree.Build(span(0, 25), ast.Module{Name: "Main", Definitions: []*ast.Node{incrDef}})
	root = tree.Build(span(0, 25), ast.CompilationUnit{Modules: []*ast.Node{module}})
	return root, module, incrDef
}

func newEditor(t *testing.T, tree *ast.Tree, root *ast.Node) *editor.Editor {
	t.Helper()
	col := index.New()
	col.Rebuild(root)
	checker := types.NewChecker(nil)
	return editor.New(tree, root, col, checker)
}

func TestInsertAddsDefinitionToModule(t *testing.T) {
	tree := ast.NewTree()
	root, module, _ := buildModule(tree)
	e := newEditor(t, tree, root)

	two := tree.Build(span(30, 31), ast.ValueDef{
		Name: "two",
		Body: tree.Build(span(30, 31), ast.LitInt{Value: 2}),
	})
	result, err := e.Insert(module, 1, two)
	require.NoError(t, err)

	newModule := e.Root().Data().(ast.CompilationUnit).Modules[0]
	defs := newModule.Data().(ast.Module).Definitions
	require.Len(t, defs, 2)
	assert.Equal(t, "two", defs[1].Data().(ast.ValueDef).Name)
	assert.Contains(t, result.AffectedNodes, two)
}

func TestDeleteRemovesDefinitionFromModule(t *testing.T) {
	tree := ast.NewTree()
	root, module, incrDef := buildModule(tree)
	e := newEditor(t, tree, root)

	_, err := e.Delete(incrDef)
	require.NoError(t, err)

	newModule := e.Root().Data().(ast.CompilationUnit).Modules[0]
	assert.Empty(t, newModule.Data().(ast.Module).Definitions)
	_ = module
}

func TestReplaceSwapsSubtree(t *testing.T) {
	tree := ast.NewTree()
	root, _, incrDef := buildModule(tree)
	e := newEditor(t, tree, root)

	lambda := incrDef.Data().(ast.ValueDef).Body
	app := lambda.Data().(ast.Lambda).Body
	newLit := tree.Build(app.Span(), ast.LitInt{Value: 42})

	_, err := e.Replace(app, newLit)
	require.NoError(t, err)

	newIncr := e.Root().Data().(ast.CompilationUnit).Modules[0].Data().(ast.Module).Definitions[0]
	newLambda := newIncr.Data().(ast.ValueDef).Body.Data().(ast.Lambda)
	assert.Equal(t, ast.KindLitInt, newLambda.Body.Kind())
}

func TestDeleteRootIsRejected(t *testing.T) {
	tree := ast.NewTree()
	root, _, _ := buildModule(tree)
	e := newEditor(t, tree, root)

	_, err := e.Delete(root)
	assert.Error(t, err)
}

func TestRenameUpdatesDefinitionAndReferences(t *testing.T) {
	tree := ast.NewTree()
	root, module, incrDef := buildModule(tree)
	_ = module
	refToIncr := tree.Build(span(40, 44), ast.RefSymbolic{Name: "incr"})
	// Splice an extra top-level definition that references incr, so Rename
	// has a reference occurrence to rewrite alongside the defining node.
	userDef := tree.Build(span(40, 44), ast.ValueDef{Name: "user", Body: refToIncr})
	mod := module.Data().(ast.Module)
	mod2 := tree.Build(module.Span(), ast.Module{Name: mod.Name, Definitions: append(mod.Definitions, userDef)})
	root2 := tree.Build(root.Span(), ast.CompilationUnit{Modules: []*ast.Node{mod2}})

	e := newEditor(t, tree, root2)
	_, err := e.Rename("incr", "increment")
	require.NoError(t, err)

	newMod := e.Root().Data().(ast.CompilationUnit).Modules[0].Data().(ast.Module)
	require.Len(t, newMod.Definitions, 2)
	assert.Equal(t, "increment", newMod.Definitions[0].Data().(ast.ValueDef).Name)
	newRef := newMod.Definitions[1].Data().(ast.ValueDef).Body.Data().(ast.RefSymbolic)
	assert.Equal(t, "increment", newRef.Name)
	_ = incrDef
}

func TestRenameUnknownSymbolFails(t *testing.T) {
	tree := ast.NewTree()
	root, _, _ := buildModule(tree)
	e := newEditor(t, tree, root)

	_, err := e.Rename("nonexistent", "whatever")
	assert.Error(t, err)
}

func TestExtractDefinitionLiftsSubtreeOutAndLeavesReference(t *testing.T) {
	tree := ast.NewTree()
	root, _, incrDef := buildModule(tree)
	e := newEditor(t, tree, root)

	lambda := incrDef.Data().(ast.ValueDef).Body
	app := lambda.Data().(ast.Lambda).Body

	_, err := e.ExtractDefinition(app, "plusOne")
	require.NoError(t, err)

	newMod := e.Root().Data().(ast.CompilationUnit).Modules[0].Data().(ast.Module)
	require.Len(t, newMod.Definitions, 2)
	assert.Equal(t, "plusOne", newMod.Definitions[1].Data().(ast.ValueDef).Name)

	newLambda := newMod.Definitions[0].Data().(ast.ValueDef).Body.Data().(ast.Lambda)
	ref, ok := newLambda.Body.Data().(ast.RefSymbolic)
	require.True(t, ok)
	assert.Equal(t, "plusOne", ref.Name)
}

func TestInlineDefinitionSubstitutesBodyAtCallSites(t *testing.T) {
	tree := ast.NewTree()
	two := tree.Build(span(0, 1), ast.ValueDef{
		Name: "two",
		Body: tree.Build(span(0, 1), ast.LitInt{Value: 2}),
	})
	useTwo := tree.Build(span(10, 14), ast.RefSymbolic{Name: "two"})
	useIt := tree.Build(span(10, 14), ast.ValueDef{Name: "useIt", Body: useTwo})
	module := tree.Build(span(0, 14), ast.Module{Name: "Main", Definitions: []*ast.Node{two, useIt}})
	root := tree.Build(span(0, 14), ast.CompilationUnit{Modules: []*ast.Node{module}})

	e := newEditor(t, tree, root)
	_, err := e.InlineDefinition("two")
	require.NoError(t, err)

	newMod := e.Root().Data().(ast.CompilationUnit).Modules[0].Data().(ast.Module)
	require.Len(t, newMod.Definitions, 1)
	assert.Equal(t, "useIt", newMod.Definitions[0].Data().(ast.ValueDef).Name)
	inlinedBody := newMod.Definitions[0].Data().(ast.ValueDef).Body
	assert.Equal(t, ast.KindLitInt, inlinedBody.Kind())
	assert.Equal(t, int64(2), inlinedBody.Data().(ast.LitInt).Value)
}

func TestChangeSignatureReordersParamsAndCallSites(t *testing.T) {
	tree := ast.NewTree()
	lambda := tree.Build(span(0, 10), ast.Lambda{
		Params: []ast.LambdaParam{{Name: "a"}, {Name: "b"}},
		Body:   tree.Build(span(8, 9), ast.RefSymbolic{Name: "a"}),
	})
	fn := tree.Build(span(0, 10), ast.ValueDef{Name: "fn", Body: lambda})

	fnRef := tree.Build(span(20, 22), ast.RefSymbolic{Name: "fn"})
	arg1 := tree.Build(span(23, 24), ast.LitInt{Value: 1})
	arg2 := tree.Build(span(25, 26), ast.LitInt{Value: 2})
	call := tree.Build(span(20, 26), ast.Application{Func: fnRef, Args: []*ast.Node{arg1, arg2}})
	caller := tree.Build(span(20, 26), ast.ValueDef{Name: "caller", Body: call})

	module := tree.Build(span(0, 26), ast.Module{Name: "Main", Definitions: []*ast.Node{fn, caller}})
	root := tree.Build(span(0, 26), ast.CompilationUnit{Modules: []*ast.Node{module}})

	e := newEditor(t, tree, root)
	_, err := e.ChangeSignature(fn, []int{1, 0})
	require.NoError(t, err)

	newMod := e.Root().Data().(ast.CompilationUnit).Modules[0].Data().(ast.Module)
	newFnLambda := newMod.Definitions[0].Data().(ast.ValueDef).Body.Data().(ast.Lambda)
	require.Len(t, newFnLambda.Params, 2)
	assert.Equal(t, "b", newFnLambda.Params[0].Name)
	assert.Equal(t, "a", newFnLambda.Params[1].Name)

	newCall := newMod.Definitions[1].Data().(ast.ValueDef).Body.Data().(ast.Application)
	require.Len(t, newCall.Args, 2)
	assert.Equal(t, int64(2), newCall.Args[0].Data().(ast.LitInt).Value)
	assert.Equal(t, int64(1), newCall.Args[1].Data().(ast.LitInt).Value)
}

func TestChangeSignatureRejectsNonPermutation(t *testing.T) {
	tree := ast.NewTree()
	root, _, incrDef := buildModule(tree)
	e := newEditor(t, tree, root)

	_, err := e.ChangeSignature(incrDef, []int{0, 1})
	assert.Error(t, err)
}

func TestUndoRedoRoundTrips(t *testing.T) {
	tree := ast.NewTree()
	root, _, incrDef := buildModule(tree)
	e := newEditor(t, tree, root)

	before := e.Root()
	_, err := e.Delete(incrDef)
	require.NoError(t, err)
	afterDelete := e.Root()
	assert.NotEqual(t, before, afterDelete)

	undone, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, undone)
	assert.Equal(t, before, e.Root())

	redone, err := e.Redo()
	require.NoError(t, err)
	assert.Equal(t, afterDelete, redone)
}

func TestUndoWithNothingToUndoFails(t *testing.T) {
	tree := ast.NewTree()
	root, _, _ := buildModule(tree)
	e := newEditor(t, tree, root)

	_, err := e.Undo()
	assert.Error(t, err)
}

func TestBatchAppliesAllStepsAsOneOperation(t *testing.T) {
	tree := ast.NewTree()
	root, module, _ := buildModule(tree)
	e := newEditor(t, tree, root)

	two := tree.Build(span(30, 31), ast.ValueDef{Name: "two", Body: tree.Build(span(30, 31), ast.LitInt{Value: 2})})
	three := tree.Build(span(32, 33), ast.ValueDef{Name: "three", Body: tree.Build(span(32, 33), ast.LitInt{Value: 3})})

	before := e.Root()
	_, err := e.Batch(
		e.InsertStep(module, 1, two),
		e.InsertStep(module, 2, three),
	)
	require.NoError(t, err)

	newMod := e.Root().Data().(ast.CompilationUnit).Modules[0].Data().(ast.Module)
	require.Len(t, newMod.Definitions, 3)

	// The whole batch is one undo record.
	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, e.Root())
}

func TestTransactionRollsBackEntirelyOnFailure(t *testing.T) {
	tree := ast.NewTree()
	root, module, incrDef := buildModule(tree)
	e := newEditor(t, tree, root)

	two := tree.Build(span(30, 31), ast.ValueDef{Name: "two", Body: tree.Build(span(30, 31), ast.LitInt{Value: 2})})

	_, err := e.Transaction(
		e.InsertStep(module, 1, two),
		e.DeleteStep(root), // root deletion always fails
	)
	assert.Error(t, err)

	newMod := e.Root().Data().(ast.CompilationUnit).Modules[0].Data().(ast.Module)
	require.Len(t, newMod.Definitions, 1)
	assert.Equal(t, "incr", newMod.Definitions[0].Data().(ast.ValueDef).Name)
	_ = incrDef
}

func TestMoveRelocatesNodeBetweenParents(t *testing.T) {
	tree := ast.NewTree()
	innerList := tree.Build(span(0, 1), ast.LitList{})
	outerList := tree.Build(span(2, 3), ast.LitList{})
	item := tree.Build(span(4, 5), ast.LitInt{Value: 7})
	innerWithItem := tree.Build(span(0, 5), ast.LitList{Elements: []*ast.Node{item}})
	holder := tree.Build(span(0, 10), ast.LitTuple{Elements: []*ast.Node{innerWithItem, outerList}})
	_ = innerList

	e := newEditor(t, tree, holder)
	_, err := e.Move(item, outerList, 0)
	require.NoError(t, err)

	newHolder := e.Root().Data().(ast.LitTuple)
	newInner := newHolder.Elements[0].Data().(ast.LitList)
	newOuter := newHolder.Elements[1].Data().(ast.LitList)
	assert.Empty(t, newInner.Elements)
	require.Len(t, newOuter.Elements, 1)
	assert.Equal(t, int64(7), newOuter.Elements[0].Data().(ast.LitInt).Value)
}
