package hash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
	"github.com/xlg-lang/xlg/pkg/symbol"
)

func buildAdd(tree *ast.Tree) *ast.Node {
	x := tree.Build(symbol.Span{}, ast.RefSymbolic{Name: "x"})
	y := tree.Build(symbol.Span{}, ast.RefSymbolic{Name: "y"})
	body := tree.Build(symbol.Span{}, ast.Application{
		Func: tree.Build(symbol.Span{}, ast.RefSymbolic{Name: "+"}),
		Args: []*ast.Node{x, y},
	})
	lam := tree.Build(symbol.Span{}, ast.Lambda{
		Params: []ast.LambdaParam{{Name: "x"}, {Name: "y"}},
		Body:   body,
	})
	return tree.Build(symbol.Span{}, ast.ValueDef{Name: "add", Body: lam})
}

func TestDefinitionHashIsDeterministic(t *testing.T) {
	tree := ast.NewTree()
	def := buildAdd(tree)

	h1, err := hash.DefinitionHash(def)
	require.NoError(t, err)
	h2, err := hash.DefinitionHash(def)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1.Short(), 8)
}

func TestHashStableUnderNodeIDAndSpanChange(t *testing.T) {
	tree1 := ast.NewTree()
	def1 := buildAdd(tree1)

	tree2 := ast.NewTree()
	def2 := buildAdd(tree2) // fresh Tree => different NodeIDs, same structure

	h1, err := hash.DefinitionHash(def1)
	require.NoError(t, err)
	h2, err := hash.DefinitionHash(def2)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestHashStableUnderVolatileAnnotationChange(t *testing.T) {
	tree := ast.NewTree()
	def := buildAdd(tree)

	h1, err := hash.DefinitionHash(def)
	require.NoError(t, err)

	annotated := def.WithAnnotations(def.Annotations().Set("doc", "adds two numbers"))
	h2, err := hash.DefinitionHash(annotated)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
}

func TestHashSensitiveToSemanticChange(t *testing.T) {
	tree := ast.NewTree()
	def := buildAdd(tree)
	h1, err := hash.DefinitionHash(def)
	require.NoError(t, err)

	renamed := tree.Build(symbol.Span{}, ast.ValueDef{Name: "addTwo", Body: def.Data().(ast.ValueDef).Body})
	h2, err := hash.DefinitionHash(renamed)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestHashRejectsHole(t *testing.T) {
	tree := ast.NewTree()
	h := tree.Build(symbol.Span{}, ast.Hole{Match: ast.KindLitInt})
	_, err := hash.NewHasher().HashNode(h)
	assert.Error(t, err)
}

func TestDefinitionHashRejectsNonDefinitionRoot(t *testing.T) {
	tree := ast.NewTree()
	n := tree.Build(symbol.Span{}, ast.LitInt{Value: 1})
	_, err := hash.DefinitionHash(n)
	assert.Error(t, err)
}

func TestEncodeDecodeIntegrityRoundTrip(t *testing.T) {
	tree := ast.NewTree()
	def := buildAdd(tree)
	module := tree.Build(symbol.Span{}, ast.Module{Name: "Math", Definitions: []*ast.Node{def}})
	unit := tree.Build(symbol.Span{}, ast.CompilationUnit{Modules: []*ast.Node{module}})

	data, err := hash.Encode(unit)
	require.NoError(t, err)
	require.NoError(t, hash.VerifyIntegrity(data))

	v, err := hash.Version(data)
	require.NoError(t, err)
	assert.Equal(t, byte(1), v)

	corrupt := append([]byte{}, data...)
	corrupt[len(corrupt)-1] ^= 0xFF
	assert.Error(t, hash.VerifyIntegrity(corrupt))
}

func TestDiffFindsChangedLeaf(t *testing.T) {
	tree := ast.NewTree()
	def1 := buildAdd(tree)
	lam := def1.Data().(ast.ValueDef).Body
	body := lam.Data().(ast.Lambda).Body
	args := body.Data().(ast.Application).Args

	newY := tree.Build(symbol.Span{}, ast.LitInt{Value: 0})
	newArgs := append(append([]*ast.Node{}, args[:1]...), newY)
	newBody := tree.Build(symbol.Span{}, ast.Application{Func: body.Data().(ast.Application).Func, Args: newArgs})
	newLam := tree.Build(symbol.Span{}, ast.Lambda{Params: lam.Data().(ast.Lambda).Params, Body: newBody})
	def2 := tree.Build(symbol.Span{}, ast.ValueDef{Name: "add", Body: newLam})

	diffs, err := hash.Diff(def1, def2)
	require.NoError(t, err)
	assert.NotEmpty(t, diffs)
}

func TestDiffEmptyForIdenticalSubtrees(t *testing.T) {
	tree := ast.NewTree()
	def1 := buildAdd(tree)
	def2 := buildAdd(tree)

	diffs, err := hash.Diff(def1, def2)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}
