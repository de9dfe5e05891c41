package similarity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hash"
	"github.com/xlg-lang/xlg/pkg/similarity"
	"github.com/xlg-lang/xlg/pkg/symbol"
)

func buildAdd(tree *ast.Tree, name, paramA, paramB string) ast.ValueDef {
	x := tree.Build(symbol.Span{}, ast.RefSymbolic{Name: paramA})
	y := tree.Build(symbol.Span{}, ast.RefSymbolic{Name: paramB})
	body := tree.Build(symbol.Span{}, ast.Application{
		Func: tree.Build(symbol.Span{}, ast.RefSymbolic{Name: "+"}),
		Args: []*ast.Node{x, y},
	})
	lam := tree.Build(symbol.Span{}, ast.Lambda{
		Params: []ast.LambdaParam{{Name: paramA}, {Name: paramB}},
		Body:   body,
	})
	return ast.ValueDef{Name: name, Body: lam}
}

func buildGreeting(tree *ast.Tree, name string) ast.ValueDef {
	lam := tree.Build(symbol.Span{}, ast.Lambda{
		Body: tree.Build(symbol.Span{}, ast.LitText{Value: "hello"}),
	})
	return ast.ValueDef{Name: name, Body: lam}
}

func TestFindSimilarReportsExactStructuralDuplicateUnderDifferentName(t *testing.T) {
	tree := ast.NewTree()
	repo := similarity.NewRepository()

	sum := buildAdd(tree, "sum", "a", "b")
	sumHash, err := hash.DefinitionHash(tree.Build(symbol.Span{}, sum))
	require.NoError(t, err)
	require.NoError(t, repo.Index("math.sum", sumHash, sum))

	target := buildAdd(tree, "total", "a", "b")

	matches, err := repo.FindSimilar(target, 0.5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "math.sum", matches[0].Path)
	assert.True(t, matches[0].Exact)
	assert.Equal(t, 1.0, matches[0].Score)
}

func TestFindSimilarExcludesUnrelatedDefinitionsBelowThreshold(t *testing.T) {
	tree := ast.NewTree()
	repo := similarity.NewRepository()

	greeting := buildGreeting(tree, "hi")
	greetingHash, err := hash.DefinitionHash(tree.Build(symbol.Span{}, greeting))
	require.NoError(t, err)
	require.NoError(t, repo.Index("text.hi", greetingHash, greeting))

	target := buildAdd(tree, "total", "a", "b")

	matches, err := repo.FindSimilar(target, 0.9)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestComputeFingerprintDetectsSelfRecursion(t *testing.T) {
	tree := ast.NewTree()
	self := tree.Build(symbol.Span{}, ast.RefSymbolic{Name: "loop"})
	lam := tree.Build(symbol.Span{}, ast.Lambda{Body: self})
	def := ast.ValueDef{Name: "loop", Body: lam}

	fp, err := similarity.Compute(def)
	require.NoError(t, err)
	assert.True(t, fp.Features.IsRecursive)
}
