package xtest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/namespace"
	"github.com/xlg-lang/xlg/pkg/symbol"
	"github.com/xlg-lang/xlg/pkg/xtest"
)

func span() symbol.Span { return symbol.Span{ByteStart: 0, ByteEnd: 1} }

func TestIsTestNameMatchesConvention(t *testing.T) {
	assert.True(t, xtest.IsTestName("test_addition"))
	assert.True(t, xtest.IsTestName("testAddition"))
	assert.False(t, xtest.IsTestName("test"))
	assert.False(t, xtest.IsTestName("add"))
}

func TestDiscoverFindsOnlyTestNamedDefinitions(t *testing.T) {
	tree := ast.NewTree()
	store := namespace.New()

	pass := tree.Build(span(), ast.ValueDef{Name: "test_true", Body: tree.Build(span(), ast.LitBool{Value: true})})
	_, err := store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.test_true", Root: pass})
	require.NoError(t, err)

	helper := tree.Build(span(), ast.ValueDef{Name: "add", Body: tree.Build(span(), ast.LitInt{Value: 1})})
	_, err = store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.add", Root: helper})
	require.NoError(t, err)

	cases := xtest.Discover(store.Root())
	require.Len(t, cases, 1)
	assert.Equal(t, "Main.test_true", cases[0].Path)
}

func TestRunPassesOnWellTypedDefinitionAndCachesResult(t *testing.T) {
	tree := ast.NewTree()
	store := namespace.New()

	def := tree.Build(span(), ast.ValueDef{Name: "test_ok", Body: tree.Build(span(), ast.LitBool{Value: true})})
	_, err := store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.test_ok", Root: def})
	require.NoError(t, err)

	cases := xtest.Discover(store.Root())
	require.Len(t, cases, 1)

	cache := mustEmptyCache(t)
	results, err := xtest.Run(context.Background(), store.HashResolver(), cases, cache, xtest.Config{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, xtest.StatusPass, results[0].Outcome.Status)
	assert.False(t, results[0].Cached)

	cachedResults, err := xtest.Run(context.Background(), store.HashResolver(), cases, cache, xtest.Config{})
	require.NoError(t, err)
	require.Len(t, cachedResults, 1)
	assert.True(t, cachedResults[0].Cached)
	assert.Equal(t, xtest.StatusPass, cachedResults[0].Outcome.Status)
}

func TestRunReportsFailureOnUnresolvedName(t *testing.T) {
	tree := ast.NewTree()
	store := namespace.New()

	body := tree.Build(span(), ast.RefSymbolic{Name: "nope"})
	def := tree.Build(span(), ast.ValueDef{Name: "test_broken", Body: body})
	_, err := store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.test_broken", Root: def})
	require.NoError(t, err)

	cases := xtest.Discover(store.Root())
	cache := mustEmptyCache(t)
	results, err := xtest.Run(context.Background(), store.HashResolver(), cases, cache, xtest.Config{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, xtest.StatusFail, results[0].Outcome.Status)
	assert.NotEmpty(t, results[0].Outcome.Message)
}

func TestRunHonorsShouldFailAttribute(t *testing.T) {
	tree := ast.NewTree()
	store := namespace.New()

	body := tree.Build(span(), ast.RefSymbolic{Name: "nope"})
	def := tree.Build(span(), ast.ValueDef{Name: "test_should_fail_lookup", Body: body})
	_, err := store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.test_should_fail_lookup", Root: def})
	require.NoError(t, err)

	cases := xtest.Discover(store.Root())
	cache := mustEmptyCache(t)
	results, err := xtest.Run(context.Background(), store.HashResolver(), cases, cache, xtest.Config{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, xtest.StatusPass, results[0].Outcome.Status)
}

func mustEmptyCache(t *testing.T) *xtest.Cache {
	t.Helper()
	cache, err := xtest.OpenCache(t.TempDir())
	require.NoError(t, err)
	return cache
}
