package namespace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlg-lang/xlg/pkg/ast"
	"github.com/xlg-lang/xlg/pkg/hm"
	"github.com/xlg-lang/xlg/pkg/namespace"
	"github.com/xlg-lang/xlg/pkg/symbol"
)

func span() symbol.Span { return symbol.Span{ByteStart: 0, ByteEnd: 1} }

func valueDef(tree *ast.Tree, name string, body *ast.Node) *ast.Node {
	return tree.Build(span(), ast.ValueDef{Name: name, Body: body})
}

func litInt(tree *ast.Tree, v int64) *ast.Node {
	return tree.Build(span(), ast.LitInt{Value: v})
}

func refSymbolic(tree *ast.Tree, name string) *ast.Node {
	return tree.Build(span(), ast.RefSymbolic{Name: name})
}

func withType(n *ast.Node, t hm.Type) *ast.Node {
	return n.WithTypeInfo(&ast.TypeInfo{Mono: t})
}

func TestCommitAppendsVersionOnFirstCommit(t *testing.T) {
	tree := ast.NewTree()
	store := namespace.New()

	def := valueDef(tree, "one", litInt(tree, 1))
	v, err := store.Commit(namespace.Session{Author: "ada"}, namespace.PendingEdit{Path: "Main.one", Root: def})
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "Edit Main.one", v.Message)

	got, err := store.Resolve("Main.one")
	require.NoError(t, err)
	assert.Equal(t, v.Hash, got.Head().Hash)
}

func TestCommitSkipsWhenContentUnchanged(t *testing.T) {
	tree := ast.NewTree()
	store := namespace.New()

	def := valueDef(tree, "one", litInt(tree, 1))
	_, err := store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.one", Root: def})
	require.NoError(t, err)

	sameShape := valueDef(tree, "one", litInt(tree, 1))
	v2, err := store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.one", Root: sameShape})
	require.NoError(t, err)
	assert.Nil(t, v2)

	got, _ := store.Resolve("Main.one")
	assert.Len(t, got.History, 1)
}

func TestResolveUnknownPathFails(t *testing.T) {
	store := namespace.New()
	_, err := store.Resolve("Main.missing")
	require.Error(t, err)
	var notFound namespace.PathNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestTagIsIdempotentOnSameHash(t *testing.T) {
	tree := ast.NewTree()
	store := namespace.New()
	def := valueDef(tree, "one", litInt(tree, 1))
	_, err := store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.one", Root: def})
	require.NoError(t, err)

	require.NoError(t, store.Tag("Main.one", "1.0.0"))
	require.NoError(t, store.Tag("Main.one", "1.0.0"))
}

func TestTagRejectsMovingToADifferentHash(t *testing.T) {
	tree := ast.NewTree()
	store := namespace.New()
	def := valueDef(tree, "one", litInt(tree, 1))
	_, err := store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.one", Root: def})
	require.NoError(t, err)
	require.NoError(t, store.Tag("Main.one", "1.0.0"))

	changed := valueDef(tree, "one", litInt(tree, 2))
	_, err = store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.one", Root: changed})
	require.NoError(t, err)

	err = store.Tag("Main.one", "1.0.0")
	require.Error(t, err)
	var immutable namespace.TagImmutable
	require.ErrorAs(t, err, &immutable)
}

func TestCommitBatchOrdersByDependency(t *testing.T) {
	tree := ast.NewTree()
	store := namespace.New()

	// b depends on a (bare reference); committed in reverse batch order.
	aDef := valueDef(tree, "a", litInt(tree, 1))
	bDef := valueDef(tree, "b", refSymbolic(tree, "a"))

	versions, err := store.CommitBatch(namespace.Session{}, []namespace.PendingEdit{
		{Path: "Main.b", Root: bDef},
		{Path: "Main.a", Root: aDef},
	})
	require.NoError(t, err)
	require.Len(t, versions, 2)

	bVersion, aVersion := versions[0], versions[1]
	require.NotNil(t, aVersion)
	require.NotNil(t, bVersion)
	assert.Contains(t, bVersion.Deps, aVersion.Hash)
}

func TestCommitBatchHandlesMutualRecursionAsOneGroup(t *testing.T) {
	tree := ast.NewTree()
	store := namespace.New()

	evenDef := valueDef(tree, "even", refSymbolic(tree, "odd"))
	oddDef := valueDef(tree, "odd", refSymbolic(tree, "even"))

	versions, err := store.CommitBatch(namespace.Session{}, []namespace.PendingEdit{
		{Path: "Main.even", Root: evenDef},
		{Path: "Main.odd", Root: oddDef},
	})
	require.NoError(t, err)
	require.Len(t, versions, 2)
	require.NotNil(t, versions[0])
	require.NotNil(t, versions[1])

	assert.Contains(t, versions[0].Deps, versions[1].Hash)
	assert.Contains(t, versions[1].Deps, versions[0].Hash)
}

func TestCompareIdenticalSchemes(t *testing.T) {
	tree := ast.NewTree()
	v1 := &namespace.Version{Root: withType(litInt(tree, 1), hm.TypeConst("Int"))}
	v2 := &namespace.Version{Root: withType(litInt(tree, 2), hm.TypeConst("Int"))}
	assert.Equal(t, namespace.Identical, namespace.Compare(v1, v2))
}

func TestCompareUnknownWithoutTypeInfo(t *testing.T) {
	tree := ast.NewTree()
	v1 := &namespace.Version{Root: litInt(tree, 1)}
	v2 := &namespace.Version{Root: litInt(tree, 2)}
	assert.Equal(t, namespace.Unknown, namespace.Compare(v1, v2))
}

func TestMerkleHashChangesWithContent(t *testing.T) {
	tree := ast.NewTree()
	store := namespace.New()
	def := valueDef(tree, "one", litInt(tree, 1))
	_, err := store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.one", Root: def})
	require.NoError(t, err)
	before := store.MerkleHash()

	changed := valueDef(tree, "one", litInt(tree, 2))
	_, err = store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.one", Root: changed})
	require.NoError(t, err)
	after := store.MerkleHash()

	assert.NotEqual(t, before, after)
}

func TestHashResolverAnswersCommittedDefinitions(t *testing.T) {
	tree := ast.NewTree()
	store := namespace.New()
	def := withType(valueDef(tree, "one", litInt(tree, 1)), hm.TypeConst("Int"))
	v, err := store.Commit(namespace.Session{}, namespace.PendingEdit{Path: "Main.one", Root: def})
	require.NoError(t, err)

	resolver := store.HashResolver()
	scheme, ok := resolver(v.Hash)
	require.True(t, ok)
	typ, ok := scheme.Type()
	require.True(t, ok)
	assert.True(t, typ.Eq(hm.TypeConst("Int")))
}
