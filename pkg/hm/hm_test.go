package hm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlg-lang/xlg/pkg/hm"
)

func TestUnifyBaseTypes(t *testing.T) {
	subs, err := hm.Unify(hm.Int, hm.Int)
	require.NoError(t, err)
	require.Empty(t, subs)

	_, err = hm.Unify(hm.Int, hm.Text)
	require.Error(t, err)
}

func TestUnifyTypeVariable(t *testing.T) {
	subs, err := hm.Unify(hm.TypeVariable('a'), hm.Int)
	require.NoError(t, err)
	got, ok := subs.Get(hm.TypeVariable('a'))
	require.True(t, ok)
	assert.True(t, got.Eq(hm.Int))
}

func TestOccursCheck(t *testing.T) {
	list := hm.ListType{Elem: hm.TypeVariable('a')}
	_, err := hm.Unify(hm.TypeVariable('a'), list)
	require.Error(t, err)
}

func TestUnifyFunctionEffects(t *testing.T) {
	f1 := hm.NewFnTypeWithEffects(hm.Unit, hm.Int, hm.ClosedRow("IO"))
	f2 := hm.NewFnTypeWithEffects(hm.Unit, hm.Int, hm.OpenRow('r'))

	subs, err := hm.Unify(f1, f2)
	require.NoError(t, err)

	bound, ok := subs.Get('r')
	require.True(t, ok)
	row, ok := bound.(*hm.EffectRow)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"IO"}, row.Names())
}

func TestUnifyClosedRowsMismatch(t *testing.T) {
	_, err := hm.Unify(hm.ClosedRow("IO"), hm.ClosedRow("State"))
	require.Error(t, err)
}

func TestUnifyRecordsRowPolymorphic(t *testing.T) {
	open := hm.OpenRecord('r', hm.RecordField{Name: "x", Type: hm.Int})
	closed := hm.ClosedRecord(
		hm.RecordField{Name: "x", Type: hm.Int},
		hm.RecordField{Name: "y", Type: hm.Text},
	)

	subs, err := hm.Unify(open, closed)
	require.NoError(t, err)

	bound, ok := subs.Get('r')
	require.True(t, ok)
	rec, ok := bound.(*hm.RecordType)
	require.True(t, ok)
	yt, found := rec.FieldType("y")
	require.True(t, found)
	assert.True(t, yt.Eq(hm.Text))
}

func TestGeneralizeAndInstantiate(t *testing.T) {
	env := hm.NewSimpleEnv()
	fn := hm.NewFnType(hm.TypeVariable('a'), hm.TypeVariable('a'))
	scheme := hm.Generalize(env, fn)
	assert.Len(t, scheme.TypeVars(), 1)

	fresher := hm.NewSimpleFresher()
	instantiated := hm.Instantiate(fresher, scheme)
	ft, ok := instantiated.(*hm.FunctionType)
	require.True(t, ok)
	assert.True(t, ft.Arg().Eq(ft.Ret()))
	assert.False(t, ft.Arg().Eq(hm.TypeVariable('a')))
}

func TestVariantNominalEquality(t *testing.T) {
	a := hm.VariantType{Name_: "Color", Args: nil}
	b := hm.VariantType{Name_: "Color", Args: nil}
	c := hm.VariantType{Name_: "Shape", Args: nil}
	assert.True(t, a.Eq(b))
	assert.False(t, a.Eq(c))
}

func TestEffectRowRemove(t *testing.T) {
	row := hm.ClosedRow("IO", "State")
	after := row.Remove("IO")
	assert.ElementsMatch(t, []string{"State"}, after.Names())
}
