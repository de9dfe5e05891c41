package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xlg-lang/xlg/pkg/symbol"
)

func TestInternIsStable(t *testing.T) {
	r := symbol.NewRegistry()

	a := r.Intern("Core.List.map")
	b := r.Intern("Core.List.map")
	require.Equal(t, a, b)

	c := r.Intern("Core.List.filter")
	require.NotEqual(t, a, c)

	require.Equal(t, "Core.List.map", r.Name(a))
	require.Equal(t, "Core.List.filter", r.Name(c))
	require.Equal(t, 2, r.Len())
}

func TestSpanContains(t *testing.T) {
	s := symbol.Span{ByteStart: 10, ByteEnd: 20}
	require.True(t, s.Contains(10))
	require.True(t, s.Contains(19))
	require.False(t, s.Contains(20))
	require.False(t, s.Contains(9))
}
