package som

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"
)

func TestSplitTopFunc(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{query: "ul li", want: []string{"ul", "li"}},
		{query: "ul\tli\na", want: []string{"ul", "li", "a"}},
		{query: "  ul \t\n li  ", want: []string{"ul", "li"}},
		{query: `a[title="x y"]	b`, want: []string{`a[title="x y"]`, "b"}},
		{query: "", want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			require.Equal(t, tc.want, SplitTopFunc(tc.query, unicode.IsSpace))
		})
	}

	require.Equal(t, []string{"a", "f(b, c)"}, SplitTop("a, f(b, c)", ','))
}

func TestZeroSnapshot(t *testing.T) {
	type structure struct{ Src string }

	var s Snapshot[structure]
	require.Equal(t, "", s.Load().Src)

	s.Store(structure{Src: "x"})
	first := s.Load()
	s.Store(structure{Src: "y"})
	require.Equal(t, "x", first.Src)
	require.Equal(t, "y", s.Load().Src)
}
