package css

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sheet = `body { color: red; }
@media print { body { color: black; } }
@media screen { .nav { display: none; } }
@media (max-width: 600px) { .nav { display: block; } }
`

func TestMediaCount(t *testing.T) {
	m, err := Parse(sheet)
	require.NoError(t, err)

	require.Len(t, m.FindAll("@media"), 3)

	printRules := m.FindAll("@media+print")
	require.Len(t, printRules, 1)
	require.Equal(t, "@media print N<2>", printRules[0].Key)
}

func TestDeterministicKeys(t *testing.T) {
	a, err := Parse(sheet)
	require.NoError(t, err)
	b, err := Parse(sheet)
	require.NoError(t, err)

	keys := func(m *SOM) []string {
		var out []string
		for _, r := range m.Structure().Root {
			out = append(out, r.Key)
		}
		return out
	}
	require.Equal(t, keys(a), keys(b))
}

func TestCompile(t *testing.T) {
	tests := []struct {
		pattern string
		levels  int
	}{
		{pattern: "body", levels: 1},
		{pattern: "body, color", levels: 2},
		{pattern: "@media+print, body, color", levels: 3},
		{pattern: " , ", levels: 0},
	}
	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			m := Compile(tc.pattern)
			require.Equal(t, tc.levels, m.Levels())
			require.Equal(t, tc.pattern, m.String())
		})
	}
}

func TestEscapedWildcard(t *testing.T) {
	m, err := Parse("* { margin: 0; }\nbody { margin: 1px; }\n")
	require.NoError(t, err)

	got := m.FindAll("*")
	require.Len(t, got, 1)
	require.Equal(t, "* N<1>", got[0].Key)
}

func TestUpdateStructure(t *testing.T) {
	m, err := Parse(sheet)
	require.NoError(t, err)

	before := m.Structure()
	m.UpdateStructure(Structure{Src: "x"})

	require.NotNil(t, m.Structure().Root)
	require.Empty(t, m.FindAll("@media"))
	require.True(t, m.Find("@media").Empty())
	require.Equal(t, "x", m.Source())

	// Snapshots taken earlier keep their view.
	require.Len(t, before.Root, 4)
}

func TestSourceSlice(t *testing.T) {
	m, err := Parse(sheet)
	require.NoError(t, err)

	r := m.Find("body")
	require.False(t, r.Empty())
	require.Equal(t, "body { color: red; }",
		m.SourceSlice(r.Loc.StartLine, r.Loc.EndLine, r.Loc.StartCol, r.Loc.EndCol))
	require.Equal(t, "@media print { body { color: black; } }", m.SourceSlice(2, 2, 0, 0))
	require.Equal(t, "", m.Value(Rule{}))
}

func TestKeysUniquePerLevel(t *testing.T) {
	m, err := Parse("body {}\nbody {}\n@media print { a { color: red; } a { color: red; } }\n")
	require.NoError(t, err)

	var count int
	var check func(level []*Rule)
	check = func(level []*Rule) {
		seen := map[string]bool{}
		for _, r := range level {
			require.False(t, seen[r.Key], "duplicate key %q", r.Key)
			seen[r.Key] = true
			count++
			check(r.Children)
		}
	}
	check(m.Structure().Root)
	require.Equal(t, 7, count)
	require.Len(t, m.FindAll("body"), 2)
}

func TestZeroSOM(t *testing.T) {
	var m SOM
	require.Empty(t, m.FindAll("body"))
	require.True(t, m.Find("body").Empty())
	require.Equal(t, "", m.Source())
	require.Empty(t, m.Structure().Root)
}
