package js

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyntaxError(t *testing.T) {
	m, err := Parse("function ( {")
	require.Nil(t, m)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 1, pe.Line)
	require.GreaterOrEqual(t, pe.Column, 1)
	require.NotEmpty(t, pe.Message)
	require.Contains(t, pe.Error(), "SyntaxError")
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		pattern string
		want    Category
	}{
		{pattern: "class Shape", want: Classes},
		{pattern: "Class", want: Classes},
		{pattern: "function draw", want: Functions},
		{pattern: "const", want: Variables},
		{pattern: "let x", want: Variables},
		{pattern: "variables", want: Variables},
		{pattern: "if statement", want: All},
		{pattern: "console.log", want: All},
	}
	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			require.Equal(t, tc.want, Compile(tc.pattern).Category())
		})
	}
}

func TestStaticBlockAndExport(t *testing.T) {
	src := `class A {
  static {
    init();
  }
  static #secret() {}
}
export function go() {}
`
	m, err := Parse(src)
	require.NoError(t, err)

	root := m.Structure().Root
	require.Len(t, root, 2)
	require.Equal(t, "class A N<1>", root[0].Key)
	require.Len(t, root[0].Children, 2)
	require.Equal(t, "static block N<2>", root[0].Children[0].Key)
	require.Equal(t, "call init N<3>", root[0].Children[0].Children[0].Key)
	require.Equal(t, "private static method #secret N<4>", root[0].Children[1].Key)
	require.Equal(t, "export function go N<6>", root[1].Key)

	fns := m.FindAll("function go")
	require.Len(t, fns, 1)
	require.Equal(t, "export_statement", fns[0].Payload.Kind)
}

func TestTryLabels(t *testing.T) {
	m, err := Parse("try { a(); } catch (e) {}\ntry { b(); } catch (e) {} finally { c(); }\n")
	require.NoError(t, err)

	root := m.Structure().Root
	require.Len(t, root, 2)
	require.Equal(t, "try catch statement N<1>", root[0].Key)
	require.Equal(t, "try catch finally statement N<4>", root[1].Key)
}

func TestUpdateStructureRebuildsIndices(t *testing.T) {
	m, err := Parse("class A {}\nlet x = 1;\nfunction f() {}\n")
	require.NoError(t, err)

	s := m.Structure()
	m.UpdateStructure(Structure{Root: s.Root, Src: s.Src})

	got := m.Structure()
	require.Len(t, got.Classes, 1)
	require.Len(t, got.Variables, 1)
	require.Len(t, got.Functions, 1)

	m.UpdateStructure(Structure{})
	require.NotNil(t, m.Structure().Root)
	require.Empty(t, m.FindAll("class"))
	require.True(t, m.Find("let").Empty())
	require.Equal(t, "", m.Value(Entry{}))
}

func TestDeterministic(t *testing.T) {
	src := "const a = 1;\nif (a) { a++; }\nwhile (a) { a--; }\n"
	first, err := Parse(src)
	require.NoError(t, err)
	second, err := Parse(src)
	require.NoError(t, err)

	keys := func(m *SOM) []string {
		var out []string
		for _, e := range m.FindAll("a") {
			out = append(out, e.Key)
		}
		return out
	}
	require.Equal(t, keys(first), keys(second))
}

func TestKeysUniquePerLevel(t *testing.T) {
	m, err := Parse("a++;\na++;\nfunction f() { a++; a++; }\n")
	require.NoError(t, err)

	var check func(level []*Entry)
	check = func(level []*Entry) {
		seen := map[string]bool{}
		for _, e := range level {
			require.False(t, seen[e.Key], "duplicate key %q", e.Key)
			seen[e.Key] = true
			check(e.Children)
		}
	}
	check(m.Structure().Root)
	require.Len(t, m.Structure().Root, 3)
}

func TestZeroSOM(t *testing.T) {
	var m SOM
	require.Empty(t, m.FindAll("function"))
	require.True(t, m.Find("function").Empty())
	require.Equal(t, "", m.Source())

	s := m.Structure()
	require.Empty(t, s.Root)
	require.Empty(t, s.Functions)
}
