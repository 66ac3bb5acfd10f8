package html

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/autograder/som"
)

const page = `<ul>
  <li class="item">one</li>
  <li class="item active" data-id="2">two</li>
  <li><input type="checkbox" checked></li>
</ul>
`

func TestCompileTerm(t *testing.T) {
	tests := []struct {
		part    string
		classes []string
		filters []filter
		id      string
	}{
		{part: "p"},
		{part: "p.test.intro", classes: []string{"test", "intro"}},
		{part: "a[href]", filters: []filter{{Key: "href"}}},
		{part: `meta[name="description"]`, filters: []filter{{Key: "name", Value: "description"}}},
		{part: "a[href='/x.html']", filters: []filter{{Key: "href", Value: "/x.html"}}},
		{part: "a[DATA-Test=X]", filters: []filter{{Key: "data-test", Value: "X"}}},
		{part: "div#main.card", classes: []string{"card"}, id: "main"},
	}
	for _, tc := range tests {
		t.Run(tc.part, func(t *testing.T) {
			term := compileTerm(tc.part)
			require.Equal(t, tc.classes, term.classes)
			require.Equal(t, tc.filters, term.filters)
			require.Equal(t, tc.id, term.id)
		})
	}
}

func TestAttributes(t *testing.T) {
	m, err := Parse(page)
	require.NoError(t, err)

	input := m.Find("input[checked]")
	require.False(t, input.Empty())
	require.Equal(t, `input type="checkbox" checked="" N<5>`, input.Key)

	typ, ok := input.Payload.Get("type")
	require.True(t, ok)
	require.Equal(t, "checkbox", typ)
	require.True(t, input.Payload.Has("checked"))
	require.False(t, input.Payload.Has("disabled"))

	active := m.FindAll("li.active[data-id=2]")
	require.Len(t, active, 1)
	require.Equal(t, `li class="item active" data-id="2" N<3>`, active[0].Key)
}

func TestKeysUniquePerLevel(t *testing.T) {
	m, err := Parse(page)
	require.NoError(t, err)

	var check func(level []*Element)
	check = func(level []*Element) {
		seen := map[string]bool{}
		for _, e := range level {
			require.False(t, seen[e.Key], "duplicate key %q", e.Key)
			seen[e.Key] = true
			check(e.Children)
		}
	}
	check(m.Structure().Root)

	var count int
	som.Walk(m.Structure().Root, func(*Element) bool {
		count++
		return true
	})
	require.Equal(t, 5, count)
}

func TestStrictLevelsOnSOM(t *testing.T) {
	m, err := Parse(page, WithStrictLevels())
	require.NoError(t, err)
	require.Empty(t, m.FindAll("table li"))

	lenient, err := Parse(page)
	require.NoError(t, err)
	require.Len(t, lenient.FindAll("table li"), 3)
}

func TestUpdateStructureHeals(t *testing.T) {
	m := New(Structure{})
	require.NotNil(t, m.Structure().Root)
	require.Empty(t, m.FindAll("li"))
	require.True(t, m.Find("li").Empty())
	require.Equal(t, "", m.Value(Element{}))
}

func TestVoidElementSpan(t *testing.T) {
	m, err := Parse("<head>\n<meta charset=\"utf-8\">\n<title>T</title>\n</head>\n")
	require.NoError(t, err)

	meta := m.Find("meta")
	require.False(t, meta.Empty())
	require.Equal(t, som.Span{StartLine: 2, StartCol: 1, EndLine: 2, EndCol: 23}, meta.Loc)
	require.Equal(t, "2", meta.Loc.Lines())
	require.Equal(t, `<meta charset="utf-8">`, m.Value(meta))
	require.Equal(t, `<meta charset="utf-8">`, m.SourceSlice(meta.Loc.StartLine, meta.Loc.EndLine, 0, 0))

	head := m.Find("head")
	require.Equal(t, "1-4", head.Loc.Lines())
}

func TestUnclosedElementSpan(t *testing.T) {
	m, err := Parse("<div>\n<p>one\n<p>two\n</div>\n")
	require.NoError(t, err)

	ps := m.FindAll("p")
	require.Len(t, ps, 2)
	require.Equal(t, "2", ps[0].Loc.Lines())
	require.Equal(t, "<p>one", m.Value(*ps[0]))
	require.Equal(t, "3", ps[1].Loc.Lines())
}

func TestQueryCase(t *testing.T) {
	m, err := Parse(`<a data-test="x" href="/">home</a><a href="/about">about</a>`)
	require.NoError(t, err)

	want := m.FindAll("a[data-test=x]")
	require.Len(t, want, 1)
	require.Equal(t, want, m.FindAll("a[DATA-TEST=x]"))
	require.Equal(t, want, m.FindAll("A[Data-Test]"))
}

func TestQueryWhitespace(t *testing.T) {
	m, err := Parse(page)
	require.NoError(t, err)

	want := m.FindAll("ul li")
	require.Len(t, want, 3)
	for _, pattern := range []string{"ul\tli", "ul\nli", "  ul \t li  "} {
		require.Equal(t, 2, m.Compile(pattern).Levels(), pattern)
		require.Equal(t, want, m.FindAll(pattern), pattern)
	}

	q := Compile("li[data-id=\"2\"]\tb")
	require.Equal(t, 2, q.Levels())
}

func TestZeroSOM(t *testing.T) {
	var m SOM
	require.Empty(t, m.FindAll("p"))
	require.True(t, m.Find("p").Empty())
	require.Equal(t, "", m.Source())
	require.Empty(t, m.Structure().Root)
	require.Equal(t, "", m.SourceSlice(1, 1, 0, 0))
}
