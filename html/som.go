// Package html builds a structured object model from HTML source and answers
// descendant queries with class, id and attribute filters against it.
package html

import (
	"context"

	"github.com/smacker/go-tree-sitter/html"

	"github.com/arjunmahishi/autograder/som"
)

// Structure is a snapshot of an HTML SOM.
type Structure struct {
	Root []*Element `json:"som" yaml:"som"`
	Src  string     `json:"src" yaml:"src"`
}

// SOM is the structured object model of an HTML document. The zero SOM is an
// empty document.
type SOM struct {
	snap som.Snapshot[Structure]
	opts []Option
}

// Parse parses HTML source into a SOM. Options apply to every query run on it.
func Parse(src string, opts ...Option) (*SOM, error) {
	return ParseContext(context.Background(), src, opts...)
}

// ParseContext parses HTML source into a SOM. Malformed markup yields a partial
// SOM; an error is returned only when no tree could be produced.
func ParseContext(ctx context.Context, src string, opts ...Option) (*SOM, error) {
	tree, err := som.Parse(ctx, html.GetLanguage(), []byte(src))
	if err != nil {
		return New(Structure{Src: src}, opts...), err
	}
	b := builder{src: []byte(src)}
	return New(Structure{Root: b.level(tree.RootNode(), 0), Src: src}, opts...), nil
}

// New wraps an existing structure.
func New(s Structure, opts ...Option) *SOM {
	m := &SOM{opts: opts}
	m.UpdateStructure(s)
	return m
}

// UpdateStructure replaces the snapshot. A nil root is replaced by an empty one.
func (m *SOM) UpdateStructure(s Structure) {
	if s.Root == nil {
		s.Root = []*Element{}
	}
	m.snap.Store(s)
}

// Structure returns a copy of the current snapshot.
func (m *SOM) Structure() Structure {
	s := m.snap.Load()
	root := make([]*Element, len(s.Root))
	copy(root, s.Root)
	return Structure{Root: root, Src: s.Src}
}

// Source returns the source text the SOM was built from.
func (m *SOM) Source() string {
	return m.snap.Load().Src
}

// Compile compiles a query with the options of this SOM.
func (m *SOM) Compile(pattern string) *Matcher {
	return Compile(pattern, m.opts...)
}

// FindAll returns every element matching the query, in document order.
func (m *SOM) FindAll(pattern string) []*Element {
	return m.FindAllWith(m.Compile(pattern))
}

// FindAllWith runs a precompiled query.
func (m *SOM) FindAllWith(q *Matcher) []*Element {
	matches := q.FindAll(m.snap.Load().Root)
	if matches == nil {
		return []*Element{}
	}
	return matches
}

// Find returns the first element matching the query, or the zero Element.
func (m *SOM) Find(pattern string) Element {
	matches := m.FindAll(pattern)
	if len(matches) == 0 {
		return Element{}
	}
	return *matches[0]
}

// SourceSlice returns part of the source. With zero columns whole lines are
// returned.
func (m *SOM) SourceSlice(startLine, endLine, startCol, endCol int) string {
	return som.SourceSlice(m.Source(), startLine, endLine, startCol, endCol)
}

// Value returns the exact source text of an element.
func (m *SOM) Value(e Element) string {
	if e.Empty() {
		return ""
	}
	return som.Slice(m.Source(), e.Loc)
}
