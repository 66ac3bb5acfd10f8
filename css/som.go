// Package css builds a structured object model from CSS source and answers
// selector-like queries against it.
package css

import (
	"context"

	"github.com/smacker/go-tree-sitter/css"

	"github.com/arjunmahishi/autograder/som"
)

// Structure is a snapshot of a CSS SOM.
type Structure struct {
	Root []*Rule `json:"som" yaml:"som"`
	Src  string  `json:"src" yaml:"src"`
}

// SOM is the structured object model of a stylesheet. It is safe for
// concurrent readers; UpdateStructure swaps the whole snapshot. The zero SOM is
// an empty stylesheet.
type SOM struct {
	snap som.Snapshot[Structure]
}

// Parse parses CSS source into a SOM.
func Parse(src string) (*SOM, error) {
	return ParseContext(context.Background(), src)
}

// ParseContext parses CSS source into a SOM. The grammar is error tolerant, so
// malformed CSS still produces a (possibly partial) SOM. A non-nil error is
// returned only when no tree could be produced; the SOM is empty but usable.
func ParseContext(ctx context.Context, src string) (*SOM, error) {
	tree, err := som.Parse(ctx, css.GetLanguage(), []byte(src))
	if err != nil {
		return New(Structure{Src: src}), err
	}
	b := newBuilder([]byte(src))
	return New(Structure{Root: b.items(tree.RootNode()), Src: src}), nil
}

// New wraps an existing structure.
func New(s Structure) *SOM {
	m := &SOM{}
	m.UpdateStructure(s)
	return m
}

// UpdateStructure replaces the snapshot. A nil root is replaced by an empty one.
func (m *SOM) UpdateStructure(s Structure) {
	if s.Root == nil {
		s.Root = []*Rule{}
	}
	m.snap.Store(s)
}

// Structure returns a copy of the current snapshot.
func (m *SOM) Structure() Structure {
	s := m.snap.Load()
	root := make([]*Rule, len(s.Root))
	copy(root, s.Root)
	return Structure{Root: root, Src: s.Src}
}

// Source returns the source text the SOM was built from.
func (m *SOM) Source() string {
	return m.snap.Load().Src
}

// FindAll returns every entry matching the query, in document order.
func (m *SOM) FindAll(pattern string) []*Rule {
	return m.FindAllWith(Compile(pattern))
}

// FindAllWith runs a precompiled query.
func (m *SOM) FindAllWith(q *Matcher) []*Rule {
	matches := q.FindAll(m.snap.Load().Root)
	if matches == nil {
		return []*Rule{}
	}
	return matches
}

// Find returns the first entry matching the query, or the zero Rule.
func (m *SOM) Find(pattern string) Rule {
	matches := m.FindAll(pattern)
	if len(matches) == 0 {
		return Rule{}
	}
	return *matches[0]
}

// SourceSlice returns part of the source. With zero columns whole lines are
// returned.
func (m *SOM) SourceSlice(startLine, endLine, startCol, endCol int) string {
	return som.SourceSlice(m.Source(), startLine, endLine, startCol, endCol)
}

// Value returns the source lines covered by an entry.
func (m *SOM) Value(r Rule) string {
	if r.Empty() {
		return ""
	}
	return som.Lines(m.Source(), r.Loc)
}
