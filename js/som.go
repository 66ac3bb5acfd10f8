// Package js builds a structured object model from JavaScript source. Every
// statement, declaration and class member gets a descriptive key, and classes,
// functions and variables are indexed for quick lookup.
package js

import (
	"context"
	"strings"

	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/arjunmahishi/autograder/som"
)

// Structure is a snapshot of a JS SOM. The indices hold entries of Root at any
// depth, in document order.
type Structure struct {
	Root      []*Entry `json:"som" yaml:"som"`
	Classes   []*Entry `json:"classes" yaml:"classes"`
	Functions []*Entry `json:"functions" yaml:"functions"`
	Variables []*Entry `json:"variables" yaml:"variables"`
	Src       string   `json:"src" yaml:"src"`
}

// SOM is the structured object model of a script. The zero SOM is an empty
// script.
type SOM struct {
	snap som.Snapshot[Structure]
}

// Parse parses JavaScript source into a SOM. Syntax errors are returned as a
// *ParseError and no SOM is built.
func Parse(src string) (*SOM, error) {
	return ParseContext(context.Background(), src)
}

// ParseContext is Parse with a context for the parser.
func ParseContext(ctx context.Context, src string) (*SOM, error) {
	tree, err := som.Parse(ctx, javascript.GetLanguage(), []byte(src))
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	root := tree.RootNode()
	if bad := som.FirstError(root); bad != nil {
		return nil, newParseError(bad, []byte(src))
	}
	b := newBuilder([]byte(src))
	return New(Structure{Root: b.statements(root), Src: src}), nil
}

// New wraps an existing structure.
func New(s Structure) *SOM {
	m := &SOM{}
	m.UpdateStructure(s)
	return m
}

// UpdateStructure replaces the snapshot. A nil root is replaced by an empty one
// and missing indices are rebuilt from the root.
func (m *SOM) UpdateStructure(s Structure) {
	if s.Root == nil {
		s.Root = []*Entry{}
	}
	if s.Classes == nil || s.Functions == nil || s.Variables == nil {
		classes, functions, variables := index(s.Root)
		if s.Classes == nil {
			s.Classes = classes
		}
		if s.Functions == nil {
			s.Functions = functions
		}
		if s.Variables == nil {
			s.Variables = variables
		}
	}
	m.snap.Store(s)
}

// index sorts entries into the class, function and variable indices by key.
func index(root []*Entry) (classes, functions, variables []*Entry) {
	classes, functions, variables = []*Entry{}, []*Entry{}, []*Entry{}
	som.Walk(root, func(e *Entry) bool {
		if strings.Contains(e.Key, "class ") {
			classes = append(classes, e)
		}
		if strings.Contains(e.Key, "function ") {
			functions = append(functions, e)
		}
		if strings.Contains(e.Key, "const ") || strings.Contains(e.Key, "let ") ||
			strings.Contains(e.Key, "var ") {
			variables = append(variables, e)
		}
		return true
	})
	return classes, functions, variables
}

// Structure returns a copy of the current snapshot.
func (m *SOM) Structure() Structure {
	s := m.snap.Load()
	return Structure{
		Root:      append([]*Entry{}, s.Root...),
		Classes:   append([]*Entry{}, s.Classes...),
		Functions: append([]*Entry{}, s.Functions...),
		Variables: append([]*Entry{}, s.Variables...),
		Src:       s.Src,
	}
}

// Source returns the source text the SOM was built from.
func (m *SOM) Source() string {
	return m.snap.Load().Src
}

// FindAll returns every entry matching the query. Queries naming a class,
// function or variable start from the matching index.
func (m *SOM) FindAll(pattern string) []*Entry {
	return m.FindAllWith(Compile(pattern))
}

// FindAllWith runs a precompiled query.
func (m *SOM) FindAllWith(q *Matcher) []*Entry {
	s := m.snap.Load()
	scope := s.Root
	switch q.Category() {
	case Classes:
		scope = s.Classes
	case Functions:
		scope = s.Functions
	case Variables:
		scope = s.Variables
	}
	matches := q.FindAll(scope)
	if matches == nil {
		return []*Entry{}
	}
	return matches
}

// Find returns the first entry matching the query, or the zero Entry.
func (m *SOM) Find(pattern string) Entry {
	matches := m.FindAll(pattern)
	if len(matches) == 0 {
		return Entry{}
	}
	return *matches[0]
}

// SourceSlice returns part of the source. With zero columns whole lines are
// returned.
func (m *SOM) SourceSlice(startLine, endLine, startCol, endCol int) string {
	return som.SourceSlice(m.Source(), startLine, endLine, startCol, endCol)
}

// Value returns the whole source lines covered by an entry.
func (m *SOM) Value(e Entry) string {
	if e.Empty() {
		return ""
	}
	return som.Lines(m.Source(), e.Loc)
}
