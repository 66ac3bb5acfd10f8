package som

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrParse is returned when the parser yields no tree at all.
var ErrParse = errors.New("parse failed")

// Parser wraps a tree-sitter parser for a single grammar. A Parser is not safe
// for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a parser for the given grammar.
func NewParser(language *sitter.Language) *Parser {
	p := sitter.NewParser()
	p.SetLanguage(language)
	return &Parser{parser: p}
}

// Parse parses source code and returns the syntax tree.
func (p *Parser) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	if tree == nil {
		return nil, ErrParse
	}
	return tree, nil
}

// Parse is a convenience wrapper that parses source with a fresh parser.
func Parse(ctx context.Context, language *sitter.Language, source []byte) (*sitter.Tree, error) {
	return NewParser(language).Parse(ctx, source)
}

// Children returns every child of node, named or not.
func Children(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := int(node.ChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		if child := node.Child(i); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// NamedChildren returns the named children of node.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := int(node.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		if child := node.NamedChild(i); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// FirstChildOfType returns the first direct child whose type is one of types.
func FirstChildOfType(node *sitter.Node, types ...string) *sitter.Node {
	for _, child := range Children(node) {
		for _, t := range types {
			if child.Type() == t {
				return child
			}
		}
	}
	return nil
}

// Text returns the source text of node.
func Text(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(source)
}
