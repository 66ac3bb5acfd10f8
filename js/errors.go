package js

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/autograder/som"
)

// ParseError describes JavaScript that could not be parsed. Line and Column
// are 1-based; both are 0 when no position is known.
type ParseError struct {
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return "SyntaxError: " + e.Message
	}
	return fmt.Sprintf("SyntaxError: %s (%d:%d)", e.Message, e.Line, e.Column)
}

// newParseError describes the first syntax error of a tree.
func newParseError(n *sitter.Node, src []byte) *ParseError {
	loc := som.SpanOf(n)
	pe := &ParseError{Line: loc.StartLine, Column: loc.StartCol}

	switch {
	case n.IsMissing():
		pe.Message = fmt.Sprintf("missing %q", n.Type())
	default:
		text := strings.TrimSpace(som.Text(n, src))
		if i := strings.IndexAny(text, "\r\n"); i >= 0 {
			text = text[:i]
		}
		if text == "" {
			pe.Message = "unexpected end of input"
		} else {
			pe.Message = fmt.Sprintf("unexpected token %q", firstToken(text))
		}
	}
	return pe
}

func firstToken(text string) string {
	if f := strings.Fields(text); len(f) > 0 {
		return f[0]
	}
	return text
}
