// Package som defines the structured object model shared by the CSS, HTML and
// JS subsystems: located entries, the tree-sitter parse adapter, source slicing
// and the boundary patterns the query compilers are built from.
package som

import (
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
)

// Span is a location in a source file. Lines and columns are 1-based; EndCol
// points one past the last character of the span.
type Span struct {
	StartLine int `json:"start_line" yaml:"start_line"`
	StartCol  int `json:"start_col" yaml:"start_col"`
	EndLine   int `json:"end_line" yaml:"end_line"`
	EndCol    int `json:"end_col" yaml:"end_col"`
}

// SpanOf returns the span covered by a syntax node.
func SpanOf(node *sitter.Node) Span {
	if node == nil {
		return Span{}
	}
	start := node.StartPoint()
	end := node.EndPoint()
	return Span{
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column) + 1,
	}
}

// Lines renders the line range as "a" or "a-b".
func (s Span) Lines() string {
	return renderRange(s.StartLine, s.EndLine)
}

// Cols renders the column range as "c" or "c-d".
func (s Span) Cols() string {
	return renderRange(s.StartCol, s.EndCol)
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool {
	return s == Span{}
}

func renderRange(from, to int) string {
	if from == to {
		return strconv.Itoa(from)
	}
	return strconv.Itoa(from) + "-" + strconv.Itoa(to)
}
