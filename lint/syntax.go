package lint

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/autograder/som"
)

// SyntaxRule is the rule name of findings reported by Syntax.
const SyntaxRule = "syntax-error"

// Syntax reports the error and missing nodes of a tree-sitter parse as
// errors. It needs no external engine and ignores rules.
type Syntax struct {
	language *sitter.Language
}

// NewSyntax returns a syntax linter for a tree-sitter grammar.
func NewSyntax(language *sitter.Language) *Syntax {
	return &Syntax{language: language}
}

// Lint implements Linter.
func (s *Syntax) Lint(ctx context.Context, src []byte, _ Rules) (Result, error) {
	tree, err := som.Parse(ctx, s.language, src)
	if err != nil {
		return Result{}, err
	}
	var res Result
	for _, n := range som.ErrorNodes(tree.RootNode()) {
		loc := som.SpanOf(n)
		res.Add(SeverityError, Finding{
			Text: describe(n, src),
			Rule: SyntaxRule,
			Line: span(loc.StartLine, loc.EndLine),
			Col:  span(loc.StartCol, loc.EndCol),
		})
	}
	return res, nil
}

func describe(n *sitter.Node, src []byte) string {
	if n.IsMissing() {
		return fmt.Sprintf("Missing %q.", n.Type())
	}
	text := strings.TrimSpace(som.Text(n, src))
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	if text == "" {
		return "Unexpected end of input."
	}
	return fmt.Sprintf("Unexpected %q.", text)
}
