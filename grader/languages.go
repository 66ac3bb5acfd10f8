package grader

import (
	sitter "github.com/smacker/go-tree-sitter"
	tscss "github.com/smacker/go-tree-sitter/css"
	tshtml "github.com/smacker/go-tree-sitter/html"
	tsjs "github.com/smacker/go-tree-sitter/javascript"

	"github.com/arjunmahishi/autograder/lint"
)

func init() {
	Register(CSS{})
	Register(HTML{})
	Register(JS{})
}

// CSS implements Language for stylesheets.
type CSS struct{}

func (CSS) Name() string                        { return "css" }
func (CSS) Extensions() []string                { return []string{".css"} }
func (CSS) TreeSitterLang() *sitter.Language    { return tscss.GetLanguage() }
func (CSS) Engine(cmd lint.Command) lint.Linter { return lint.NewStylelint(cmd) }

// HTML implements Language for documents.
type HTML struct{}

func (HTML) Name() string                        { return "html" }
func (HTML) Extensions() []string                { return []string{".html", ".htm"} }
func (HTML) TreeSitterLang() *sitter.Language    { return tshtml.GetLanguage() }
func (HTML) Engine(cmd lint.Command) lint.Linter { return lint.NewHTMLHint(cmd) }

// JS implements Language for scripts.
type JS struct{}

func (JS) Name() string                        { return "js" }
func (JS) Extensions() []string                { return []string{".js", ".mjs", ".cjs"} }
func (JS) TreeSitterLang() *sitter.Language    { return tsjs.GetLanguage() }
func (JS) Engine(cmd lint.Command) lint.Linter { return lint.NewESLint(cmd) }
