package lint

import (
	"context"
	"os/exec"
	"testing"

	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		decode func([]byte) (Result, error)
		input  string
		want   Result
	}{
		{
			name:   "stylelint",
			decode: DecodeStylelint,
			input: `[{"source":"a.css","warnings":[
				{"line":2,"column":10,"endLine":2,"endColumn":13,"rule":"color-no-invalid-hex","severity":"error","text":"Unexpected invalid hex color \"#ff\" (color-no-invalid-hex)"},
				{"line":4,"column":1,"endLine":6,"endColumn":1,"rule":"block-no-empty","severity":"warning","text":"Unexpected empty block (block-no-empty)"}
			]}]`,
			want: Result{
				Errors:   []Finding{{Text: `Unexpected invalid hex color "#ff".`, Rule: "color-no-invalid-hex", Line: "2", Col: "10-13"}},
				Warnings: []Finding{{Text: "Unexpected empty block.", Rule: "block-no-empty", Line: "4-6", Col: "1"}},
			},
		},
		{
			name:   "htmlhint",
			decode: DecodeHTMLHint,
			input: `[{"file":"a.html","messages":[
				{"type":"error","line":1,"col":5,"rule":{"id":"tag-pair","description":"Tag must be paired, e.g. <p></p>."}},
				{"type":"info","line":3,"col":1,"rule":{"id":"doctype-first","description":"Doctype must be declared first."}}
			]}]`,
			want: Result{
				Errors:  []Finding{{Text: "Tag must be paired, e.g. &lt;p&gt;&lt;/p&gt;.", Rule: "tag-pair", Line: "1", Col: "5"}},
				Notices: []Finding{{Text: "Doctype must be declared first.", Rule: "doctype-first", Line: "3", Col: "1"}},
			},
		},
		{
			name:   "eslint",
			decode: DecodeESLint,
			input: `[{"filePath":"<text>","messages":[
				{"ruleId":"no-unused-vars","severity":2,"message":"'x' is defined but never used.","line":1,"column":7,"endLine":1,"endColumn":8},
				{"ruleId":"semi","severity":1,"message":"Missing semicolon.","line":2,"column":10},
				{"ruleId":null,"severity":0,"message":"File ignored.","line":0,"column":0}
			]}]`,
			want: Result{
				Errors:   []Finding{{Text: "'x' is defined but never used.", Rule: "no-unused-vars", Line: "1", Col: "7-8"}},
				Warnings: []Finding{{Text: "Missing semicolon.", Rule: "semi", Line: "2", Col: "10"}},
				Notices:  []Finding{{Text: "File ignored.", Rule: "", Line: "0", Col: "0"}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.decode([]byte(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := DecodeESLint([]byte("not json"))
	require.Error(t, err)
}

func TestSyntax(t *testing.T) {
	ctx := context.Background()

	res, err := NewSyntax(css.GetLanguage()).Lint(ctx, []byte("body { color: red; }"), nil)
	require.NoError(t, err)
	require.Zero(t, res.Len())

	res, err = NewSyntax(javascript.GetLanguage()).Lint(ctx, []byte("function ( {"), nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Errors)
	require.Equal(t, SyntaxRule, res.Errors[0].Rule)
	require.Equal(t, "1", res.Errors[0].Line[:1])
}

func TestExec(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	ctx := context.Background()

	// Engines exit non-zero when they find problems.
	stdin := NewESLint(Command{
		Name: "sh",
		Args: []string{"-c", `cat >/dev/null; echo '[{"messages":[{"ruleId":"semi","severity":2,"message":"Missing semicolon.","line":1,"column":5}]}]'; exit 1`},
	})
	res, err := stdin.Lint(ctx, []byte("let x"), Rules{"semi": "error"})
	require.NoError(t, err)
	require.Equal(t, []Finding{{Text: "Missing semicolon.", Rule: "semi", Line: "1", Col: "5"}}, res.Errors)

	file := NewHTMLHint(Command{
		Name: "sh",
		Args: []string{"-c", `test -f "$0" && test -f "$1" && echo '[]'`, FilePlaceholder, ConfigPlaceholder},
	})
	res, err = file.Lint(ctx, []byte("<p>"), nil)
	require.NoError(t, err)
	require.Zero(t, res.Len())
}

func TestRunReportsEngineFailure(t *testing.T) {
	l := NewStylelint(Command{Name: "autograder-no-such-linter"})
	res := Run(context.Background(), l, "css", []byte("a {}"), nil)
	require.Len(t, res.Errors, 1)
	require.Equal(t, "css-linter", res.Errors[0].Rule)
	require.Equal(t, DefaultStylelint.Args, l.Command().Args)
}
