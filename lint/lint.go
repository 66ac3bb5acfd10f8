// Package lint runs lint engines over source text and normalizes their
// findings into errors, warnings and notices.
package lint

import (
	"context"
	"strconv"
)

// Finding is one problem reported by a lint engine. Line and Col are a single
// number or a range rendered "a-b".
type Finding struct {
	Text string `json:"text" yaml:"text"`
	Rule string `json:"rule" yaml:"rule"`
	Line string `json:"line" yaml:"line"`
	Col  string `json:"col" yaml:"col"`
}

// Result groups findings by severity.
type Result struct {
	Errors   []Finding `json:"error" yaml:"error"`
	Warnings []Finding `json:"warning" yaml:"warning"`
	Notices  []Finding `json:"notice" yaml:"notice"`
}

// Add files a finding under the given severity. Unknown severities become
// notices.
func (r *Result) Add(severity Severity, f Finding) {
	switch severity {
	case SeverityError:
		r.Errors = append(r.Errors, f)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, f)
	default:
		r.Notices = append(r.Notices, f)
	}
}

// Len returns the total number of findings.
func (r Result) Len() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Notices)
}

// Severity of a finding.
type Severity int

const (
	SeverityNotice Severity = iota
	SeverityWarning
	SeverityError
)

// Rules is the rule configuration handed to an engine, keyed by rule name.
type Rules map[string]any

// Linter lints source text.
type Linter interface {
	Lint(ctx context.Context, src []byte, rules Rules) (Result, error)
}

// Run lints src and turns an engine failure into an error finding with rule
// "<lang>-linter", so a broken engine never aborts grading.
func Run(ctx context.Context, l Linter, lang string, src []byte, rules Rules) Result {
	res, err := l.Lint(ctx, src, rules)
	if err != nil {
		res = Result{}
		res.Add(SeverityError, Finding{Text: err.Error(), Rule: lang + "-linter", Line: "0", Col: "0"})
	}
	return res
}

// span renders a start/end pair as "a" or "a-b". A missing end is ignored.
func span(start, end int) string {
	if end == 0 || end == start {
		return strconv.Itoa(start)
	}
	return strconv.Itoa(start) + "-" + strconv.Itoa(end)
}
