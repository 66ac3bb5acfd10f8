// Package report collects the findings of linting and grading a file.
package report

import (
	"strconv"

	"github.com/arjunmahishi/autograder/lint"
	"github.com/arjunmahishi/autograder/som"
)

// Item is one finding. Line and Col are a single number or a range "a-b".
type Item struct {
	Text string `json:"text" yaml:"text"`
	Rule string `json:"rule" yaml:"rule"`
	Line string `json:"line" yaml:"line"`
	Col  string `json:"col" yaml:"col"`
}

// MakeItem builds an item at a single line and column.
func MakeItem(text, rule string, line, col int) Item {
	return Item{Text: text, Rule: rule, Line: strconv.Itoa(line), Col: strconv.Itoa(col)}
}

// ItemAt builds an item located at a SOM entry.
func ItemAt(text, rule string, loc som.Span) Item {
	return Item{Text: text, Rule: rule, Line: loc.Lines(), Col: loc.Cols()}
}

// Report holds everything found in one file.
type Report struct {
	File    string `json:"file,omitempty" yaml:"file,omitempty"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Ext     string `json:"ext,omitempty" yaml:"ext,omitempty"`
	Src     string `json:"src" yaml:"src"`
	Error   []Item `json:"error" yaml:"error"`
	Warning []Item `json:"warning" yaml:"warning"`
	Notice  []Item `json:"notice" yaml:"notice"`
}

// New returns an empty report.
func New() *Report {
	return &Report{Error: []Item{}, Warning: []Item{}, Notice: []Item{}}
}

// AddError records an error.
func (r *Report) AddError(it Item) {
	r.Error = append(r.Error, it)
}

// AddWarning records a warning.
func (r *Report) AddWarning(it Item) {
	r.Warning = append(r.Warning, it)
}

// AddNotice records a notice.
func (r *Report) AddNotice(it Item) {
	r.Notice = append(r.Notice, it)
}

// AddLint records the findings of a lint run.
func (r *Report) AddLint(res lint.Result) {
	for _, f := range res.Errors {
		r.AddError(Item(f))
	}
	for _, f := range res.Warnings {
		r.AddWarning(Item(f))
	}
	for _, f := range res.Notices {
		r.AddNotice(Item(f))
	}
}

// Merge appends the findings of other. File details and source of r win when
// set.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	if r.File == "" {
		r.File = other.File
	}
	if r.Name == "" {
		r.Name = other.Name
	}
	if r.Ext == "" {
		r.Ext = other.Ext
	}
	if r.Src == "" {
		r.Src = other.Src
	}
	r.Error = append(r.Error, other.Error...)
	r.Warning = append(r.Warning, other.Warning...)
	r.Notice = append(r.Notice, other.Notice...)
}

// Empty reports whether nothing was found.
func (r *Report) Empty() bool {
	return len(r.Error) == 0 && len(r.Warning) == 0 && len(r.Notice) == 0
}
