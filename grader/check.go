package grader

import (
	"errors"
	"fmt"

	"github.com/arjunmahishi/autograder/css"
	"github.com/arjunmahishi/autograder/html"
	"github.com/arjunmahishi/autograder/js"
	"github.com/arjunmahishi/autograder/report"
	"github.com/arjunmahishi/autograder/som"
)

// Check is a declarative test: the number of entries matching Pattern in a
// file of language Lang must lie within [Min, Max]. With neither bound set the
// pattern must match at least once.
type Check struct {
	Lang    string `mapstructure:"lang" yaml:"lang" json:"lang"`
	Rule    string `mapstructure:"rule" yaml:"rule" json:"rule"`
	Pattern string `mapstructure:"pattern" yaml:"pattern" json:"pattern"`
	Min     int    `mapstructure:"min" yaml:"min" json:"min"`
	Max     *int   `mapstructure:"max" yaml:"max" json:"max,omitempty"`

	// Severity is "error" (default) or "warning".
	Severity string `mapstructure:"severity" yaml:"severity" json:"severity,omitempty"`

	// Message replaces the default failure text.
	Message string `mapstructure:"message" yaml:"message" json:"message,omitempty"`

	// Success, when set, is reported as a notice when the check passes.
	Success string `mapstructure:"success" yaml:"success" json:"success,omitempty"`
}

// Validate reports whether the check can be registered.
func (c Check) Validate() error {
	if Get(c.Lang) == nil {
		return fmt.Errorf("unknown language %q", c.Lang)
	}
	if c.Rule == "" {
		return errors.New("rule is required")
	}
	if c.Pattern == "" {
		return errors.New("pattern is required")
	}
	if c.Min < 0 {
		return fmt.Errorf("negative min %d", c.Min)
	}
	if c.Max != nil && *c.Max < c.Min {
		return fmt.Errorf("max %d is below min %d", *c.Max, c.Min)
	}
	switch c.Severity {
	case "", "error", "warning":
	default:
		return fmt.Errorf("unknown severity %q", c.Severity)
	}
	return nil
}

// RegisterChecks validates every check and registers each as a test of its
// language. Nothing is registered when a check is invalid.
func (g *Grader) RegisterChecks(checks ...Check) error {
	for _, c := range checks {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("check %q: %w", c.Rule, err)
		}
	}
	for _, c := range checks {
		switch c.Lang {
		case "css":
			g.RegisterCSSTest(func(m *css.SOM, r *report.Report) {
				c.apply(r, spans(m.FindAll(c.Pattern)))
			})
		case "html":
			g.RegisterHTMLTest(func(m *html.SOM, r *report.Report) {
				c.apply(r, spans(m.FindAll(c.Pattern)))
			})
		case "js":
			g.RegisterJSTest(func(m *js.SOM, r *report.Report) {
				c.apply(r, spans(m.FindAll(c.Pattern)))
			})
		}
	}
	return nil
}

func spans[P any](entries []*som.Entry[P]) []som.Span {
	out := make([]som.Span, len(entries))
	for i, e := range entries {
		out[i] = e.Loc
	}
	return out
}

func (c Check) min() int {
	if c.Min == 0 && c.Max == nil {
		return 1
	}
	return c.Min
}

// apply records the outcome of the check given the locations of its matches.
// Findings point at the first match when there is one.
func (c Check) apply(r *report.Report, found []som.Span) {
	n := len(found)
	item := func(text string) report.Item {
		if n == 0 {
			return report.MakeItem(text, c.Rule, 0, 0)
		}
		return report.ItemAt(text, c.Rule, found[0])
	}

	if n >= c.min() && (c.Max == nil || n <= *c.Max) {
		if c.Success != "" {
			r.AddNotice(item(c.Success))
		}
		return
	}

	text := c.Message
	if text == "" {
		text = c.describe(n)
	}
	if c.Severity == "warning" {
		r.AddWarning(item(text))
		return
	}
	r.AddError(item(text))
}

func (c Check) describe(n int) string {
	switch {
	case c.Max != nil && *c.Max == 0:
		return fmt.Sprintf("Expected no match for %q, found %d.", c.Pattern, n)
	case c.Max != nil && n > *c.Max:
		return fmt.Sprintf("Expected at most %d matches for %q, found %d.", *c.Max, c.Pattern, n)
	default:
		return fmt.Sprintf("Expected at least %d matches for %q, found %d.", c.min(), c.Pattern, n)
	}
}
