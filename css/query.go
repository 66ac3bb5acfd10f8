package css

import (
	"regexp"
	"strings"

	"github.com/arjunmahishi/autograder/som"
)

// Matcher is a compiled CSS query. Each comma separated part of the query is a
// level; every level narrows the search into the declarations of the entries
// matched by the previous one.
type Matcher struct {
	pattern string
	levels  []som.AnyOf
}

// Compile compiles a CSS query. A "+" joins two terms with a wildcard, so
// "@media+print" matches any media rule whose prelude mentions print.
func Compile(pattern string) *Matcher {
	m := &Matcher{pattern: pattern}
	for _, term := range som.SplitTop(pattern, ',') {
		m.levels = append(m.levels, compileLevel(term))
	}
	return m
}

func compileLevel(term string) som.AnyOf {
	pieces := strings.Split(term, "+")
	for i, p := range pieces {
		pieces[i] = som.Escape(strings.TrimSpace(p))
	}
	t := strings.Join(pieces, ".*")

	alts := som.AnyOf{
		regexp.MustCompile(som.Boundary(t)),
		regexp.MustCompile(`^` + t + `[,:]|\s+` + t + `[,:]`),
	}
	if strings.ContainsAny(term, ".#") {
		alts = append(alts, regexp.MustCompile(`.`+t+`\s+|`+t+`.`))
	}
	return alts
}

// String returns the source pattern.
func (m *Matcher) String() string {
	return m.pattern
}

// Levels returns the number of levels in the query.
func (m *Matcher) Levels() int {
	return len(m.levels)
}

// FindAll runs the query over a scope of rules. Matches keep document order.
func (m *Matcher) FindAll(scope []*Rule) []*Rule {
	if len(m.levels) == 0 {
		return nil
	}
	for i, level := range m.levels {
		var matches []*Rule
		for _, r := range scope {
			if r != nil && level.Match(r.Key) {
				matches = append(matches, r)
			}
		}
		if len(matches) == 0 {
			return nil
		}
		if i == len(m.levels)-1 {
			return matches
		}
		scope = nil
		for _, r := range matches {
			scope = append(scope, r.Children...)
		}
	}
	return nil
}
