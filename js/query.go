package js

import (
	"regexp"
	"strings"

	"github.com/arjunmahishi/autograder/som"
)

// Category selects the index a query starts from.
type Category int

const (
	All Category = iota
	Classes
	Functions
	Variables
)

func (c Category) String() string {
	switch c {
	case Classes:
		return "classes"
	case Functions:
		return "functions"
	case Variables:
		return "variables"
	default:
		return "all"
	}
}

var variableWords = []string{"const", "let", "var", "variable", "variables"}

// categorize picks the index for a query from the words it contains.
func categorize(pattern string) Category {
	lower := strings.ToLower(pattern)
	switch {
	case strings.Contains(lower, "class"):
		return Classes
	case strings.Contains(lower, "function"):
		return Functions
	}
	for _, w := range variableWords {
		if strings.Contains(lower, w) {
			return Variables
		}
	}
	return All
}

// Matcher is a compiled JS query.
type Matcher struct {
	pattern  string
	rx       *regexp.Regexp
	category Category
}

// Compile compiles a JS query. Matching is case insensitive and the query is
// taken literally.
func Compile(pattern string) *Matcher {
	t := som.Escape(strings.TrimSpace(pattern))
	rx := regexp.MustCompile(`(?i)\s+` + t + `$|^` + t + `\s+|\s+` + t + `\s+|\s+\w*` + t + `\w*\s+`)
	return &Matcher{pattern: pattern, rx: rx, category: categorize(pattern)}
}

// String returns the source pattern.
func (m *Matcher) String() string {
	return m.pattern
}

// Category returns the index the query starts from.
func (m *Matcher) Category() Category {
	return m.category
}

// Match reports whether a key matches the query.
func (m *Matcher) Match(key string) bool {
	return m.rx.MatchString(key)
}

// FindAll searches the given entries and all of their descendants. Entries
// reachable more than once are reported once, in the order first seen.
func (m *Matcher) FindAll(scope []*Entry) []*Entry {
	seen := make(map[*Entry]bool)
	var matches []*Entry
	var visit func(entries []*Entry)
	visit = func(entries []*Entry) {
		for _, e := range entries {
			if e == nil {
				continue
			}
			if !seen[e] && m.Match(e.Key) {
				seen[e] = true
				matches = append(matches, e)
			}
			visit(e.Children)
		}
	}
	visit(scope)
	return matches
}
