package som

import (
	"regexp"
	"strings"
)

// Matcher is a compiled query term tested against SOM keys.
type Matcher interface {
	Match(key string) bool
}

// AnyOf matches when at least one of its expressions matches.
type AnyOf []*regexp.Regexp

// Match implements Matcher.
func (a AnyOf) Match(key string) bool {
	for _, rx := range a {
		if rx.MatchString(key) {
			return true
		}
	}
	return false
}

// Boundary returns an expression matching term as a whole whitespace separated
// token: alone, at the end, at the start or in the middle of a key. term must
// already be a valid expression.
func Boundary(term string) string {
	return `^` + term + `$|\s+` + term + `$|^` + term + `\s+|\s+` + term + `\s+`
}

// Escape quotes every regexp metacharacter in term.
func Escape(term string) string {
	return regexp.QuoteMeta(term)
}

// Fields splits a query on whitespace, dropping empty parts.
func Fields(query string) []string {
	return strings.Fields(query)
}

// SplitTop splits query on sep outside of brackets and parentheses, trimming
// each part and dropping empty ones.
func SplitTop(query string, sep rune) []string {
	return SplitTopFunc(query, func(r rune) bool { return r == sep })
}

// SplitTopFunc is SplitTop with a separator predicate, e.g. unicode.IsSpace.
func SplitTopFunc(query string, isSep func(rune) bool) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	for _, r := range query {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && isSep(r) {
			parts = appendTrimmed(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	return appendTrimmed(parts, cur.String())
}

func appendTrimmed(parts []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return parts
	}
	return append(parts, s)
}

var spaceRun = regexp.MustCompile(`\s+`)

// CollapseSpace replaces whitespace runs with a single space and trims.
func CollapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
