package html

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/arjunmahishi/autograder/som"
)

var (
	classRx = regexp.MustCompile(`\.[\w-]+`)
	attrRx  = regexp.MustCompile(`\[([^\]]+).*?\]`)
	idRx    = regexp.MustCompile(`#[\w-]+`)
)

// Option configures query evaluation.
type Option func(*options)

type options struct {
	strictLevels bool
}

// WithStrictLevels makes a level that matches nothing fail the whole query.
// By default the following level scans the document from the root again.
func WithStrictLevels() Option {
	return func(o *options) {
		o.strictLevels = true
	}
}

// filter is one [key] or [key=value] part of a term.
type filter struct {
	Key   string
	Value string
}

// term is one whitespace separated level of a query.
type term struct {
	element som.AnyOf
	classes []string
	filters []filter
	id      string
}

// Matcher is a compiled HTML query. Every level searches the elements matched
// by the previous level and all of their descendants.
type Matcher struct {
	pattern string
	levels  []term
	opts    options
}

// Compile compiles an HTML query such as "div.card a[href] #main".
func Compile(pattern string, opts ...Option) *Matcher {
	m := &Matcher{pattern: pattern}
	for _, o := range opts {
		o(&m.opts)
	}
	for _, part := range som.SplitTopFunc(pattern, unicode.IsSpace) {
		m.levels = append(m.levels, compileTerm(part))
	}
	return m
}

func compileTerm(part string) term {
	var t term
	rest := part

	for _, match := range attrRx.FindAllStringSubmatch(part, -1) {
		rest = strings.Replace(rest, match[0], "", 1)
		kv := strings.SplitN(match[1], "=", 2)
		f := filter{Key: strings.ToLower(strings.TrimSpace(kv[0]))}
		if len(kv) == 2 {
			f.Value = strings.NewReplacer(`"`, "", `'`, "").Replace(kv[1])
		}
		t.filters = append(t.filters, f)
	}
	for _, class := range classRx.FindAllString(rest, -1) {
		rest = strings.Replace(rest, class, "", 1)
		t.classes = append(t.classes, class[1:])
	}
	if id := idRx.FindString(rest); id != "" {
		rest = strings.Replace(rest, id, "", 1)
		t.id = id[1:]
	}

	element := ".*"
	if rest != "" {
		element = som.Escape(strings.ToLower(rest))
	}
	t.element = som.AnyOf{regexp.MustCompile(som.Boundary(element))}
	return t
}

// String returns the source pattern.
func (m *Matcher) String() string {
	return m.pattern
}

// Levels returns the number of levels in the query.
func (m *Matcher) Levels() int {
	return len(m.levels)
}

// FindAll runs the query against a document root. Matches keep document order
// and every element appears at most once.
func (m *Matcher) FindAll(root []*Element) []*Element {
	scope := root
	narrowed := false
	for _, t := range m.levels {
		seen := make(map[*Element]bool)
		var matches []*Element
		t.scan(scope, seen, &matches)
		if len(matches) > 0 {
			scope = matches
			narrowed = true
			continue
		}
		if m.opts.strictLevels {
			return nil
		}
		scope = root
		narrowed = false
	}
	if !narrowed {
		return nil
	}
	return scope
}

func (t term) scan(scope []*Element, seen map[*Element]bool, matches *[]*Element) {
	for _, e := range scope {
		if e == nil {
			continue
		}
		if !seen[e] && t.element.Match(e.Key) && t.accepts(e.Payload) {
			seen[e] = true
			*matches = append(*matches, e)
		}
		t.scan(e.Children, seen, matches)
	}
}

func (t term) accepts(attrs Attrs) bool {
	if len(t.classes) > 0 {
		class, _ := attrs.Get("class")
		for _, c := range t.classes {
			if !strings.Contains(class, c) {
				return false
			}
		}
	}
	for _, f := range t.filters {
		v, ok := attrs.Get(f.Key)
		if !ok {
			return false
		}
		if f.Value != "" && !strings.Contains(v, f.Value) {
			return false
		}
	}
	if t.id != "" {
		id, _ := attrs.Get("id")
		if !strings.Contains(id, t.id) {
			return false
		}
	}
	return true
}
