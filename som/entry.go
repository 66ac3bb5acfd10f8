package som

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Entry is one keyed node of a structured object model. The payload carries the
// language specific data (declaration value, attributes, node kind).
type Entry[P any] struct {
	Key      string       `json:"key" yaml:"key"`
	Loc      Span         `json:"loc" yaml:"loc"`
	Payload  P            `json:"payload" yaml:"payload"`
	Children []*Entry[P]  `json:"children,omitempty" yaml:"children,omitempty"`
	Raw      *sitter.Node `json:"-" yaml:"-"`
}

// Empty reports whether the entry is the zero value returned by a query miss.
func (e Entry[P]) Empty() bool {
	return e.Key == "" && len(e.Children) == 0 && e.Loc.IsZero()
}

// Child returns the direct child with the given key.
func (e *Entry[P]) Child(key string) (*Entry[P], bool) {
	if e == nil {
		return nil, false
	}
	for _, c := range e.Children {
		if c.Key == key {
			return c, true
		}
	}
	return nil, false
}

// Walk visits entries in pre-order. Returning false from fn skips the
// children of the visited entry.
func Walk[P any](entries []*Entry[P], fn func(*Entry[P]) bool) {
	for _, e := range entries {
		if e == nil {
			continue
		}
		if fn(e) {
			Walk(e.Children, fn)
		}
	}
}

// Keyed appends the ordinal suffix to a descriptor.
func Keyed(descriptor string, ordinal int) string {
	return descriptor + " N<" + strconv.Itoa(ordinal) + ">"
}

// Descriptor strips the ordinal suffix from a key.
func Descriptor(key string) string {
	i := strings.LastIndex(key, " N<")
	if i < 0 || !strings.HasSuffix(key, ">") {
		return key
	}
	return key[:i]
}

// Ordinal returns the ordinal suffix of a key, or 0 when the key has none.
func Ordinal(key string) int {
	i := strings.LastIndex(key, " N<")
	if i < 0 || !strings.HasSuffix(key, ">") {
		return 0
	}
	n, err := strconv.Atoi(key[i+3 : len(key)-1])
	if err != nil {
		return 0
	}
	return n
}
