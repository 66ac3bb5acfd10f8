package html

import (
	"strings"

	"github.com/arjunmahishi/autograder/som"
)

// Attr is a single attribute of an element.
type Attr struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Attrs holds the attributes of an element in source order.
type Attrs []Attr

// Element is one entry of the HTML SOM.
type Element = som.Entry[Attrs]

// Get returns the value of the first attribute with the given name.
func (a Attrs) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Has reports whether the attribute is present.
func (a Attrs) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// String renders the attributes as they appear in keys: name="value" pairs
// separated by a single space.
func (a Attrs) String() string {
	parts := make([]string, 0, len(a))
	for _, attr := range a {
		parts = append(parts, attr.Name+`="`+attr.Value+`"`)
	}
	return strings.Join(parts, " ")
}
