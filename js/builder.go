package js

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/autograder/som"
)

// Node is the JS payload of an entry.
type Node struct {
	Kind string `json:"kind" yaml:"kind"`
}

// Entry is one keyed statement, declaration or class member of the JS SOM.
type Entry = som.Entry[Node]

// builder numbers entries with one pre-order counter for the whole program.
type builder struct {
	keys    keyer
	ordinal int
}

func newBuilder(src []byte) *builder {
	return &builder{keys: keyer{src: src}}
}

// statements builds one entry per statement of a program, block or class body.
func (b *builder) statements(parent *sitter.Node) []*Entry {
	var out []*Entry
	for _, c := range som.NamedChildren(parent) {
		if c.Type() == nodeComment {
			continue
		}
		out = append(out, b.entry(c))
	}
	return out
}

func (b *builder) entry(n *sitter.Node) *Entry {
	b.ordinal++
	e := &Entry{
		Key:     som.Keyed(b.keys.descriptor(n), b.ordinal),
		Loc:     som.SpanOf(n),
		Payload: Node{Kind: n.Type()},
		Raw:     n,
	}
	e.Children = b.children(n)
	return e
}

// children builds the entries below n from its body. A body that is a single
// statement becomes one child; class bodies and static blocks are flattened so
// members attach directly to their owner.
func (b *builder) children(n *sitter.Node) []*Entry {
	switch n.Type() {
	case nodeStatementBlock:
		return b.statements(n)
	case nodeStaticBlock:
		return b.statements(som.FirstChildOfType(n, nodeStatementBlock))
	case nodeExportStatement:
		if decl := n.ChildByFieldName("declaration"); decl != nil {
			return b.children(decl)
		}
		return nil
	case nodeSwitch:
		return nil
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	if body.Type() == nodeClassBody {
		return b.statements(body)
	}
	return []*Entry{b.entry(body)}
}
