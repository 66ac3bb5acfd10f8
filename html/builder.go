package html

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/autograder/som"
)

// Node types of the tree-sitter HTML grammar.
const (
	nodeElement         = "element"
	nodeScriptElement   = "script_element"
	nodeStyleElement    = "style_element"
	nodeStartTag        = "start_tag"
	nodeSelfClosingTag  = "self_closing_tag"
	nodeEndTag          = "end_tag"
	nodeTagName         = "tag_name"
	nodeAttribute       = "attribute"
	nodeAttributeName   = "attribute_name"
	nodeAttributeValue  = "attribute_value"
	nodeQuotedAttrValue = "quoted_attribute_value"
	nodeError           = "ERROR"
)

type builder struct {
	src []byte
}

// level builds the elements directly below parent. Ordinals restart for every
// level from the ordinal of the owning element, so keys are unique among
// siblings only.
func (b builder) level(parent *sitter.Node, ordinal int) []*Element {
	var out []*Element
	for _, c := range som.NamedChildren(parent) {
		switch c.Type() {
		case nodeElement, nodeScriptElement, nodeStyleElement:
			ordinal++
			out = append(out, b.element(c, ordinal))
		case nodeError:
			// Elements swallowed by a recovery node still belong to this level.
			inner := b.level(c, ordinal)
			ordinal += len(inner)
			out = append(out, inner...)
		}
	}
	return out
}

func (b builder) element(n *sitter.Node, ordinal int) *Element {
	tag := som.FirstChildOfType(n, nodeStartTag, nodeSelfClosingTag)
	name, attrs := b.tag(tag)

	descriptor := name
	if len(attrs) > 0 {
		descriptor += " " + attrs.String()
	}
	return &Element{
		Key:      som.Keyed(descriptor, ordinal),
		Loc:      b.span(n),
		Payload:  attrs,
		Children: b.level(n, ordinal),
		Raw:      n,
	}
}

// span locates an element. Without an end tag the grammar extends the element
// over the whitespace that follows it, so the span ends at its last non-blank
// child instead.
func (b builder) span(n *sitter.Node) som.Span {
	loc := som.SpanOf(n)
	if som.FirstChildOfType(n, nodeEndTag) != nil {
		return loc
	}
	children := som.NamedChildren(n)
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		var end som.Span
		switch c.Type() {
		case nodeElement, nodeScriptElement, nodeStyleElement:
			end = b.span(c)
		default:
			if strings.TrimSpace(som.Text(c, b.src)) == "" {
				continue
			}
			end = som.SpanOf(c)
		}
		loc.EndLine, loc.EndCol = end.EndLine, end.EndCol
		return loc
	}
	return loc
}

func (b builder) tag(tag *sitter.Node) (string, Attrs) {
	name := ""
	attrs := Attrs{}
	for _, c := range som.NamedChildren(tag) {
		switch c.Type() {
		case nodeTagName:
			name = strings.ToLower(som.Text(c, b.src))
		case nodeAttribute:
			attrs = append(attrs, b.attribute(c))
		}
	}
	return name, attrs
}

func (b builder) attribute(n *sitter.Node) Attr {
	var attr Attr
	for _, c := range som.NamedChildren(n) {
		switch c.Type() {
		case nodeAttributeName:
			attr.Name = strings.ToLower(som.Text(c, b.src))
		case nodeAttributeValue:
			attr.Value = som.Text(c, b.src)
		case nodeQuotedAttrValue:
			if v := som.FirstChildOfType(c, nodeAttributeValue); v != nil {
				attr.Value = som.Text(v, b.src)
			}
		}
	}
	return attr
}
