package css

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/autograder/som"
)

// Decl is the CSS payload of an entry. Property entries carry a rendered
// value; rule and at-rule entries carry their declarations as children.
type Decl struct {
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Rule is one entry of the CSS SOM.
type Rule = som.Entry[Decl]

// builder flattens a tree-sitter CSS tree into keyed rules. ordinal is the
// pre-order counter shared by the whole stylesheet.
type builder struct {
	src     []byte
	render  renderer
	ordinal int
}

func newBuilder(src []byte) *builder {
	return &builder{src: src, render: renderer{src: src}}
}

func (b *builder) next() int {
	b.ordinal++
	return b.ordinal
}

// items builds the entries of a stylesheet or block.
func (b *builder) items(parent *sitter.Node) []*Rule {
	var out []*Rule
	for _, c := range som.NamedChildren(parent) {
		switch c.Type() {
		case nodeComment:
		case nodeDeclaration:
			out = addProperty(out, b.property(c))
		case nodeRuleSet:
			out = append(out, b.ruleSet(c))
		case nodeMediaStatement, nodeSupports, nodeAtRule, nodeImportStatement,
			nodeCharset, nodeNamespace:
			out = append(out, b.atRule(c))
		case nodeKeyframes:
			out = append(out, b.keyframes(c))
		}
	}
	return out
}

func (b *builder) property(decl *sitter.Node) *Rule {
	name := ""
	if n := som.FirstChildOfType(decl, nodePropertyName); n != nil {
		name = strings.TrimSpace(som.Text(n, b.src))
	}
	return &Rule{
		Key:     name,
		Loc:     som.SpanOf(decl),
		Payload: Decl{Value: b.render.declarationValue(decl)},
		Raw:     decl,
	}
}

// addProperty appends a property, replacing an earlier one of the same name in
// place so the last value wins.
func addProperty(out []*Rule, prop *Rule) []*Rule {
	if prop.Key == "" {
		return out
	}
	for i, e := range out {
		if e.Key == prop.Key && len(e.Children) == 0 {
			out[i] = prop
			return out
		}
	}
	return append(out, prop)
}

func (b *builder) ruleSet(n *sitter.Node) *Rule {
	ordinal := b.next()
	selector := b.render.selector(som.FirstChildOfType(n, nodeSelectors))
	rule := &Rule{
		Key: som.Keyed(selector, ordinal),
		Loc: som.SpanOf(n),
		Raw: n,
	}
	if block := som.FirstChildOfType(n, nodeBlock); block != nil {
		rule.Children = b.items(block)
	}
	return rule
}

func (b *builder) atRule(n *sitter.Node) *Rule {
	ordinal := b.next()
	rule := &Rule{
		Key: som.Keyed(b.atRulePrelude(n), ordinal),
		Loc: som.SpanOf(n),
		Raw: n,
	}
	if block := som.FirstChildOfType(n, nodeBlock); block != nil {
		rule.Children = b.items(block)
	}
	return rule
}

// atRulePrelude renders "@name prelude" for every at-rule except keyframes.
func (b *builder) atRulePrelude(n *sitter.Node) string {
	name := ""
	var parts []string
	for _, c := range som.Children(n) {
		t := c.Type()
		switch {
		case t == nodeComment || t == nodeBlock:
		case t == nodeAtKeyword:
			name = strings.ToLower(b.render.text(c))
		case !c.IsNamed():
			if strings.HasPrefix(t, "@") {
				name = strings.ToLower(t)
				continue
			}
			if t == "," {
				parts = append(parts, ",")
			}
		case n.Type() == nodeImportStatement && len(parts) == 0,
			n.Type() == nodeCharset, n.Type() == nodeNamespace:
			parts = append(parts, b.render.value(c))
		default:
			parts = append(parts, b.render.query(c))
		}
	}
	prelude := joinTokens(parts)
	if prelude == "" {
		return name
	}
	return name + " " + prelude
}

func (b *builder) keyframes(n *sitter.Node) *Rule {
	ordinal := b.next()
	keyword := "@keyframes"
	name := ""
	var list *sitter.Node
	for _, c := range som.Children(n) {
		switch c.Type() {
		case nodeAtKeyword:
			keyword = strings.ToLower(b.render.text(c))
		case nodeKeyframesName:
			name = b.render.text(c)
		case nodeKeyframeList:
			list = c
		}
	}
	rule := &Rule{
		Key: som.Keyed(strings.TrimSpace(keyword+" "+name), ordinal),
		Loc: som.SpanOf(n),
		Raw: n,
	}
	for _, kb := range som.NamedChildren(list) {
		if kb.Type() != nodeKeyframeBlock {
			continue
		}
		rule.Children = append(rule.Children, b.keyframeBlock(kb))
	}
	return rule
}

func (b *builder) keyframeBlock(n *sitter.Node) *Rule {
	ordinal := b.next()
	selector := ""
	var block *sitter.Node
	for _, c := range som.NamedChildren(n) {
		switch c.Type() {
		case nodeComment:
		case nodeBlock:
			block = c
		default:
			selector = b.render.text(c)
		}
	}
	rule := &Rule{
		Key: som.Keyed(selector, ordinal),
		Loc: som.SpanOf(n),
		Raw: n,
	}
	if block != nil {
		rule.Children = b.items(block)
	}
	return rule
}
