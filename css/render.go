package css

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/autograder/som"
)

// Node types of the tree-sitter CSS grammar.
const (
	nodeStylesheet      = "stylesheet"
	nodeComment         = "comment"
	nodeRuleSet         = "rule_set"
	nodeSelectors       = "selectors"
	nodeBlock           = "block"
	nodeDeclaration     = "declaration"
	nodePropertyName    = "property_name"
	nodeImportStatement = "import_statement"
	nodeMediaStatement  = "media_statement"
	nodeCharset         = "charset_statement"
	nodeNamespace       = "namespace_statement"
	nodeKeyframes       = "keyframes_statement"
	nodeKeyframesName   = "keyframes_name"
	nodeKeyframeList    = "keyframe_block_list"
	nodeKeyframeBlock   = "keyframe_block"
	nodeSupports        = "supports_statement"
	nodeAtRule          = "at_rule"
	nodeAtKeyword       = "at_keyword"

	nodeKeywordQuery       = "keyword_query"
	nodeFeatureQuery       = "feature_query"
	nodeFeatureName        = "feature_name"
	nodeBinaryQuery        = "binary_query"
	nodeUnaryQuery         = "unary_query"
	nodeParenthesizedQuery = "parenthesized_query"
	nodeSelectorQuery      = "selector_query"

	nodeCallExpression   = "call_expression"
	nodeFunctionName     = "function_name"
	nodeArguments        = "arguments"
	nodeBinaryExpression = "binary_expression"
	nodeParenthesized    = "parenthesized_value"
	nodeGridValue        = "grid_value"

	nodeChildSelector      = "child_selector"
	nodeDescendantSelector = "descendant_selector"
	nodeSiblingSelector    = "sibling_selector"
	nodeAdjacentSelector   = "adjacent_sibling_selector"
	nodeClassSelector      = "class_selector"
	nodeIDSelector         = "id_selector"
	nodePseudoClass        = "pseudo_class_selector"
	nodePseudoElement      = "pseudo_element_selector"
	nodeAttributeSelector  = "attribute_selector"
	nodeNamespaceSelector  = "namespace_selector"
)

// renderer turns syntax nodes back into canonical text.
type renderer struct {
	src []byte
}

func (r renderer) text(n *sitter.Node) string {
	return som.CollapseSpace(som.Text(n, r.src))
}

// selector renders a selector list or a single selector.
func (r renderer) selector(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case nodeSelectors:
		var parts []string
		for _, c := range som.NamedChildren(n) {
			if c.Type() == nodeComment {
				continue
			}
			parts = append(parts, r.selector(c))
		}
		return strings.Join(parts, ", ")
	case nodeChildSelector, nodeDescendantSelector, nodeSiblingSelector, nodeAdjacentSelector:
		var parts []string
		for _, c := range som.Children(n) {
			if c.Type() == nodeComment {
				continue
			}
			parts = append(parts, r.selector(c))
		}
		return strings.Join(parts, " ")
	case nodeClassSelector, nodeIDSelector, nodePseudoClass, nodePseudoElement,
		nodeAttributeSelector, nodeNamespaceSelector:
		var b strings.Builder
		for _, c := range som.Children(n) {
			if c.Type() == nodeComment {
				continue
			}
			b.WriteString(r.selector(c))
		}
		return b.String()
	default:
		return r.text(n)
	}
}

// query renders an at-rule prelude query.
func (r renderer) query(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case nodeKeywordQuery:
		return r.text(n)
	case nodeFeatureQuery:
		name := ""
		var values []string
		for _, c := range som.Children(n) {
			switch {
			case c.Type() == nodeFeatureName:
				name = r.text(c)
			case c.IsNamed() && c.Type() != nodeComment:
				values = append(values, r.value(c))
			}
		}
		if len(values) == 0 {
			return "(" + name + ")"
		}
		return "(" + name + ": " + joinTokens(values) + ")"
	case nodeBinaryQuery, nodeUnaryQuery:
		var parts []string
		for _, c := range som.Children(n) {
			if c.Type() == nodeComment {
				continue
			}
			if c.IsNamed() {
				parts = append(parts, r.query(c))
				continue
			}
			parts = append(parts, strings.ToLower(r.text(c)))
		}
		return strings.Join(parts, " ")
	case nodeParenthesizedQuery:
		for _, c := range som.NamedChildren(n) {
			if c.Type() != nodeComment {
				return "(" + r.query(c) + ")"
			}
		}
		return r.text(n)
	case nodeSelectorQuery:
		for _, c := range som.NamedChildren(n) {
			if c.Type() != nodeComment {
				return "selector(" + r.selector(c) + ")"
			}
		}
		return r.text(n)
	default:
		return r.value(n)
	}
}

// value renders a declaration value node.
func (r renderer) value(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case nodeCallExpression:
		name := ""
		args := ""
		for _, c := range som.Children(n) {
			switch c.Type() {
			case nodeFunctionName:
				name = r.text(c)
			case nodeArguments:
				args = r.value(c)
			}
		}
		return name + args
	case nodeArguments, nodeBinaryExpression, nodeParenthesized, nodeGridValue:
		var parts []string
		for _, c := range som.Children(n) {
			if c.Type() == nodeComment {
				continue
			}
			parts = append(parts, r.value(c))
		}
		return joinTokens(parts)
	default:
		return r.text(n)
	}
}

// declarationValue renders everything after the colon of a declaration.
func (r renderer) declarationValue(decl *sitter.Node) string {
	var parts []string
	seenColon := false
	for _, c := range som.Children(decl) {
		switch {
		case c.Type() == nodeComment:
			continue
		case !seenColon:
			if !c.IsNamed() && c.Type() == ":" {
				seenColon = true
			}
			continue
		case !c.IsNamed() && c.Type() == ";":
			continue
		}
		parts = append(parts, r.value(c))
	}
	return joinTokens(parts)
}

// joinTokens joins rendered tokens with single spaces, without a space after an
// opening parenthesis or before a comma or closing parenthesis.
func joinTokens(parts []string) string {
	var b strings.Builder
	prev := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 && p != "," && p != ")" && !strings.HasSuffix(prev, "(") {
			b.WriteByte(' ')
		}
		b.WriteString(p)
		prev = p
	}
	return b.String()
}
