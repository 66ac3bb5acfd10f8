package js

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/autograder/som"
)

// Node types of the tree-sitter JavaScript grammar.
const (
	nodeProgram             = "program"
	nodeComment             = "comment"
	nodeClassDeclaration    = "class_declaration"
	nodeClass               = "class"
	nodeClassBody           = "class_body"
	nodeClassHeritage       = "class_heritage"
	nodeFunctionDeclaration = "function_declaration"
	nodeGeneratorDecl       = "generator_function_declaration"
	nodeLexicalDeclaration  = "lexical_declaration"
	nodeVariableDeclaration = "variable_declaration"
	nodeVariableDeclarator  = "variable_declarator"
	nodeMethodDefinition    = "method_definition"
	nodeFieldDefinition     = "field_definition"
	nodeStaticBlock         = "class_static_block"
	nodeExpressionStatement = "expression_statement"
	nodeExportStatement     = "export_statement"
	nodeStatementBlock      = "statement_block"

	nodeBreak      = "break_statement"
	nodeContinue   = "continue_statement"
	nodeDebugger   = "debugger_statement"
	nodeDo         = "do_statement"
	nodeEmpty      = "empty_statement"
	nodeForIn      = "for_in_statement"
	nodeFor        = "for_statement"
	nodeIf         = "if_statement"
	nodeLabeled    = "labeled_statement"
	nodeReturn     = "return_statement"
	nodeSwitch     = "switch_statement"
	nodeThrow      = "throw_statement"
	nodeTry        = "try_statement"
	nodeWhile      = "while_statement"
	nodeWith       = "with_statement"
	nodeSequence   = "sequence_expression"
	nodeBinary     = "binary_expression"
	nodeCall       = "call_expression"
	nodeNew        = "new_expression"
	nodeMember     = "member_expression"
	nodeString     = "string"
	nodeNumber     = "number"
	nodeTrue       = "true"
	nodeFalse      = "false"
	nodeNull       = "null"
	nodePrivateID  = "private_property_identifier"
	nodeFuncExpr   = "function_expression"
	nodeFuncLegacy = "function"
	nodeArrow      = "arrow_function"
	nodeGenerator  = "generator_function"
)

// statementLabels are the fixed descriptors of generic statements.
var statementLabels = map[string]string{
	nodeStatementBlock: "block statement",
	nodeBreak:          "break statement",
	nodeContinue:       "continue statement",
	nodeDebugger:       "debugger statement",
	nodeDo:             "do while loop",
	nodeEmpty:          "empty statement",
	nodeFor:            "for loop",
	nodeIf:             "if statement",
	nodeLabeled:        "labeled statement",
	nodeReturn:         "return statement",
	nodeSwitch:         "switch case statement",
	nodeThrow:          "throw statement",
	nodeWhile:          "while loop",
	nodeWith:           "with statement",
	nodeStaticBlock:    "static block",
}

var (
	spaceRuns = regexp.MustCompile(` {2,}|\r?\n`)
	parens    = regexp.MustCompile(`[()]`)
	quotes    = regexp.MustCompile(`['"` + "`" + `]`)
)

// keyer derives the descriptor of a node from its kind and source text.
type keyer struct {
	src []byte
}

func (k keyer) text(n *sitter.Node) string {
	return strings.TrimSpace(som.Text(n, k.src))
}

// descriptor returns the key of a node without its ordinal.
func (k keyer) descriptor(n *sitter.Node) string {
	switch t := n.Type(); t {
	case nodeClassDeclaration, nodeClass:
		return k.class(n)
	case nodeFunctionDeclaration, nodeGeneratorDecl:
		return "function " + k.text(n.ChildByFieldName("name"))
	case nodeLexicalDeclaration, nodeVariableDeclaration:
		return k.declaration(n)
	case nodeMethodDefinition:
		return k.member(n, k.methodKind(n), n.ChildByFieldName("name"))
	case nodeFieldDefinition:
		return k.member(n, "property", n.ChildByFieldName("property"))
	case nodeExpressionStatement:
		return k.expression(n)
	case nodeForIn:
		if som.FirstChildOfType(n, "of") != nil {
			return "for of loop"
		}
		return "for in loop"
	case nodeTry:
		if n.ChildByFieldName("finalizer") != nil {
			return "try catch finally statement"
		}
		return "try catch statement"
	case nodeExportStatement:
		if decl := n.ChildByFieldName("declaration"); decl != nil {
			return "export " + k.descriptor(decl)
		}
		return k.text(n)
	default:
		if label, ok := statementLabels[t]; ok {
			return label
		}
		return k.text(n)
	}
}

func (k keyer) class(n *sitter.Node) string {
	key := "class " + k.text(n.ChildByFieldName("name"))
	if heritage := som.FirstChildOfType(n, nodeClassHeritage); heritage != nil {
		for _, c := range som.NamedChildren(heritage) {
			if c.Type() != nodeComment {
				key += " extends " + k.text(c)
				break
			}
		}
	}
	return key
}

// declaration renders "<kind> <name>, <name>" and tags declarators holding a
// class or function.
func (k keyer) declaration(n *sitter.Node) string {
	kind := "var"
	if first := n.Child(0); first != nil && !first.IsNamed() {
		kind = first.Type()
	}
	var names []string
	for _, d := range som.NamedChildren(n) {
		if d.Type() != nodeVariableDeclarator {
			continue
		}
		name := k.text(d.ChildByFieldName("name"))
		if value := d.ChildByFieldName("value"); value != nil {
			switch value.Type() {
			case nodeClass:
				name = "class " + name
			case nodeFuncExpr, nodeFuncLegacy, nodeArrow, nodeGenerator:
				name = "function " + name
			}
		}
		names = append(names, name)
	}
	return kind + " " + strings.Join(names, ", ")
}

func (k keyer) methodKind(n *sitter.Node) string {
	name := n.ChildByFieldName("name")
	if k.text(name) == "constructor" {
		return "constructor"
	}
	for _, c := range som.Children(n) {
		if c.IsNamed() {
			break
		}
		switch c.Type() {
		case "get", "set":
			return c.Type()
		}
	}
	return "method"
}

// member renders "[private ][static ]<kind> <name>".
func (k keyer) member(n *sitter.Node, kind string, name *sitter.Node) string {
	key := kind + " " + k.text(name)
	prefix := ""
	if name != nil && (name.Type() == nodePrivateID || strings.Contains(key, "#")) {
		prefix = "private "
	}
	if isStatic(n) {
		prefix += "static "
	}
	return prefix + key
}

func isStatic(n *sitter.Node) bool {
	for _, c := range som.Children(n) {
		if c.IsNamed() {
			return false
		}
		if c.Type() == "static" {
			return true
		}
	}
	return false
}

// expression renders an expression statement: literals as their bare value,
// everything else as "call [sequence |binary ][member ]<callee>".
func (k keyer) expression(n *sitter.Node) string {
	var expr *sitter.Node
	for _, c := range som.NamedChildren(n) {
		if c.Type() != nodeComment {
			expr = c
			break
		}
	}
	if expr == nil {
		return k.text(n)
	}

	switch expr.Type() {
	case nodeString:
		return quotes.ReplaceAllString(k.text(expr), "")
	case nodeNumber, nodeTrue, nodeFalse, nodeNull:
		return k.text(expr)
	}

	prefix := "call "
	switch expr.Type() {
	case nodeSequence:
		prefix += "sequence "
	case nodeBinary:
		prefix += "binary "
	}

	target := expr
	var callee *sitter.Node
	switch expr.Type() {
	case nodeCall:
		callee = expr.ChildByFieldName("function")
	case nodeNew:
		callee = expr.ChildByFieldName("constructor")
	}
	if callee != nil {
		if callee.Type() == nodeMember {
			prefix += "member "
		}
		target = callee
	}

	text := k.text(target)
	if strings.Contains(text, "++") || strings.Contains(text, "+=") {
		prefix += "incrementer "
	}
	if strings.Contains(text, "--") || strings.Contains(text, "-=") {
		prefix += "decrementer "
	}
	text = spaceRuns.ReplaceAllString(text, "")
	text = parens.ReplaceAllString(text, "")
	return prefix + text
}
