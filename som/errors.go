package som

import sitter "github.com/smacker/go-tree-sitter"

// ErrorNodes returns every ERROR and MISSING node below root in pre-order.
// Subtrees without errors are not visited.
func ErrorNodes(root *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n.IsMissing() || n.Type() == "ERROR" {
			out = append(out, n)
			return
		}
		if !n.HasError() {
			return
		}
		for _, c := range Children(n) {
			visit(c)
		}
	}
	if root != nil {
		visit(root)
	}
	return out
}

// FirstError returns the first ERROR or MISSING node below root, or nil.
func FirstError(root *sitter.Node) *sitter.Node {
	nodes := ErrorNodes(root)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}
