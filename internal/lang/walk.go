package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// walk visits node and its subtree depth-first. The visitor returns
// false to skip a node's children.
func walk(node *sitter.Node, visit func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visit)
	}
}

// findChildByType returns the first direct child of the given type.
func findChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// findChildrenByType returns all direct children of the given type.
func findChildrenByType(node *sitter.Node, nodeType string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == nodeType {
			results = append(results, child)
		}
	}
	return results
}

// firstDescendantOfType searches the subtree depth-first for a node of
// any of the given types.
func firstDescendantOfType(node *sitter.Node, types ...string) *sitter.Node {
	var found *sitter.Node
	walk(node, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		for _, t := range types {
			if n.Type() == t {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// findDescendantsOfType collects every node of the given type in the
// subtree, depth-first.
func findDescendantsOfType(node *sitter.Node, nodeType string) []*sitter.Node {
	var results []*sitter.Node
	walk(node, func(n *sitter.Node) bool {
		if n.Type() == nodeType {
			results = append(results, n)
		}
		return true
	})
	return results
}

// ancestorOfType walks up the parent chain looking for a node type.
func ancestorOfType(node *sitter.Node, types ...string) *sitter.Node {
	for p := node.Parent(); p != nil; p = p.Parent() {
		for _, t := range types {
			if p.Type() == t {
				return p
			}
		}
	}
	return nil
}
