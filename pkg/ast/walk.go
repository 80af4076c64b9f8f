package ast

// Walk visits node and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	parent, ok := node.(Parent)
	if !ok {
		return
	}
	for _, child := range parent.Nodes() {
		Walk(child, fn)
	}
}

// CountByType tallies the nodes of each type under root.
func CountByType(root Node) map[NodeType]int {
	counts := make(map[NodeType]int)
	Walk(root, func(n Node) bool {
		counts[n.NodeType()]++
		return true
	})
	return counts
}
