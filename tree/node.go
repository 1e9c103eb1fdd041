package tree

import (
	"slices"

	"github.com/albertocavalcante/go-yarnwhy/label"
)

// Node is one descriptor in the forest. Nodes are immutable once returned by
// Build or Dedup.
type Node struct {
	descriptor label.Descriptor
	version    string
	children   []*Node
}

// Descriptor returns the descriptor this node stands for.
func (n *Node) Descriptor() label.Descriptor {
	return n.descriptor
}

// Version returns the resolved version, or "" when the descriptor resolves to
// no entry.
func (n *Node) Version() string {
	return n.version
}

// Children returns a copy of the node's children in order.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Forest is an ordered list of root nodes.
type Forest []*Node

// Size returns the total number of nodes in the forest.
func (f Forest) Size() int {
	count := 0
	f.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Walk visits every node depth-first in sibling order. Returning false from fn
// skips the node's children.
func (f Forest) Walk(fn func(n *Node, depth int) bool) {
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				walk(n.children, depth+1)
			}
		}
	}
	walk(f, 0)
}
