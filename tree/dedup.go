package tree

import "github.com/albertocavalcante/go-yarnwhy/label"

// Kind classifies a node by shape.
type Kind uint8

const (
	// Internal nodes have at least one child.
	Internal Kind = iota

	// Leaf nodes have no children.
	Leaf
)

// Classify returns the kind of every node in the forest.
func Classify(f Forest) map[*Node]Kind {
	kinds := make(map[*Node]Kind)
	f.Walk(func(n *Node, _ int) bool {
		if len(n.children) == 0 {
			kinds[n] = Leaf
		} else {
			kinds[n] = Internal
		}
		return true
	})
	return kinds
}

// Dedup returns a copy of f in which every descriptor is expanded once.
//
// Nodes are visited depth-first in sibling order. The first occurrence of a
// descriptor is copied with its subtree. A later occurrence is copied without
// children, except when all of its children are leaves: then it is kept as is
// and those children count as seen. Dedup is idempotent and leaves f intact.
func Dedup(f Forest) Forest {
	d := &deduper{
		kinds: Classify(f),
		seen:  make(map[label.Descriptor]bool),
	}

	out := make(Forest, 0, len(f))
	for _, n := range f {
		out = append(out, d.copy(n))
	}
	return out
}

type deduper struct {
	kinds map[*Node]Kind
	seen  map[label.Descriptor]bool
}

func (d *deduper) copy(n *Node) *Node {
	out := &Node{descriptor: n.descriptor, version: n.version}

	if d.seen[n.descriptor] {
		if d.leavesOnly(n) {
			out.children = make([]*Node, 0, len(n.children))
			for _, c := range n.children {
				d.seen[c.descriptor] = true
				out.children = append(out.children, &Node{descriptor: c.descriptor, version: c.version})
			}
		}
		return out
	}

	d.seen[n.descriptor] = true
	if len(n.children) > 0 {
		out.children = make([]*Node, 0, len(n.children))
		for _, c := range n.children {
			out.children = append(out.children, d.copy(c))
		}
	}
	return out
}

// leavesOnly reports whether n has children and all of them are leaves.
func (d *deduper) leavesOnly(n *Node) bool {
	if d.kinds[n] != Internal {
		return false
	}
	for _, c := range n.children {
		if d.kinds[c] != Leaf {
			return false
		}
	}
	return true
}
