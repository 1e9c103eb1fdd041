package tree

import (
	"github.com/albertocavalcante/go-yarnwhy/graph"
	"github.com/albertocavalcante/go-yarnwhy/label"
)

// VersionFunc reports the resolved version of a descriptor, or "".
type VersionFunc func(label.Descriptor) string

// nodeKey identifies a node by its position: the parent it hangs from (nil for
// roots) plus its descriptor.
type nodeKey struct {
	parent     *Node
	descriptor label.Descriptor
}

// Build merges root-first paths into a forest. Paths should be sorted with
// graph.SortPaths; roots and children then appear in sorted order and each
// path only creates the nodes past the prefix it shares with its predecessor.
// version may be nil.
func Build(paths []graph.Path, version VersionFunc) Forest {
	if version == nil {
		version = func(label.Descriptor) string { return "" }
	}

	var (
		forest   Forest
		registry = make(map[nodeKey]*Node)
		prev     graph.Path
		prevNode []*Node
	)

	for _, p := range paths {
		shared := commonPrefix(prev, p)
		nodes := make([]*Node, len(p))
		copy(nodes, prevNode[:shared])

		for i := shared; i < len(p); i++ {
			var parent *Node
			if i > 0 {
				parent = nodes[i-1]
			}

			key := nodeKey{parent: parent, descriptor: p[i]}
			n, ok := registry[key]
			if !ok {
				n = &Node{descriptor: p[i], version: version(p[i])}
				registry[key] = n
				if parent == nil {
					forest = append(forest, n)
				} else {
					parent.children = append(parent.children, n)
				}
			}
			nodes[i] = n
		}

		prev, prevNode = p, nodes
	}

	return forest
}

// commonPrefix returns the length of the longest shared prefix of a and b.
func commonPrefix(a, b graph.Path) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
