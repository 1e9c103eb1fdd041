package graph

import (
	"slices"

	"github.com/albertocavalcante/go-yarnwhy/label"
	"github.com/albertocavalcante/go-yarnwhy/lockfile"
)

// Build constructs the reverse dependency graph of entries.
//
// For every dependency edge (entry → child descriptor) each of the entry's own
// descriptors is recorded as a parent of the child. Entries are expected to be
// normalized with [lockfile.Normalize]; Build does not modify them.
func Build(entries []lockfile.Entry) *Graph {
	g := &Graph{
		entries: entries,
		index:   make(map[label.Descriptor]int),
	}

	// First pass: intern entry descriptors so lookups resolve to entries.
	for i, e := range entries {
		for _, d := range e.Descriptors {
			n := g.intern(d)
			if g.owner[n] < 0 {
				g.owner[n] = i
			}
		}
	}

	// Second pass: reverse edges.
	for _, e := range entries {
		for _, dep := range e.Dependencies {
			child := g.intern(dep)
			for _, d := range e.Descriptors {
				parent := g.index[d]
				if !slices.Contains(g.parents[child], parent) {
					g.parents[child] = append(g.parents[child], parent)
				}
			}
		}
	}

	return g
}

// intern returns the arena index of d, adding it if needed.
func (g *Graph) intern(d label.Descriptor) int {
	if n, ok := g.index[d]; ok {
		return n
	}
	n := len(g.nodes)
	g.nodes = append(g.nodes, d)
	g.owner = append(g.owner, -1)
	g.parents = append(g.parents, nil)
	g.index[d] = n
	return n
}
