package graph

import (
	"slices"
	"strings"

	"github.com/albertocavalcante/go-yarnwhy/label"
	"github.com/albertocavalcante/go-yarnwhy/lockfile"
)

// Graph is the reverse dependency graph of one lockfile snapshot.
// It is immutable once built and safe for concurrent reads.
type Graph struct {
	entries []lockfile.Entry

	// nodes is the arena; a node's index is its identity below.
	nodes []label.Descriptor
	index map[label.Descriptor]int

	// owner[i] is the entry nodes[i] resolves to, or -1.
	owner []int

	// parents[i] lists the nodes whose entries depend on nodes[i].
	parents [][]int
}

// Path is a dependency chain, root first and queried descriptor last.
type Path []label.Descriptor

// String returns the chain joined by " -> ".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, d := range p {
		parts[i] = d.String()
	}
	return strings.Join(parts, " -> ")
}

// Tail returns the last n descriptors of p, or p itself when n <= 0 or p is
// no longer than n.
func (p Path) Tail(n int) Path {
	if n <= 0 || len(p) <= n {
		return p
	}
	return p[len(p)-n:]
}

// ComparePaths orders paths lexicographically by descriptor; a proper prefix
// sorts first.
func ComparePaths(a, b Path) int {
	return slices.CompareFunc(a, b, label.Compare)
}

// SortPaths sorts paths in place, drops duplicates and returns the result.
func SortPaths(paths []Path) []Path {
	slices.SortFunc(paths, ComparePaths)
	return slices.CompactFunc(paths, func(a, b Path) bool {
		return slices.Equal(a, b)
	})
}

// TruncatePaths keeps the maxDepth descriptors nearest the queried package in
// every path. maxDepth <= 0 means no limit. The result is unsorted.
func TruncatePaths(paths []Path, maxDepth int) []Path {
	if maxDepth <= 0 {
		return paths
	}
	out := make([]Path, len(paths))
	for i, p := range paths {
		out[i] = p.Tail(maxDepth)
	}
	return out
}

// PathSet is the outcome of a walk.
type PathSet struct {
	// Paths are root-first chains in discovery order.
	Paths []Path

	// CapHits counts parent edges skipped because the visit cap was reached.
	CapHits int

	// Fallback is true when Paths holds the single-node root fallback.
	Fallback bool
}

// Stats summarizes a graph.
type Stats struct {
	// Entries is the number of resolved packages.
	Entries int

	// Descriptors is the number of distinct descriptors (nodes).
	Descriptors int

	// Edges is the number of child→parent edges.
	Edges int

	// Roots is the number of entry descriptors nothing depends on.
	Roots int
}
