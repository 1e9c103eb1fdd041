package yarnwhy

import (
	"github.com/albertocavalcante/go-yarnwhy/graph"
	"github.com/albertocavalcante/go-yarnwhy/label"
	"github.com/albertocavalcante/go-yarnwhy/tree"
)

// Result is the answer to one query.
type Result struct {
	// Query is the parsed query.
	Query graph.Query

	// Descriptors are the descriptors the query resolved to.
	Descriptors []label.Descriptor

	// Paths are the root-first chains, truncated to the max depth, sorted and
	// without duplicates.
	Paths []graph.Path

	// Forest is Paths merged into a tree, deduplicated unless disabled.
	Forest tree.Forest

	// Fallback is true when the queried package is a root nothing depends on.
	Fallback bool

	// Stats describes the graph the query ran against.
	Stats graph.Stats
}
