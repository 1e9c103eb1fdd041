package graph

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/go-yarnwhy/label"
	"github.com/albertocavalcante/go-yarnwhy/lockfile"
)

// Query is a parsed user query: a bare package name, or a name plus an
// explicit range.
type Query struct {
	Name  string
	Range string

	// HasRange is true when the query named a range explicitly.
	HasRange bool
}

// ParseQuery parses "name" or "name@range". Scoped names are supported and
// the range is normalized the same way lockfile ranges are.
func ParseQuery(token string) (Query, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Query{}, fmt.Errorf("query cannot be empty")
	}

	name, rng, hasRange := label.SplitNameRange(token)
	if err := label.ValidateName(name); err != nil {
		return Query{}, fmt.Errorf("invalid query %q: %w", token, err)
	}
	if hasRange && rng == "" {
		return Query{}, fmt.Errorf("invalid query %q: empty range after '@'", token)
	}

	return Query{Name: name, Range: label.NormalizeRange(rng), HasRange: hasRange}, nil
}

// String returns the query as typed, minus any resolution protocol.
func (q Query) String() string {
	if q.HasRange {
		return q.Name + "@" + q.Range
	}
	return q.Name
}

// Resolve maps a query to the descriptors the walk starts from.
//
// An explicit range yields exactly that descriptor, present in the graph or
// not. A bare name yields every entry descriptor with that name, in entry
// order, because one package is often requested under several ranges.
func (g *Graph) Resolve(q Query) []label.Descriptor {
	if q.HasRange {
		return []label.Descriptor{{Name: q.Name, Range: q.Range}}
	}

	var out []label.Descriptor
	seen := make(map[label.Descriptor]bool)
	for _, e := range g.entries {
		for _, d := range e.Descriptors {
			if d.Name == q.Name && !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	return out
}

// Entry returns the entry d resolves to, or nil.
func (g *Graph) Entry(d label.Descriptor) *lockfile.Entry {
	n, ok := g.index[d]
	if !ok || g.owner[n] < 0 {
		return nil
	}
	return &g.entries[g.owner[n]]
}

// Version returns the resolved version of d, or "" if d resolves to no entry.
func (g *Graph) Version(d label.Descriptor) string {
	if e := g.Entry(d); e != nil {
		return e.Version
	}
	return ""
}

// Parents returns the descriptors that directly require d.
func (g *Graph) Parents(d label.Descriptor) []label.Descriptor {
	n, ok := g.index[d]
	if !ok {
		return nil
	}
	return g.descriptors(g.parents[n])
}

// Roots returns every entry descriptor nothing depends on, in arena order.
func (g *Graph) Roots() []label.Descriptor {
	var roots []label.Descriptor
	for n, d := range g.nodes {
		if g.owner[n] >= 0 && len(g.parents[n]) == 0 {
			roots = append(roots, d)
		}
	}
	return roots
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() Stats {
	stats := Stats{
		Entries:     len(g.entries),
		Descriptors: len(g.nodes),
		Roots:       len(g.Roots()),
	}
	for n := range g.nodes {
		stats.Edges += len(g.parents[n])
	}
	return stats
}

func (g *Graph) descriptors(nodes []int) []label.Descriptor {
	out := make([]label.Descriptor, len(nodes))
	for i, n := range nodes {
		out[i] = g.nodes[n]
	}
	return out
}
