package graph

import (
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/albertocavalcante/go-yarnwhy/label"
)

// DefaultVisitCap is how many times one walk may enter the same node.
const DefaultVisitCap = 20

// WalkOptions configures Paths.
type WalkOptions struct {
	// VisitCap bounds per-node entries within one walk. Branches beyond it are
	// dropped silently. Zero means DefaultVisitCap.
	VisitCap int

	// Concurrency is the number of query descriptors walked at once.
	// Values below 2 walk them one after the other.
	Concurrency int
}

// Paths enumerates every root-to-query path for each query descriptor.
//
// Each descriptor is walked depth-first along parent edges. A node without
// parents is a root and closes a path. If no descriptor yields a path, the
// first one is checked against the entries: a descriptor that resolves to an
// entry nobody depends on is its own single-node path.
//
// Paths come back grouped by query descriptor in query order; use SortPaths
// for a deterministic order.
func (g *Graph) Paths(queries []label.Descriptor, opts WalkOptions) PathSet {
	visitCap := opts.VisitCap
	if visitCap <= 0 {
		visitCap = DefaultVisitCap
	}

	results := make([]walker, len(queries))

	var eg errgroup.Group
	eg.SetLimit(max(1, opts.Concurrency))
	for i, q := range queries {
		n, ok := g.index[q]
		if !ok || len(g.parents[n]) == 0 {
			continue
		}
		eg.Go(func() error {
			results[i] = walker{
				g:      g,
				target: n,
				cap:    visitCap,
				visits: make([]int, len(g.nodes)),
			}
			results[i].visit(n)
			return nil
		})
	}
	// Walks never fail; Wait only joins them.
	_ = eg.Wait()

	var set PathSet
	for _, w := range results {
		set.Paths = append(set.Paths, w.paths...)
		set.CapHits += w.capHits
	}

	if len(set.Paths) == 0 && len(queries) > 0 {
		if p, ok := g.rootPath(queries[0]); ok {
			set.Paths = []Path{p}
			set.Fallback = true
		}
	}

	return set
}

// rootPath treats q as a root when it belongs to an entry of the same name.
func (g *Graph) rootPath(q label.Descriptor) (Path, bool) {
	for i := range g.entries {
		e := &g.entries[i]
		if e.Name == q.Name && e.HasDescriptor(q) {
			return Path{q}, true
		}
	}
	return nil, false
}

// walker holds the state of one depth-first walk. Visit counts are local to
// the walk so concurrent walks share nothing but the read-only graph.
type walker struct {
	g      *Graph
	target int
	cap    int

	visits []int
	stack  []int

	paths   []Path
	capHits int
}

func (w *walker) visit(n int) {
	w.stack = append(w.stack, n)
	w.visits[n]++

	parents := w.g.parents[n]
	if len(parents) == 0 {
		w.record()
	}
	for _, p := range parents {
		if w.visits[p] >= w.cap {
			w.capHits++
			continue
		}
		w.visit(p)
	}

	w.stack = w.stack[:len(w.stack)-1]
}

// record turns the current stack into a root-first path.
func (w *walker) record() {
	path := slices.Clone(w.stack)
	slices.Reverse(path)

	// A cycle may have walked back through the target; the path ends at its
	// occurrence nearest the root.
	if i := slices.Index(path, w.target); i >= 0 {
		path = path[:i+1]
	}

	w.paths = append(w.paths, w.g.descriptors(eraseLoops(path)))
}

// eraseLoops removes cyclic detours so no node appears twice. Scanning from
// the root, a repeated node cuts the path back to its first occurrence, which
// keeps every remaining step a real edge.
func eraseLoops(path []int) []int {
	out := make([]int, 0, len(path))
	pos := make(map[int]int, len(path))
	for _, n := range path {
		if i, ok := pos[n]; ok {
			for _, m := range out[i+1:] {
				delete(pos, m)
			}
			out = out[:i+1]
			continue
		}
		pos[n] = len(out)
		out = append(out, n)
	}
	return out
}
