// Package yarnwhy explains why a package is present in a yarn lockfile.
//
// Given a lockfile and a package name (optionally with a range), it finds
// every chain of requesters from a root of the dependency graph down to the
// package and merges them into a tree.
//
// # Overview
//
// The work is split across packages:
//
//   - lockfile: reads classic (v1) and berry (v2+) yarn.lock files
//   - graph: reverse dependency graph, query resolution and path enumeration
//   - tree: prefix-sharing forest, deduplication and rendering
//
// # Quick Start
//
//	result, err := yarnwhy.WhyFile("yarn.lock", "node-gyp")
//	if errors.Is(err, yarnwhy.ErrNotFound) {
//	    // not in the lockfile
//	}
//	fmt.Print(result.Forest.ToText(tree.Palette{}))
//
// # Options
//
//	yarnwhy.WhyFile("yarn.lock", "chalk",
//	    yarnwhy.WithVersionFilter("^4.0.0"), // only chalk 4.x
//	    yarnwhy.WithMaxDepth(0),             // full paths
//	    yarnwhy.WithDedup(false),            // every branch expanded
//	)
//
// # Thread Safety
//
// Why does not retain its arguments beyond the call and may be called
// concurrently. Results are not modified after they are returned.
package yarnwhy

import (
	"fmt"
	"io"

	"github.com/albertocavalcante/go-yarnwhy/graph"
	"github.com/albertocavalcante/go-yarnwhy/label"
	"github.com/albertocavalcante/go-yarnwhy/lockfile"
	"github.com/albertocavalcante/go-yarnwhy/tree"
)

// Why answers query against a parsed lockfile.
//
// query is a bare package name ("chalk"), which matches every range the
// package is requested with, or a name plus range ("chalk@^4.1.0").
// It returns an error wrapping ErrNotFound when nothing matches and
// ErrInvalidArgument for a malformed query or option.
func Why(lf *lockfile.Lockfile, query string, opts ...Option) (*Result, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	log := cfg.log()

	q, err := graph.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	entries := lockfile.Normalize(lf.Entries)
	log.Debug("normalized lockfile",
		"format", lf.Format.String(),
		"entries", len(lf.Entries),
		"normalized", len(entries))

	if cfg.filter != nil {
		var removed int
		entries, removed = FilterVersions(entries, q.Name, cfg.filter)
		log.Debug("applied version filter",
			"package", q.Name,
			"filter", cfg.filterRaw,
			"removed", removed)
	}

	g := graph.Build(entries)
	stats := g.Stats()
	log.Debug("built graph",
		"descriptors", stats.Descriptors,
		"edges", stats.Edges,
		"roots", stats.Roots)

	queries := g.Resolve(q)
	if cfg.filter != nil && q.HasRange {
		// The explicit descriptor may survive as a dangling dependency of
		// another entry; it only counts if its own entry passed the filter.
		queries = resolvedOnly(g, queries)
	}
	log.Debug("resolved query", "query", q.String(), "descriptors", len(queries))
	if len(queries) == 0 {
		return nil, fmt.Errorf("%s: %w", q, ErrNotFound)
	}

	set := g.Paths(queries, graph.WalkOptions{
		VisitCap:    cfg.visitCap,
		Concurrency: cfg.concurrency,
	})
	if set.CapHits > 0 {
		log.Debug("visit cap reached", "cap", cfg.visitCap, "skipped", set.CapHits)
	}
	if set.Fallback {
		log.Debug("query is a root", "descriptor", queries[0].String())
	}
	if len(set.Paths) == 0 {
		return nil, fmt.Errorf("%s: %w", q, ErrNotFound)
	}

	paths := graph.SortPaths(graph.TruncatePaths(set.Paths, cfg.maxDepth))
	log.Debug("enumerated paths", "paths", len(set.Paths), "distinct", len(paths), "max_depth", cfg.maxDepth)

	forest := tree.Build(paths, g.Version)
	if cfg.dedup {
		forest = tree.Dedup(forest)
	}

	return &Result{
		Query:       q,
		Descriptors: queries,
		Paths:       paths,
		Forest:      forest,
		Fallback:    set.Fallback,
		Stats:       stats,
	}, nil
}

// WhyFile reads the lockfile at path and answers query against it.
func WhyFile(path, query string, opts ...Option) (*Result, error) {
	lf, err := lockfile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Why(lf, query, opts...)
}

// WhyReader reads a lockfile from r and answers query against it.
func WhyReader(r io.Reader, query string, opts ...Option) (*Result, error) {
	lf, err := lockfile.Read(r)
	if err != nil {
		return nil, err
	}
	return Why(lf, query, opts...)
}

func resolvedOnly(g *graph.Graph, descriptors []label.Descriptor) []label.Descriptor {
	var out []label.Descriptor
	for _, d := range descriptors {
		if g.Entry(d) != nil {
			out = append(out, d)
		}
	}
	return out
}
