// Package graph answers "who requires this descriptor?" over a yarn lockfile.
//
// A Graph is built from normalized lockfile entries. Every descriptor that
// appears in the lockfile (as an entry key or as a dependency) becomes a node
// in an index arena; edges are stored in reverse, child to parents, because
// every query walks from a package up towards the roots that pull it in.
//
// # Building a Graph
//
//	entries := lockfile.Normalize(lf.Entries)
//	g := graph.Build(entries)
//
// # Querying the Graph
//
//	q, _ := graph.ParseQuery("fsevents")
//	descriptors := g.Resolve(q) // every range fsevents is requested with
//
//	set := g.Paths(descriptors, graph.WalkOptions{})
//	paths := graph.SortPaths(set.Paths)
//
// Dependency graphs may contain cycles. Walks bound how often each node may
// be entered per query descriptor (see [DefaultVisitCap]) and no emitted path
// ever repeats a descriptor.
package graph
