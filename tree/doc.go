// Package tree merges dependency paths into a forest and renders it.
//
// [Build] folds sorted root-first paths into a prefix-sharing forest: paths
// that agree on a prefix share the nodes along it, and a descriptor reached
// through different parents gets a distinct node under each.
//
// [Dedup] collapses descriptors that recur across branches. The first
// occurrence (depth-first, in sibling order) keeps its subtree; later ones
// lose their children unless every child is a leaf, so the queried package
// stays visible under each branch that reaches it.
//
// # Output Formats
//
//   - Text: indented branch glyphs, optionally colored ([Forest.WriteText])
//   - JSON: nested {"descriptor", "version", "children"} objects ([Forest.ToJSON])
//   - DOT: Graphviz digraph ([Forest.ToDOT])
//
// Example:
//
//	paths := graph.SortPaths(g.Paths(queries, graph.WalkOptions{}).Paths)
//	forest := tree.Dedup(tree.Build(paths, g.Version))
//	fmt.Print(forest.ToText(tree.Palette{}))
package tree
