// Package digraph provides the directed graph model diagrams are built into.
//
// # Overview
//
// A [Graph] is an insertion-ordered node registry plus an edge list. Unlike a
// plain map, iterating [Graph.Nodes] yields nodes in first-declaration order,
// which later stages rely on for deterministic layout tie-breaking.
//
// Cycles and parallel edges are allowed: diagrams are not dependency graphs
// and a state machine is expected to loop back on itself.
//
// # Building From Source
//
// [Build] turns parsed [notation.Declarations] into a graph:
//
//	d := notation.Parse("A[Start] --> B[Process]\nB --> C[End]", "")
//	g := digraph.Build(d)
//	// g.Nodes() → A, B, C
//	// g.Edges() → A→B, B→C
//
// # Identity
//
// A node's identity is fixed by its first occurrence. Later declarations of
// the same identifier only fill a label or shape that is still empty; they
// never overwrite. Edges to undeclared identifiers create implicit nodes
// whose label is the identifier itself (see [Node.DisplayLabel]).
//
// # Transformations
//
// The transform subpackage computes level assignments over a graph without
// mutating it.
package digraph
