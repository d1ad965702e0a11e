// Package transform computes derived views over a [digraph.Graph].
//
// # Level Assignment
//
// [Levels] assigns every node a level by breadth-first traversal from the
// graph's roots (nodes that are never an edge target). A node's level is the
// frontier on which it is first discovered; ties are broken by root order and
// then by edge-declaration order, so the result is fully determined by the
// graph's insertion order.
//
//	levels := transform.Levels(g)
//	// A[Start] --> B --> C  →  A:0, B:1, C:2
//
// Cycles do not need to be broken first. The visited set stops traversal on
// revisits, and nodes that cannot be reached from any root (for example a
// graph that is a single cycle) are placed on level 0.
//
// Functions in this package never mutate the input graph.
package transform
