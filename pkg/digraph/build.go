package digraph

import (
	"slices"

	"github.com/matzehuels/diagramkit/pkg/notation"
)

// Build assembles parsed declarations into a graph.
//
// Node and edge declarations are merged in textual order, so a node's
// registry slot is its first occurrence anywhere in the source: an edge
// that mentions B before B[Label] is declared still places B at that edge.
// Declarations with empty identifiers are skipped.
//
// For sequence diagrams, participants only name lifelines: an alias becomes
// the label of a message endpoint, and a participant that no message uses
// adds no node. Message text becomes the edge label.
func Build(d notation.Declarations) *Graph {
	g := New()

	type item struct {
		pos  notation.Pos
		node *notation.NodeDecl
		edge *notation.EdgeDecl
	}
	items := make([]item, 0, len(d.Nodes)+len(d.Edges))
	for i := range d.Nodes {
		items = append(items, item{pos: d.Nodes[i].Pos, node: &d.Nodes[i]})
	}
	for i := range d.Edges {
		items = append(items, item{pos: d.Edges[i].Pos, edge: &d.Edges[i]})
	}
	// Stable: on equal positions nodes precede edges.
	slices.SortStableFunc(items, func(a, b item) int {
		return a.pos.Compare(b.pos)
	})

	aliases := d.Aliases()
	for _, it := range items {
		switch {
		case it.node != nil:
			_ = g.AddNode(Node{ID: it.node.ID, Label: it.node.Label, Shape: it.node.Shape})
		case it.edge != nil:
			e := it.edge
			if e.From == "" || e.To == "" {
				continue
			}
			if a, ok := aliases[e.From]; ok {
				_ = g.AddNode(Node{ID: e.From, Label: a})
			}
			if a, ok := aliases[e.To]; ok {
				_ = g.AddNode(Node{ID: e.To, Label: a})
			}
			_ = g.AddEdge(Edge{From: e.From, To: e.To, Label: e.Label, Arrow: e.Arrow, Dotted: e.Dotted})
		}
	}
	return g
}
