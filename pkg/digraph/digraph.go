package digraph

import (
	"errors"
	"slices"

	"github.com/matzehuels/diagramkit/pkg/notation"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] and [Graph.AddEdge]
	// when a node identifier is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")
)

// Node is a vertex of the diagram graph.
//
// Label and Shape are empty for implicit nodes that were only referenced by
// an edge. Use [Node.DisplayLabel] and [Node.EffectiveShape] when rendering.
type Node struct {
	ID    string
	Label string
	Shape notation.Shape
}

// DisplayLabel returns the label, or the ID when no label was declared.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// EffectiveShape returns the declared shape, or rectangle when none was.
func (n Node) EffectiveShape() notation.Shape {
	if n.Shape != "" {
		return n.Shape
	}
	return notation.Rectangle
}

// Edge is a directed, optionally labeled connection between two nodes.
// Arrow keeps the source arrow token; Dotted selects the dashed line style.
type Edge struct {
	From   string
	To     string
	Label  string
	Arrow  string
	Dotted bool
}

// Dashed reports whether the edge is drawn with a dashed line.
func (e Edge) Dashed() bool { return e.Dotted }

// Graph is a directed graph with an insertion-ordered node registry.
//
// The zero value is not usable - use [New]. Graph is not safe for concurrent
// mutation; a fully built graph may be read from many goroutines.
type Graph struct {
	order    []string
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string // nodeID -> child IDs, edge order
	incoming map[string][]string // nodeID -> parent IDs, edge order
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode registers a node. If the ID already exists the existing node keeps
// its registry slot and only empty Label or Shape fields are filled from n.
// Returns ErrInvalidNodeID if the ID is empty.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if existing, ok := g.nodes[n.ID]; ok {
		if existing.Label == "" {
			existing.Label = n.Label
		}
		if existing.Shape == "" {
			existing.Shape = n.Shape
		}
		return nil
	}
	node := n
	g.nodes[n.ID] = &node
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge appends a directed edge. Endpoints that are not yet registered are
// added as implicit nodes, source first. Parallel edges are kept.
// Returns ErrInvalidNodeID if either endpoint is empty.
func (g *Graph) AddEdge(e Edge) error {
	if e.From == "" || e.To == "" {
		return ErrInvalidNodeID
	}
	g.ensure(e.From)
	g.ensure(e.To)
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

func (g *Graph) ensure(id string) {
	if _, ok := g.nodes[id]; !ok {
		g.nodes[id] = &Node{ID: id}
		g.order = append(g.order, id)
	}
}

// Nodes returns all nodes in first-declaration order.
// The returned pointers refer to the graph's own nodes.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// NodeIDs returns all node IDs in first-declaration order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns a copy of the edge list in declaration order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the targets of the node's outgoing edges in edge order.
// A target appears once per parallel edge. The slice must not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the sources of the node's incoming edges in edge order.
// The slice must not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns the nodes that are never an edge target, in registry order.
func (g *Graph) Sources() []*Node {
	var sources []*Node
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, g.nodes[id])
		}
	}
	return sources
}

// Isolated returns the nodes with no incident edges, in registry order.
func (g *Graph) Isolated() []*Node {
	var out []*Node
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 && len(g.outgoing[id]) == 0 {
			out = append(out, g.nodes[id])
		}
	}
	return out
}

// HasCycle reports whether the graph contains a directed cycle, including
// self loops. Detection is a depth-first search with white/gray/black
// coloring in O(N+E).
func (g *Graph) HasCycle() bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		for _, child := range g.outgoing[id] {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, id := range g.order {
		if color[id] == white && dfs(id) {
			return true
		}
	}
	return false
}
