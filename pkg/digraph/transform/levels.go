package transform

import "github.com/matzehuels/diagramkit/pkg/digraph"

// Levels returns the BFS discovery level of every node in g.
//
// Roots are visited in registry order, children in edge order. Each node is
// visited exactly once; unreached nodes default to level 0. The returned map
// contains an entry for every node.
//
// Time complexity is O(V + E).
func Levels(g *digraph.Graph) map[string]int {
	levels := make(map[string]int, g.NodeCount())
	visited := make(map[string]bool, g.NodeCount())

	var frontier []string
	for _, n := range g.Sources() {
		frontier = append(frontier, n.ID)
		visited[n.ID] = true
		levels[n.ID] = 0
	}

	for level := 1; len(frontier) > 0; level++ {
		var next []string
		for _, id := range frontier {
			for _, child := range g.Children(id) {
				if visited[child] {
					continue
				}
				visited[child] = true
				levels[child] = level
				next = append(next, child)
			}
		}
		frontier = next
	}

	for _, id := range g.NodeIDs() {
		if !visited[id] {
			levels[id] = 0
		}
	}
	return levels
}

// Roots returns the IDs of the nodes Levels starts from, in registry order.
func Roots(g *digraph.Graph) []string {
	sources := g.Sources()
	ids := make([]string, len(sources))
	for i, n := range sources {
		ids[i] = n.ID
	}
	return ids
}

// MaxLevel returns the highest level in levels, or 0 for an empty map.
func MaxLevel(levels map[string]int) int {
	max := 0
	for _, l := range levels {
		if l > max {
			max = l
		}
	}
	return max
}
