// Package plantuml renders diagram graphs as PlantUML markup.
//
// Flowcharts become activity diagrams, sequence diagrams keep their
// participants and messages, and state diagrams map one transition per line.
// Every document starts with @startuml and ends with @enduml.
package plantuml

import (
	"fmt"
	"strings"

	"github.com/matzehuels/diagramkit/pkg/digraph"
	"github.com/matzehuels/diagramkit/pkg/notation"
	"github.com/matzehuels/diagramkit/pkg/render/theme"
)

const (
	startMarker = "@startuml\n"
	endMarker   = "@enduml\n"
)

// Render dispatches on the declarations' kind.
func Render(d notation.Declarations, g *digraph.Graph, t theme.Theme) string {
	switch d.Kind {
	case notation.Sequence:
		return Sequence(d, t)
	case notation.State:
		return State(g)
	default:
		return Flowchart(g, t)
	}
}

// Flowchart renders g as an activity diagram.
//
// Edges are walked in declaration order. A source is emitted as an action
// the first time it is seen; the target follows as an action, wrapped in an
// if block when the edge is labeled. Nodes with no edges are emitted after
// the walk so no declared node is lost.
func Flowchart(g *digraph.Graph, t theme.Theme) string {
	t = t.WithDefaults()

	var b strings.Builder
	b.WriteString(startMarker)
	b.WriteString("!theme plain\n")
	fmt.Fprintf(&b, "skinparam backgroundColor %s\n", colorName(t.Background))
	b.WriteString("skinparam activity {\n")
	fmt.Fprintf(&b, "  BackgroundColor %s\n", t.Primary)
	fmt.Fprintf(&b, "  BorderColor %s\n", t.Neutral)
	b.WriteString("  FontColor white\n")
	b.WriteString("}\n\n")
	b.WriteString("start\n")

	label := func(id string) string {
		if n, ok := g.Node(id); ok {
			return n.DisplayLabel()
		}
		return id
	}

	processed := make(map[string]bool, g.NodeCount())
	for _, e := range g.Edges() {
		if !processed[e.From] {
			fmt.Fprintf(&b, ":%s;\n", label(e.From))
			processed[e.From] = true
		}
		if e.Label != "" {
			fmt.Fprintf(&b, "if (%s) then (yes)\n", e.Label)
			fmt.Fprintf(&b, "  :%s;\n", label(e.To))
			b.WriteString("endif\n")
		} else {
			fmt.Fprintf(&b, ":%s;\n", label(e.To))
		}
		processed[e.To] = true
	}
	for _, n := range g.Isolated() {
		fmt.Fprintf(&b, ":%s;\n", n.DisplayLabel())
	}

	b.WriteString("stop\n")
	b.WriteString(endMarker)
	return b.String()
}

// Sequence renders participants and messages. Participants are declared in
// source order with their display name; dashed arrows become "-->".
func Sequence(d notation.Declarations, t theme.Theme) string {
	t = t.WithDefaults()

	var b strings.Builder
	b.WriteString(startMarker)
	b.WriteString("!theme plain\n")
	fmt.Fprintf(&b, "skinparam backgroundColor %s\n\n", colorName(t.Background))

	declared := make(map[string]bool, len(d.Participants))
	for _, p := range d.Participants {
		if declared[p.Name] {
			continue
		}
		declared[p.Name] = true
		fmt.Fprintf(&b, "participant %q as %s\n", p.DisplayName(), p.Name)
	}
	for _, e := range d.Edges {
		arrow := "->"
		if e.Dashed() {
			arrow = "-->"
		}
		fmt.Fprintf(&b, "%s %s %s: %s\n", e.From, arrow, e.To, e.Label)
	}

	b.WriteString(endMarker)
	return b.String()
}

// State renders one transition per edge as "From --> To" with an optional
// " : label".
func State(g *digraph.Graph) string {
	var b strings.Builder
	b.WriteString(startMarker)
	b.WriteString("!theme plain\n\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "%s --> %s", e.From, e.To)
		if e.Label != "" {
			fmt.Fprintf(&b, " : %s", e.Label)
		}
		b.WriteString("\n")
	}
	b.WriteString(endMarker)
	return b.String()
}

// colorName maps white to its PlantUML keyword and leaves other colors as is.
func colorName(c string) string {
	if strings.EqualFold(c, theme.White) || strings.EqualFold(c, "#fff") {
		return "white"
	}
	return c
}
