package notation

import (
	"cmp"
	"strings"
)

// Kind identifies the diagram family a source describes.
type Kind string

// Diagram kinds.
const (
	Flowchart Kind = "flowchart"
	Sequence  Kind = "sequence"
	State     Kind = "state"
)

// Kinds lists every supported diagram kind.
var Kinds = []Kind{Flowchart, Sequence, State}

// ParseKind converts a user-supplied name into a Kind.
// "graph" is accepted as an alias for flowchart. The second return value is
// false for unknown names.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flowchart", "graph":
		return Flowchart, true
	case "sequence", "sequencediagram":
		return Sequence, true
	case "state", "statediagram":
		return State, true
	}
	return "", false
}

// Shape is the outline a node is drawn with.
type Shape string

// Node shapes, derived from the bracket pair of the first declaration.
const (
	Rectangle Shape = "rectangle"
	Ellipse   Shape = "ellipse"
	Diamond   Shape = "diamond"
)

// ShapeFromBrackets maps an opening and closing bracket to a Shape.
// Mismatched pairs fall back to Rectangle.
func ShapeFromBrackets(open, close byte) Shape {
	switch {
	case open == '(' && close == ')':
		return Ellipse
	case open == '{' && close == '}':
		return Diamond
	default:
		return Rectangle
	}
}

// Pos locates a declaration in the source. Line is 1-based, Col is the
// 0-based byte offset within the trimmed line.
type Pos struct {
	Line int
	Col  int
}

// Compare orders positions by line, then column.
func (p Pos) Compare(o Pos) int {
	if c := cmp.Compare(p.Line, o.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Col, o.Col)
}

// NodeDecl is an explicit bracketed node declaration.
type NodeDecl struct {
	ID    string
	Label string
	Shape Shape
	Pos   Pos
}

// EdgeDecl is a directed edge declaration. Label is empty for plain edges.
// Arrow keeps the arrow token as written ("-->", "->>", ...). Dotted is set
// for sequence messages drawn with a dotted line ("-->>", "--x", ...); in
// flowcharts and state diagrams "-->" is a solid arrow.
type EdgeDecl struct {
	From   string
	To     string
	Label  string
	Arrow  string
	Dotted bool
	Pos    Pos
}

// Dashed reports whether the edge is drawn with a dashed line.
func (e EdgeDecl) Dashed() bool { return e.Dotted }

// Participant registers a display name for a sequence diagram lifeline.
// It is a naming entry, not a graph node.
type Participant struct {
	Name  string
	Alias string
	Pos   Pos
}

// DisplayName returns the alias if set, otherwise the name.
func (p Participant) DisplayName() string {
	if p.Alias != "" {
		return p.Alias
	}
	return p.Name
}

// Declarations is the parser output for one source text.
type Declarations struct {
	Kind         Kind
	Nodes        []NodeDecl
	Edges        []EdgeDecl
	Participants []Participant
}

// Aliases returns the participant name → display name mapping.
// Later declarations of the same participant do not override earlier ones.
func (d Declarations) Aliases() map[string]string {
	m := make(map[string]string, len(d.Participants))
	for _, p := range d.Participants {
		if _, ok := m[p.Name]; !ok {
			m[p.Name] = p.DisplayName()
		}
	}
	return m
}

// Detect infers the diagram kind from header keywords.
// Sources without a recognizable header are treated as flowcharts.
func Detect(src string) Kind {
	switch {
	case strings.Contains(src, "sequenceDiagram"):
		return Sequence
	case strings.Contains(src, "graph ") || strings.Contains(src, "flowchart "):
		return Flowchart
	case strings.Contains(src, "stateDiagram"):
		return State
	default:
		return Flowchart
	}
}
