package notation

import "strings"

// directives are leading keywords of lines that carry no node or edge
// information for any supported kind.
var directives = map[string]bool{
	"graph":           true,
	"flowchart":       true,
	"sequenceDiagram": true,
	"stateDiagram":    true,
	"stateDiagram-v2": true,
	"subgraph":        true,
	"end":             true,
	"classDef":        true,
	"class":           true,
	"style":           true,
	"linkStyle":       true,
	"click":           true,
	"direction":       true,
	"note":            true,
	"Note":            true,
	"autonumber":      true,
	"activate":        true,
	"deactivate":      true,
	"loop":            true,
	"alt":             true,
	"else":            true,
	"opt":             true,
	"par":             true,
	"and":             true,
	"rect":            true,
	"state":           true,
}

// Parse extracts node, edge and participant declarations from src.
//
// If kind is empty the kind is inferred with [Detect]. Parse never fails:
// lines no matcher recognizes are skipped. The returned declarations are in
// source order.
func Parse(src string, kind Kind) Declarations {
	if kind == "" {
		kind = Detect(src)
	}
	d := Declarations{Kind: kind}

	for i, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if skipLine(line) {
			continue
		}
		lineNo := i + 1

		switch kind {
		case Sequence:
			if p, ok := matchParticipant(line, lineNo); ok {
				d.Participants = append(d.Participants, p)
				continue
			}
			if e, ok := matchMessage(line, lineNo); ok {
				d.Edges = append(d.Edges, e)
			}
		case State:
			if e, ok := matchTransition(line, lineNo); ok {
				d.Edges = append(d.Edges, e)
			}
		default:
			nodes, edges := matchFlowchartLine(line, lineNo)
			d.Nodes = append(d.Nodes, nodes...)
			d.Edges = append(d.Edges, edges...)
		}
	}
	return d
}

// skipLine reports whether a trimmed line is blank, a comment or a directive.
func skipLine(line string) bool {
	if line == "" || strings.HasPrefix(line, "%%") {
		return true
	}
	first, _, _ := strings.Cut(line, " ")
	return directives[strings.TrimSuffix(first, ":")]
}
