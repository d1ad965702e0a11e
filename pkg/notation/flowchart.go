package notation

import (
	"regexp"
	"strings"
)

var (
	nodeDeclRe  = regexp.MustCompile(`([A-Za-z0-9_]+)([\[\(\{])([^\]\)\}]+)([\]\)\}])`)
	edgeStepRe  = regexp.MustCompile(`([A-Za-z0-9_]+)\s*(-->|->)\s*(?:\|([^|]*)\|\s*)?([A-Za-z0-9_]+)`)
	labelSpanRe = regexp.MustCompile(`\|[^|]*\|`)
)

// nodeDeclMatches returns the submatch indices of node declarations on the
// line, skipping text inside "|label|" spans.
func nodeDeclMatches(line string) [][]int {
	spans := labelSpanRe.FindAllStringIndex(line, -1)
	var out [][]int
	for _, m := range nodeDeclRe.FindAllStringSubmatchIndex(line, -1) {
		inside := false
		for _, sp := range spans {
			if m[0] < sp[1] && m[1] > sp[0] {
				inside = true
				break
			}
		}
		if !inside {
			out = append(out, m)
		}
	}
	return out
}

// matchFlowchartLine returns every bracketed node declaration on the line and
// every edge hop, in textual order.
func matchFlowchartLine(line string, lineNo int) ([]NodeDecl, []EdgeDecl) {
	var nodes []NodeDecl
	for _, m := range nodeDeclMatches(line) {
		label := strings.Trim(strings.TrimSpace(line[m[6]:m[7]]), `"`)
		nodes = append(nodes, NodeDecl{
			ID:    line[m[2]:m[3]],
			Label: label,
			Shape: ShapeFromBrackets(line[m[4]], line[m[8]]),
			Pos:   Pos{Line: lineNo, Col: m[0]},
		})
	}

	stripped, cols := stripNodeDecls(line)
	var edges []EdgeDecl
	for start := 0; start < len(stripped); {
		m := edgeStepRe.FindStringSubmatchIndex(stripped[start:])
		if m == nil {
			break
		}
		e := EdgeDecl{
			From:  stripped[start+m[2] : start+m[3]],
			Arrow: stripped[start+m[4] : start+m[5]],
			To:    stripped[start+m[8] : start+m[9]],
			Pos:   Pos{Line: lineNo, Col: cols[start+m[0]]},
		}
		if m[6] >= 0 {
			e.Label = strings.TrimSpace(stripped[start+m[6] : start+m[7]])
		}
		edges = append(edges, e)
		// The target of this hop is the source of the next one in a chain.
		start += m[8]
	}
	return nodes, edges
}

// stripNodeDecls reduces every "ID[label]" on the line to "ID". The returned
// slice maps each byte offset of the stripped line (plus its end) back to the
// offset in the original line.
func stripNodeDecls(line string) (string, []int) {
	matches := nodeDeclMatches(line)
	if len(matches) == 0 {
		cols := make([]int, len(line)+1)
		for i := range cols {
			cols[i] = i
		}
		return line, cols
	}

	var b strings.Builder
	cols := make([]int, 0, len(line)+1)
	keep := func(from, to int) {
		b.WriteString(line[from:to])
		for i := from; i < to; i++ {
			cols = append(cols, i)
		}
	}
	prev := 0
	for _, m := range matches {
		keep(prev, m[3])
		prev = m[1]
	}
	keep(prev, len(line))
	cols = append(cols, len(line))
	return b.String(), cols
}
