package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/diagramkit/pkg/digraph"
	"github.com/matzehuels/diagramkit/pkg/notation"
	"github.com/matzehuels/diagramkit/pkg/render"
	"github.com/matzehuels/diagramkit/pkg/render/theme"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node ID and level below the label.
	Detailed bool
	// Theme colors the preview. Zero values fall back to the default theme.
	Theme theme.Theme
}

// ToDOT converts a graph to Graphviz DOT. Nodes appear in registry order,
// edges in declaration order; nodes on the same level share a rank.
// levels may be nil, in which case no rank constraints are emitted.
func ToDOT(g *digraph.Graph, levels map[string]int, opts Options) string {
	t := opts.Theme.WithDefaults()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [style=filled, fillcolor=%q, color=%q, fontcolor=%q, fontsize=16, margin=\"0.2,0.1\"];\n",
		theme.Fill(t.Primary), t.Primary, t.Text)
	fmt.Fprintf(&buf, "  edge [color=%q, fontcolor=%q, fontsize=12];\n", t.Neutral, t.Neutral)
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(*n, levels, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(*n, label), ", "))
	}

	if len(levels) > 0 {
		buf.WriteString("\n")
		byLevel := make(map[int][]string)
		for _, id := range g.NodeIDs() {
			byLevel[levels[id]] = append(byLevel[levels[id]], id)
		}
		for _, l := range slices.Sorted(maps.Keys(byLevel)) {
			quoted := make([]string, len(byLevel[l]))
			for i, id := range byLevel[l] {
				quoted[i] = strconv.Quote(id)
			}
			fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		var attrs []string
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		}
		if e.Dashed() {
			attrs = append(attrs, "style=dashed")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n digraph.Node, levels map[string]int, detailed bool) string {
	if !detailed {
		return n.DisplayLabel()
	}
	parts := []string{n.DisplayLabel(), "id: " + n.ID}
	if levels != nil {
		parts = append(parts, fmt.Sprintf("level: %d", levels[n.ID]))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n digraph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.EffectiveShape() {
	case notation.Ellipse:
		attrs = append(attrs, "shape=ellipse")
	case notation.Diamond:
		attrs = append(attrs, "shape=diamond")
	default:
		attrs = append(attrs, "shape=box", "style=\"rounded,filled\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
