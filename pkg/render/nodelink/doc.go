// Package nodelink renders diagram graphs as Graphviz node-link previews.
//
// # Overview
//
// [ToDOT] converts a graph into DOT source laid out left to right, with
// nodes that share a level pinned to the same rank so the preview matches
// the grid used by the Excalidraw assembler. [RenderSVG] renders DOT in
// process through go-graphviz; no Graphviz installation is needed.
//
//	dot := nodelink.ToDOT(g, levels, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use [RenderPDF] and [RenderPNG], which require
// librsvg (rsvg-convert).
//
// # Options
//
//   - Detailed: node labels also show the identifier and level
//   - Theme: colors for node fill, border and edges
package nodelink
