// Package render holds the output renderers for diagram graphs.
//
// # Overview
//
// Each subpackage turns a built graph (and, where positions matter, its grid
// layout) into one output format:
//
//   - [excalidraw]: structured Excalidraw scene JSON with bound text and arrows
//   - [plantuml]: PlantUML activity, sequence and state markup
//   - [nodelink]: Graphviz DOT and in-process SVG previews
//   - [theme]: the shared color palette
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They back the preview
// command's pdf and png outputs.
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [excalidraw]: github.com/matzehuels/diagramkit/pkg/render/excalidraw
// [plantuml]: github.com/matzehuels/diagramkit/pkg/render/plantuml
// [nodelink]: github.com/matzehuels/diagramkit/pkg/render/nodelink
// [theme]: github.com/matzehuels/diagramkit/pkg/render/theme
package render
