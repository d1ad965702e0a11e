// Package pkg provides the core libraries for diagramkit diagram translation.
//
// # Overview
//
// diagramkit reads lightweight Mermaid-style notation (flowchart, sequence
// and state diagrams) and emits Excalidraw scenes, PlantUML markup or
// Graphviz DOT. The pkg directory is organized into three areas:
//
//  1. Domain logic ([notation], [digraph], [layout], [render])
//  2. Orchestration ([pipeline])
//  3. Infrastructure ([cache], [config], [errors], [observability])
//
// # Architecture
//
// The data flow through diagramkit:
//
//	Mermaid-style source
//	         ↓
//	    [notation] package (recognize declarations line by line)
//	         ↓
//	    [digraph] package (node registry + ordered edges)
//	         ↓
//	    [digraph/transform] package (BFS levels from the roots)
//	         ↓
//	    [layout] package (level grid, anchors, facing sides)
//	         ↓
//	    [render] packages (excalidraw, plantuml, nodelink)
//	         ↓
//	    Excalidraw JSON / PlantUML / DOT / SVG / PNG / PDF
//
// # Quick Start
//
//	d := notation.Parse(src, "")
//	g := digraph.Build(d)
//	levels := transform.Levels(g)
//	l := layout.Grid(g, levels, layout.DefaultOptions(d.Kind))
//	doc := excalidraw.Assemble(g, l, excalidraw.Options{})
//	report := excalidraw.ValidateDocument(doc)
//
// Most callers use the pipeline instead, which checks the requested
// translation first and runs every stage:
//
//	res, err := pipeline.Translate(src, pipeline.Options{
//	    Input:  pipeline.FormatMermaid,
//	    Output: pipeline.FormatExcalidraw,
//	})
//
// # Main Packages
//
// [notation] - Line-oriented recognizer for the three diagram kinds. Unknown
// lines are skipped; nothing here returns an error.
//
// [digraph] - Directed graph with first-write-wins node identity and
// declaration-ordered edges. [digraph/transform] assigns levels.
//
// [layout] - Places each level in a column and picks the sides arrows
// leave and enter by.
//
// [render/excalidraw] - Scene assembly with bound text and arrow bindings,
// plus a structural validator and cognitive load estimate.
//
// [render/plantuml] - Activity, sequence and state markup.
//
// [render/nodelink] - DOT output and Graphviz rendering for previews.
//
// [pipeline] - Parse → layout → render → validate with caching, hooks and
// concurrent batches. Used by both the CLI and the HTTP service.
//
// [cache] - File, Redis and null caches behind one interface.
//
// [config] - TOML/YAML settings with environment overrides.
//
// [observability] - Hook interfaces and their Prometheus implementation.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/render/excalidraw/...  # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// Redis tests run only when DIAGRAMKIT_TEST_REDIS names a server address.
//
// [notation]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/notation
// [digraph]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/digraph
// [digraph/transform]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/digraph/transform
// [layout]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/render
// [render/excalidraw]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/render/excalidraw
// [render/plantuml]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/render/plantuml
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/diagramkit/pkg/observability
package pkg
