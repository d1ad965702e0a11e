package pipeline

import (
	"time"

	"github.com/matzehuels/diagramkit/pkg/digraph"
	"github.com/matzehuels/diagramkit/pkg/digraph/transform"
	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/layout"
	"github.com/matzehuels/diagramkit/pkg/notation"
	"github.com/matzehuels/diagramkit/pkg/render/excalidraw"
	"github.com/matzehuels/diagramkit/pkg/render/nodelink"
	"github.com/matzehuels/diagramkit/pkg/render/plantuml"
)

// Translate runs the full pipeline on src.
//
// The translation pair is checked before src is looked at, so an
// unsupported pair fails with no partial output. Past that point only an
// internal encoding failure can produce an error: unparseable lines are
// skipped and validation problems are returned in Result.Report.
func Translate(src string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	res := &Result{}

	// Stage 1: Parse + build
	start := time.Now()
	res.Declarations = notation.Parse(src, opts.ForcedKind())
	res.Kind = res.Declarations.Kind
	res.Graph = digraph.Build(res.Declarations)
	res.Stats.ParseTime = time.Since(start)
	res.Stats.NodeCount = res.Graph.NodeCount()
	res.Stats.EdgeCount = res.Graph.EdgeCount()
	res.Stats.Cyclic = res.Graph.HasCycle()

	// Stage 2: Layout
	start = time.Now()
	res.Levels = transform.Levels(res.Graph)
	res.Layout = layout.Grid(res.Graph, res.Levels, opts.Layout.WithDefaults(res.Kind))
	res.Stats.LayoutTime = time.Since(start)
	res.Stats.LevelCount = res.Layout.Levels()

	// Stage 3: Render (and validate, for Excalidraw)
	start = time.Now()
	switch opts.Output {
	case FormatPlantUML:
		res.Output = []byte(plantuml.Render(res.Declarations, res.Graph, opts.Theme))
	case FormatDOT:
		res.Output = []byte(nodelink.ToDOT(res.Graph, res.Levels, nodelink.Options{
			Detailed: opts.Detailed,
			Theme:    opts.Theme,
		}))
	case FormatExcalidraw:
		res.Document = excalidraw.Assemble(res.Graph, res.Layout, excalidraw.Options{
			Theme:    opts.Theme,
			IDs:      opts.IDs,
			GridSize: opts.GridSize,
			Updated:  opts.Updated,
		})
		data, err := excalidraw.Marshal(res.Document)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode excalidraw document")
		}
		res.Output = data
	}
	res.Stats.RenderTime = time.Since(start)

	if res.Document != nil {
		start = time.Now()
		report := excalidraw.ValidateDocument(res.Document)
		res.Report = &report
		res.Stats.ValidateTime = time.Since(start)
	}
	return res, nil
}
