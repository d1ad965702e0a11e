package excalidraw

import (
	"time"

	"github.com/matzehuels/diagramkit/pkg/digraph"
	"github.com/matzehuels/diagramkit/pkg/layout"
	"github.com/matzehuels/diagramkit/pkg/notation"
	"github.com/matzehuels/diagramkit/pkg/render/theme"
)

// Geometry and style constants.
const (
	BindingGap      = 10.0
	TextPadding     = 10.0
	TextHeight      = 25.0
	LabelWidth      = 60.0
	LabelHeight     = 20.0
	NodeFontSize    = 16.0
	LabelFontSize   = 14.0
	FontFamily      = 1
	LineHeight      = 1.25
	StrokeWidth     = 2.0
	SelfLoopReach   = 30.0
	roundnessCorner = 2
)

// Options configures document assembly.
type Options struct {
	Theme theme.Theme
	// IDs selects the identifier strategy. Empty means CounterIDs.
	IDs IDStrategy
	// GridSize is stored in appState; 0 disables the grid (null).
	GridSize int
	// Updated is the element timestamp. The zero value emits 0 so output
	// stays reproducible.
	Updated time.Time
}

// assembler holds the per-call state of one Assemble invocation.
type assembler struct {
	opts     Options
	ids      IDGenerator
	updated  int64
	elements []Element
	shapes   map[string]int // node ID -> element index
}

// Assemble builds a scene from a graph and its layout.
//
// Elements are emitted node by node (shape, then its text) in registry
// order, followed by edge by edge (arrow, then its label) in declaration
// order. Nodes without a box in l are skipped along with their edges.
func Assemble(g *digraph.Graph, l layout.Layout, opts Options) *Document {
	opts.Theme = opts.Theme.WithDefaults()
	a := &assembler{
		opts:   opts,
		ids:    NewIDGenerator(opts.IDs),
		shapes: make(map[string]int, g.NodeCount()),
	}
	if !opts.Updated.IsZero() {
		a.updated = opts.Updated.UnixMilli()
	}

	for _, n := range g.Nodes() {
		box, ok := l.Box(n.ID)
		if !ok {
			continue
		}
		a.addNode(*n, box)
	}
	for _, e := range g.Edges() {
		from, okF := l.Box(e.From)
		to, okT := l.Box(e.To)
		if !okF || !okT {
			continue
		}
		a.addEdge(e, from, to)
	}

	doc := &Document{
		Type:     DocumentType,
		Version:  DocumentVersion,
		Source:   DocumentSource,
		Elements: a.elements,
		AppState: AppState{ViewBackgroundColor: opts.Theme.Background},
		Files:    map[string]any{},
	}
	if doc.Elements == nil {
		doc.Elements = []Element{}
	}
	if opts.GridSize > 0 {
		size := opts.GridSize
		doc.AppState.GridSize = &size
	}
	return doc
}

// base returns an element with the fields every element type shares.
func (a *assembler) base(id, typ string) Element {
	seq := CounterStart + len(a.elements)
	return Element{
		ID:              id,
		Type:            typ,
		StrokeColor:     a.opts.Theme.Primary,
		BackgroundColor: "transparent",
		FillStyle:       "solid",
		StrokeWidth:     StrokeWidth,
		StrokeStyle:     "solid",
		Roughness:       0,
		Opacity:         100,
		GroupIDs:        []string{},
		Seed:            seq,
		Version:         1,
		VersionNonce:    seq,
		BoundElements:   []BoundRef{},
		Updated:         a.updated,
	}
}

func (a *assembler) addNode(n digraph.Node, box layout.Box) {
	shape := n.EffectiveShape()
	shapeID := a.ids.Next("node")
	el := a.base(shapeID, string(shape))
	el.X, el.Y, el.Width, el.Height = box.X, box.Y, box.Width, box.Height
	el.BackgroundColor = theme.Fill(a.opts.Theme.Primary)
	if shape == notation.Rectangle {
		el.Roundness = &Roundness{Type: roundnessCorner}
	}
	a.shapes[n.ID] = len(a.elements)
	a.elements = append(a.elements, el)

	textID := a.ids.Next("text")
	tw := max(box.Width-2*TextPadding, 0)
	text := a.base(textID, TypeText)
	text.X = box.X + (box.Width-tw)/2
	text.Y = box.Y + (box.Height-TextHeight)/2
	text.Width, text.Height = tw, TextHeight
	text.StrokeColor = a.opts.Theme.Text
	text.TextProps = &TextProps{
		Text:          n.DisplayLabel(),
		OriginalText:  n.DisplayLabel(),
		FontSize:      NodeFontSize,
		FontFamily:    FontFamily,
		TextAlign:     "center",
		VerticalAlign: "middle",
		ContainerID:   strPtr(shapeID),
		LineHeight:    LineHeight,
	}
	a.bind(a.shapes[n.ID], textID, TypeText)
	a.elements = append(a.elements, text)
}

func (a *assembler) addEdge(e digraph.Edge, from, to layout.Box) {
	fromSide, toSide := from.Facing(to)
	start, end := from.Anchor(fromSide), to.Anchor(toSide)

	var points [][2]float64
	if e.From == e.To {
		// Leave right, go over the top, come down onto the top edge.
		top := -from.Height/2 - SelfLoopReach
		points = [][2]float64{
			{0, 0},
			{SelfLoopReach, 0},
			{SelfLoopReach, top},
			{end.X - start.X, top},
			{end.X - start.X, end.Y - start.Y},
		}
	} else {
		points = [][2]float64{{0, 0}, {end.X - start.X, end.Y - start.Y}}
	}
	minP, maxP := bounds(points)

	fromIdx, toIdx := a.shapes[e.From], a.shapes[e.To]
	fromID, toID := a.elements[fromIdx].ID, a.elements[toIdx].ID
	arrowID := a.ids.Next("arrow")
	arrow := a.base(arrowID, TypeArrow)
	arrow.X, arrow.Y = start.X, start.Y
	arrow.Width, arrow.Height = maxP[0]-minP[0], maxP[1]-minP[1]
	arrow.StrokeColor = a.opts.Theme.Neutral
	arrow.Roundness = &Roundness{Type: roundnessCorner}
	if e.Dashed() {
		arrow.StrokeStyle = "dashed"
	}
	arrow.ArrowProps = &ArrowProps{
		Points:       points,
		StartBinding: &Binding{ElementID: fromID, Gap: BindingGap, FixedPoint: fixedPoint(fromSide)},
		EndBinding:   &Binding{ElementID: toID, Gap: BindingGap, FixedPoint: fixedPoint(toSide)},
		EndArrowhead: strPtr("arrow"),
	}
	a.bind(fromIdx, arrowID, TypeArrow)
	if toIdx != fromIdx {
		a.bind(toIdx, arrowID, TypeArrow)
	}
	arrowIdx := len(a.elements)
	a.elements = append(a.elements, arrow)

	if e.Label == "" {
		return
	}
	labelID := a.ids.Next("arrow-label")
	mid := [2]float64{start.X + (minP[0]+maxP[0])/2, start.Y + (minP[1]+maxP[1])/2}
	label := a.base(labelID, TypeText)
	label.X, label.Y = mid[0]-LabelWidth/2, mid[1]-LabelHeight/2
	label.Width, label.Height = LabelWidth, LabelHeight
	label.StrokeColor = a.opts.Theme.Neutral
	label.BackgroundColor = a.opts.Theme.Background
	label.TextProps = &TextProps{
		Text:          e.Label,
		OriginalText:  e.Label,
		FontSize:      LabelFontSize,
		FontFamily:    FontFamily,
		TextAlign:     "center",
		VerticalAlign: "middle",
		ContainerID:   strPtr(arrowID),
		LineHeight:    LineHeight,
	}
	a.bind(arrowIdx, labelID, TypeText)
	a.elements = append(a.elements, label)
}

// bind appends a reference to the boundElements of the element at owner.
func (a *assembler) bind(owner int, refID, refType string) {
	a.elements[owner].BoundElements = append(a.elements[owner].BoundElements, BoundRef{ID: refID, Type: refType})
}

// fixedPoint returns the normalized attachment point of a side.
func fixedPoint(s layout.Side) [2]float64 {
	switch s {
	case layout.Left:
		return [2]float64{0, 0.5}
	case layout.Bottom:
		return [2]float64{0.5, 1}
	case layout.Top:
		return [2]float64{0.5, 0}
	default:
		return [2]float64{1, 0.5}
	}
}

func bounds(points [][2]float64) ([2]float64, [2]float64) {
	minP, maxP := points[0], points[0]
	for _, p := range points[1:] {
		minP[0], minP[1] = min(minP[0], p[0]), min(minP[1], p[1])
		maxP[0], maxP[1] = max(maxP[0], p[0]), max(maxP[1], p[1])
	}
	return minP, maxP
}
