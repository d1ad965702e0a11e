package excalidraw

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/diagramkit/pkg/digraph"
	"github.com/matzehuels/diagramkit/pkg/digraph/transform"
	"github.com/matzehuels/diagramkit/pkg/layout"
	"github.com/matzehuels/diagramkit/pkg/notation"
)

func assemble(src string, opts Options) *Document {
	d := notation.Parse(src, "")
	g := digraph.Build(d)
	l := layout.Grid(g, transform.Levels(g), layout.DefaultOptions(d.Kind))
	return Assemble(g, l, opts)
}

func byType(doc *Document, typ string) []Element {
	var out []Element
	for _, e := range doc.Elements {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func TestAssemble_BasicFlowchart(t *testing.T) {
	doc := assemble("A[Start] --> B[Process]\nB --> C[End]", Options{})

	if doc.Type != DocumentType || doc.Version != DocumentVersion || doc.Source != DocumentSource {
		t.Errorf("header = %q %d %q", doc.Type, doc.Version, doc.Source)
	}
	if doc.AppState.GridSize != nil {
		t.Errorf("GridSize = %v, want nil", *doc.AppState.GridSize)
	}
	if n := len(byType(doc, TypeRectangle)); n != 3 {
		t.Errorf("rectangles = %d, want 3", n)
	}
	if n := len(byType(doc, TypeText)); n != 3 {
		t.Errorf("texts = %d, want 3", n)
	}
	if n := len(byType(doc, TypeArrow)); n != 2 {
		t.Errorf("arrows = %d, want 2", n)
	}

	wantIDs := []string{"node-1000", "text-1001", "node-1002", "text-1003", "node-1004", "text-1005", "arrow-1006", "arrow-1007"}
	for i, want := range wantIDs {
		if doc.Elements[i].ID != want {
			t.Errorf("Elements[%d].ID = %q, want %q", i, doc.Elements[i].ID, want)
		}
	}

	if r := ValidateDocument(doc); !r.Valid {
		t.Errorf("ValidateDocument() errors = %v", r.Errors)
	}
}

func TestAssemble_ShapeText(t *testing.T) {
	doc := assemble("A[Start]\nB(Round)\nC{Choice}", Options{})

	shape, _ := doc.Find("node-1000")
	text, _ := doc.Find("text-1001")
	if shape.Roundness == nil || shape.Roundness.Type != 2 {
		t.Errorf("rectangle roundness = %+v, want type 2", shape.Roundness)
	}
	if shape.BackgroundColor != "#3b82f620" || shape.StrokeColor != "#3b82f6" {
		t.Errorf("shape colors = %q %q", shape.BackgroundColor, shape.StrokeColor)
	}
	if text.Container() != "node-1000" || text.Text != "Start" {
		t.Errorf("text = %q in %q", text.Text, text.Container())
	}
	if text.Width != 180 || text.Height != TextHeight {
		t.Errorf("text size = %vx%v, want 180x25", text.Width, text.Height)
	}
	if text.X != shape.X+10 || text.Y != shape.Y+17.5 {
		t.Errorf("text pos = (%v,%v), want centered in (%v,%v)", text.X, text.Y, shape.X, shape.Y)
	}

	ellipse, _ := doc.Find("node-1002")
	if ellipse.Type != TypeEllipse || ellipse.Roundness != nil {
		t.Errorf("ellipse = %s roundness %v", ellipse.Type, ellipse.Roundness)
	}
	diamond, _ := doc.Find("node-1004")
	if diamond.Type != TypeDiamond {
		t.Errorf("diamond type = %s", diamond.Type)
	}
}

func TestAssemble_Bindings(t *testing.T) {
	doc := assemble("A --> B\nA --> C", Options{})

	arrows := byType(doc, TypeArrow)
	if len(arrows) != 2 {
		t.Fatalf("arrows = %d, want 2", len(arrows))
	}

	// A(100,100) → B(400,100): right edge to left edge.
	a := arrows[0]
	if a.X != 300 || a.Y != 130 {
		t.Errorf("arrow start = (%v,%v), want (300,130)", a.X, a.Y)
	}
	if a.Points[1] != [2]float64{100, 0} {
		t.Errorf("arrow end = %v, want [100 0]", a.Points[1])
	}
	if a.StartBinding.ElementID != "node-1000" || a.EndBinding.ElementID != "node-1002" {
		t.Errorf("bindings = %s → %s", a.StartBinding.ElementID, a.EndBinding.ElementID)
	}
	if a.StartBinding.FixedPoint != [2]float64{1, 0.5} || a.EndBinding.FixedPoint != [2]float64{0, 0.5} {
		t.Errorf("fixed points = %v %v", a.StartBinding.FixedPoint, a.EndBinding.FixedPoint)
	}
	if a.StartBinding.Gap != BindingGap || a.StartBinding.Focus != 0 {
		t.Errorf("binding gap/focus = %v/%v", a.StartBinding.Gap, a.StartBinding.Focus)
	}
	if a.EndArrowhead == nil || *a.EndArrowhead != "arrow" || a.StartArrowhead != nil {
		t.Error("arrowheads mismatch")
	}

	src, _ := doc.Find("node-1000")
	var arrowRefs int
	for _, ref := range src.BoundElements {
		if ref.Type == TypeArrow {
			arrowRefs++
		}
	}
	if arrowRefs != 2 {
		t.Errorf("source arrow refs = %d, want 2", arrowRefs)
	}
}

func TestAssemble_Labels(t *testing.T) {
	doc := assemble("A -->|yes| B\nA --> C", Options{})

	label, ok := doc.Find("arrow-label-1007")
	if !ok {
		t.Fatalf("label missing; ids = %v", ids(doc))
	}
	if label.Container() != "arrow-1006" || label.Text != "yes" {
		t.Errorf("label = %q in %q", label.Text, label.Container())
	}
	if label.Width != LabelWidth || label.Height != LabelHeight {
		t.Errorf("label size = %vx%v", label.Width, label.Height)
	}
	// Midpoint of (300,130)-(400,130) minus half the label size.
	if label.X != 320 || label.Y != 120 {
		t.Errorf("label pos = (%v,%v), want (320,120)", label.X, label.Y)
	}
	arrow, _ := doc.Find("arrow-1006")
	if len(arrow.BoundElements) != 1 || arrow.BoundElements[0].ID != label.ID {
		t.Errorf("arrow boundElements = %+v", arrow.BoundElements)
	}
	if r := ValidateDocument(doc); !r.Valid {
		t.Errorf("ValidateDocument() errors = %v", r.Errors)
	}
}

func TestAssemble_SelfLoopAndParallel(t *testing.T) {
	doc := assemble("stateDiagram-v2\nA --> A : retry\nA --> B\nA --> B", Options{})

	arrows := byType(doc, TypeArrow)
	if len(arrows) != 3 {
		t.Fatalf("arrows = %d, want 3", len(arrows))
	}
	loop := arrows[0]
	if loop.StartBinding.ElementID != loop.EndBinding.ElementID {
		t.Error("self loop should bind the same shape twice")
	}
	if loop.EndBinding.FixedPoint != [2]float64{0.5, 0} {
		t.Errorf("self loop end = %v, want top", loop.EndBinding.FixedPoint)
	}
	if len(loop.Points) != 5 {
		t.Errorf("self loop points = %d, want 5", len(loop.Points))
	}

	shape, _ := doc.Find(loop.StartBinding.ElementID)
	seen := map[string]int{}
	for _, ref := range shape.BoundElements {
		seen[ref.ID]++
	}
	if seen[loop.ID] != 1 {
		t.Errorf("self loop listed %d times, want 1", seen[loop.ID])
	}
	if r := ValidateDocument(doc); !r.Valid {
		t.Errorf("ValidateDocument() errors = %v", r.Errors)
	}
}

func TestAssemble_SequenceDashed(t *testing.T) {
	doc := assemble("sequenceDiagram\nparticipant U as User\nU->>S: hi\nS-->>U: ok", Options{})

	arrows := byType(doc, TypeArrow)
	if len(arrows) != 2 {
		t.Fatalf("arrows = %d, want 2", len(arrows))
	}
	if arrows[0].StrokeStyle != "solid" || arrows[1].StrokeStyle != "dashed" {
		t.Errorf("stroke styles = %s %s", arrows[0].StrokeStyle, arrows[1].StrokeStyle)
	}
	text, _ := doc.Find("text-1001")
	if text.Text != "User" {
		t.Errorf("participant label = %q, want User", text.Text)
	}
	if n := len(byType(doc, TypeRectangle)); n != 2 {
		t.Errorf("rectangles = %d, want 2", n)
	}
}

func TestAssemble_FlowchartArrowsSolid(t *testing.T) {
	doc := assemble("graph TD\nA --> B\nB -> C", Options{})
	for _, a := range byType(doc, TypeArrow) {
		if a.StrokeStyle != "solid" {
			t.Errorf("arrow %s stroke = %s, want solid", a.ID, a.StrokeStyle)
		}
	}
}

func TestAssemble_NarrowNodeText(t *testing.T) {
	d := notation.Parse("A --> B", "")
	g := digraph.Build(d)
	opts := layout.DefaultOptions(d.Kind)
	opts.NodeWidth = 12
	doc := Assemble(g, layout.Grid(g, transform.Levels(g), opts), Options{})

	for _, text := range byType(doc, TypeText) {
		if text.Width < 0 {
			t.Errorf("text %s width = %v, want >= 0", text.ID, text.Width)
		}
	}
}

func TestAssemble_Options(t *testing.T) {
	ts := time.UnixMilli(1700000000000)
	doc := assemble("A --> B", Options{IDs: UUIDIDs, GridSize: 20, Updated: ts})

	if doc.AppState.GridSize == nil || *doc.AppState.GridSize != 20 {
		t.Errorf("GridSize = %v, want 20", doc.AppState.GridSize)
	}
	for _, e := range doc.Elements {
		if e.Updated != 1700000000000 {
			t.Errorf("%s updated = %d", e.ID, e.Updated)
		}
		if strings.HasSuffix(e.ID, "-1000") {
			t.Errorf("uuid strategy produced counter id %s", e.ID)
		}
	}
	if r := ValidateDocument(doc); !r.Valid {
		t.Errorf("ValidateDocument() errors = %v", r.Errors)
	}
}

func TestAssemble_Empty(t *testing.T) {
	doc := assemble("", Options{})
	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"elements": []`) || !strings.Contains(string(data), `"gridSize": null`) {
		t.Errorf("empty document = %s", data)
	}
	if r := Validate(data); !r.Valid {
		t.Errorf("Validate() errors = %v", r.Errors)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	doc := assemble("A -->|go| B", Options{})
	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(back.Elements) != len(doc.Elements) {
		t.Fatalf("elements = %d, want %d", len(back.Elements), len(doc.Elements))
	}
	shape, _ := back.Find("node-1000")
	if shape.TextProps != nil || shape.ArrowProps != nil {
		t.Error("shape decoded with text or arrow props")
	}
	label, _ := back.Find("arrow-label-1005")
	if label.Container() != "arrow-1004" {
		t.Errorf("label container = %q", label.Container())
	}
}

func TestIDGenerators(t *testing.T) {
	c := NewIDGenerator(CounterIDs)
	if got := c.Next("node"); got != "node-1000" {
		t.Errorf("Next() = %q", got)
	}
	if got := c.Next("text"); got != "text-1001" {
		t.Errorf("Next() = %q", got)
	}

	u := NewIDGenerator(UUIDIDs)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := u.Next("x")
		if seen[id] {
			t.Fatalf("duplicate uuid id %s", id)
		}
		seen[id] = true
	}
	if _, ok := NewIDGenerator("bogus").(*counterGenerator); !ok {
		t.Error("unknown strategy should fall back to counter")
	}
}

func ids(doc *Document) []string {
	out := make([]string, len(doc.Elements))
	for i, e := range doc.Elements {
		out[i] = e.ID
	}
	return out
}

func ExampleAssemble() {
	d := notation.Parse("A[Start] --> B[End]", "")
	g := digraph.Build(d)
	l := layout.Grid(g, transform.Levels(g), layout.DefaultOptions(d.Kind))
	doc := Assemble(g, l, Options{})

	for _, e := range doc.Elements {
		fmt.Println(e.ID, e.Type)
	}
	report := ValidateDocument(doc)
	out, _ := json.Marshal(report)
	fmt.Println(string(out))
	// Output:
	// node-1000 rectangle
	// text-1001 text
	// node-1002 rectangle
	// text-1003 text
	// arrow-1004 arrow
	// {"valid":true,"errors":[]}
}
