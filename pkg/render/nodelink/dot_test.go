package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/diagramkit/pkg/digraph"
	"github.com/matzehuels/diagramkit/pkg/digraph/transform"
	"github.com/matzehuels/diagramkit/pkg/notation"
)

func graph(src string) *digraph.Graph {
	return digraph.Build(notation.Parse(src, ""))
}

func TestToDOT(t *testing.T) {
	g := graph("A[Start] --> B{Ok?}\nB -->|yes| C(Done)\nA --> C")
	dot := ToDOT(g, transform.Levels(g), Options{})

	wants := []string{
		"digraph G {",
		"rankdir=LR;",
		`"A" [label="Start", shape=box, style="rounded,filled"];`,
		`"B" [label="Ok?", shape=diamond];`,
		`"C" [label="Done", shape=ellipse];`,
		`{ rank=same; "A"; }`,
		`{ rank=same; "B"; "C"; }`,
		`"A" -> "B";`,
		`"B" -> "C" [label="yes"];`,
	}
	for _, want := range wants {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g := graph("A --> B")
	dot := ToDOT(g, transform.Levels(g), Options{Detailed: true})
	if !strings.Contains(dot, `label="B\nid: B\nlevel: 1"`) {
		t.Errorf("ToDOT() = %s", dot)
	}
}

func TestToDOT_NoLevelsDashed(t *testing.T) {
	g := graph("sequenceDiagram\nA-->>B: reply")
	dot := ToDOT(g, nil, Options{})
	if strings.Contains(dot, "rank=same") {
		t.Error("ToDOT(nil levels) emitted rank constraints")
	}
	if !strings.Contains(dot, `"A" -> "B" [label="reply", style=dashed];`) {
		t.Errorf("ToDOT() = %s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.HasPrefix(got, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20">`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if plain := []byte("<svg></svg>"); string(normalizeViewBox(plain)) != "<svg></svg>" {
		t.Error("normalizeViewBox() changed svg without viewBox")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	g := graph("A --> B")
	svg, err := RenderSVG(context.Background(), ToDOT(g, transform.Levels(g), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("RenderSVG() = %.80s", svg)
	}
}
