package pipeline

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/layout"
	"github.com/matzehuels/diagramkit/pkg/notation"
	"github.com/matzehuels/diagramkit/pkg/render/excalidraw"
	"github.com/matzehuels/diagramkit/pkg/render/theme"
)

func TestCheckTranslation(t *testing.T) {
	tests := []struct {
		in, out string
		wantErr bool
	}{
		{"mermaid", "plantuml", false},
		{"mermaid", "excalidraw", false},
		{"mermaid", "dot", false},
		{"excalidraw", "mermaid", true},
		{"mermaid", "mermaid", true},
		{"plantuml", "excalidraw", true},
		{"", "plantuml", true},
		{"Mermaid", "plantuml", true}, // callers normalize first
	}

	for _, tt := range tests {
		err := CheckTranslation(tt.in, tt.out)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckTranslation(%q, %q) error = %v, wantErr %v", tt.in, tt.out, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeUnsupportedTranslation) {
			t.Errorf("CheckTranslation(%q, %q) code = %q", tt.in, tt.out, errors.GetCode(err))
		}
	}
}

func TestResolveTranslation(t *testing.T) {
	tests := []struct {
		name            string
		in, out         string
		wantIn, wantOut string
		code            errors.Code
	}{
		{"lowercase", "mermaid", "dot", "mermaid", "dot", ""},
		{"mixed case", "Mermaid", "PlantUML", "mermaid", "plantuml", ""},
		{"padded", " mermaid ", "EXCALIDRAW\n", "mermaid", "excalidraw", ""},
		{"unsupported pair", "Excalidraw", "Mermaid", "", "", errors.ErrCodeUnsupportedTranslation},
		{"empty input", "", "dot", "", "", errors.ErrCodeInvalidKind},
		{"malformed output", "mermaid", "dot/svg", "", "", errors.ErrCodeInvalidKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out, err := ResolveTranslation(tt.in, tt.out)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("err = %v, want code %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if in != tt.wantIn || out != tt.wantOut {
				t.Errorf("got (%q, %q), want (%q, %q)", in, out, tt.wantIn, tt.wantOut)
			}
		})
	}
}

func TestTranslateNormalizesNames(t *testing.T) {
	res, err := Translate("A --> B", Options{Input: "Mermaid", Output: "PlantUML", Kind: "Graph"})
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if res.Kind != notation.Flowchart {
		t.Errorf("Kind = %q, want flowchart", res.Kind)
	}
	if !strings.Contains(string(res.Output), "@startuml") {
		t.Errorf("output is not PlantUML:\n%s", res.Output)
	}
}

func TestTranslateCyclic(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"A --> B\nB --> C", false},
		{"A --> B\nB --> A", true},
		{"A --> A", true},
	}
	for _, tt := range tests {
		res, err := Translate(tt.src, Options{Input: FormatMermaid, Output: FormatDOT})
		if err != nil {
			t.Fatal(err)
		}
		if res.Stats.Cyclic != tt.want {
			t.Errorf("Translate(%q).Stats.Cyclic = %v, want %v", tt.src, res.Stats.Cyclic, tt.want)
		}
	}
}

func TestTranslateUnsupportedFailsFast(t *testing.T) {
	// A null byte would be rejected by source validation; the pair check
	// must win before the source is looked at.
	res, err := Translate("A --> B\x00", Options{Input: "excalidraw", Output: "mermaid"})
	if res != nil {
		t.Errorf("Translate returned partial result %+v", res)
	}

	var ut *errors.UnsupportedTranslationError
	if !stderrors.As(err, &ut) {
		t.Fatalf("error = %v, want *UnsupportedTranslationError", err)
	}
	if ut.InputKind != "excalidraw" || ut.OutputKind != "mermaid" {
		t.Errorf("error kinds = (%q, %q), want (excalidraw, mermaid)", ut.InputKind, ut.OutputKind)
	}
}

func TestTranslateFlowchartLevels(t *testing.T) {
	res, err := Translate("A[Start] --> B[Process]\nB --> C[End]", Options{
		Input:  FormatMermaid,
		Output: FormatExcalidraw,
	})
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}

	want := map[string]int{"A": 0, "B": 1, "C": 2}
	for id, lvl := range want {
		if res.Levels[id] != lvl {
			t.Errorf("level[%s] = %d, want %d", id, res.Levels[id], lvl)
		}
	}

	doc := res.Document
	if got := doc.Count(excalidraw.TypeArrow); got != 2 {
		t.Errorf("arrows = %d, want 2", got)
	}
	if got := doc.Count(excalidraw.TypeRectangle); got != 3 {
		t.Errorf("rectangles = %d, want 3", got)
	}
	if strings.Contains(string(res.Output), "arrow-label-") {
		t.Error("unexpected arrow label")
	}
	if res.Report == nil || !res.Report.Valid {
		t.Errorf("Report = %+v, want valid", res.Report)
	}
	if res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 2 || res.Stats.LevelCount != 3 {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

func TestTranslateStateToPlantUML(t *testing.T) {
	res, err := Translate("A --> B: go", Options{
		Input:  FormatMermaid,
		Output: FormatPlantUML,
		Kind:   "state",
	})
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if res.Kind != notation.State {
		t.Errorf("Kind = %v, want state", res.Kind)
	}
	if !strings.Contains(string(res.Output), "\nA --> B : go\n") {
		t.Errorf("output missing transition line:\n%s", res.Output)
	}
	if res.Document != nil || res.Report != nil {
		t.Error("PlantUML output should carry no document or report")
	}
}

func TestTranslateDOT(t *testing.T) {
	res, err := Translate("graph LR\nA --> B", Options{Input: FormatMermaid, Output: FormatDOT})
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	out := string(res.Output)
	if !strings.HasPrefix(out, "digraph") || !strings.Contains(out, `"A" -> "B"`) {
		t.Errorf("unexpected DOT:\n%s", out)
	}
}

func TestTranslateDeterministic(t *testing.T) {
	src := "graph TD\nA --> B\nA --> C\nB -->|x| D\nC --> D"
	opts := Options{Input: FormatMermaid, Output: FormatExcalidraw}

	first, err := Translate(src, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Translate(src, opts)
	if err != nil {
		t.Fatal(err)
	}
	if string(first.Output) != string(second.Output) {
		t.Error("identical input and options produced different output")
	}
}

func TestTranslateLayoutOptions(t *testing.T) {
	res, err := Translate("A --> B", Options{
		Input:  FormatMermaid,
		Output: FormatExcalidraw,
		Layout: layout.Options{HGap: 500},
	})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := res.Layout.Box("A")
	b, _ := res.Layout.Box("B")
	if b.X-a.X != 500 {
		t.Errorf("horizontal gap = %v, want 500", b.X-a.X)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad kind", Options{Input: "mermaid", Output: "plantuml", Kind: "class"}, errors.ErrCodeInvalidInput},
		{"bad ids", Options{Input: "mermaid", Output: "excalidraw", IDs: "random"}, errors.ErrCodeInvalidInput},
		{"bad color", Options{Input: "mermaid", Output: "excalidraw", Theme: theme.Theme{Primary: "blue"}}, errors.ErrCodeInvalidInput},
		{"negative gap", Options{Input: "mermaid", Output: "excalidraw", Layout: layout.Options{VGap: -1}}, errors.ErrCodeInvalidInput},
		{"narrow node", Options{Input: "mermaid", Output: "excalidraw", Layout: layout.Options{NodeWidth: 15}}, errors.ErrCodeInvalidInput},
		{"negative grid", Options{Input: "mermaid", Output: "excalidraw", GridSize: -5}, errors.ErrCodeInvalidInput},
		{"unsupported", Options{Input: "mermaid", Output: "svg"}, errors.ErrCodeUnsupportedTranslation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Input: FormatMermaid, Output: FormatExcalidraw}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.IDs != excalidraw.CounterIDs {
		t.Errorf("IDs = %q, want counter", opts.IDs)
	}
	if opts.Theme != theme.Default() {
		t.Errorf("Theme = %+v, want default", opts.Theme)
	}
	if !opts.Deterministic() {
		t.Error("counter IDs should be deterministic")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
}
