package plantuml

import (
	"strings"
	"testing"

	"github.com/matzehuels/diagramkit/pkg/digraph"
	"github.com/matzehuels/diagramkit/pkg/notation"
	"github.com/matzehuels/diagramkit/pkg/render/theme"
)

func render(src string) string {
	d := notation.Parse(src, "")
	return Render(d, digraph.Build(d), theme.Default())
}

func TestFlowchart(t *testing.T) {
	got := render("graph TD\nA[Start] --> B{Ok?}\nB -->|yes| C[Done]\nD[Orphan]")

	want := "@startuml\n" +
		"!theme plain\n" +
		"skinparam backgroundColor white\n" +
		"skinparam activity {\n" +
		"  BackgroundColor #3b82f6\n" +
		"  BorderColor #6b7280\n" +
		"  FontColor white\n" +
		"}\n\n" +
		"start\n" +
		":Start;\n" +
		":Ok?;\n" +
		"if (yes) then (yes)\n" +
		"  :Done;\n" +
		"endif\n" +
		":Orphan;\n" +
		"stop\n" +
		"@enduml\n"
	if got != want {
		t.Errorf("Flowchart() =\n%s\nwant\n%s", got, want)
	}
}

func TestFlowchart_ImplicitLabels(t *testing.T) {
	got := render("A --> B")
	if !strings.Contains(got, ":A;\n:B;\n") {
		t.Errorf("Flowchart() = %s", got)
	}
}

func TestSequence(t *testing.T) {
	got := render("sequenceDiagram\nparticipant A as Alice\nparticipant B\nA->>B: Hello\nB-->>A: Hi")

	want := "@startuml\n" +
		"!theme plain\n" +
		"skinparam backgroundColor white\n\n" +
		"participant \"Alice\" as A\n" +
		"participant \"B\" as B\n" +
		"A -> B: Hello\n" +
		"B --> A: Hi\n" +
		"@enduml\n"
	if got != want {
		t.Errorf("Sequence() =\n%s\nwant\n%s", got, want)
	}
}

func TestState(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"labeled", "stateDiagram\nA --> B: go", "A --> B : go\n"},
		{"plain", "stateDiagram-v2\n[*] --> Idle", "[*] --> Idle\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(tt.src)
			if !strings.HasPrefix(got, "@startuml\n!theme plain\n\n") || !strings.HasSuffix(got, "@enduml\n") {
				t.Errorf("State() markers missing: %q", got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("State() = %q, want line %q", got, tt.want)
			}
		})
	}
}

func TestRender_CustomTheme(t *testing.T) {
	d := notation.Parse("A --> B", "")
	got := Render(d, digraph.Build(d), theme.Theme{Primary: "#000000", Background: "#eeeeee"})
	if !strings.Contains(got, "BackgroundColor #000000") || !strings.Contains(got, "skinparam backgroundColor #eeeeee") {
		t.Errorf("Render() = %s", got)
	}
}
