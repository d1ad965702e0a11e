package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/diagramkit/pkg/pipeline"
	"github.com/matzehuels/diagramkit/pkg/render/excalidraw"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // spinner, addresses
	colorGreen  = lipgloss.Color("35")  // valid, cached
	colorYellow = lipgloss.Color("220") // load and structure warnings
	colorRed    = lipgloss.Color("167") // failed files
	colorBlue   = lipgloss.Color("75")  // suggested commands
	colorWhite  = lipgloss.Color("255") // paths, counts
	colorGray   = lipgloss.Color("245") // keys
	colorDim    = lipgloss.Color("240") // stats, problem details
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleWarning.Render(iconWarning) + " " + styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path a translation was written to.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Translation Results
// =============================================================================

// statsLine renders the graph size of a translation, e.g.
// "3 nodes · 2 edges · 3 levels · fresh".
func statsLine(stats pipeline.Stats, cached bool) string {
	var parts []string
	if stats.NodeCount > 0 {
		parts = append(parts, plural(stats.NodeCount, "node"))
	}
	if stats.EdgeCount > 0 {
		parts = append(parts, plural(stats.EdgeCount, "edge"))
	}
	if stats.LevelCount > 0 {
		parts = append(parts, plural(stats.LevelCount, "level"))
	}
	if stats.Cyclic {
		parts = append(parts, "cyclic")
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func printStats(stats pipeline.Stats, cached bool) {
	fmt.Println("  " + statsLine(stats, cached))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// printProblems prints validator findings, one indented line each.
func printProblems(problems []string) {
	for _, p := range problems {
		printDetail("%s", p)
	}
}

// printLoad prints the cognitive load breakdown of a scene.
func printLoad(load excalidraw.Load) {
	rows := []struct {
		key   string
		value string
	}{
		{"Shapes", fmt.Sprint(load.Shapes)},
		{"Arrows", fmt.Sprint(load.Arrows)},
		{"Annotations", fmt.Sprint(load.Annotations)},
		{"Frames", fmt.Sprint(load.Frames)},
		{"Total", fmt.Sprintf("%d / %d", load.Total, excalidraw.MaxCognitiveUnits)},
	}
	for _, r := range rows {
		fmt.Println(styleKey.Render(r.key) + " " + styleValue.Render(r.value))
	}
}

// reportDocument prints validation and cognitive load findings for
// Excalidraw results.
func reportDocument(result *pipeline.Result) {
	if result.Report != nil && !result.Report.Valid {
		printWarning("Document has %d structural problems", len(result.Report.Errors))
		printProblems(result.Report.Errors)
	}
	if result.Document == nil {
		return
	}
	if load := excalidraw.CognitiveLoad(result.Document); !load.WithinLimit {
		printWarning("Cognitive load %d exceeds %d units: %s", load.Total, excalidraw.MaxCognitiveUnits, load.Recommendation())
	}
}
