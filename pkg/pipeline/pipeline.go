// Package pipeline provides the diagram translation pipeline for diagramkit.
//
// This package implements the complete parse → build → layout → assemble →
// validate pipeline used by the CLI and the HTTP service. Centralizing it
// keeps both entry points consistent.
//
// # Architecture
//
// A translation runs five stages:
//
//  1. Parse: extract declarations from the notation ([notation.Parse])
//  2. Build: merge declarations into a graph ([digraph.Build])
//  3. Layout: assign levels and grid positions ([transform.Levels], [layout.Grid])
//  4. Assemble: emit the target format (Excalidraw JSON, PlantUML, DOT)
//  5. Validate: check Excalidraw cross-references ([excalidraw.ValidateDocument])
//
// [Translate] is pure: no I/O, no logging, no shared state. [Runner] wraps it
// with caching, logging, observability hooks and batch execution.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Translate(ctx, src, pipeline.Options{
//	    Input:  pipeline.FormatMermaid,
//	    Output: pipeline.FormatExcalidraw,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"strings"
	"time"

	"github.com/matzehuels/diagramkit/pkg/digraph"
	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/layout"
	"github.com/matzehuels/diagramkit/pkg/notation"
	"github.com/matzehuels/diagramkit/pkg/render/excalidraw"
	"github.com/matzehuels/diagramkit/pkg/render/theme"
)

// =============================================================================
// Formats
// =============================================================================

// Format names for the input and output side of a translation.
const (
	FormatMermaid    = "mermaid"
	FormatPlantUML   = "plantuml"
	FormatExcalidraw = "excalidraw"
	FormatDOT        = "dot"
)

// ValidInputs is the set of supported input formats.
var ValidInputs = map[string]bool{
	FormatMermaid: true,
}

// ValidOutputs is the set of supported output formats.
var ValidOutputs = map[string]bool{
	FormatPlantUML:   true,
	FormatExcalidraw: true,
	FormatDOT:        true,
}

// CheckTranslation reports whether the (input, output) pair has a conversion.
// It returns an *errors.UnsupportedTranslationError otherwise.
func CheckTranslation(input, output string) error {
	if !ValidInputs[input] || !ValidOutputs[output] {
		return errors.UnsupportedTranslation(input, output)
	}
	return nil
}

// NormalizeFormat lowercases and trims a user-supplied format name and
// checks its syntax. Whether the format is supported is left to
// [CheckTranslation].
func NormalizeFormat(name string) (string, error) {
	name = normalizeName(name)
	if err := errors.ValidateKindName(name); err != nil {
		return "", err
	}
	return name, nil
}

// ResolveTranslation normalizes both format names and checks the pair.
// It returns the normalized names.
func ResolveTranslation(input, output string) (string, string, error) {
	in, err := NormalizeFormat(input)
	if err != nil {
		return "", "", err
	}
	out, err := NormalizeFormat(output)
	if err != nil {
		return "", "", err
	}
	if err := CheckTranslation(in, out); err != nil {
		return "", "", err
	}
	return in, out, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one translation.
// This struct supports JSON serialization for API requests.
type Options struct {
	Input  string `json:"input" validate:"required"`
	Output string `json:"output" validate:"required"`

	// Kind forces the diagram kind. Empty means detect from the header line.
	// Any name [notation.ParseKind] accepts is normalized before validation.
	Kind string `json:"kind,omitempty" validate:"omitempty,oneof=flowchart sequence state"`

	// Layout options. Zero fields take the per-kind defaults.
	Layout layout.Options `json:"layout"`

	// Render options
	Theme    theme.Theme           `json:"theme"`
	IDs      excalidraw.IDStrategy `json:"ids,omitempty" validate:"omitempty,oneof=counter uuid"`
	GridSize int                   `json:"grid_size,omitempty" validate:"gte=0"`
	Detailed bool                  `json:"detailed,omitempty"` // DOT only

	// Updated stamps Excalidraw elements. Zero keeps output reproducible.
	Updated time.Time `json:"-"`

	// Refresh bypasses the cache lookup (the result is still stored).
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults normalizes the format and kind names, checks the
// translation pair first, then field constraints, and fills defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Input, o.Output = normalizeName(o.Input), normalizeName(o.Output)
	if k, ok := notation.ParseKind(o.Kind); ok {
		o.Kind = string(k)
	}
	if err := CheckTranslation(o.Input, o.Output); err != nil {
		return err
	}
	if err := errors.ValidateStruct(errors.ErrCodeInvalidInput, o); err != nil {
		return err
	}
	o.SetDefaults()
	o.validated = true
	return nil
}

// SetDefaults fills zero-valued render options.
func (o *Options) SetDefaults() {
	o.Theme = o.Theme.WithDefaults()
	if o.IDs == "" {
		o.IDs = excalidraw.CounterIDs
	}
}

// ForcedKind returns the requested diagram kind, or "" to detect.
func (o *Options) ForcedKind() notation.Kind {
	return notation.Kind(o.Kind)
}

// Deterministic reports whether two runs with these options produce
// identical bytes for the same source.
func (o *Options) Deterministic() bool {
	return o.IDs != excalidraw.UUIDIDs
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a translation.
//
// On a cache hit only Output, Kind, Document and Report are populated; the
// intermediate stages are not recomputed.
type Result struct {
	// Output is the translated document.
	Output []byte

	// Kind is the diagram kind that was parsed.
	Kind notation.Kind

	Declarations notation.Declarations
	Graph        *digraph.Graph
	Levels       map[string]int
	Layout       layout.Layout

	// Document and Report are set for Excalidraw output only.
	Document *excalidraw.Document
	Report   *excalidraw.Report

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo reports whether the output came from cache.
	CacheInfo CacheInfo
}

// Stats contains translation statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	LevelCount   int
	Cyclic       bool // a back edge exists; levels still come from first BFS visits
	ParseTime    time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
	ValidateTime time.Duration
}

// CacheInfo tracks cache usage for a translation.
type CacheInfo struct {
	Hit bool
	Key string
}
