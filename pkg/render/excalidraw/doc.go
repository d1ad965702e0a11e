// Package excalidraw assembles and validates Excalidraw scene documents.
//
// # Overview
//
// [Assemble] turns a graph and its grid layout into a [Document]: one shape
// and one bound text element per node, one arrow per edge, and one arrow
// label per labeled edge. Elements reference each other by ID only, so the
// document is a flat arena that serializes without cycles:
//
//	shape.boundElements  → text, arrows
//	text.containerId     → shape
//	arrow.startBinding   → shape
//	arrow.endBinding     → shape
//	arrow.boundElements  → label
//	label.containerId    → arrow
//
// # Bindings
//
// An arrow starts at the midpoint of the source side that faces the target
// and ends on the facing side of the target. Each [Binding] records the
// shape ID, a focus of 0, a fixed gap and a normalized fixedPoint naming the
// side ([1, 0.5] is the right edge, [0.5, 0] the top).
//
// # Validation
//
// [Validate] checks a serialized document for structural integrity without
// modifying it. Problems are returned as a [Report], never as an error:
//
//	report := excalidraw.Validate(data)
//	if !report.Valid {
//		for _, e := range report.Errors { ... }
//	}
//
// [CognitiveLoad] counts the visual units a reader has to track and flags
// scenes above the recommended limit of nine.
package excalidraw
