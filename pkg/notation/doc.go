// Package notation parses Mermaid-style diagram text into node and edge
// declarations.
//
// # Overview
//
// Parsing is line oriented. Each trimmed physical line is handed to a small
// set of independent matchers (one per diagram kind) that return optional
// structured records. Lines that are blank, comments (%%), headers,
// directives or simply unrecognized are dropped silently: [Parse] never fails.
//
//	d := notation.Parse("graph TD\nA[Start] --> B{Ok?}\nB -->|yes| C(Done)", "")
//	// d.Kind  == notation.Flowchart
//	// d.Nodes == A[Start], B{Ok?}, C(Done)
//	// d.Edges == A→B, B→C "yes"
//
// # Supported Syntax
//
// Flowchart: ID[label] (rectangle), ID(label) (ellipse), ID{label} (diamond),
// edges "A --> B", "A -> B" and "A -->|label| B". Bracket declarations may
// appear inline on an edge line; they are reduced to their identifiers before
// the edge is matched. Chains such as "A --> B --> C" produce one edge per hop.
//
// Sequence: "participant X" or "participant X as Alias" (also "actor"), and
// messages "From ARROW To : text" where ARROW is one of [SequenceArrows],
// optionally followed by an activation marker (+ or -).
//
// State: "From --> To" with an optional ": label". "[*]" is a valid identifier.
//
// # Positions
//
// Every declaration carries a [Pos] so later stages can merge node and edge
// declarations in textual order.
package notation
