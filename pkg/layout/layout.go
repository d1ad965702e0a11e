// Package layout assigns deterministic grid coordinates to diagram nodes.
//
// Levels run along the horizontal axis and nodes sharing a level are stacked
// vertically in registry order. This is deliberately not a crossing-minimizing
// layout: the same input always yields the same coordinates.
package layout

import (
	"github.com/matzehuels/diagramkit/pkg/digraph"
	"github.com/matzehuels/diagramkit/pkg/notation"
)

// Options controls grid placement and node size.
//
// Zero sizes and gaps mean "use the default for the diagram kind". The
// origin is a pointer so that 0 can be requested explicitly; nil means
// DefaultOrigin.
type Options struct {
	OriginX    *float64 `json:"origin_x,omitempty" yaml:"origin_x,omitempty" toml:"origin_x,omitempty"`
	OriginY    *float64 `json:"origin_y,omitempty" yaml:"origin_y,omitempty" toml:"origin_y,omitempty"`
	HGap       float64  `json:"hgap" yaml:"hgap" toml:"hgap" validate:"gte=0"`
	VGap       float64  `json:"vgap" yaml:"vgap" toml:"vgap" validate:"gte=0"`
	NodeWidth  float64  `json:"node_width" yaml:"node_width" toml:"node_width" validate:"omitempty,gt=20"`
	NodeHeight float64  `json:"node_height" yaml:"node_height" toml:"node_height" validate:"gte=0"`
}

// Origin returns the top-left corner of the grid, DefaultOrigin for unset
// coordinates.
func (o Options) Origin() Point {
	p := Point{X: DefaultOrigin, Y: DefaultOrigin}
	if o.OriginX != nil {
		p.X = *o.OriginX
	}
	if o.OriginY != nil {
		p.Y = *o.OriginY
	}
	return p
}

// Grid defaults shared by every diagram kind.
const (
	DefaultOrigin = 100.0
	DefaultHGap   = 300.0
	DefaultVGap   = 150.0
)

// DefaultOptions returns the grid settings for a diagram kind.
func DefaultOptions(kind notation.Kind) Options {
	opts := Options{
		OriginX: ptr(DefaultOrigin),
		OriginY: ptr(DefaultOrigin),
		HGap:    DefaultHGap,
		VGap:    DefaultVGap,
	}
	switch kind {
	case notation.Sequence:
		opts.NodeWidth, opts.NodeHeight = 160, 50
	case notation.State:
		opts.NodeWidth, opts.NodeHeight = 180, 60
	default:
		opts.NodeWidth, opts.NodeHeight = 200, 60
	}
	return opts
}

// WithDefaults fills zero fields from DefaultOptions(kind).
func (o Options) WithDefaults(kind notation.Kind) Options {
	d := DefaultOptions(kind)
	if o.HGap == 0 {
		o.HGap = d.HGap
	}
	if o.VGap == 0 {
		o.VGap = d.VGap
	}
	if o.NodeWidth == 0 {
		o.NodeWidth = d.NodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = d.NodeHeight
	}
	if o.OriginX == nil {
		o.OriginX = d.OriginX
	}
	if o.OriginY == nil {
		o.OriginY = d.OriginY
	}
	return o
}

func ptr(v float64) *float64 { return &v }

// Side names one edge of a box.
type Side int

// Box sides.
const (
	Right Side = iota
	Left
	Bottom
	Top
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	default:
		return "right"
	}
}

// Opposite returns the facing side.
func (s Side) Opposite() Side {
	switch s {
	case Right:
		return Left
	case Left:
		return Right
	case Bottom:
		return Top
	default:
		return Bottom
	}
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Box is the placed rectangle of one node.
type Box struct {
	ID     string
	Level  int
	Index  int // position within the level
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Center returns the box midpoint.
func (b Box) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.Height }

// Anchor returns the midpoint of the given side.
func (b Box) Anchor(s Side) Point {
	c := b.Center()
	switch s {
	case Left:
		return Point{X: b.X, Y: c.Y}
	case Bottom:
		return Point{X: c.X, Y: b.Bottom()}
	case Top:
		return Point{X: c.X, Y: b.Y}
	default:
		return Point{X: b.Right(), Y: c.Y}
	}
}

// Facing returns the side of b that faces other and the matching side of
// other. The pair is horizontal when the horizontal center distance is at
// least the vertical one. A box facing itself gets Right → Top.
func (b Box) Facing(other Box) (Side, Side) {
	if b.ID == other.ID {
		return Right, Top
	}
	from, to := b.Center(), other.Center()
	dx, dy := to.X-from.X, to.Y-from.Y
	var s Side
	switch {
	case abs(dx) >= abs(dy) && dx >= 0:
		s = Right
	case abs(dx) >= abs(dy):
		s = Left
	case dy >= 0:
		s = Bottom
	default:
		s = Top
	}
	return s, s.Opposite()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Layout is the set of placed boxes in node-registry order.
type Layout struct {
	Boxes []Box
	index map[string]int
}

// Box returns the placed box for a node ID.
func (l Layout) Box(id string) (Box, bool) {
	i, ok := l.index[id]
	if !ok {
		return Box{}, false
	}
	return l.Boxes[i], true
}

// Levels returns the number of distinct levels occupied.
func (l Layout) Levels() int {
	seen := make(map[int]bool)
	for _, b := range l.Boxes {
		seen[b.Level] = true
	}
	return len(seen)
}

// Grid places every node of g. A node on level L at index i within that
// level (registry order) is placed at (OriginX + L*HGap, OriginY + i*VGap).
// Nodes missing from levels are treated as level 0.
func Grid(g *digraph.Graph, levels map[string]int, opts Options) Layout {
	nodes := g.Nodes()
	l := Layout{
		Boxes: make([]Box, 0, len(nodes)),
		index: make(map[string]int, len(nodes)),
	}
	origin := opts.Origin()
	counts := make(map[int]int)
	for _, n := range nodes {
		level := levels[n.ID]
		idx := counts[level]
		counts[level]++

		l.index[n.ID] = len(l.Boxes)
		l.Boxes = append(l.Boxes, Box{
			ID:     n.ID,
			Level:  level,
			Index:  idx,
			X:      origin.X + float64(level)*opts.HGap,
			Y:      origin.Y + float64(idx)*opts.VGap,
			Width:  opts.NodeWidth,
			Height: opts.NodeHeight,
		})
	}
	return l
}
