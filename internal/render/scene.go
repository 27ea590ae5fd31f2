// Package render turns the editor state into a visual scene. Build is a pure
// function of the cache, overlay and viewport and is recomputed wholesale on
// every change; the encoders in this package draw a scene as SVG, HTML, DOT
// or plain text.
package render

import (
	"fmt"

	"github.com/msalah0e/wastegraph/internal/state"
)

// Palette maps coloring indexes to fills. Indexes past the end wrap around.
var Palette = []string{
	"#F44336", "#4CAF50", "#FF9800", "#2196F3",
	"#9C27B0", "#00BCD4", "#795548", "#607D8B",
}

// PaletteColor returns the fill for a coloring index.
func PaletteColor(index int) string {
	if index < 0 {
		index = -index
	}
	return Palette[index%len(Palette)]
}

const (
	CursorPointer = "pointer"
	CursorDefault = "default"

	highlightDash = "10 5"
	labelOffset   = 5
)

// Options tune how nodes are drawn.
type Options struct {
	NodeRadius  float64
	DefaultFill string
	Width       int
	Height      int
}

// DefaultOptions is a 1000x700 canvas with radius-20 nodes.
func DefaultOptions() Options {
	return Options{NodeRadius: 20, DefaultFill: "#2196F3", Width: 1000, Height: 700}
}

// Label is a positioned piece of text.
type Label struct {
	X, Y float64
	Text string
}

// EdgeShape is one drawn road.
type EdgeShape struct {
	Source, Target string
	X1, Y1, X2, Y2 float64
	Highlighted    bool
	// Dash is the stroke dash pattern, empty for a solid line.
	Dash  string
	Label Label
}

// NodeShape is one drawn node. Each node is a hit target for node clicks.
type NodeShape struct {
	ID       string
	X, Y, R  float64
	Fill     string
	Colored  bool
	Selected bool
	InPath   bool
	Cursor   string
	Label    Label
}

// Scene is everything drawn for one state.
type Scene struct {
	Edges    []EdgeShape
	Nodes    []NodeShape
	Viewport state.Viewport
	Mode     state.Mode
	Width    int
	Height   int
	Skipped  int
	Stats    state.Stats
}

// Build computes the scene for s. It never fails: edges whose endpoints are
// missing from the cache are left out and counted in Skipped.
func Build(s *state.State, opts Options) *Scene {
	if opts.NodeRadius <= 0 {
		opts.NodeRadius = DefaultOptions().NodeRadius
	}
	if opts.DefaultFill == "" {
		opts.DefaultFill = DefaultOptions().DefaultFill
	}

	sc := &Scene{
		Viewport: s.Viewport,
		Mode:     s.Overlay.Mode,
		Width:    opts.Width,
		Height:   opts.Height,
		Stats:    s.Stats(),
	}

	for _, e := range s.Cache.Edges() {
		src, ok1 := s.Cache.Node(e.Source)
		dst, ok2 := s.Cache.Node(e.Target)
		if !ok1 || !ok2 {
			sc.Skipped++
			continue
		}
		hl := IsEdgeInPath(e.Source, e.Target, s.Overlay.Path)
		shape := EdgeShape{
			Source: e.Source, Target: e.Target,
			X1: src.X, Y1: src.Y, X2: dst.X, Y2: dst.Y,
			Highlighted: hl,
			Label: Label{
				X:    (src.X + dst.X) / 2,
				Y:    (src.Y+dst.Y)/2 - labelOffset,
				Text: fmt.Sprintf("%.1f", e.Weight),
			},
		}
		if hl {
			shape.Dash = highlightDash
		}
		sc.Edges = append(sc.Edges, shape)
	}

	cursor := CursorDefault
	if s.Overlay.Mode == state.AddEdge {
		cursor = CursorPointer
	}
	for _, n := range s.Cache.Nodes() {
		fill := opts.DefaultFill
		if n.Color != nil {
			fill = PaletteColor(*n.Color)
		}
		sc.Nodes = append(sc.Nodes, NodeShape{
			ID: n.ID, X: n.X, Y: n.Y, R: opts.NodeRadius,
			Fill:     fill,
			Colored:  n.Color != nil,
			Selected: s.Overlay.Selected(n.ID),
			InPath:   s.Overlay.InPath(n.ID),
			Cursor:   cursor,
			Label:    Label{X: n.X, Y: n.Y + labelOffset, Text: n.ID},
		})
	}
	return sc
}

// IsEdgeInPath reports whether a and b are adjacent anywhere in path, in
// either direction.
func IsEdgeInPath(a, b string, path []string) bool {
	for i := 0; i+1 < len(path); i++ {
		if (path[i] == a && path[i+1] == b) || (path[i] == b && path[i+1] == a) {
			return true
		}
	}
	return false
}

// ToWorld maps a canvas position to scene coordinates through the viewport.
func (sc *Scene) ToWorld(x, y float64) (float64, float64) {
	z := sc.Viewport.Zoom
	if z == 0 {
		z = 1
	}
	return (x - sc.Viewport.OffsetX) / z, (y - sc.Viewport.OffsetY) / z
}

// HitTest returns the topmost node under the canvas position (x, y).
func (sc *Scene) HitTest(x, y float64) (string, bool) {
	wx, wy := sc.ToWorld(x, y)
	for i := len(sc.Nodes) - 1; i >= 0; i-- {
		n := sc.Nodes[i]
		dx, dy := wx-n.X, wy-n.Y
		if dx*dx+dy*dy <= n.R*n.R {
			return n.ID, true
		}
	}
	return "", false
}

// Node returns the drawn node with the given id.
func (sc *Scene) Node(id string) (NodeShape, bool) {
	for _, n := range sc.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeShape{}, false
}

// Edge returns the drawn edge joining a and b in either direction.
func (sc *Scene) Edge(a, b string) (EdgeShape, bool) {
	for _, e := range sc.Edges {
		if (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a) {
			return e, true
		}
	}
	return EdgeShape{}, false
}
