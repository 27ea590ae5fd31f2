// Package state holds the editor's application state: the graph model cache,
// the overlay (mode, pending selection, highlighted path), the viewport, the
// input form and the result panels. One State is owned by the event loop and
// only mutated on it.
package state

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/msalah0e/wastegraph/internal/model"
)

// Mode is the interpretation applied to canvas and node clicks.
type Mode int

const (
	View Mode = iota
	AddNode
	AddEdge
)

func (m Mode) String() string {
	switch m {
	case AddNode:
		return "add-node"
	case AddEdge:
		return "add-edge"
	default:
		return "view"
	}
}

// ParseMode accepts the names printed by Mode.String plus a few aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "view", "v":
		return View, nil
	case "add-node", "addnode", "node", "n":
		return AddNode, nil
	case "add-edge", "addedge", "edge", "e":
		return AddEdge, nil
	}
	return View, fmt.Errorf("unknown mode %q (want view, add-node or add-edge)", s)
}

// Cache mirrors the last fetched graph plus per-node coloring.
type Cache struct {
	nodes []model.Node
	index map[string]int
	edges []model.Edge
}

// Replace swaps the cached graph wholesale. Nodes repeating an earlier id are
// dropped and returned.
func (c *Cache) Replace(g *model.Graph) (dropped []string) {
	c.nodes = make([]model.Node, 0, len(g.Nodes))
	c.index = make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := c.index[n.ID]; dup {
			dropped = append(dropped, n.ID)
			continue
		}
		n.Color = nil
		c.index[n.ID] = len(c.nodes)
		c.nodes = append(c.nodes, n)
	}
	c.edges = slices.Clone(g.Edges)
	return dropped
}

// Nodes returns the cached nodes in fetch order. Callers must not modify it.
func (c *Cache) Nodes() []model.Node { return c.nodes }

// Edges returns the cached edges in fetch order. Callers must not modify it.
func (c *Cache) Edges() []model.Edge { return c.edges }

// Node looks a node up by id.
func (c *Cache) Node(id string) (model.Node, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.Node{}, false
	}
	return c.nodes[i], true
}

// Has reports whether id is in the cache.
func (c *Cache) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// IDs returns the cached node ids sorted, for selection lists.
func (c *Cache) IDs() []string {
	ids := make([]string, 0, len(c.nodes))
	for _, n := range c.nodes {
		ids = append(ids, n.ID)
	}
	sort.Strings(ids)
	return ids
}

// SetColors assigns each node its color from coloring. Nodes absent from the
// map end up with no color.
func (c *Cache) SetColors(coloring map[string]int) {
	for i := range c.nodes {
		if col, ok := coloring[c.nodes[i].ID]; ok {
			col := col
			c.nodes[i].Color = &col
		} else {
			c.nodes[i].Color = nil
		}
	}
}

// ClearColors removes every node color.
func (c *Cache) ClearColors() {
	for i := range c.nodes {
		c.nodes[i].Color = nil
	}
}

// Snapshot returns a copy of the cached graph.
func (c *Cache) Snapshot() model.Graph {
	return model.Graph{Nodes: slices.Clone(c.nodes), Edges: slices.Clone(c.edges)}
}

// Overlay is the transient interaction state layered over the graph.
type Overlay struct {
	Mode      Mode
	Selection []string
	Path      []string
}

// SetMode switches mode and always discards the pending selection.
func (o *Overlay) SetMode(m Mode) {
	o.Mode = m
	o.Selection = nil
}

// MaxSelection is the number of nodes an edge gesture collects.
const MaxSelection = 2

// Toggle adds id to the pending selection, or removes it when already there.
// A full selection is left alone. It returns the resulting selection length.
func (o *Overlay) Toggle(id string) int {
	if i := slices.Index(o.Selection, id); i >= 0 {
		o.Selection = slices.Delete(o.Selection, i, i+1)
		return len(o.Selection)
	}
	if len(o.Selection) >= MaxSelection {
		return len(o.Selection)
	}
	o.Selection = append(o.Selection, id)
	return len(o.Selection)
}

// Full reports whether the selection holds MaxSelection nodes.
func (o *Overlay) Full() bool { return len(o.Selection) >= MaxSelection }

// Selected reports whether id is pending selection.
func (o *Overlay) Selected(id string) bool { return slices.Contains(o.Selection, id) }

// InPath reports whether id is on the highlighted path.
func (o *Overlay) InPath(id string) bool { return slices.Contains(o.Path, id) }

// Viewport is the zoom and pan applied when the scene is drawn.
type Viewport struct {
	Zoom    float64 `toml:"zoom"`
	OffsetX float64 `toml:"offset_x"`
	OffsetY float64 `toml:"offset_y"`
}

// Identity returns the reset viewport.
func Identity() Viewport { return Viewport{Zoom: 1} }

// Scale multiplies the zoom. There are no bounds.
func (v *Viewport) Scale(factor float64) { v.Zoom *= factor }

// Pan moves the offset.
func (v *Viewport) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// Reset restores the identity viewport.
func (v *Viewport) Reset() { *v = Identity() }

// IsIdentity reports whether the viewport applies no transform.
func (v Viewport) IsIdentity() bool { return v == Identity() }

// Percent formats the zoom as a rounded percentage.
func (v Viewport) Percent() string { return fmt.Sprintf("%.0f%%", v.Zoom*100) }

// Form holds the pending input fields.
type Form struct {
	NodeID      string
	Source      string
	Destination string
}

// PathPanel summarises a path result.
type PathPanel struct {
	Path      []string
	Distance  float64
	Replay    bool
	Overrides map[string]float64
}

// Panels are the transient result views.
type Panels struct {
	Path     *PathPanel
	Coloring *model.ColoringResult
	WhatIf   *PathPanel

	HistoryOpen bool
	History     []model.HistoryEntry

	ConstraintsOpen bool
	Constraints     []model.Constraint
}

// CloseViews closes the history and constraints views.
func (p *Panels) CloseViews() {
	p.HistoryOpen = false
	p.ConstraintsOpen = false
}

// State is the whole client state.
type State struct {
	Cache    Cache
	Overlay  Overlay
	Viewport Viewport
	Form     Form
	Panels   Panels

	// ActiveConstraints is the last fetched set of active constraints.
	ActiveConstraints []model.Constraint
}

// New returns the initial state: empty cache, View mode, identity viewport.
func New() *State {
	s := &State{Viewport: Identity()}
	s.Cache.Replace(&model.Graph{})
	return s
}

// ApplyGraph installs a freshly fetched graph. The highlighted path and node
// colors are cleared together with their summary panels, and the pending
// selection keeps only ids that still exist.
func (s *State) ApplyGraph(g *model.Graph) (dropped []string) {
	dropped = s.Cache.Replace(g)
	s.Overlay.Path = nil
	s.Panels.Path = nil
	s.Panels.Coloring = nil
	kept := s.Overlay.Selection[:0]
	for _, id := range s.Overlay.Selection {
		if s.Cache.Has(id) {
			kept = append(kept, id)
		}
	}
	s.Overlay.Selection = kept
	return dropped
}

// Stats counts what the status line shows.
type Stats struct {
	Nodes       int
	Edges       int
	Constraints int
}

// Stats returns the current counts.
func (s *State) Stats() Stats {
	return Stats{
		Nodes:       len(s.Cache.Nodes()),
		Edges:       len(s.Cache.Edges()),
		Constraints: len(s.ActiveConstraints),
	}
}
