package app

import (
	"github.com/msalah0e/wastegraph/internal/model"
	"github.com/msalah0e/wastegraph/internal/state"
)

// Event is user input, independent of any display technology.
type Event interface{ event() }

// Click is a pointer press at a canvas position. Dispatch resolves it to a
// NodeClicked or a CanvasClicked through the current scene.
type Click struct{ X, Y float64 }

// NodeClicked is a press on a drawn node. It never also counts as a canvas
// click.
type NodeClicked struct{ ID string }

// CanvasClicked is a press on empty space, in scene coordinates.
type CanvasClicked struct{ X, Y float64 }

// Kind names an action.
type Kind int

const (
	SetMode Kind = iota
	ZoomIn
	ZoomOut
	Pan
	ResetView
	DeleteNode
	ClearGraph
	Reload
	FindPath
	Color
	WhatIf
	ShowHistory
	Replay
	ShowConstraints
	AddConstraint
	ToggleConstraint
	Close
)

var kindNames = map[Kind]string{
	SetMode: "set-mode", ZoomIn: "zoom-in", ZoomOut: "zoom-out", Pan: "pan", ResetView: "reset-view",
	DeleteNode: "delete-node", ClearGraph: "clear-graph", Reload: "reload",
	FindPath: "find-path", Color: "color", WhatIf: "what-if",
	ShowHistory: "show-history", Replay: "replay",
	ShowConstraints: "show-constraints", AddConstraint: "add-constraint", ToggleConstraint: "toggle-constraint",
	Close: "close",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Action is a toolbar, menu or key action. Only the fields its Kind reads
// need to be set.
type Action struct {
	Kind Kind

	Mode       state.Mode
	DX, DY     float64
	Notes      string
	Edge       string
	Value      float64
	ID         int
	Active     bool
	Constraint model.NewConstraint
}

func (Click) event()         {}
func (NodeClicked) event()   {}
func (CanvasClicked) event() {}
func (Action) event()        {}
