// Package gesture turns user input into well-formed backend requests. It owns
// the edit mode state machine: View, AddNode and AddEdge.
package gesture

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/msalah0e/wastegraph/internal/backend"
	"github.com/msalah0e/wastegraph/internal/loop"
	"github.com/msalah0e/wastegraph/internal/model"
	"github.com/msalah0e/wastegraph/internal/state"
)

// Prompter asks the user for out-of-band input. A false second result means
// the user gave no answer.
type Prompter interface {
	Prompt(msg, suggestion string) (string, bool)
	Confirm(msg string) bool
}

// Notifier shows transient user-facing messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Warning(msg string)
	Info(msg string)
}

const (
	zoomInFactor  = 1.2
	zoomOutFactor = 0.8
)

// Controller mediates gestures. Every method must run on the loop.
type Controller struct {
	st     *state.State
	loop   *loop.Loop
	api    backend.Backend
	prompt Prompter
	notify Notifier

	ctx           context.Context
	render        func()
	defaultWeight string
	logger        *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithRender sets the callback run after every state change.
func WithRender(fn func()) Option { return func(c *Controller) { c.render = fn } }

// WithDefaultWeight sets the suggestion shown by the edge weight prompt.
func WithDefaultWeight(w string) Option { return func(c *Controller) { c.defaultWeight = w } }

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithContext sets the context requests are issued under.
func WithContext(ctx context.Context) Option { return func(c *Controller) { c.ctx = ctx } }

// New returns a controller over st.
func New(st *state.State, l *loop.Loop, api backend.Backend, p Prompter, n Notifier, opts ...Option) *Controller {
	c := &Controller{
		st: st, loop: l, api: api, prompt: p, notify: n,
		ctx:           context.Background(),
		render:        func() {},
		defaultWeight: "2.5",
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetMode switches mode unconditionally, discarding any partial gesture.
func (c *Controller) SetMode(m state.Mode) {
	c.st.Overlay.SetMode(m)
	c.render()
}

// Reload replaces the cache with a fresh fetch.
func (c *Controller) Reload() {
	loop.Go(c.loop, c.ctx, c.api.FetchGraph, func(g *model.Graph, err error) {
		if err != nil {
			c.notify.Error("Failed to load graph: " + backend.Message(err))
			return
		}
		if dropped := c.st.ApplyGraph(g); len(dropped) > 0 {
			c.logger.Warn("duplicate node ids in graph", "ids", dropped)
		}
		c.render()
	})
}

// CanvasClicked places a node at (x, y) when in AddNode mode.
func (c *Controller) CanvasClicked(x, y float64) {
	if c.st.Overlay.Mode != state.AddNode {
		return
	}
	id := strings.TrimSpace(c.st.Form.NodeID)
	if id == "" {
		c.notify.Warning("Enter a node id first")
		return
	}

	n := model.Node{ID: id, X: x, Y: y, Capacity: 0}
	loop.Do(c.loop, c.ctx, func(ctx context.Context) error {
		return c.api.CreateNode(ctx, n)
	}, func(err error) {
		if err != nil {
			c.notify.Error(backend.Message(err))
			return
		}
		c.notify.Success(fmt.Sprintf("Node %s created", id))
		c.st.Form.NodeID = ""
		c.Reload()
		c.SetMode(state.View)
	})
}

// NodeClicked extends the edge selection when in AddEdge mode.
func (c *Controller) NodeClicked(id string) {
	if c.st.Overlay.Mode != state.AddEdge {
		return
	}
	// A full selection belongs to the edge request already in flight.
	if c.st.Overlay.Full() {
		return
	}
	if c.st.Overlay.Toggle(id) < state.MaxSelection {
		c.render()
		return
	}
	c.render()

	sel := c.st.Overlay.Selection
	source, target := sel[0], sel[1]
	raw, ok := c.prompt.Prompt(fmt.Sprintf("Distance between %s and %s (km):", source, target), c.defaultWeight)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		c.SetMode(state.View)
		return
	}
	weight, err := parseWeight(raw)
	if err != nil {
		c.notify.Warning(err.Error())
		c.SetMode(state.View)
		return
	}

	e := model.Edge{Source: source, Target: target, Weight: weight}
	loop.Do(c.loop, c.ctx, func(ctx context.Context) error {
		return c.api.CreateEdge(ctx, e)
	}, func(err error) {
		if err != nil {
			c.notify.Error(backend.Message(err))
			c.SetMode(state.View)
			return
		}
		c.notify.Success(fmt.Sprintf("Edge %s created", e.Key()))
		c.Reload()
		c.SetMode(state.View)
	})
}

func parseWeight(raw string) (float64, error) {
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, fmt.Errorf("invalid distance %q", raw)
	}
	if w <= 0 {
		return 0, fmt.Errorf("distance must be positive, got %s", raw)
	}
	return w, nil
}

// DeleteNode asks for an id and a confirmation, then smart-deletes the node.
func (c *Controller) DeleteNode() {
	raw, ok := c.prompt.Prompt("Id of the node to delete:", "")
	id := strings.TrimSpace(raw)
	if !ok || id == "" {
		return
	}
	if !c.prompt.Confirm(fmt.Sprintf("Delete node %s?\n(shortcut edges are created to keep shortest paths optimal)", id)) {
		return
	}

	loop.Go(c.loop, c.ctx, func(ctx context.Context) (*model.DeleteResult, error) {
		return c.api.DeleteNodeSmart(ctx, id)
	}, func(res *model.DeleteResult, err error) {
		if err != nil {
			c.notify.Error(backend.Message(err))
			return
		}
		c.notify.Success(res.Message)
		if res.Changed() {
			c.notify.Info(fmt.Sprintf("%d shortcut(s) created or improved", res.TotalShortcuts))
		}
		c.Reload()
	})
}

// ClearGraph deletes every node and edge after confirmation.
func (c *Controller) ClearGraph() {
	if !c.prompt.Confirm("Really clear the whole graph?") {
		return
	}
	loop.Do(c.loop, c.ctx, c.api.ClearGraph, func(err error) {
		if err != nil {
			c.notify.Error(backend.Message(err))
			return
		}
		c.notify.Success("Graph cleared")
		c.Reload()
	})
}

// ZoomIn scales the viewport up.
func (c *Controller) ZoomIn() { c.zoom(zoomInFactor) }

// ZoomOut scales the viewport down.
func (c *Controller) ZoomOut() { c.zoom(zoomOutFactor) }

func (c *Controller) zoom(factor float64) {
	c.st.Viewport.Scale(factor)
	c.notify.Info("Zoom: " + c.st.Viewport.Percent())
	c.render()
}

// Pan moves the viewport offset.
func (c *Controller) Pan(dx, dy float64) {
	c.st.Viewport.Pan(dx, dy)
	c.render()
}

// ResetView restores the identity viewport.
func (c *Controller) ResetView() {
	c.st.Viewport.Reset()
	c.notify.Info("View reset")
	c.render()
}
