// Package project maps algorithm results from the backend onto the editor
// state: highlighted paths, per-node colors and the result panels.
package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/msalah0e/wastegraph/internal/backend"
	"github.com/msalah0e/wastegraph/internal/gesture"
	"github.com/msalah0e/wastegraph/internal/loop"
	"github.com/msalah0e/wastegraph/internal/model"
	"github.com/msalah0e/wastegraph/internal/state"
)

// Projector runs algorithm requests and projects their results. Every method
// must run on the loop.
type Projector struct {
	st     *state.State
	loop   *loop.Loop
	api    backend.Backend
	notify gesture.Notifier

	ctx          context.Context
	render       func()
	reload       func()
	historyLimit int
	logger       *slog.Logger
}

// Option configures a Projector.
type Option func(*Projector)

// WithRender sets the callback run after every projection.
func WithRender(fn func()) Option { return func(p *Projector) { p.render = fn } }

// WithReload sets how the graph is reloaded after constraint changes.
func WithReload(fn func()) Option { return func(p *Projector) { p.reload = fn } }

// WithContext sets the context requests are issued under.
func WithContext(ctx context.Context) Option { return func(p *Projector) { p.ctx = ctx } }

// WithHistoryLimit sets how many history entries ShowHistory asks for.
func WithHistoryLimit(n int) Option { return func(p *Projector) { p.historyLimit = n } }

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option { return func(p *Projector) { p.logger = l } }

// New returns a projector over st.
func New(st *state.State, l *loop.Loop, api backend.Backend, n gesture.Notifier, opts ...Option) *Projector {
	p := &Projector{
		st: st, loop: l, api: api, notify: n,
		ctx:          context.Background(),
		render:       func() {},
		reload:       func() {},
		historyLimit: 20,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// FindPath searches the shortest path between src and dst and highlights it.
// The computation is saved to history.
func (p *Projector) FindPath(src, dst, notes string) {
	src, dst = strings.TrimSpace(src), strings.TrimSpace(dst)
	if src == "" || dst == "" {
		p.notify.Warning("Select a source and a destination")
		return
	}
	q := backend.PathQuery{Source: src, Destination: dst, Save: true, Notes: notes}
	loop.Go(p.loop, p.ctx, func(ctx context.Context) (*model.PathResult, error) {
		return p.api.ShortestPath(ctx, q)
	}, func(res *model.PathResult, err error) {
		if err != nil {
			p.notify.Error(pathError(src, dst, err))
			return
		}
		p.ApplyPath(res, false)
		p.notify.Success("Shortest path found")
	})
}

func pathError(src, dst string, err error) string {
	if errors.Is(err, model.ErrNoPath) {
		return fmt.Sprintf("No path from %s to %s", src, dst)
	}
	return backend.Message(err)
}

// ApplyPath highlights res and shows its summary. All node colors and the
// coloring panel are cleared.
func (p *Projector) ApplyPath(res *model.PathResult, replay bool) {
	p.st.Cache.ClearColors()
	p.st.Overlay.Path = res.Path
	p.st.Panels.Path = &state.PathPanel{Path: res.Path, Distance: res.Dist(), Replay: replay}
	p.st.Panels.Coloring = nil
	p.render()
}

// Color requests a graph coloring. The highlighted path is cleared before
// the request is sent.
func (p *Projector) Color() {
	p.st.Overlay.Path = nil
	p.render()
	loop.Go(p.loop, p.ctx, p.api.Coloring, func(res *model.ColoringResult, err error) {
		if err != nil {
			p.notify.Error(backend.Message(err))
			return
		}
		p.ApplyColoring(res)
		p.notify.Success(fmt.Sprintf("Graph colored with %d colors", res.ChromaticNumber))
	})
}

// ApplyColoring assigns node colors from res and shows its summary. The
// highlighted path and the path panel are cleared.
func (p *Projector) ApplyColoring(res *model.ColoringResult) {
	p.st.Overlay.Path = nil
	p.st.Cache.SetColors(res.Coloring)
	p.st.Panels.Coloring = res
	p.st.Panels.Path = nil
	p.render()
}

// WhatIf searches the path between the selected source and destination with
// one edge's constraint value overridden. Nothing is saved and only the
// what-if panel changes.
func (p *Projector) WhatIf(edgeKey string, value float64) {
	edgeKey = strings.TrimSpace(edgeKey)
	src, dst := p.st.Form.Source, p.st.Form.Destination
	if edgeKey == "" || value == 0 || math.IsNaN(value) || math.IsInf(value, 0) || src == "" || dst == "" {
		p.notify.Warning("Fill in the edge, the value, the source and the destination")
		return
	}
	overrides := map[string]float64{edgeKey: value}
	q := backend.PathQuery{Source: src, Destination: dst, Overrides: overrides}
	loop.Go(p.loop, p.ctx, func(ctx context.Context) (*model.PathResult, error) {
		return p.api.ShortestPath(ctx, q)
	}, func(res *model.PathResult, err error) {
		if err != nil {
			p.notify.Error(pathError(src, dst, err))
			return
		}
		p.st.Panels.WhatIf = &state.PathPanel{Path: res.Path, Distance: res.Dist(), Overrides: overrides}
		p.notify.Info("What-if test done")
		p.render()
	})
}

// Replay recomputes a history entry, highlights the result and closes the
// history view.
func (p *Projector) Replay(id int) {
	loop.Go(p.loop, p.ctx, func(ctx context.Context) (*model.PathResult, error) {
		return p.api.ReplayHistory(ctx, id)
	}, func(res *model.PathResult, err error) {
		if err != nil {
			p.notify.Error(backend.Message(err))
			return
		}
		p.notify.Success(fmt.Sprintf("Calculation #%d replayed", id))
		p.st.Panels.HistoryOpen = false
		p.ApplyPath(res, true)
	})
}

// ShowHistory opens the history view with the most recent computations.
func (p *Projector) ShowHistory() {
	limit := p.historyLimit
	loop.Go(p.loop, p.ctx, func(ctx context.Context) ([]model.HistoryEntry, error) {
		return p.api.History(ctx, limit)
	}, func(entries []model.HistoryEntry, err error) {
		if err != nil {
			p.notify.Error(backend.Message(err))
			return
		}
		p.st.Panels.History = entries
		p.st.Panels.HistoryOpen = true
		p.render()
	})
}

// ShowConstraints opens the constraint view with every constraint.
func (p *Projector) ShowConstraints() {
	loop.Go(p.loop, p.ctx, p.api.AllConstraints, func(cs []model.Constraint, err error) {
		if err != nil {
			p.notify.Error(backend.Message(err))
			return
		}
		p.st.Panels.Constraints = cs
		p.st.Panels.ConstraintsOpen = true
		p.render()
	})
}

// LoadConstraints refreshes the active constraint set.
func (p *Projector) LoadConstraints() {
	loop.Go(p.loop, p.ctx, p.api.ActiveConstraints, func(cs []model.Constraint, err error) {
		if err != nil {
			p.logger.Warn("load constraints", "err", err)
			return
		}
		p.st.ActiveConstraints = cs
		p.render()
	})
}

// AddConstraint persists a new constraint, then refreshes constraints and the
// graph.
func (p *Projector) AddConstraint(nc model.NewConstraint) {
	if nc.Source == "" || nc.Target == "" || nc.ConstraintValue == 0 || math.IsNaN(nc.ConstraintValue) {
		p.notify.Warning("Fill in every required field")
		return
	}
	loop.Do(p.loop, p.ctx, func(ctx context.Context) error {
		return p.api.CreateConstraint(ctx, nc)
	}, func(err error) {
		if err != nil {
			p.notify.Error(backend.Message(err))
			return
		}
		p.notify.Success("Constraint created")
		p.LoadConstraints()
		p.reload()
	})
}

// ToggleConstraint activates or deactivates a constraint, then refreshes the
// constraint view, the active set and the graph.
func (p *Projector) ToggleConstraint(id int, active bool) {
	loop.Do(p.loop, p.ctx, func(ctx context.Context) error {
		return p.api.ToggleConstraint(ctx, id, active)
	}, func(err error) {
		if err != nil {
			p.notify.Error(backend.Message(err))
			return
		}
		if active {
			p.notify.Success("Constraint enabled")
		} else {
			p.notify.Success("Constraint disabled")
		}
		p.ShowConstraints()
		p.LoadConstraints()
		p.reload()
	})
}
