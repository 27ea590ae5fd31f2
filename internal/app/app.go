// Package app wires the editor together: state, loop, backend, gesture
// controller, result projector and the surface scenes are drawn on.
package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/msalah0e/wastegraph/internal/backend"
	"github.com/msalah0e/wastegraph/internal/gesture"
	"github.com/msalah0e/wastegraph/internal/loop"
	"github.com/msalah0e/wastegraph/internal/model"
	"github.com/msalah0e/wastegraph/internal/parallel"
	"github.com/msalah0e/wastegraph/internal/project"
	"github.com/msalah0e/wastegraph/internal/render"
	"github.com/msalah0e/wastegraph/internal/state"
)

// Surface displays scenes.
type Surface interface {
	Draw(sc *render.Scene)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(sc *render.Scene)

func (f SurfaceFunc) Draw(sc *render.Scene) { f(sc) }

// Options configure an App.
type Options struct {
	Backend  backend.Backend
	Prompter gesture.Prompter
	Notifier gesture.Notifier
	Surface  Surface

	Render        render.Options
	DefaultWeight string
	HistoryLimit  int
	Viewport      *state.Viewport
	Logger        *slog.Logger
}

// App is one editor session.
type App struct {
	State    *state.State
	Loop     *loop.Loop
	Gestures *gesture.Controller
	Results  *project.Projector

	api     backend.Backend
	notify  gesture.Notifier
	surface Surface
	opts    render.Options
	scene   *render.Scene
	logger  *slog.Logger
	ctx     context.Context
}

// New builds a session. Nothing is fetched until Init.
func New(ctx context.Context, o Options) *App {
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Surface == nil {
		o.Surface = SurfaceFunc(func(*render.Scene) {})
	}

	a := &App{
		State:   state.New(),
		Loop:    loop.New(o.Logger),
		api:     o.Backend,
		notify:  o.Notifier,
		surface: o.Surface,
		opts:    o.Render,
		logger:  o.Logger,
		ctx:     ctx,
	}
	if o.Viewport != nil {
		a.State.Viewport = *o.Viewport
	}

	gopts := []gesture.Option{
		gesture.WithRender(a.render),
		gesture.WithLogger(o.Logger),
		gesture.WithContext(ctx),
	}
	if o.DefaultWeight != "" {
		gopts = append(gopts, gesture.WithDefaultWeight(o.DefaultWeight))
	}
	a.Gestures = gesture.New(a.State, a.Loop, o.Backend, o.Prompter, o.Notifier, gopts...)

	popts := []project.Option{
		project.WithRender(a.render),
		project.WithReload(a.Gestures.Reload),
		project.WithLogger(o.Logger),
		project.WithContext(ctx),
	}
	if o.HistoryLimit > 0 {
		popts = append(popts, project.WithHistoryLimit(o.HistoryLimit))
	}
	a.Results = project.New(a.State, a.Loop, o.Backend, o.Notifier, popts...)

	a.scene = render.Build(a.State, a.opts)
	return a
}

type initial struct {
	graph       *model.Graph
	constraints []model.Constraint
	graphErr    error
	consErr     error
}

// Init loads the graph and the active constraints concurrently and resets
// the overlay to View. Must run on the loop.
func (a *App) Init() {
	a.State.Overlay = state.Overlay{}
	loop.Go(a.Loop, a.ctx, func(ctx context.Context) (initial, error) {
		var in initial
		results := parallel.Run(ctx, []parallel.Task{
			{Name: "graph", Fn: func(ctx context.Context) error {
				g, err := a.api.FetchGraph(ctx)
				in.graph = g
				return err
			}},
			{Name: "constraints", Fn: func(ctx context.Context) error {
				cs, err := a.api.ActiveConstraints(ctx)
				in.constraints = cs
				return err
			}},
		}, 2, nil)
		in.graphErr, in.consErr = results[0].Err, results[1].Err
		return in, nil
	}, func(in initial, _ error) {
		if in.graphErr != nil {
			a.notify.Error("Failed to load graph: " + backend.Message(in.graphErr))
		} else if dropped := a.State.ApplyGraph(in.graph); len(dropped) > 0 {
			a.logger.Warn("duplicate node ids in graph", "ids", dropped)
		}
		if in.consErr != nil {
			a.logger.Warn("load constraints", "err", in.consErr)
		} else {
			a.State.ActiveConstraints = in.constraints
		}
		a.render()
	})
}

// Dispatch routes an event to its handler. Must run on the loop.
func (a *App) Dispatch(ev Event) {
	switch ev := ev.(type) {
	case Click:
		if id, ok := a.scene.HitTest(ev.X, ev.Y); ok {
			a.Gestures.NodeClicked(id)
			return
		}
		x, y := a.scene.ToWorld(ev.X, ev.Y)
		a.Gestures.CanvasClicked(x, y)
	case NodeClicked:
		a.Gestures.NodeClicked(ev.ID)
	case CanvasClicked:
		a.Gestures.CanvasClicked(ev.X, ev.Y)
	case Action:
		a.act(ev)
	}
}

func (a *App) act(ev Action) {
	a.logger.Debug("action", "kind", ev.Kind)
	switch ev.Kind {
	case SetMode:
		a.Gestures.SetMode(ev.Mode)
	case ZoomIn:
		a.Gestures.ZoomIn()
	case ZoomOut:
		a.Gestures.ZoomOut()
	case Pan:
		a.Gestures.Pan(ev.DX, ev.DY)
	case ResetView:
		a.Gestures.ResetView()
	case DeleteNode:
		a.Gestures.DeleteNode()
	case ClearGraph:
		a.Gestures.ClearGraph()
	case Reload:
		a.Gestures.Reload()
	case FindPath:
		a.Results.FindPath(a.State.Form.Source, a.State.Form.Destination, ev.Notes)
	case Color:
		a.Results.Color()
	case WhatIf:
		a.Results.WhatIf(ev.Edge, ev.Value)
	case ShowHistory:
		a.Results.ShowHistory()
	case Replay:
		a.Results.Replay(ev.ID)
	case ShowConstraints:
		a.Results.ShowConstraints()
	case AddConstraint:
		a.Results.AddConstraint(ev.Constraint)
	case ToggleConstraint:
		a.Results.ToggleConstraint(ev.ID, ev.Active)
	case Close:
		a.State.Panels.CloseViews()
		a.render()
	}
}

// Scene returns the last drawn scene.
func (a *App) Scene() *render.Scene { return a.scene }

// Post queues ev for the loop. Safe from any goroutine.
func (a *App) Post(ev Event) { a.Loop.Post(func() { a.Dispatch(ev) }) }

// Do runs fn on the loop, for reads and form edits from other goroutines.
func (a *App) Do(fn func(st *state.State)) { a.Loop.Post(func() { fn(a.State) }) }

func (a *App) render() {
	a.scene = render.Build(a.State, a.opts)
	a.surface.Draw(a.scene)
}
