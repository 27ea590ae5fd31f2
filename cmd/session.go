package cmd

import (
	"context"
	"os"

	"github.com/msalah0e/wastegraph/internal/app"
	"github.com/msalah0e/wastegraph/internal/backend"
	"github.com/msalah0e/wastegraph/internal/config"
	"github.com/msalah0e/wastegraph/internal/gesture"
	"github.com/msalah0e/wastegraph/internal/journal"
	"github.com/msalah0e/wastegraph/internal/render"
	"github.com/msalah0e/wastegraph/internal/state"
	"github.com/msalah0e/wastegraph/internal/ui"
)

// settings resolves config file values against the persistent flags.
func settings() *config.Config {
	cfg := config.Load()
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg
}

// newBackend is swapped out by tests.
var newBackend = func(cfg *config.Config) (backend.Backend, error) {
	logger := app.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	return backend.NewClient(cfg.API.BaseURL,
		backend.WithTimeout(cfg.API.Timeout.Duration),
		backend.WithLogger(logger),
	)
}

// tally is a notifier that remembers whether anything failed, so one-shot
// commands can exit non-zero. With a journal it also records every outcome.
type tally struct {
	ui.Toaster
	failed   bool
	warnings int

	journal *journal.Journal
	command string
}

func (t *tally) Success(msg string) {
	t.record(journal.Success, msg)
	t.Toaster.Success(msg)
}

func (t *tally) Error(msg string) {
	t.failed = true
	t.record(journal.Error, msg)
	t.Toaster.Error(msg)
}

func (t *tally) Warning(msg string) {
	t.warnings++
	t.record(journal.Warning, msg)
	t.Toaster.Warning(msg)
}

func (t *tally) record(level, msg string) {
	if t.journal == nil {
		return
	}
	if err := t.journal.Record(t.command, level, msg); err != nil {
		ui.Subtle.Fprintf(os.Stderr, "  journal: %v\n", err)
		t.journal = nil
	}
}

// scripted answers prompts from a fixed list, then defers to next.
type scripted struct {
	answers []string
	yes     bool
	next    gesture.Prompter
}

func (s *scripted) Prompt(msg, suggestion string) (string, bool) {
	if len(s.answers) > 0 {
		a := s.answers[0]
		s.answers = s.answers[1:]
		return a, true
	}
	if s.next == nil {
		return "", false
	}
	return s.next.Prompt(msg, suggestion)
}

func (s *scripted) Confirm(msg string) bool {
	if s.yes {
		return true
	}
	if s.next == nil {
		return false
	}
	return s.next.Confirm(msg)
}

type session struct {
	cfg    *config.Config
	app    *app.App
	notify *tally
}

type sessionOpts struct {
	prompt   gesture.Prompter
	surface  app.Surface
	viewport *state.Viewport
	journal  *journal.Journal
}

// openSession connects to the service and loads the graph and the active
// constraints.
func openSession(ctx context.Context, o sessionOpts) (*session, error) {
	cfg := settings()
	api, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Edit.Journal && o.journal == nil {
		o.journal = journal.Open(journal.DefaultPath())
	}
	return startSession(ctx, cfg, api, o), nil
}

func startSession(ctx context.Context, cfg *config.Config, api backend.Backend, o sessionOpts) *session {
	if o.prompt == nil {
		o.prompt = ui.NewLinePrompter(os.Stdin, ui.Out)
	}
	s := &session{cfg: cfg, notify: &tally{journal: o.journal, command: invoked}}
	s.app = app.New(ctx, app.Options{
		Backend:  api,
		Prompter: o.prompt,
		Notifier: s.notify,
		Surface:  o.surface,
		Render: render.Options{
			NodeRadius:  cfg.Render.NodeRadius,
			DefaultFill: cfg.Render.DefaultFill,
			Width:       cfg.Render.Width,
			Height:      cfg.Render.Height,
		},
		DefaultWeight: cfg.Edit.DefaultWeight,
		HistoryLimit:  cfg.Edit.HistoryLimit,
		Viewport:      o.viewport,
		Logger:        app.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr),
	})
	s.app.Init()
	s.app.Loop.Drain()
	return s
}

// send dispatches events and waits for every request they trigger.
func (s *session) send(evs ...app.Event) {
	for _, ev := range evs {
		s.app.Dispatch(ev)
	}
	s.app.Loop.Drain()
}

// mustOpen opens a session or exits.
func mustOpen(o sessionOpts) *session {
	s, err := openSession(context.Background(), o)
	if err != nil {
		fail("Failed to connect: %v", err)
	}
	if s.notify.failed {
		os.Exit(1)
	}
	return s
}

// done exits non-zero when any step of a one-shot command failed.
func (s *session) done() {
	if s.notify.failed || s.notify.warnings > 0 {
		os.Exit(1)
	}
}
