package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msalah0e/wastegraph/internal/app"
	"github.com/msalah0e/wastegraph/internal/model"
	"github.com/msalah0e/wastegraph/internal/render"
	"github.com/msalah0e/wastegraph/internal/state"
	"github.com/msalah0e/wastegraph/internal/ui"
)

func shellCmd() *cobra.Command {
	var live bool

	cmd := &cobra.Command{
		Use:     "shell",
		Short:   "Interactive editor: modes, clicks, paths and coloring",
		Aliases: []string{"sh", "edit"},
		Run: func(cmd *cobra.Command, args []string) {
			in := ui.NewLinePrompter(cmd.InOrStdin(), ui.Out)
			vp := state.LoadViewport()
			opts := sessionOpts{prompt: in, viewport: &vp}
			if live {
				opts.surface = app.SurfaceFunc(func(sc *render.Scene) { _ = render.WriteText(ui.Out, sc) })
			}
			s := mustOpen(opts)

			ui.Banner("interactive editor, type help")
			sh := &shell{s: s, in: in, out: ui.Out}
			sh.run()

			if err := state.SaveViewport(s.app.State.Viewport); err != nil {
				ui.Subtle.Fprintf(os.Stderr, "  could not save view: %v\n", err)
			}
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "Print the scene after every change")
	return cmd
}

type shell struct {
	s   *session
	in  *ui.LinePrompter
	out io.Writer
}

const shellHelp = `  mode view|add-node|add-edge   switch edit mode
  id <node>                     node id placed by the next click
  click <x> <y>                 click the canvas (or the node under it)
  node <id>                     click a node directly
  src <node> / dst <node>       choose the path endpoints
  path [notes]                  shortest path between src and dst
  color                         color the graph
  whatif <a-b> <km>             path with a temporary constraint
  zoom in|out|reset / pan <dx> <dy>
  delete / clear / reload
  history / replay <id>
  constraints / constraint add <a> <b> <km> [reason] / toggle <id> on|off
  render [svg|dot|text|html|json|yaml] [file]
  close                         close history and constraint views
  stats / help / quit
  answer - at any prompt to cancel it`

func (sh *shell) run() {
	for {
		fmt.Fprint(sh.out, sh.prompt())
		line, ok := sh.in.ReadLine()
		if !ok {
			fmt.Fprintln(sh.out)
			return
		}
		if sh.exec(line) {
			return
		}
	}
}

func (sh *shell) prompt() string {
	st := sh.s.app.State
	p := st.Overlay.Mode.String()
	if len(st.Overlay.Selection) > 0 {
		p += " " + strings.Join(st.Overlay.Selection, ",")
	}
	return ui.Brand.Sprint("wg") + ui.Subtle.Sprintf(" [%s]", p) + " > "
}

func (sh *shell) warn(format string, a ...any) {
	fmt.Fprintf(sh.out, "  %s %s\n", ui.WarnIcon(), ui.Warn.Sprintf(format, a...))
}

// exec runs one command line and reports whether the shell should exit.
func (sh *shell) exec(line string) (quit bool) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return false
	}
	st := sh.s.app.State
	arg := func(i int) string {
		if i < len(f) {
			return f[i]
		}
		return ""
	}

	switch strings.ToLower(f[0]) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(sh.out, shellHelp)
	case "mode":
		m, err := state.ParseMode(arg(1))
		if err != nil {
			sh.warn("%v", err)
			return false
		}
		sh.s.send(app.Action{Kind: app.SetMode, Mode: m})
	case "id":
		st.Form.NodeID = arg(1)
	case "src":
		st.Form.Source = arg(1)
	case "dst":
		st.Form.Destination = arg(1)
	case "click":
		x, errX := strconv.ParseFloat(arg(1), 64)
		y, errY := strconv.ParseFloat(arg(2), 64)
		if errX != nil || errY != nil {
			sh.warn("usage: click <x> <y>")
			return false
		}
		sh.s.send(app.Click{X: x, Y: y})
	case "node":
		if arg(1) == "" {
			sh.warn("usage: node <id>")
			return false
		}
		sh.s.send(app.NodeClicked{ID: arg(1)})
	case "path":
		sh.s.send(actionFindPath(strings.Join(f[1:], " ")))
		ui.PrintPanels(st)
	case "color", "colour":
		sh.s.send(app.Action{Kind: app.Color})
		ui.PrintPanels(st)
	case "whatif":
		v, err := strconv.ParseFloat(arg(2), 64)
		if err != nil {
			sh.warn("usage: whatif <a-b> <km>")
			return false
		}
		sh.s.send(app.Action{Kind: app.WhatIf, Edge: arg(1), Value: v})
		for _, l := range ui.WhatIfLines(st.Panels.WhatIf) {
			fmt.Fprintln(sh.out, "  "+l)
		}
	case "zoom":
		switch arg(1) {
		case "in", "+":
			sh.s.send(app.Action{Kind: app.ZoomIn})
		case "out", "-":
			sh.s.send(app.Action{Kind: app.ZoomOut})
		case "reset", "0":
			sh.s.send(app.Action{Kind: app.ResetView})
		default:
			sh.warn("usage: zoom in|out|reset")
		}
	case "pan":
		dx, errX := strconv.ParseFloat(arg(1), 64)
		dy, errY := strconv.ParseFloat(arg(2), 64)
		if errX != nil || errY != nil {
			sh.warn("usage: pan <dx> <dy>")
			return false
		}
		sh.s.send(app.Action{Kind: app.Pan, DX: dx, DY: dy})
	case "delete", "rm":
		sh.s.send(app.Action{Kind: app.DeleteNode})
	case "clear":
		sh.s.send(app.Action{Kind: app.ClearGraph})
	case "reload":
		sh.s.send(app.Action{Kind: app.Reload})
	case "history":
		sh.s.send(app.Action{Kind: app.ShowHistory})
		ui.PrintPanels(st)
	case "replay":
		id, err := parseID(arg(1))
		if err != nil {
			sh.warn("usage: replay <id>")
			return false
		}
		sh.s.send(app.Action{Kind: app.Replay, ID: id})
		ui.PrintPanels(st)
	case "constraints":
		sh.s.send(app.Action{Kind: app.ShowConstraints})
		ui.PrintPanels(st)
	case "constraint":
		sh.constraint(f[1:])
	case "toggle":
		id, active, err := parseToggle(arg(1), arg(2))
		if err != nil {
			sh.warn("usage: toggle <id> on|off")
			return false
		}
		sh.s.send(app.Action{Kind: app.ToggleConstraint, ID: id, Active: active})
		ui.PrintPanels(st)
	case "render", "show":
		sh.render(arg(1), arg(2))
	case "close", "esc":
		sh.s.send(app.Action{Kind: app.Close})
	case "stats", "ls":
		fmt.Fprintln(sh.out, "  "+ui.StatsLine(st.Stats()))
		fmt.Fprintln(sh.out, "  "+ui.Subtle.Sprint(strings.Join(st.Cache.IDs(), " ")))
	default:
		sh.warn("unknown command %q, type help", f[0])
	}
	return false
}

func (sh *shell) constraint(args []string) {
	if len(args) < 4 || args[0] != "add" {
		sh.warn("usage: constraint add <a> <b> <km> [reason]")
		return
	}
	v, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		sh.warn("invalid value %q", args[3])
		return
	}
	nc := model.NewConstraint{Source: args[1], Target: args[2], ConstraintValue: v}
	if len(args) > 4 {
		reason := strings.Join(args[4:], " ")
		nc.Reason = &reason
	}
	sh.s.send(app.Action{Kind: app.AddConstraint, Constraint: nc})
}

func (sh *shell) render(format, file string) {
	if format == "" {
		format = "text"
	}
	w := sh.out
	if file != "" {
		f, err := os.Create(file)
		if err != nil {
			sh.warn("%v", err)
			return
		}
		defer f.Close()
		w = f
	}
	if err := writeExport(w, sh.s.app.State, renderOpts(sh.s), format); err != nil {
		sh.warn("%v", err)
		return
	}
	if file != "" {
		fmt.Fprintf(sh.out, "  %s wrote %s\n", ui.StatusIcon(true), file)
	}
}
