package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msalah0e/wastegraph/internal/app"
	"github.com/msalah0e/wastegraph/internal/state"
	"github.com/msalah0e/wastegraph/internal/ui"
)

func nodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Add or remove nodes",
	}
	cmd.AddCommand(nodeAddCmd(), nodeRemoveCmd())
	return cmd
}

func nodeAddCmd() *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Place a node at a canvas position",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s := mustOpen(sessionOpts{})
			s.app.State.Form.NodeID = args[0]
			s.send(
				app.Action{Kind: app.SetMode, Mode: state.AddNode},
				app.CanvasClicked{X: x, Y: y},
			)
			s.done()
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "Horizontal position")
	cmd.Flags().Float64Var(&y, "y", 0, "Vertical position")
	return cmd
}

func nodeRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:               "rm <id>",
		Short:             "Delete a node, adding shortcut edges to keep distances",
		Aliases:           []string{"remove", "delete"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: nodeCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			p := &scripted{answers: []string{args[0]}, yes: yes, next: ui.NewLinePrompter(cmd.InOrStdin(), ui.Out)}
			s := mustOpen(sessionOpts{prompt: p})
			s.send(app.Action{Kind: app.DeleteNode})
			s.done()
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}

func edgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Add edges",
	}
	cmd.AddCommand(edgeAddCmd())
	return cmd
}

func edgeAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "add <a> <b> [km]",
		Short:             "Link two nodes; the distance is asked for when omitted",
		Args:              cobra.RangeArgs(2, 3),
		ValidArgsFunction: nodeCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			p := &scripted{next: ui.NewLinePrompter(cmd.InOrStdin(), ui.Out)}
			if len(args) == 3 {
				p.answers = []string{args[2]}
			}
			if args[0] == args[1] {
				fail("An edge needs two distinct nodes")
			}
			s := mustOpen(sessionOpts{prompt: p})
			for _, id := range args[:2] {
				if !s.app.State.Cache.Has(id) {
					fail("Unknown node %s", id)
				}
			}
			s.send(
				app.Action{Kind: app.SetMode, Mode: state.AddEdge},
				app.NodeClicked{ID: args[0]},
				app.NodeClicked{ID: args[1]},
			)
			s.done()
		},
	}
}

func clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every node and edge",
		Run: func(cmd *cobra.Command, args []string) {
			p := &scripted{yes: yes, next: ui.NewLinePrompter(cmd.InOrStdin(), ui.Out)}
			s := mustOpen(sessionOpts{prompt: p})
			s.send(app.Action{Kind: app.ClearGraph})
			s.done()
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}
