package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/msalah0e/wastegraph/internal/app"
	"github.com/msalah0e/wastegraph/internal/model"
	"github.com/msalah0e/wastegraph/internal/ui"
)

func actionFindPath(notes string) app.Action {
	return app.Action{Kind: app.FindPath, Notes: notes}
}

func pathCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:               "path <src> <dst>",
		Short:             "Find the shortest path between two nodes",
		Aliases:           []string{"route", "dijkstra"},
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: nodeCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			s := mustOpen(sessionOpts{})
			s.app.State.Form.Source, s.app.State.Form.Destination = args[0], args[1]
			s.send(actionFindPath(notes))
			ui.PrintPanels(s.app.State)
			s.done()
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Notes saved with the computation")
	return cmd
}

func colorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "color",
		Short:   "Color the graph so no two neighbours share a color",
		Aliases: []string{"colour", "coloring"},
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := mustOpen(sessionOpts{})
			s.send(app.Action{Kind: app.Color})
			ui.PrintPanels(s.app.State)

			var rows [][]string
			for _, n := range s.app.State.Cache.Nodes() {
				if n.Color != nil {
					rows = append(rows, []string{n.ID, fmt.Sprintf("%s %d", ui.ColorIcon(*n.Color), *n.Color)})
				}
			}
			if len(rows) > 0 {
				fmt.Fprintln(ui.Out)
				ui.Table([]string{"NODE", "COLOR"}, rows)
			}
			s.done()
		},
	}
}

func whatifCmd() *cobra.Command {
	var edge string
	var value float64

	cmd := &cobra.Command{
		Use:               "whatif <src> <dst>",
		Short:             "Try a temporary constraint on one edge without saving it",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: nodeCompletionFunc,
		Example:           "  wg whatif A D --edge B-C --value 25",
		Run: func(cmd *cobra.Command, args []string) {
			s := mustOpen(sessionOpts{})
			s.app.State.Form.Source, s.app.State.Form.Destination = args[0], args[1]
			s.send(app.Action{Kind: app.WhatIf, Edge: edge, Value: value})
			ui.PrintPanels(s.app.State)
			s.done()
		},
	}

	cmd.Flags().StringVar(&edge, "edge", "", "Edge key, source-target (e.g. A-B)")
	cmd.Flags().Float64Var(&value, "value", 0, "Constraint value to add, in km")
	return cmd
}

func constraintsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "constraints",
		Short:   "List, add and toggle edge constraints",
		Aliases: []string{"constraint", "cons"},
		Run: func(cmd *cobra.Command, args []string) {
			listConstraints()
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every constraint",
			Args:  cobra.NoArgs,
			Run:   func(cmd *cobra.Command, args []string) { listConstraints() },
		},
		constraintAddCmd(),
		constraintToggleCmd(),
	)
	return cmd
}

func listConstraints() {
	s := mustOpen(sessionOpts{})
	s.send(app.Action{Kind: app.ShowConstraints})
	ui.PrintPanels(s.app.State)
	s.done()
}

func constraintAddCmd() *cobra.Command {
	var reason string
	var days int

	cmd := &cobra.Command{
		Use:               "add <source> <target> <km>",
		Short:             "Add a weight penalty to an edge",
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: nodeCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			value, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				fail("Invalid value %q", args[2])
			}
			nc := model.NewConstraint{Source: args[0], Target: args[1], ConstraintValue: value}
			if reason != "" {
				nc.Reason = &reason
			}
			if days > 0 {
				nc.ExpiryDays = &days
			}

			s := mustOpen(sessionOpts{})
			s.send(app.Action{Kind: app.AddConstraint, Constraint: nc})
			fmt.Fprintln(ui.Out, "  "+ui.StatsLine(s.app.State.Stats()))
			s.done()
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the road is penalised")
	cmd.Flags().IntVar(&days, "expires", 0, "Expire after this many days (0 = permanent)")
	return cmd
}

func constraintToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "toggle <id> <on|off>",
		Short:     "Enable or disable a constraint",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"on", "off"},
		Run: func(cmd *cobra.Command, args []string) {
			id, active, err := parseToggle(args[0], args[1])
			if err != nil {
				fail("%v", err)
			}
			s := mustOpen(sessionOpts{})
			s.send(app.Action{Kind: app.ToggleConstraint, ID: id, Active: active})
			ui.PrintPanels(s.app.State)
			s.done()
		},
	}
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show and replay saved path computations",
		Aliases: []string{"hist"},
		Run: func(cmd *cobra.Command, args []string) {
			showHistory()
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recent computations",
			Args:  cobra.NoArgs,
			Run:   func(cmd *cobra.Command, args []string) { showHistory() },
		},
		&cobra.Command{
			Use:   "replay <id>",
			Short: "Recompute a saved path with today's graph",
			Args:  cobra.ExactArgs(1),
			Run: func(cmd *cobra.Command, args []string) {
				id, err := parseID(args[0])
				if err != nil {
					fail("%v", err)
				}
				s := mustOpen(sessionOpts{})
				s.send(app.Action{Kind: app.Replay, ID: id})
				ui.PrintPanels(s.app.State)
				s.done()
			},
		},
	)
	return cmd
}

func showHistory() {
	s := mustOpen(sessionOpts{})
	s.send(app.Action{Kind: app.ShowHistory})
	ui.PrintPanels(s.app.State)
	s.done()
}
