package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/msalah0e/wastegraph/internal/backend"
	"github.com/msalah0e/wastegraph/internal/parallel"
	"github.com/msalah0e/wastegraph/internal/ui"
)

// probes returns one reachability check per read-only service endpoint.
func probes(api backend.Backend) []parallel.Task {
	return []parallel.Task{
		{Name: "graph", Fn: func(ctx context.Context) error {
			_, err := api.FetchGraph(ctx)
			return err
		}},
		{Name: "constraints", Fn: func(ctx context.Context) error {
			_, err := api.ActiveConstraints(ctx)
			return err
		}},
		{Name: "history", Fn: func(ctx context.Context) error {
			_, err := api.History(ctx, 1)
			return err
		}},
	}
}

func statusCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check that the route service answers",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := settings()
			if timeout > 0 {
				cfg.API.Timeout.Duration = timeout
			}
			api, err := newBackend(cfg)
			if err != nil {
				fail("%v", err)
			}

			ui.Banner(cfg.API.BaseURL)
			results := parallel.Run(context.Background(), probes(api), 3, ui.Out)

			if err := parallel.FirstError(results); err != nil {
				fmt.Fprintln(ui.Out)
				ui.Bad.Fprintf(ui.Out, "  Service unhealthy: %v\n", err)
				os.Exit(1)
			}
			fmt.Fprintln(ui.Out)
			ui.Good.Fprintf(ui.Out, "  %s Service is up\n", ui.StatusIcon(true))
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-request timeout (default from config)")
	return cmd
}
