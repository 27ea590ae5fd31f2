package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msalah0e/wastegraph/internal/journal"
	"github.com/msalah0e/wastegraph/internal/ui"
)

// openJournal is swapped out by tests.
var openJournal = func() *journal.Journal { return journal.Open(journal.DefaultPath()) }

func logCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"journal"},
		Short:   "Show recent notifications from past commands",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := openJournal().Read(count)
			if err != nil {
				fail("Failed to read journal: %v", err)
			}
			ui.Banner("journal")
			if len(entries) == 0 {
				fmt.Fprintln(ui.Out, "  Nothing recorded yet.")
				return
			}
			printJournal(entries, 50)
			fmt.Fprintf(ui.Out, "\n  Showing %s\n", plural(len(entries), "entry", "entries"))
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of entries to show (0 for all)")
	cmd.AddCommand(logSearchCmd(), logClearCmd(), logExportCmd())
	return cmd
}

func logSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search journal entries by command or message",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			hits, err := openJournal().Search(args[0], 50)
			if err != nil {
				fail("Failed to read journal: %v", err)
			}
			if len(hits) == 0 {
				fmt.Fprintf(ui.Out, "  No entries matching %q\n", args[0])
				return
			}
			ui.Banner("journal search")
			printJournal(hits, 60)
			fmt.Fprintf(ui.Out, "\n  %s\n", plural(len(hits), "result", "results"))
		},
	}
}

func logClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the journal",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := openJournal().Clear(); err != nil {
				fail("Failed to clear journal: %v", err)
			}
			ui.Good.Fprintf(ui.Out, "  %s Journal cleared\n", ui.StatusIcon(true))
		},
	}
}

func logExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the whole journal as JSON",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := openJournal().Read(0)
			if err != nil {
				fail("Failed to read journal: %v", err)
			}
			if entries == nil {
				entries = []journal.Entry{}
			}
			enc := json.NewEncoder(ui.Out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(entries); err != nil {
				fail("%v", err)
			}
		},
	}
}

func printJournal(entries []journal.Entry, width int) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp.Local().Format("Jan 02 15:04"),
			levelIcon(e.Level),
			e.Command,
			truncate(e.Message, width),
		})
	}
	ui.Table([]string{"Time", "", "Command", "Message"}, rows)
}

func levelIcon(level string) string {
	switch level {
	case journal.Success:
		return ui.StatusIcon(true)
	case journal.Error:
		return ui.StatusIcon(false)
	default:
		return ui.WarnIcon()
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max-3]) + "..."
	}
	return s
}
