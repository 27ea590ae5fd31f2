package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/msalah0e/wastegraph/internal/app"
	"github.com/msalah0e/wastegraph/internal/config"
	"github.com/msalah0e/wastegraph/internal/ui"
)

var version = "0.3.0"

var (
	apiURL    string
	logLevel  string
	logFormat string
	noColor   bool
	noEmoji   bool

	// invoked is the command path being run, for the journal.
	invoked = "wg"
)

var rootCmd = &cobra.Command{
	Use:   "wg",
	Short: "wg: route graph editor",
	Long: ui.Brand.Sprint(ui.Route+" wastegraph") + ": edit and explore a weighted route graph\n" +
		ui.Subtle.Sprint("Place nodes, link roads, find shortest paths and color the network"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		invoked = cmd.CommandPath()
		cfg := settings()
		if noColor || !cfg.UI.Color {
			color.NoColor = true
		}
		ui.Emoji = cfg.UI.Emoji && !noEmoji
		return checkLog(cfg)
	},
}

// checkLog rejects log settings NewLogger would silently replace.
func checkLog(cfg *config.Config) error {
	if _, err := app.ParseLogLevel(cfg.Log.Level); err != nil {
		return err
	}
	return app.CheckLogFormat(cfg.Log.Format)
}

func init() {
	rootCmd.SetVersionTemplate("wg {{ .Version }}\n")
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&apiURL, "api", "", "Service base URL (overrides config and WG_API)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&noEmoji, "no-emoji", false, "Disable icons in output")

	rootCmd.AddCommand(
		graphCmd(),
		nodeCmd(),
		edgeCmd(),
		clearCmd(),
		pathCmd(),
		colorCmd(),
		whatifCmd(),
		constraintsCmd(),
		historyCmd(),
		shellCmd(),
		statusCmd(),
		logCmd(),
		configCmd(),
		completionCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ui.Bad.Fprintf(os.Stderr, "  wg: %v\n", err)
	}
	return err
}

func fail(format string, a ...any) {
	ui.Bad.Printf("  "+format+"\n", a...)
	os.Exit(1)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
