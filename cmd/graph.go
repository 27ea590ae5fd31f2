package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/msalah0e/wastegraph/internal/render"
	"github.com/msalah0e/wastegraph/internal/state"
	"github.com/msalah0e/wastegraph/internal/ui"
)

func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "graph",
		Short:   "Show graph statistics",
		Aliases: []string{"g", "stats"},
		Run: func(cmd *cobra.Command, args []string) {
			s := mustOpen(sessionOpts{})
			st := s.app.State
			stats := st.Stats()
			ui.Banner(s.cfg.API.BaseURL)

			if stats.Nodes == 0 {
				fmt.Fprintln(ui.Out, "  Empty graph. Get started:")
				fmt.Fprintln(ui.Out)
				ui.Info.Fprintln(ui.Out, "  wg node add <id> --x 100 --y 100")
				ui.Info.Fprintln(ui.Out, "  wg edge add <a> <b> <km>")
				ui.Info.Fprintln(ui.Out, "  wg shell")
				return
			}

			fmt.Fprintf(ui.Out, "  %s  %d\n", ui.Brand.Sprintf("%-20s", "Nodes"), stats.Nodes)
			fmt.Fprintf(ui.Out, "  %s  %d\n", ui.Brand.Sprintf("%-20s", "Edges"), stats.Edges)
			fmt.Fprintf(ui.Out, "  %s  %d\n", ui.Brand.Sprintf("%-20s", "Active constraints"), stats.Constraints)
			fmt.Fprintln(ui.Out)

			var rows [][]string
			for _, n := range st.Cache.Nodes() {
				rows = append(rows, []string{n.ID, fmt.Sprintf("%g", n.X), fmt.Sprintf("%g", n.Y), fmt.Sprintf("%g", n.Capacity)})
			}
			ui.Table([]string{"NODE", "X", "Y", "CAPACITY"}, rows)
		},
	}

	cmd.AddCommand(graphExportCmd(), graphRenderCmd())
	return cmd
}

type exportNode struct {
	ID       string  `json:"id" yaml:"id"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Capacity float64 `json:"capacity" yaml:"capacity"`
}

type exportEdge struct {
	Source string  `json:"source" yaml:"source"`
	Target string  `json:"target" yaml:"target"`
	Weight float64 `json:"weight" yaml:"weight"`
}

type exportDoc struct {
	Nodes []exportNode `json:"nodes" yaml:"nodes"`
	Edges []exportEdge `json:"edges" yaml:"edges"`
}

func exportData(st *state.State) exportDoc {
	doc := exportDoc{Nodes: []exportNode{}, Edges: []exportEdge{}}
	for _, n := range st.Cache.Nodes() {
		doc.Nodes = append(doc.Nodes, exportNode{ID: n.ID, X: n.X, Y: n.Y, Capacity: n.Capacity})
	}
	for _, e := range st.Cache.Edges() {
		doc.Edges = append(doc.Edges, exportEdge{Source: e.Source, Target: e.Target, Weight: e.Weight})
	}
	return doc
}

// writeExport encodes st in format: svg, html, dot, text, json or yaml.
func writeExport(w io.Writer, st *state.State, opts render.Options, format string) error {
	sc := render.Build(st, opts)
	switch format {
	case "svg":
		return render.WriteSVG(w, sc)
	case "html":
		return render.WriteHTML(w, sc, "wastegraph", ui.PanelLines(st))
	case "dot":
		return render.WriteDOT(w, sc)
	case "text", "txt":
		return render.WriteText(w, sc)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(exportData(st))
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(exportData(st)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (use svg, html, dot, text, json or yaml)", format)
}

func graphExportCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the graph as svg, html, dot, text, json or yaml",
		Run: func(cmd *cobra.Command, args []string) {
			s := mustOpen(sessionOpts{})

			var buf bytes.Buffer
			if err := writeExport(&buf, s.app.State, renderOpts(s), format); err != nil {
				fail("Export failed: %v", err)
			}
			if output == "" || output == "-" {
				fmt.Fprint(cmd.OutOrStdout(), buf.String())
				return
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				fail("Failed to write %s: %v", output, err)
			}
			ui.Good.Printf("  %s Exported %s to %s\n", ui.StatusIcon(true), format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: svg, html, dot, text, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func renderOpts(s *session) render.Options {
	return render.Options{
		NodeRadius:  s.cfg.Render.NodeRadius,
		DefaultFill: s.cfg.Render.DefaultFill,
		Width:       s.cfg.Render.Width,
		Height:      s.cfg.Render.Height,
	}
}

func graphRenderCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Open the graph in the browser, optionally highlighting a path",
		Run: func(cmd *cobra.Command, args []string) {
			vp := state.LoadViewport()
			s := mustOpen(sessionOpts{viewport: &vp})
			if s.app.State.Stats().Nodes == 0 {
				fmt.Fprintln(ui.Out, "  Empty graph, add some nodes first")
				return
			}
			if from != "" || to != "" {
				s.app.State.Form.Source, s.app.State.Form.Destination = from, to
				s.send(actionFindPath(""))
			}

			htmlPath := filepath.Join(os.TempDir(), "wastegraph.html")
			var buf bytes.Buffer
			if err := writeExport(&buf, s.app.State, renderOpts(s), "html"); err != nil {
				fail("Render failed: %v", err)
			}
			if err := os.WriteFile(htmlPath, buf.Bytes(), 0o644); err != nil {
				fail("Failed to write HTML: %v", err)
			}

			var openCmd *exec.Cmd
			switch runtime.GOOS {
			case "darwin":
				openCmd = exec.Command("open", htmlPath)
			case "linux":
				openCmd = exec.Command("xdg-open", htmlPath)
			default:
				openCmd = exec.Command("cmd", "/c", "start", htmlPath)
			}

			if err := openCmd.Start(); err != nil {
				fmt.Fprintf(ui.Out, "  HTML written to: %s\n", htmlPath)
				fmt.Fprintln(ui.Out, "  Open it in your browser to see the graph")
				return
			}

			stats := s.app.State.Stats()
			ui.Good.Printf("  %s Opened graph (%s, %s)\n",
				ui.StatusIcon(true), plural(stats.Nodes, "node", "nodes"), plural(stats.Edges, "edge", "edges"))
			ui.Subtle.Printf("  %s\n", htmlPath)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Highlight the shortest path from this node")
	cmd.Flags().StringVar(&to, "to", "", "Highlight the shortest path to this node")
	return cmd
}
