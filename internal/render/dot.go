package render

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT returns the scene in Graphviz DOT format. Positions are pinned so
// neato reproduces the editor layout; y is flipped because DOT grows upward.
func WriteDOT(w io.Writer, sc *Scene) error {
	var b strings.Builder
	b.WriteString("graph wastegraph {\n")
	b.WriteString("  layout=neato;\n")
	b.WriteString("  node [shape=circle, style=filled, fontcolor=white];\n\n")

	for _, n := range sc.Nodes {
		attrs := fmt.Sprintf("pos=%s, fillcolor=%s", dotQuote(fmt.Sprintf("%g,%g!", n.X, -n.Y)), dotQuote(n.Fill))
		switch {
		case n.Selected:
			attrs += `, color="` + selectedStroke + `", penwidth=3`
		case n.InPath:
			attrs += `, color="` + pathStroke + `", penwidth=2`
		}
		b.WriteString(fmt.Sprintf("  %s [%s];\n", dotQuote(n.ID), attrs))
	}

	b.WriteString("\n")
	for _, e := range sc.Edges {
		attrs := "label=" + dotQuote(e.Label.Text)
		if e.Highlighted {
			attrs += `, style=dashed, color="` + highlightStroke + `", penwidth=3`
		}
		b.WriteString(fmt.Sprintf("  %s -- %s [%s];\n", dotQuote(e.Source), dotQuote(e.Target), attrs))
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", `\n`)

// dotQuote makes s a DOT double-quoted string. Other bytes, UTF-8 included,
// pass through unchanged.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
