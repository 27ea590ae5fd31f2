package render

import (
	"fmt"
	"html"
	"io"
	"strings"
)

const (
	edgeStroke      = "#999"
	highlightStroke = "#FF5722"
	selectedStroke  = "#FFC107"
	pathStroke      = "#FF5722"
	nodeStroke      = "#fff"
)

// WriteSVG draws the scene as a standalone SVG document. Edges go first so
// nodes are painted on top, in the same order HitTest searches.
func WriteSVG(w io.Writer, sc *Scene) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" data-mode="%s">`+"\n",
		sc.Width, sc.Height, sc.Width, sc.Height, sc.Mode)
	writeSVGBody(&b, sc)
	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSVGBody(b *strings.Builder, sc *Scene) {
	v := sc.Viewport
	fmt.Fprintf(b, `  <g transform="translate(%g %g) scale(%g)">`+"\n", v.OffsetX, v.OffsetY, v.Zoom)

	for _, e := range sc.Edges {
		stroke, width := edgeStroke, 2
		if e.Highlighted {
			stroke, width = highlightStroke, 4
		}
		fmt.Fprintf(b, `    <line class="edge" data-source="%s" data-target="%s" x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="%d"`,
			esc(e.Source), esc(e.Target), e.X1, e.Y1, e.X2, e.Y2, stroke, width)
		if e.Dash != "" {
			fmt.Fprintf(b, ` stroke-dasharray="%s"`, e.Dash)
		}
		b.WriteString("/>\n")
		fmt.Fprintf(b, `    <text class="edge-label" x="%g" y="%g" text-anchor="middle" font-size="12" fill="#666">%s</text>`+"\n",
			e.Label.X, e.Label.Y, esc(e.Label.Text))
	}

	for _, n := range sc.Nodes {
		stroke, width := nodeStroke, 2
		switch {
		case n.Selected:
			stroke, width = selectedStroke, 4
		case n.InPath:
			stroke, width = pathStroke, 3
		}
		fmt.Fprintf(b, `    <g class="node" data-id="%s" style="cursor:%s">`+"\n", esc(n.ID), n.Cursor)
		fmt.Fprintf(b, `      <circle cx="%g" cy="%g" r="%g" fill="%s" stroke="%s" stroke-width="%d"/>`+"\n",
			n.X, n.Y, n.R, n.Fill, stroke, width)
		fmt.Fprintf(b, `      <text x="%g" y="%g" text-anchor="middle" font-size="14" font-weight="bold" fill="#fff">%s</text>`+"\n",
			n.Label.X, n.Label.Y, esc(n.Label.Text))
		b.WriteString("    </g>\n")
	}
	b.WriteString("  </g>\n")
}

func esc(s string) string { return html.EscapeString(s) }
