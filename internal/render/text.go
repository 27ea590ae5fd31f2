package render

import (
	"fmt"
	"io"
	"strings"
)

// WriteText lists the scene for terminals: one line per node, then one per
// edge, marking selection, path membership and colors.
func WriteText(w io.Writer, sc *Scene) error {
	var b strings.Builder
	fmt.Fprintf(&b, "mode %s  zoom %s  %d nodes  %d edges\n",
		sc.Mode, sc.Viewport.Percent(), len(sc.Nodes), len(sc.Edges))

	for _, n := range sc.Nodes {
		var marks []string
		if n.Selected {
			marks = append(marks, "selected")
		}
		if n.InPath {
			marks = append(marks, "path")
		}
		if n.Colored {
			marks = append(marks, "fill "+n.Fill)
		}
		line := fmt.Sprintf("  (%s) at %g,%g", n.ID, n.X, n.Y)
		if len(marks) > 0 {
			line += "  [" + strings.Join(marks, ", ") + "]"
		}
		b.WriteString(line + "\n")
	}
	for _, e := range sc.Edges {
		link := "───"
		if e.Highlighted {
			link = "═══"
		}
		fmt.Fprintf(&b, "  %s %s %s  %s\n", e.Source, link, e.Target, e.Label.Text)
	}
	if sc.Skipped > 0 {
		fmt.Fprintf(&b, "  (%d edges with missing endpoints not drawn)\n", sc.Skipped)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
