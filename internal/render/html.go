package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteHTML returns a self-contained HTML page showing the scene, its stats,
// a legend of the fills in use and any panel lines. No external assets.
func WriteHTML(w io.Writer, sc *Scene, title string, panels []string) error {
	var svg strings.Builder
	if err := WriteSVG(&svg, sc); err != nil {
		return err
	}

	counts := map[string]int{}
	for _, n := range sc.Nodes {
		if n.Colored {
			counts[n.Fill]++
		}
	}
	fills := make([]string, 0, len(counts))
	for f := range counts {
		fills = append(fills, f)
	}
	sort.Strings(fills)

	var legend strings.Builder
	for _, f := range fills {
		fmt.Fprintf(&legend, `<div class="leg-row"><span class="dot" style="background:%s"></span> %d nodes</div>`+"\n", f, counts[f])
	}

	var notes strings.Builder
	for _, p := range panels {
		fmt.Fprintf(&notes, "<div class=\"panel\">%s</div>\n", esc(p))
	}

	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
*{margin:0;padding:0;box-sizing:border-box}
body{background:#f5f5f5;color:#333;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif}
#info{position:fixed;top:16px;left:16px;z-index:10;background:rgba(255,255,255,0.95);border:1px solid rgba(33,150,243,0.3);border-radius:12px;padding:16px 20px;font-size:13px;min-width:200px}
#info h2{color:#2196F3;font-size:16px;margin-bottom:8px}
.stat{color:#888;margin:2px 0}
.stat b{color:#333}
.panel{margin-top:8px;color:#555;font-size:12px;white-space:pre-wrap}
#legend{position:fixed;bottom:16px;left:16px;z-index:10;background:rgba(255,255,255,0.95);border:1px solid rgba(0,0,0,0.06);border-radius:10px;padding:12px 16px;font-size:11px;color:#666}
.leg-row{margin:3px 0;display:flex;align-items:center;gap:8px}
.dot{width:10px;height:10px;border-radius:50%%;display:inline-block}
#canvas{display:block;margin:0 auto;background:#fff}
</style>
</head>
<body>
<div id="info">
  <h2>%s</h2>
  <div class="stat"><b>%d</b> nodes</div>
  <div class="stat"><b>%d</b> edges</div>
  <div class="stat"><b>%d</b> active constraints</div>
  <div class="stat">mode <b>%s</b> / zoom <b>%s</b></div>
%s</div>
<div id="legend">
%s</div>
<div id="canvas">
%s</div>
</body>
</html>
`, esc(title), esc(title), sc.Stats.Nodes, sc.Stats.Edges, sc.Stats.Constraints,
		sc.Mode, sc.Viewport.Percent(), notes.String(), legend.String(), svg.String())
	return err
}
