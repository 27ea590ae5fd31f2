package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msalah0e/wastegraph/internal/model"
	"github.com/msalah0e/wastegraph/internal/state"
)

func triangle() *state.State {
	s := state.New()
	s.ApplyGraph(&model.Graph{
		Nodes: []model.Node{
			{ID: "A", X: 100, Y: 100},
			{ID: "B", X: 300, Y: 100},
			{ID: "C", X: 200, Y: 250},
		},
		Edges: []model.Edge{
			{Source: "A", Target: "B", Weight: 2.5},
			{Source: "B", Target: "C", Weight: 4},
			{Source: "A", Target: "C", Weight: 10.26},
		},
	})
	return s
}

func TestIsEdgeInPath(t *testing.T) {
	path := []string{"A", "B", "C"}
	tests := []struct {
		a, b string
		want bool
	}{
		{"A", "B", true},
		{"B", "A", true},
		{"C", "B", true},
		{"A", "C", false},
		{"A", "A", false},
		{"X", "B", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"-"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEdgeInPath(tt.a, tt.b, path))
		})
	}

	assert.False(t, IsEdgeInPath("A", "B", nil))
	assert.False(t, IsEdgeInPath("A", "B", []string{"A"}))
}

func TestBuildEdges(t *testing.T) {
	s := triangle()
	s.Overlay.Path = []string{"C", "B", "A"}

	sc := Build(s, DefaultOptions())
	require.Len(t, sc.Edges, 3)

	ab, ok := sc.Edge("A", "B")
	require.True(t, ok)
	assert.True(t, ab.Highlighted)
	assert.Equal(t, "10 5", ab.Dash)
	assert.Equal(t, "2.5", ab.Label.Text)
	assert.Equal(t, 200.0, ab.Label.X)
	assert.Equal(t, 95.0, ab.Label.Y)

	ac, ok := sc.Edge("C", "A")
	require.True(t, ok)
	assert.False(t, ac.Highlighted)
	assert.Empty(t, ac.Dash)
	assert.Equal(t, "10.3", ac.Label.Text)
}

func TestBuildSkipsDanglingEdges(t *testing.T) {
	s := state.New()
	s.ApplyGraph(&model.Graph{
		Nodes: []model.Node{{ID: "A", X: 1, Y: 1}},
		Edges: []model.Edge{
			{Source: "A", Target: "Z", Weight: 1},
			{Source: "Y", Target: "Z", Weight: 1},
		},
	})

	var sc *Scene
	require.NotPanics(t, func() { sc = Build(s, DefaultOptions()) })
	assert.Empty(t, sc.Edges)
	assert.Len(t, sc.Nodes, 1)
	assert.Equal(t, 2, sc.Skipped)
}

func TestBuildNodeFill(t *testing.T) {
	s := triangle()
	s.Cache.SetColors(map[string]int{"A": 0, "B": 1, "C": 9})

	sc := Build(s, DefaultOptions())
	a, _ := sc.Node("A")
	b, _ := sc.Node("B")
	c, _ := sc.Node("C")
	assert.Equal(t, Palette[0], a.Fill)
	assert.Equal(t, Palette[1], b.Fill)
	assert.Equal(t, Palette[1], c.Fill, "index 9 wraps to 1")
	assert.True(t, a.Colored)

	s.Cache.ClearColors()
	sc = Build(s, DefaultOptions())
	a, _ = sc.Node("A")
	assert.Equal(t, "#2196F3", a.Fill)
	assert.False(t, a.Colored)
}

func TestPaletteColor(t *testing.T) {
	assert.GreaterOrEqual(t, len(Palette), 8)
	assert.Equal(t, Palette[0], PaletteColor(len(Palette)))
	assert.Equal(t, Palette[3], PaletteColor(-3))
}

func TestBuildDecorationAndCursor(t *testing.T) {
	s := triangle()
	s.Overlay.SetMode(state.AddEdge)
	s.Overlay.Toggle("A")
	s.Overlay.Path = []string{"B", "C"}

	sc := Build(s, DefaultOptions())
	a, _ := sc.Node("A")
	b, _ := sc.Node("B")
	assert.True(t, a.Selected)
	assert.False(t, a.InPath)
	assert.True(t, b.InPath)
	assert.Equal(t, CursorPointer, a.Cursor)
	assert.Equal(t, "A", a.Label.Text)
	assert.Equal(t, 105.0, a.Label.Y)

	s.Overlay.SetMode(state.View)
	sc = Build(s, DefaultOptions())
	a, _ = sc.Node("A")
	assert.Equal(t, CursorDefault, a.Cursor)
	assert.False(t, a.Selected, "mode change clears selection")
}

func TestBuildDoesNotMutateState(t *testing.T) {
	s := triangle()
	s.Overlay.Path = []string{"A", "B"}
	before := s.Cache.Snapshot()

	Build(s, DefaultOptions())
	assert.Equal(t, before, s.Cache.Snapshot())
	assert.Equal(t, []string{"A", "B"}, s.Overlay.Path)
}

func TestHitTest(t *testing.T) {
	s := triangle()
	sc := Build(s, DefaultOptions())

	id, ok := sc.HitTest(105, 95)
	require.True(t, ok)
	assert.Equal(t, "A", id)

	_, ok = sc.HitTest(500, 500)
	assert.False(t, ok)

	t.Run("viewport", func(t *testing.T) {
		s.Viewport.Scale(2)
		s.Viewport.Pan(10, 0)
		sc := Build(s, DefaultOptions())
		id, ok := sc.HitTest(210, 200)
		require.True(t, ok)
		assert.Equal(t, "A", id)

		_, ok = sc.HitTest(105, 95)
		assert.False(t, ok)
	})

	t.Run("topmost wins", func(t *testing.T) {
		s := state.New()
		s.ApplyGraph(&model.Graph{Nodes: []model.Node{
			{ID: "under", X: 50, Y: 50},
			{ID: "over", X: 60, Y: 50},
		}})
		id, ok := Build(s, DefaultOptions()).HitTest(55, 50)
		require.True(t, ok)
		assert.Equal(t, "over", id)
	})
}

func TestWriteSVG(t *testing.T) {
	s := triangle()
	s.Overlay.Path = []string{"A", "B"}
	s.Viewport.Scale(1.2)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, Build(s, DefaultOptions())))
	out := buf.String()

	assert.Contains(t, out, `<svg xmlns="http://www.w3.org/2000/svg" width="1000" height="700"`)
	assert.Contains(t, out, `scale(1.2)`)
	assert.Contains(t, out, `data-source="A" data-target="B"`)
	assert.Contains(t, out, `stroke-dasharray="10 5"`)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("stroke-dasharray")))
	assert.Contains(t, out, `<g class="node" data-id="C" style="cursor:default">`)
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`class="edge"`)), bytes.Index(buf.Bytes(), []byte(`class="node"`)))
}

func TestWriteSVGEscapesIDs(t *testing.T) {
	s := state.New()
	s.ApplyGraph(&model.Graph{Nodes: []model.Node{{ID: `<a&"b>`, X: 1, Y: 1}}})

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, Build(s, DefaultOptions())))
	assert.NotContains(t, buf.String(), `<a&"b>`)
	assert.Contains(t, buf.String(), "&lt;a&amp;&#34;b&gt;")
}

func TestWriteDOT(t *testing.T) {
	s := triangle()
	s.Overlay.Path = []string{"A", "B"}
	s.Cache.SetColors(map[string]int{"C": 2})

	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, Build(s, DefaultOptions())))
	out := buf.String()

	assert.Contains(t, out, "graph wastegraph {")
	assert.Contains(t, out, `"A" -- "B" [label="2.5", style=dashed`)
	assert.Contains(t, out, `"B" -- "C" [label="4.0"];`)
	assert.Contains(t, out, `"C" [pos="200,-250!", fillcolor="#FF9800"`)
	assert.NotContains(t, out, "->")
}

func TestWriteDOTQuotesIDs(t *testing.T) {
	s := state.New()
	s.ApplyGraph(&model.Graph{
		Nodes: []model.Node{{ID: `say "hi"`}, {ID: `C:\depot`, X: 10}, {ID: "Zürich", X: 20}},
		Edges: []model.Edge{{Source: `say "hi"`, Target: "Zürich", Weight: 1}},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, Build(s, DefaultOptions())))
	out := buf.String()

	assert.Contains(t, out, `"say \"hi\"" [pos=`)
	assert.Contains(t, out, `"C:\\depot" [pos=`)
	assert.Contains(t, out, `"Zürich" [pos=`)
	assert.Contains(t, out, `"say \"hi\"" -- "Zürich"`)
	assert.NotContains(t, out, `\u`)
	assert.NotContains(t, out, `\x`)
}

func TestWriteText(t *testing.T) {
	s := triangle()
	s.Overlay.Path = []string{"A", "B"}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Build(s, DefaultOptions())))
	out := buf.String()

	assert.Contains(t, out, "mode view  zoom 100%  3 nodes  3 edges")
	assert.Contains(t, out, "(A) at 100,100  [path]")
	assert.Contains(t, out, "A ═══ B  2.5")
	assert.Contains(t, out, "B ─── C  4.0")
}

func TestWriteHTML(t *testing.T) {
	s := triangle()
	s.Cache.SetColors(map[string]int{"A": 0, "B": 0, "C": 1})

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, Build(s, DefaultOptions()), "routes", []string{"Chromatic number: 2"}))
	out := buf.String()

	assert.Contains(t, out, "<title>routes</title>")
	assert.Contains(t, out, "<b>3</b> nodes")
	assert.Contains(t, out, `background:#F44336"></span> 2 nodes`)
	assert.Contains(t, out, "Chromatic number: 2")
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "border-radius:50%")
}
