package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/msalah0e/wastegraph/internal/model"
)

func graphAB() *model.Graph {
	return &model.Graph{
		Nodes: []model.Node{{ID: "A", X: 100, Y: 100}, {ID: "B", X: 200, Y: 100}},
		Edges: []model.Edge{{Source: "A", Target: "B", Weight: 2.5}},
	}
}

func TestNew(t *testing.T) {
	s := New()
	if s.Overlay.Mode != View {
		t.Errorf("expected View mode, got %s", s.Overlay.Mode)
	}
	if len(s.Overlay.Selection) != 0 || len(s.Overlay.Path) != 0 {
		t.Error("expected empty selection and path")
	}
	if !s.Viewport.IsIdentity() {
		t.Errorf("expected identity viewport, got %+v", s.Viewport)
	}
	if len(s.Cache.Nodes()) != 0 {
		t.Error("expected empty cache")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"view", View},
		{"add-node", AddNode},
		{"AddNode", AddNode},
		{"edge", AddEdge},
		{" e ", AddEdge},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseMode("pan"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestCacheReplaceDropsDuplicates(t *testing.T) {
	var c Cache
	dropped := c.Replace(&model.Graph{Nodes: []model.Node{{ID: "A", X: 1}, {ID: "B"}, {ID: "A", X: 2}}})

	if len(c.Nodes()) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(c.Nodes()))
	}
	if len(dropped) != 1 || dropped[0] != "A" {
		t.Errorf("expected A dropped, got %v", dropped)
	}
	n, ok := c.Node("A")
	if !ok || n.X != 1 {
		t.Errorf("expected the first A to win, got %+v", n)
	}
}

func TestCacheColors(t *testing.T) {
	var c Cache
	c.Replace(graphAB())

	c.SetColors(map[string]int{"A": 3})
	a, _ := c.Node("A")
	b, _ := c.Node("B")
	if !a.HasColor() || *a.Color != 3 {
		t.Errorf("expected A color 3, got %v", a.Color)
	}
	if b.HasColor() {
		t.Error("B is absent from the map and must have no color")
	}

	c.ClearColors()
	a, _ = c.Node("A")
	if a.HasColor() {
		t.Error("expected colors cleared")
	}

	c.SetColors(map[string]int{"A": 1})
	c.Replace(graphAB())
	a, _ = c.Node("A")
	if a.HasColor() {
		t.Error("a reload must drop colors")
	}
}

func TestCacheIDs(t *testing.T) {
	var c Cache
	c.Replace(&model.Graph{Nodes: []model.Node{{ID: "C"}, {ID: "A"}, {ID: "B"}}})
	got := c.IDs()
	want := []string{"A", "B", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs() = %v, want %v", got, want)
		}
	}
}

func TestOverlaySetModeClearsSelection(t *testing.T) {
	for _, from := range []Mode{View, AddNode, AddEdge} {
		for _, to := range []Mode{View, AddNode, AddEdge} {
			o := Overlay{Mode: from, Selection: []string{"A"}}
			o.SetMode(to)
			if o.Mode != to {
				t.Errorf("%s -> %s: mode is %s", from, to, o.Mode)
			}
			if len(o.Selection) != 0 {
				t.Errorf("%s -> %s: selection not cleared", from, to)
			}
		}
	}
}

func TestOverlayToggle(t *testing.T) {
	var o Overlay
	if n := o.Toggle("A"); n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
	if n := o.Toggle("A"); n != 0 {
		t.Fatalf("second click on the same node must deselect, got %d", n)
	}
	o.Toggle("A")
	if n := o.Toggle("B"); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
	if o.Selection[0] != "A" || o.Selection[1] != "B" {
		t.Errorf("selection order lost: %v", o.Selection)
	}
	if !o.Full() {
		t.Error("two selected nodes should be a full selection")
	}
	if n := o.Toggle("C"); n != 2 {
		t.Fatalf("a full selection must not grow, got %d", n)
	}
	if o.Selected("C") {
		t.Errorf("C was added to a full selection: %v", o.Selection)
	}
	if !o.Selected("B") || o.Selected("C") {
		t.Error("Selected reports wrong membership")
	}
}

func TestApplyGraph(t *testing.T) {
	s := New()
	s.Overlay.Path = []string{"A", "B"}
	s.Overlay.Selection = []string{"A", "Z"}
	s.Panels.Path = &PathPanel{Path: []string{"A", "B"}, Distance: 1}
	s.Panels.Coloring = &model.ColoringResult{ChromaticNumber: 2}

	s.ApplyGraph(graphAB())

	if len(s.Overlay.Path) != 0 {
		t.Error("reload must clear the highlighted path")
	}
	if s.Panels.Path != nil {
		t.Error("reload must clear the path summary with the highlight")
	}
	if s.Panels.Coloring != nil {
		t.Error("reload must clear the coloring summary with the colors")
	}
	if len(s.Overlay.Selection) != 1 || s.Overlay.Selection[0] != "A" {
		t.Errorf("selection should keep only existing ids, got %v", s.Overlay.Selection)
	}
	st := s.Stats()
	if st.Nodes != 2 || st.Edges != 1 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestViewport(t *testing.T) {
	v := Identity()
	v.Scale(1.2)
	v.Scale(1.2)
	if v.Zoom < 1.4399 || v.Zoom > 1.4401 {
		t.Errorf("zoom should accumulate multiplicatively, got %v", v.Zoom)
	}
	for i := 0; i < 50; i++ {
		v.Scale(1.2)
	}
	if v.Zoom < 1000 {
		t.Errorf("zoom is unbounded, got %v", v.Zoom)
	}
	v.Pan(10, -5)
	v.Reset()
	if !v.IsIdentity() {
		t.Errorf("reset should restore identity, got %+v", v)
	}
	if got := (Viewport{Zoom: 0.8}).Percent(); got != "80%" {
		t.Errorf("expected 80%%, got %q", got)
	}
}

func TestViewportPersistence(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	if v := LoadViewport(); !v.IsIdentity() {
		t.Errorf("expected identity without a saved file, got %+v", v)
	}

	want := Viewport{Zoom: 1.44, OffsetX: 12, OffsetY: -3}
	if err := SaveViewport(want); err != nil {
		t.Fatalf("SaveViewport failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "wastegraph", "view.toml")); err != nil {
		t.Fatalf("view.toml not written: %v", err)
	}
	if got := LoadViewport(); got != want {
		t.Errorf("LoadViewport() = %+v, want %+v", got, want)
	}
}
