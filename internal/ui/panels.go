package ui

import (
	"fmt"
	"maps"
	"slices"

	"github.com/msalah0e/wastegraph/internal/model"
	"github.com/msalah0e/wastegraph/internal/state"
)

var colorIcons = []string{"🔴", "🟢", "🟡", "🔵", "🟣", "🟠", "⚫", "⚪"}

// ColorIcon returns the swatch shown for a coloring index.
func ColorIcon(index int) string {
	if !Emoji {
		return fmt.Sprintf("[%d]", index)
	}
	if index >= 0 && index < len(colorIcons) {
		return colorIcons[index]
	}
	return "⭕"
}

// PathLines formats a path panel.
func PathLines(p *state.PathPanel) []string {
	if p == nil {
		return nil
	}
	title := "Path"
	if p.Replay {
		title += " (replay)"
	}
	return []string{
		fmt.Sprintf("%s: %s", title, model.Route(p.Path)),
		fmt.Sprintf("Distance: %.2f km", p.Distance),
	}
}

// WhatIfLines formats a what-if panel.
func WhatIfLines(p *state.PathPanel) []string {
	if p == nil {
		return nil
	}
	lines := []string{"What-if result:"}
	for _, k := range slices.Sorted(maps.Keys(p.Overrides)) {
		lines = append(lines, fmt.Sprintf("  %s +%g km", k, p.Overrides[k]))
	}
	return append(lines,
		fmt.Sprintf("  Path: %s", model.Route(p.Path)),
		fmt.Sprintf("  Distance: %.2f km", p.Distance),
		"  This constraint is temporary and was not saved",
	)
}

// ColoringLines formats a coloring panel with per-color node counts.
func ColoringLines(r *model.ColoringResult) []string {
	if r == nil {
		return nil
	}
	lines := []string{fmt.Sprintf("Chromatic number: %d colors", r.ChromaticNumber)}
	stats := r.Stats
	if len(stats) == 0 {
		stats = map[int]int{}
		for _, c := range r.Coloring {
			stats[c]++
		}
	}
	for _, c := range slices.Sorted(maps.Keys(stats)) {
		lines = append(lines, fmt.Sprintf("%s Color %d: %d nodes", ColorIcon(c), c, stats[c]))
	}
	return lines
}

// ConstraintLines formats one constraint card.
func ConstraintLines(c model.Constraint) []string {
	reason := "no reason"
	if c.Reason != nil && *c.Reason != "" {
		reason = *c.Reason
	}
	expiry := "permanent"
	if c.ExpiryDays != nil && *c.ExpiryDays > 0 {
		expiry = fmt.Sprintf("expires in %dd", *c.ExpiryDays)
	}
	active := "inactive"
	if c.IsActive {
		active = "active"
	}
	if Emoji {
		if c.IsActive {
			active = "✅ " + active
		} else {
			active = "❌ " + active
		}
	}

	lines := []string{
		fmt.Sprintf("#%d %s → %s  +%g km", c.ID, c.Source, c.Target, c.ConstraintValue),
		fmt.Sprintf("  %s • %s • %s", reason, expiry, active),
	}
	if c.ExpiresAt != nil {
		lines = append(lines, "  expires on "+c.ExpiresAt.Format("2006-01-02"))
	}
	return lines
}

// HistoryLines formats one history card.
func HistoryLines(h model.HistoryEntry) []string {
	head := fmt.Sprintf("#%d %s → %s", h.ID, h.Source, h.Destination)
	if h.CalculatedAt != nil {
		head += "  " + h.CalculatedAt.Format("2006-01-02 15:04")
	}
	lines := []string{
		head,
		"  " + model.Route(h.Path),
		fmt.Sprintf("  Distance: %.2f km", h.Distance),
	}
	if h.UserNotes != nil && *h.UserNotes != "" {
		lines = append(lines, "  "+icon("📝 ")+*h.UserNotes)
	}
	return lines
}

// PanelLines returns every visible result panel of st, flattened.
func PanelLines(st *state.State) []string {
	var lines []string
	lines = append(lines, PathLines(st.Panels.Path)...)
	lines = append(lines, ColoringLines(st.Panels.Coloring)...)
	lines = append(lines, WhatIfLines(st.Panels.WhatIf)...)
	return lines
}

// PrintPanels prints the visible panels and any open view.
func PrintPanels(st *state.State) {
	for _, l := range PanelLines(st) {
		fmt.Fprintln(Out, "  "+l)
	}
	if st.Panels.ConstraintsOpen {
		Brand.Fprintln(Out, "\n  Constraints")
		if len(st.Panels.Constraints) == 0 {
			Subtle.Fprintln(Out, "  No constraints defined")
		}
		for _, c := range st.Panels.Constraints {
			printCard(ConstraintLines(c), c.IsActive)
		}
	}
	if st.Panels.HistoryOpen {
		Brand.Fprintln(Out, "\n  History")
		if len(st.Panels.History) == 0 {
			Subtle.Fprintln(Out, "  No computation in history")
		}
		for _, h := range st.Panels.History {
			printCard(HistoryLines(h), true)
		}
	}
}

func printCard(lines []string, active bool) {
	for i, l := range lines {
		switch {
		case !active:
			Subtle.Fprintln(Out, "  "+l)
		case i == 0:
			Info.Fprintln(Out, "  "+l)
		default:
			fmt.Fprintln(Out, "  "+l)
		}
	}
}

// StatsLine formats the node, edge and constraint counts.
func StatsLine(s state.Stats) string {
	return fmt.Sprintf("%d nodes • %d edges • %d active constraints", s.Nodes, s.Edges, s.Constraints)
}
