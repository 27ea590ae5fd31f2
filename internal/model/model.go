// Package model defines the wire types exchanged with the WasteGraph service.
// Every response type is validated once, at the backend boundary, so the rest
// of the client can rely on its shape.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalid = errors.New("invalid response")
	ErrNoPath  = errors.New("no path found")
)

// Node is a collection point on the route network.
type Node struct {
	ID       string  `json:"id" yaml:"id"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Capacity float64 `json:"capacity,omitempty" yaml:"capacity,omitempty"`

	// Color is produced by a coloring run and never sent back to the service.
	Color *int `json:"-" yaml:"color,omitempty"`
}

// HasColor reports whether a coloring run assigned the node a color.
func (n Node) HasColor() bool { return n.Color != nil }

// Edge is an undirected road between two nodes. Weight is the distance.
type Edge struct {
	Source          string  `json:"source" yaml:"source"`
	Target          string  `json:"target" yaml:"target"`
	Weight          float64 `json:"weight" yaml:"weight"`
	ConstraintValue float64 `json:"constraint_value,omitempty" yaml:"constraint_value,omitempty"`
}

// Key returns the "source-target" form used by weight overrides.
func (e Edge) Key() string { return EdgeKey(e.Source, e.Target) }

// Connects reports whether the edge joins a and b in either direction.
func (e Edge) Connects(a, b string) bool {
	return (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a)
}

// EdgeKey formats an override key for the directed pair (source, target).
func EdgeKey(source, target string) string { return source + "-" + target }

// Graph is a full snapshot of the route network.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Validate checks a fetched graph.
func (g *Graph) Validate() error {
	for i, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: node %d has no id", ErrInvalid, i)
		}
	}
	for i, e := range g.Edges {
		if e.Source == "" || e.Target == "" {
			return fmt.Errorf("%w: edge %d has an empty endpoint", ErrInvalid, i)
		}
	}
	return nil
}

// PathResult is the outcome of a shortest-path search or a history replay.
type PathResult struct {
	Path                     []string           `json:"path"`
	Distance                 *float64           `json:"distance"`
	Source                   string             `json:"source"`
	Destination              string             `json:"destination"`
	CustomConstraintsApplied map[string]float64 `json:"custom_constraints_applied,omitempty"`
	OriginalCalculation      *HistoryEntry      `json:"original_calculation,omitempty"`
}

// Validate checks a path result. An unreachable destination is reported as ErrNoPath.
func (r *PathResult) Validate() error {
	if len(r.Path) == 0 || r.Distance == nil {
		return fmt.Errorf("%w from %s to %s", ErrNoPath, r.Source, r.Destination)
	}
	for i, id := range r.Path {
		if id == "" {
			return fmt.Errorf("%w: path element %d is empty", ErrInvalid, i)
		}
	}
	return nil
}

// Dist returns the path distance, or zero for an invalid result.
func (r *PathResult) Dist() float64 {
	if r.Distance == nil {
		return 0
	}
	return *r.Distance
}

// ColoringResult is the outcome of a graph coloring run.
type ColoringResult struct {
	Coloring        map[string]int `json:"coloring"`
	Stats           map[int]int    `json:"stats"`
	ChromaticNumber int            `json:"chromatic_number"`
}

// Validate checks a coloring result.
func (r *ColoringResult) Validate() error {
	if r.Coloring == nil {
		r.Coloring = map[string]int{}
	}
	if r.Stats == nil {
		r.Stats = map[int]int{}
	}
	for id, c := range r.Coloring {
		if c < 0 {
			return fmt.Errorf("%w: node %s has negative color %d", ErrInvalid, id, c)
		}
	}
	if r.ChromaticNumber < 0 {
		return fmt.Errorf("%w: negative chromatic number", ErrInvalid)
	}
	return nil
}

// ColorIndexes returns the color indexes present in Stats, ascending.
func (r *ColoringResult) ColorIndexes() []int {
	out := make([]int, 0, len(r.Stats))
	for c := range r.Stats {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}

// DeleteResult reports what a smart delete did to the neighbors of the removed node.
type DeleteResult struct {
	DeletedNode      string `json:"deleted_node"`
	ShortcutsCreated int    `json:"shortcuts_created"`
	ShortcutsUpdated int    `json:"shortcuts_updated"`
	TotalShortcuts   int    `json:"total_shortcuts"`
	NeighborsCount   int    `json:"neighbors_count"`
	Message          string `json:"message"`
}

// Validate checks a smart delete result.
func (r *DeleteResult) Validate() error {
	if r.ShortcutsCreated < 0 || r.ShortcutsUpdated < 0 {
		return fmt.Errorf("%w: negative shortcut count", ErrInvalid)
	}
	if r.TotalShortcuts == 0 {
		r.TotalShortcuts = r.ShortcutsCreated + r.ShortcutsUpdated
	}
	return nil
}

// Changed reports whether any shortcut was created or improved.
func (r *DeleteResult) Changed() bool {
	return r.ShortcutsCreated > 0 || r.ShortcutsUpdated > 0
}

// Message is the generic {"message": ...} acknowledgement.
type Message struct {
	Message string `json:"message"`
}

// Constraint is a persisted weight penalty on one edge.
type Constraint struct {
	ID              int        `json:"id"`
	Source          string     `json:"source"`
	Target          string     `json:"target"`
	ConstraintValue float64    `json:"constraint_value"`
	Reason          *string    `json:"reason"`
	ExpiryDays      *int       `json:"expiry_days"`
	ExpiresAt       *Timestamp `json:"expires_at"`
	CreatedAt       *Timestamp `json:"created_at,omitempty"`
	IsActive        bool       `json:"is_active"`
	IsExpired       bool       `json:"is_expired,omitempty"`
	IsValid         bool       `json:"is_valid,omitempty"`
}

// Validate checks a constraint record.
func (c *Constraint) Validate() error {
	if c.Source == "" || c.Target == "" {
		return fmt.Errorf("%w: constraint %d has an empty endpoint", ErrInvalid, c.ID)
	}
	return nil
}

// NewConstraint is the body of a constraint creation request.
type NewConstraint struct {
	Source          string  `json:"source"`
	Target          string  `json:"target"`
	ConstraintValue float64 `json:"constraint_value"`
	Reason          *string `json:"reason"`
	ExpiryDays      *int    `json:"expiry_days"`
}

// HistoryEntry is a saved shortest-path computation.
type HistoryEntry struct {
	ID                  int                `json:"id"`
	Source              string             `json:"source"`
	Destination         string             `json:"destination"`
	Path                []string           `json:"path"`
	Distance            float64            `json:"distance"`
	CalculatedAt        *Timestamp         `json:"calculated_at"`
	ConstraintsSnapshot map[string]float64 `json:"constraints_snapshot,omitempty"`
	UserNotes           *string            `json:"user_notes"`
}

// Validate checks a history record.
func (h *HistoryEntry) Validate() error {
	if h.Source == "" || h.Destination == "" {
		return fmt.Errorf("%w: history entry %d has no route", ErrInvalid, h.ID)
	}
	return nil
}

// Route formats a node sequence the way every summary shows it.
func Route(path []string) string {
	return strings.Join(path, " → ")
}

// Timestamp parses the service's ISO-8601 timestamps, which may omit the zone.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339 and zone-less ISO-8601 forms.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("%w: bad timestamp %q", ErrInvalid, s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
