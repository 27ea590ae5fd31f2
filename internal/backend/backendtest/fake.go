// Package backendtest provides an in-memory backend.Backend for tests.
package backendtest

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/msalah0e/wastegraph/internal/backend"
	"github.com/msalah0e/wastegraph/internal/model"
)

// Fake stores a graph in memory and answers algorithm calls with canned
// results. It is safe for concurrent use.
type Fake struct {
	mu    sync.Mutex
	graph model.Graph
	calls []string

	// Fail makes the named operation ("CreateNode", "Coloring", ...) return
	// the error instead of running.
	Fail map[string]error

	Path        *model.PathResult
	PathQueries []backend.PathQuery
	ColoringRes *model.ColoringResult
	DeleteRes   *model.DeleteResult
	Constraints []model.Constraint
	Entries     []model.HistoryEntry
	Replays     map[int]*model.PathResult
	Created     []model.NewConstraint
	Toggled     map[int]bool
}

var _ backend.Backend = (*Fake)(nil)

// New returns a fake holding g.
func New(g model.Graph) *Fake {
	return &Fake{
		graph:   g,
		Fail:    map[string]error{},
		Replays: map[int]*model.PathResult{},
		Toggled: map[int]bool{},
	}
}

// Calls returns the operations invoked so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// Count returns how many times op was invoked.
func (f *Fake) Count(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

// Graph returns a copy of the stored graph.
func (f *Fake) Graph() model.Graph {
	f.mu.Lock()
	defer f.mu.Unlock()
	return model.Graph{Nodes: slices.Clone(f.graph.Nodes), Edges: slices.Clone(f.graph.Edges)}
}

// SetFail sets or clears the injected error for op.
func (f *Fake) SetFail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.Fail, op)
		return
	}
	f.Fail[op] = err
}

func (f *Fake) begin(op string) error {
	f.calls = append(f.calls, op)
	return f.Fail[op]
}

func (f *Fake) has(id string) bool {
	return slices.ContainsFunc(f.graph.Nodes, func(n model.Node) bool { return n.ID == id })
}

func (f *Fake) FetchGraph(context.Context) (*model.Graph, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("FetchGraph"); err != nil {
		return nil, err
	}
	return &model.Graph{Nodes: slices.Clone(f.graph.Nodes), Edges: slices.Clone(f.graph.Edges)}, nil
}

func (f *Fake) CreateNode(_ context.Context, n model.Node) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateNode"); err != nil {
		return err
	}
	if f.has(n.ID) {
		return &backend.APIError{Op: "create node", Status: 400, Message: fmt.Sprintf("Node %s already exists", n.ID)}
	}
	f.graph.Nodes = append(f.graph.Nodes, n)
	return nil
}

func (f *Fake) CreateEdge(_ context.Context, e model.Edge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateEdge"); err != nil {
		return err
	}
	if !f.has(e.Source) || !f.has(e.Target) {
		return &backend.APIError{Op: "create edge", Status: 400, Message: "Source or target node does not exist"}
	}
	f.graph.Edges = append(f.graph.Edges, e)
	return nil
}

func (f *Fake) DeleteNodeSmart(_ context.Context, id string) (*model.DeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeleteNodeSmart"); err != nil {
		return nil, err
	}
	if !f.has(id) {
		return nil, &backend.APIError{Op: "delete node", Status: 404, Message: fmt.Sprintf("Node %s not found", id)}
	}
	f.graph.Nodes = slices.DeleteFunc(f.graph.Nodes, func(n model.Node) bool { return n.ID == id })
	f.graph.Edges = slices.DeleteFunc(f.graph.Edges, func(e model.Edge) bool { return e.Source == id || e.Target == id })
	if f.DeleteRes != nil {
		return f.DeleteRes, nil
	}
	return &model.DeleteResult{DeletedNode: id, Message: fmt.Sprintf("Node %s deleted", id)}, nil
}

func (f *Fake) ClearGraph(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("ClearGraph"); err != nil {
		return err
	}
	f.graph = model.Graph{}
	return nil
}

func (f *Fake) ShortestPath(_ context.Context, q backend.PathQuery) (*model.PathResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PathQueries = append(f.PathQueries, q)
	if err := f.begin("ShortestPath"); err != nil {
		return nil, err
	}
	if f.Path == nil {
		return nil, model.ErrNoPath
	}
	return f.Path, nil
}

func (f *Fake) Coloring(context.Context) (*model.ColoringResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Coloring"); err != nil {
		return nil, err
	}
	if f.ColoringRes == nil {
		return &model.ColoringResult{Coloring: map[string]int{}}, nil
	}
	return f.ColoringRes, nil
}

func (f *Fake) ActiveConstraints(context.Context) ([]model.Constraint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("ActiveConstraints"); err != nil {
		return nil, err
	}
	var out []model.Constraint
	for _, c := range f.Constraints {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *Fake) AllConstraints(context.Context) ([]model.Constraint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("AllConstraints"); err != nil {
		return nil, err
	}
	return slices.Clone(f.Constraints), nil
}

func (f *Fake) CreateConstraint(_ context.Context, nc model.NewConstraint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateConstraint"); err != nil {
		return err
	}
	f.Created = append(f.Created, nc)
	f.Constraints = append(f.Constraints, model.Constraint{
		ID:              len(f.Constraints) + 1,
		Source:          nc.Source,
		Target:          nc.Target,
		ConstraintValue: nc.ConstraintValue,
		Reason:          nc.Reason,
		ExpiryDays:      nc.ExpiryDays,
		IsActive:        true,
		IsValid:         true,
	})
	return nil
}

func (f *Fake) ToggleConstraint(_ context.Context, id int, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("ToggleConstraint"); err != nil {
		return err
	}
	for i := range f.Constraints {
		if f.Constraints[i].ID == id {
			f.Constraints[i].IsActive = active
			f.Toggled[id] = active
			return nil
		}
	}
	return &backend.APIError{Op: "toggle constraint", Status: 404, Message: "Constraint not found"}
}

func (f *Fake) History(_ context.Context, limit int) ([]model.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("History"); err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(f.Entries) {
		return slices.Clone(f.Entries[:limit]), nil
	}
	return slices.Clone(f.Entries), nil
}

func (f *Fake) ReplayHistory(_ context.Context, id int) (*model.PathResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("ReplayHistory"); err != nil {
		return nil, err
	}
	r, ok := f.Replays[id]
	if !ok {
		return nil, &backend.APIError{Op: "replay history", Status: 404, Message: "History entry not found"}
	}
	return r, nil
}
