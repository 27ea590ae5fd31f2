// Package backend is the client side of the WasteGraph service boundary.
// Path search, coloring, constraint persistence and history storage all live
// behind it and are consumed as opaque request/response operations.
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/msalah0e/wastegraph/internal/model"
)

// Backend is the set of operations the editor consumes.
type Backend interface {
	FetchGraph(ctx context.Context) (*model.Graph, error)
	CreateNode(ctx context.Context, n model.Node) error
	CreateEdge(ctx context.Context, e model.Edge) error
	DeleteNodeSmart(ctx context.Context, id string) (*model.DeleteResult, error)
	ClearGraph(ctx context.Context) error

	ShortestPath(ctx context.Context, q PathQuery) (*model.PathResult, error)
	Coloring(ctx context.Context) (*model.ColoringResult, error)

	ActiveConstraints(ctx context.Context) ([]model.Constraint, error)
	AllConstraints(ctx context.Context) ([]model.Constraint, error)
	CreateConstraint(ctx context.Context, c model.NewConstraint) error
	ToggleConstraint(ctx context.Context, id int, active bool) error

	History(ctx context.Context, limit int) ([]model.HistoryEntry, error)
	ReplayHistory(ctx context.Context, id int) (*model.PathResult, error)
}

// PathQuery describes a shortest-path request.
type PathQuery struct {
	Source      string
	Destination string
	// Overrides replaces the constraint value of the keyed edges for this
	// request only. Keys use model.EdgeKey.
	Overrides map[string]float64
	// Save records the computation in the service history.
	Save  bool
	Notes string
}

// ErrNotFound is matched by APIError values carrying a 404.
var ErrNotFound = errors.New("not found")

// APIError is a non-success response from the service.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, http.StatusText(e.Status))
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Message extracts the user-facing text of an error: the server message for
// API errors, the error string otherwise.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
