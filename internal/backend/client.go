package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/msalah0e/wastegraph/internal/model"
)

// Client talks to the WasteGraph service over HTTP/JSON.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout sets the transport timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient returns a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend: bad base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend: base url must be http or https, got %q", baseURL)
	}
	c := &Client{
		base:   u,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string { return c.base.String() }

func (c *Client) FetchGraph(ctx context.Context) (*model.Graph, error) {
	var g model.Graph
	if err := c.do(ctx, "fetch graph", http.MethodGet, "/graph", nil, nil, &g); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) CreateNode(ctx context.Context, n model.Node) error {
	body := map[string]any{"id": n.ID, "x": n.X, "y": n.Y, "capacity": n.Capacity}
	return c.do(ctx, "create node", http.MethodPost, "/graph/node", nil, body, nil)
}

func (c *Client) CreateEdge(ctx context.Context, e model.Edge) error {
	body := map[string]any{"source": e.Source, "target": e.Target, "weight": e.Weight}
	return c.do(ctx, "create edge", http.MethodPost, "/graph/edge", nil, body, nil)
}

func (c *Client) DeleteNodeSmart(ctx context.Context, id string) (*model.DeleteResult, error) {
	var r model.DeleteResult
	path := "/node/" + url.PathEscape(id) + "/smart"
	if err := c.do(ctx, "delete node", http.MethodDelete, path, nil, nil, &r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) ClearGraph(ctx context.Context) error {
	return c.do(ctx, "clear graph", http.MethodDelete, "/graph", nil, nil, nil)
}

func (c *Client) ShortestPath(ctx context.Context, q PathQuery) (*model.PathResult, error) {
	params := url.Values{}
	params.Set("src", q.Source)
	params.Set("dst", q.Destination)
	if len(q.Overrides) > 0 {
		raw, err := json.Marshal(q.Overrides)
		if err != nil {
			return nil, fmt.Errorf("encode overrides: %w", err)
		}
		params.Set("constraints", string(raw))
	}
	if !q.Save {
		params.Set("save", "false")
	}
	if q.Notes != "" {
		params.Set("notes", q.Notes)
	}

	var r model.PathResult
	if err := c.do(ctx, "shortest path", http.MethodGet, "/algo/dijkstra", params, nil, &r); err != nil {
		return nil, err
	}
	if r.Source == "" {
		r.Source = q.Source
	}
	if r.Destination == "" {
		r.Destination = q.Destination
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) Coloring(ctx context.Context) (*model.ColoringResult, error) {
	var r model.ColoringResult
	if err := c.do(ctx, "coloring", http.MethodGet, "/algo/coloring", nil, nil, &r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) ActiveConstraints(ctx context.Context) ([]model.Constraint, error) {
	return c.constraints(ctx, "/constraints")
}

func (c *Client) AllConstraints(ctx context.Context) ([]model.Constraint, error) {
	return c.constraints(ctx, "/constraints/all")
}

func (c *Client) constraints(ctx context.Context, path string) ([]model.Constraint, error) {
	var out []model.Constraint
	if err := c.do(ctx, "list constraints", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if err := out[i].Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Client) CreateConstraint(ctx context.Context, nc model.NewConstraint) error {
	return c.do(ctx, "create constraint", http.MethodPost, "/constraints", nil, nc, nil)
}

func (c *Client) ToggleConstraint(ctx context.Context, id int, active bool) error {
	path := "/constraints/" + strconv.Itoa(id) + "/toggle"
	return c.do(ctx, "toggle constraint", http.MethodPut, path, nil, map[string]bool{"is_active": active}, nil)
}

func (c *Client) History(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var out []model.HistoryEntry
	if err := c.do(ctx, "list history", http.MethodGet, "/history/paths", params, nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if err := out[i].Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Client) ReplayHistory(ctx context.Context, id int) (*model.PathResult, error) {
	var r model.PathResult
	path := "/history/paths/" + strconv.Itoa(id) + "/replay"
	if err := c.do(ctx, "replay history", http.MethodGet, path, nil, nil, &r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// do performs one round trip. A non-2xx status becomes an *APIError carrying
// the server's "error" field when the body has one.
func (c *Client) do(ctx context.Context, op, method, path string, params url.Values, in, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "request_id", reqID, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}
	c.logger.Debug("request done",
		"op", op, "method", method, "path", path, "status", resp.StatusCode,
		"request_id", reqID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Op: op, Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(nullNonFinite(raw), out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, model.ErrInvalid, err)
	}
	return nil
}

// nullNonFinite rewrites the bare Infinity, -Infinity and NaN tokens the
// service emits for unreachable destinations into JSON null.
func nullNonFinite(raw []byte) []byte {
	if !bytes.Contains(raw, []byte("Infinity")) && !bytes.Contains(raw, []byte("NaN")) {
		return raw
	}
	out := make([]byte, 0, len(raw))
	inString, escaped := false, false
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if inString {
			out = append(out, ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		if ch == '"' {
			inString = true
			out = append(out, ch)
			continue
		}
		rest := raw[i:]
		switch {
		case bytes.HasPrefix(rest, []byte("-Infinity")):
			out = append(out, "null"...)
			i += len("-Infinity") - 1
		case bytes.HasPrefix(rest, []byte("Infinity")):
			out = append(out, "null"...)
			i += len("Infinity") - 1
		case bytes.HasPrefix(rest, []byte("NaN")):
			out = append(out, "null"...)
			i += len("NaN") - 1
		default:
			out = append(out, ch)
		}
	}
	return out
}
