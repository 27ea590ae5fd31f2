//go:build e2e

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var wgBin string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "wg-e2e-*")
	if err != nil {
		panic("failed to create temp dir: " + err.Error())
	}
	defer os.RemoveAll(tmp)

	wgBin = filepath.Join(tmp, "wg")
	build := exec.Command("go", "build", "-ldflags", "-X github.com/msalah0e/wastegraph/cmd.version=0.3.0-test", "-o", wgBin, ".")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		panic("failed to build wg: " + err.Error())
	}

	os.Exit(m.Run())
}

// routeService is a minimal stand-in for the route service.
type routeService struct {
	mu    sync.Mutex
	nodes []map[string]any
	edges []map[string]any
}

func (s *routeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/graph":
		json.NewEncoder(w).Encode(map[string]any{"nodes": s.nodes, "edges": s.edges})
	case r.Method == http.MethodPost && r.URL.Path == "/graph/node":
		var n map[string]any
		json.NewDecoder(r.Body).Decode(&n)
		s.nodes = append(s.nodes, n)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"ok"}`))
	case r.Method == http.MethodPost && r.URL.Path == "/graph/edge":
		var e map[string]any
		json.NewDecoder(r.Body).Decode(&e)
		s.edges = append(s.edges, e)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"ok"}`))
	case r.URL.Path == "/constraints" || r.URL.Path == "/history/paths":
		w.Write([]byte(`[]`))
	case r.URL.Path == "/algo/dijkstra":
		w.Write([]byte(`{"path": null, "distance": Infinity}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}
}

// runWG executes the wg binary with an isolated HOME directory.
func runWG(t *testing.T, api string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	return runWGIn(t, t.TempDir(), api, args...)
}

// runWGIn executes the wg binary with home as its HOME, so state carries over
// between calls.
func runWGIn(t *testing.T, home, api string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(wgBin, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
		"NO_COLOR=1",
		"WG_API="+api,
	)
	cmd.Stdin = strings.NewReader("")

	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	exitCode = 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run wg %v: %v", args, err)
		}
	}
	return outBuf.String(), errBuf.String(), exitCode
}

func TestE2E_Version(t *testing.T) {
	out, _, code := runWG(t, "", "--version")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "0.3.0-test") {
		t.Errorf("expected version output to contain '0.3.0-test', got %q", out)
	}
}

func TestE2E_Help(t *testing.T) {
	out, _, code := runWG(t, "", "--help")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "Available Commands") {
		t.Errorf("expected help to contain 'Available Commands', got %q", out)
	}
}

func TestE2E_ConfigPath(t *testing.T) {
	out, _, code := runWG(t, "", "config", "path")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), filepath.Join("wastegraph", "config.toml")) {
		t.Errorf("unexpected config path %q", out)
	}
}

func TestE2E_StatusUnreachable(t *testing.T) {
	_, _, code := runWG(t, "http://127.0.0.1:1", "status", "--timeout", "1s")
	if code == 0 {
		t.Fatal("expected non-zero exit for an unreachable service")
	}
}

func TestE2E_EditAndExport(t *testing.T) {
	srv := httptest.NewServer(&routeService{})
	defer srv.Close()

	for _, args := range [][]string{
		{"node", "add", "A", "--x", "100", "--y", "100"},
		{"node", "add", "B", "--x", "300", "--y", "100"},
		{"edge", "add", "A", "B", "2.5"},
	} {
		if out, _, code := runWG(t, srv.URL, args...); code != 0 {
			t.Fatalf("wg %v: exit %d\n%s", args, code, out)
		}
	}

	out, _, code := runWG(t, srv.URL, "graph", "export", "--format", "dot")
	if code != 0 {
		t.Fatalf("export: exit %d", code)
	}
	if !strings.Contains(out, `"A" -- "B" [label="2.5"]`) {
		t.Errorf("edge missing from DOT:\n%s", out)
	}
}

func TestE2E_PathUnreachable(t *testing.T) {
	srv := httptest.NewServer(&routeService{})
	defer srv.Close()

	out, _, code := runWG(t, srv.URL, "path", "A", "Z")
	if code == 0 {
		t.Fatal("expected non-zero exit when no path exists")
	}
	if !strings.Contains(out, "No path from A to Z") {
		t.Errorf("expected no-path message, got %q", out)
	}
}

func TestE2E_Journal(t *testing.T) {
	srv := httptest.NewServer(&routeService{})
	defer srv.Close()
	home := t.TempDir()

	if out, _, code := runWGIn(t, home, srv.URL, "node", "add", "A"); code != 0 {
		t.Fatalf("node add: exit %d\n%s", code, out)
	}
	runWGIn(t, home, srv.URL, "path", "A", "Z")

	out, _, code := runWGIn(t, home, "", "log")
	if code != 0 {
		t.Fatalf("log: exit %d", code)
	}
	for _, want := range []string{"Node A created", "No path from A to Z", "wg path"} {
		if !strings.Contains(out, want) {
			t.Errorf("journal missing %q:\n%s", want, out)
		}
	}
}

func TestE2E_RejectsBadLogLevel(t *testing.T) {
	_, stderr, code := runWG(t, "", "--log-level", "loud", "config", "path")
	if code == 0 {
		t.Fatal("expected non-zero exit for an unknown log level")
	}
	if !strings.Contains(stderr, "invalid log level") {
		t.Errorf("expected a log level error, got %q", stderr)
	}
}
