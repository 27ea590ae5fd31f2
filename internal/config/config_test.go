package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("expected default base url, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout.Duration != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.API.Timeout)
	}
	if !cfg.UI.Color {
		t.Error("default color should be true")
	}
	if cfg.Render.NodeRadius != 20 {
		t.Errorf("expected node radius 20, got %v", cfg.Render.NodeRadius)
	}
	if cfg.Edit.DefaultWeight != "2.5" {
		t.Errorf("expected default weight '2.5', got %q", cfg.Edit.DefaultWeight)
	}
	if cfg.Edit.HistoryLimit != 20 {
		t.Errorf("expected history limit 20, got %d", cfg.Edit.HistoryLimit)
	}
	if !cfg.Edit.Journal {
		t.Error("journal should be on by default")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("expected text log format, got %q", cfg.Log.Format)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	dir := ConfigDir()
	if dir != "/tmp/test-xdg/wastegraph" {
		t.Errorf("expected /tmp/test-xdg/wastegraph, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	dir = ConfigDir()
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "wastegraph")
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("WG_API", "")

	cfg := Default()
	cfg.API.BaseURL = "http://routes.internal:9000"
	cfg.API.Timeout = Duration{5 * time.Second}
	cfg.Edit.HistoryLimit = 50

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := Load()
	if loaded.API.BaseURL != "http://routes.internal:9000" {
		t.Errorf("expected saved base url, got %q", loaded.API.BaseURL)
	}
	if loaded.API.Timeout.Duration != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", loaded.API.Timeout)
	}
	if loaded.Edit.HistoryLimit != 50 {
		t.Errorf("expected history limit 50, got %d", loaded.Edit.HistoryLimit)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("WG_API", "http://env.example:8000")

	if got := Load().API.BaseURL; got != "http://env.example:8000" {
		t.Errorf("WG_API should override the base url, got %q", got)
	}
}

func TestLoadPartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("WG_API", "")

	os.MkdirAll(filepath.Join(tmpDir, "wastegraph"), 0o755)
	os.WriteFile(Path(), []byte("[render]\nwidth = 640\n"), 0o644)

	cfg := Load()
	if cfg.Render.Width != 640 {
		t.Errorf("expected width 640, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 700 {
		t.Errorf("unset keys keep defaults, got height %d", cfg.Render.Height)
	}
}

func TestEnsureExists(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	path := filepath.Join(tmpDir, "wastegraph", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}

	// Second call should be no-op
	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists second call failed: %v", err)
	}
}
