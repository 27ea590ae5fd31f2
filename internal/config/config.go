package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds wastegraph configuration.
type Config struct {
	API    APIConfig    `toml:"api"`
	UI     UIConfig     `toml:"ui"`
	Render RenderConfig `toml:"render"`
	Edit   EditConfig   `toml:"edit"`
	Log    LogConfig    `toml:"log"`
}

// APIConfig locates the WasteGraph service.
type APIConfig struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// UIConfig controls display options.
type UIConfig struct {
	Emoji bool `toml:"emoji"`
	Color bool `toml:"color"`
}

// RenderConfig controls the drawn scene.
type RenderConfig struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	NodeRadius  float64 `toml:"node_radius"`
	DefaultFill string  `toml:"default_fill"`
}

// EditConfig controls gesture defaults.
type EditConfig struct {
	DefaultWeight string `toml:"default_weight"`
	HistoryLimit  int    `toml:"history_limit"`
	// Journal records notifications to journal.jsonl in the config dir.
	Journal bool `toml:"journal"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text", "json"
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API:    APIConfig{BaseURL: "http://localhost:8000", Timeout: Duration{30 * time.Second}},
		UI:     UIConfig{Emoji: true, Color: true},
		Render: RenderConfig{Width: 1000, Height: 700, NodeRadius: 20, DefaultFill: "#2196F3"},
		Edit:   EditConfig{DefaultWeight: "2.5", HistoryLimit: 20, Journal: true},
		Log:    LogConfig{Level: "warn", Format: "text"},
	}
}

// ConfigDir returns the wastegraph config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "wastegraph")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, falling back to defaults if it doesn't exist.
// WG_API overrides the service URL.
func Load() *Config {
	cfg := Default()

	if data, err := os.ReadFile(Path()); err == nil {
		_ = toml.Unmarshal(data, cfg)
	}
	if api := os.Getenv("WG_API"); api != "" {
		cfg.API.BaseURL = api
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(Path()); err == nil {
		return nil // already exists
	}
	return Save(Default())
}
