package state

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/msalah0e/wastegraph/internal/config"
)

type viewFile struct {
	Viewport Viewport `toml:"viewport"`
}

func viewPath() string {
	return filepath.Join(config.ConfigDir(), "view.toml")
}

// LoadViewport reads the viewport saved by the last shell session, returning
// the identity viewport if there is none.
func LoadViewport() Viewport {
	f := viewFile{Viewport: Identity()}
	data, err := os.ReadFile(viewPath())
	if err != nil {
		return Identity()
	}
	if err := toml.Unmarshal(data, &f); err != nil || f.Viewport.Zoom == 0 {
		return Identity()
	}
	return f.Viewport
}

// SaveViewport writes the viewport to disk.
func SaveViewport(v Viewport) error {
	path := viewPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(viewFile{Viewport: v})
}
