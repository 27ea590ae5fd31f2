package cmd

import (
	"testing"

	"github.com/msalah0e/wastegraph/internal/config"
)

func TestCheckLog(t *testing.T) {
	tests := []struct {
		name          string
		level, format string
		wantErr       bool
	}{
		{"defaults", "", "", false},
		{"json debug", "debug", "json", false},
		{"unknown level", "loud", "text", true},
		{"unknown format", "info", "xml", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Log.Level, cfg.Log.Format = tt.level, tt.format
			err := checkLog(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkLog(%q, %q) = %v, wantErr %v", tt.level, tt.format, err, tt.wantErr)
			}
		})
	}
}
