package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// DefaultLogLevel applies when no level is configured.
const DefaultLogLevel = slog.LevelWarn

// ParseLogLevel reads debug, info, warn or error, case-insensitively, with
// an optional offset such as "info+2". An empty string is DefaultLogLevel.
func ParseLogLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLogLevel, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return DefaultLogLevel, fmt.Errorf("invalid log level %q: want debug, info, warn or error", s)
	}
	return l, nil
}

// CheckLogFormat accepts "text", "json" and the empty string.
func CheckLogFormat(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "json":
		return nil
	}
	return fmt.Errorf("invalid log format %q: want text or json", s)
}

// NewLogger builds the diagnostic logger. Values that fail ParseLogLevel or
// CheckLogFormat fall back to warn and text; the CLI rejects them earlier.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	lvl, _ := ParseLogLevel(level)
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
