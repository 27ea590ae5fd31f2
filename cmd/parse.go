package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseToggle(idStr, stateStr string) (int, bool, error) {
	id, err := parseID(idStr)
	if err != nil {
		return 0, false, err
	}
	switch strings.ToLower(stateStr) {
	case "on", "enable", "active", "true":
		return id, true, nil
	case "off", "disable", "inactive", "false":
		return id, false, nil
	}
	return 0, false, fmt.Errorf("expected on or off, got %q", stateStr)
}
