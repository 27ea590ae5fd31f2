// Package journal keeps a local, append-only record of what the editor told
// the user: every success, warning and error notification, tagged with the
// command that produced it.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/msalah0e/wastegraph/internal/config"
)

// Level of a recorded notification.
const (
	Success = "success"
	Warning = "warning"
	Error   = "error"
)

// Entry is one recorded notification.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Command   string    `json:"command"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// Journal is a JSON-lines file.
type Journal struct {
	path string
	now  func() time.Time
}

// DefaultPath is journal.jsonl in the config directory.
func DefaultPath() string {
	return filepath.Join(config.ConfigDir(), "journal.jsonl")
}

// Open returns a journal backed by path. The file is created on first write.
func Open(path string) *Journal {
	return &Journal{path: path, now: time.Now}
}

// Path returns the backing file.
func (j *Journal) Path() string { return j.path }

// Record appends a notification.
func (j *Journal) Record(command, level, msg string) error {
	return j.Append(Entry{Timestamp: j.now(), Command: command, Level: level, Message: msg})
}

// Append writes e as one line.
func (j *Journal) Append(e Entry) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f, "%s\n", data)
	return err
}

// Read returns the newest count entries, newest first. A count of zero
// returns everything. Unparseable lines are skipped.
func (j *Journal) Read(count int) ([]Entry, error) {
	f, err := os.Open(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var e Entry
		if json.Unmarshal([]byte(line), &e) == nil {
			entries = append(entries, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	// Appends are chronological, so later lines win ties.
	slices.Reverse(entries)
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Timestamp.After(entries[b].Timestamp)
	})
	if count > 0 && len(entries) > count {
		entries = entries[:count]
	}
	return entries, nil
}

// Search returns up to count entries whose command or message contains
// query, ignoring case.
func (j *Journal) Search(query string, count int) ([]Entry, error) {
	all, err := j.Read(0)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []Entry
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Command), q) || strings.Contains(strings.ToLower(e.Message), q) {
			out = append(out, e)
			if count > 0 && len(out) >= count {
				break
			}
		}
	}
	return out, nil
}

// Clear removes the journal. Clearing a missing journal is not an error.
func (j *Journal) Clear() error {
	err := os.Remove(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
