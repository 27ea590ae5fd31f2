package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func TestRecordAndRead(t *testing.T) {
	j := Open(filepath.Join(t.TempDir(), "sub", "journal.jsonl"))
	j.now = fixedClock(time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC))

	require.NoError(t, j.Record("wg node add", Success, "Node A created"))
	require.NoError(t, j.Record("wg path", Warning, "Select a source and a destination"))
	require.NoError(t, j.Record("wg color", Error, "Coloring failed"))

	all, err := j.Read(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Coloring failed", all[0].Message, "newest first")
	assert.Equal(t, "wg node add", all[2].Command)

	two, err := j.Read(2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestReadMissingFile(t *testing.T) {
	j := Open(filepath.Join(t.TempDir(), "none.jsonl"))
	entries, err := j.Read(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadSkipsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not json\n\n{\"command\":\"wg clear\",\"level\":\"success\",\"message\":\"Graph cleared\"}\n"), 0o644))

	entries, err := Open(path).Read(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Graph cleared", entries[0].Message)
}

func TestSearchIgnoresCase(t *testing.T) {
	j := Open(filepath.Join(t.TempDir(), "journal.jsonl"))
	j.now = fixedClock(time.Now())
	require.NoError(t, j.Record("wg node add", Success, "Node A created"))
	require.NoError(t, j.Record("wg edge add", Success, "Edge A-B created"))
	require.NoError(t, j.Record("wg path", Success, "Shortest path found"))

	hits, err := j.Search("CREATED", 0)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = j.Search("path", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Shortest path found", hits[0].Message)

	hits, err = j.Search("created", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestClear(t *testing.T) {
	j := Open(filepath.Join(t.TempDir(), "journal.jsonl"))
	require.NoError(t, j.Clear(), "clearing a missing journal")
	require.NoError(t, j.Record("wg clear", Success, "Graph cleared"))
	require.NoError(t, j.Clear())

	entries, err := j.Read(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDefaultPathUsesConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/wastegraph/journal.jsonl", DefaultPath())
}
