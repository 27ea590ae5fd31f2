package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msalah0e/wastegraph/internal/app"
	"github.com/msalah0e/wastegraph/internal/backend/backendtest"
	"github.com/msalah0e/wastegraph/internal/config"
	"github.com/msalah0e/wastegraph/internal/journal"
	"github.com/msalah0e/wastegraph/internal/model"
)

func tempJournal(t *testing.T) *journal.Journal {
	t.Helper()
	j := journal.Open(filepath.Join(t.TempDir(), "journal.jsonl"))
	prev := openJournal
	openJournal = func() *journal.Journal { return j }
	t.Cleanup(func() { openJournal = prev })
	return j
}

func TestSessionRecordsOutcomes(t *testing.T) {
	quietUI(t)
	j := tempJournal(t)
	prev := invoked
	invoked = "wg clear"
	t.Cleanup(func() { invoked = prev })

	api := backendtest.New(model.Graph{Nodes: []model.Node{{ID: "A"}}})
	s := startSession(context.Background(), config.Default(), api, sessionOpts{
		prompt:  &scripted{yes: true},
		journal: j,
	})
	s.send(app.Action{Kind: app.ClearGraph})
	s.send(app.Action{Kind: app.FindPath})

	entries, err := j.Read(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, journal.Warning, entries[0].Level)
	assert.Equal(t, "Select a source and a destination", entries[0].Message)
	assert.Equal(t, journal.Success, entries[1].Level)
	assert.Equal(t, "Graph cleared", entries[1].Message)
	assert.Equal(t, "wg clear", entries[1].Command)
}

func TestSessionWithoutJournal(t *testing.T) {
	quietUI(t)
	api := backendtest.New(model.Graph{})
	s := startSession(context.Background(), config.Default(), api, sessionOpts{prompt: &scripted{yes: true}})
	s.send(app.Action{Kind: app.ClearGraph})
	assert.False(t, s.notify.failed)
}

func TestLogCommand(t *testing.T) {
	out := quietUI(t)
	j := tempJournal(t)
	require.NoError(t, j.Record("wg node add", journal.Success, "Node A created"))
	require.NoError(t, j.Record("wg path", journal.Error, "No path from A to B"))

	cmd := logCmd()
	cmd.SetArgs([]string{"-n", "5"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Node A created")
	assert.Contains(t, out.String(), "No path from A to B")
	assert.Contains(t, out.String(), "Showing 2 entries")
}

func TestLogSearchAndClear(t *testing.T) {
	out := quietUI(t)
	j := tempJournal(t)
	require.NoError(t, j.Record("wg node add", journal.Success, "Node A created"))
	require.NoError(t, j.Record("wg color", journal.Success, "Graph colored with 2 colors"))

	cmd := logCmd()
	cmd.SetArgs([]string{"search", "colored"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Graph colored with 2 colors")
	assert.NotContains(t, out.String(), "Node A created")
	assert.Contains(t, out.String(), "1 result")

	cmd = logCmd()
	cmd.SetArgs([]string{"clear"})
	require.NoError(t, cmd.Execute())
	entries, err := j.Read(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogExportEmpty(t *testing.T) {
	out := quietUI(t)
	tempJournal(t)

	cmd := logCmd()
	cmd.SetArgs([]string{"export"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "[]", strings.TrimSpace(out.String()))
}
