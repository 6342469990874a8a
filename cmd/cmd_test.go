package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/carrental/core/runlog"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseState(t *testing.T) {
	s, err := parseState("3, 17")
	require.NoError(t, err)
	assert.Equal(t, 3, s.First)
	assert.Equal(t, 17, s.Second)

	for _, bad := range []string{"", "3", "a,b", "1,2,3"} {
		_, err := parseState(bad)
		assert.Error(t, err, bad)
	}
}

func TestTransitionsCommand(t *testing.T) {
	t.Setenv("CR_RUNLOG__BACKEND", "none")
	out, err := execute(t, "transitions", "--state", "3,4", "--top", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "from (3,4)", lines[0])
	assert.Contains(t, lines[5], "total probability")

	_, err = execute(t, "transitions", "--state", "30,4")
	assert.Error(t, err)
}

func TestSolveCommand(t *testing.T) {
	t.Setenv("CR_PROBLEM__CAPACITY", "4")
	t.Setenv("CR_PROBLEM__MAX_MOVE", "1")
	t.Setenv("CR_PROBLEM__STORAGE_LIMIT", "2")
	t.Setenv("CR_RUNLOG__BACKEND", "none")
	t.Setenv("CR_LOGGING__LEVEL", "error")
	out, err := execute(t, "solve", "--gamma", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "POLICY 1\n")
	assert.Contains(t, out, "VALUES\n")

	_, err = execute(t, "solve", "--gamma", "1.5")
	assert.ErrorContains(t, err, "gamma")
}

func TestHistoryCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	t.Setenv("CR_RUNLOG__PATH", path)
	store, err := runlog.NewJSONLStore(path)
	require.NoError(t, err)
	rec := runlog.RunRecord{ID: "run-abc", Timestamp: time.Now(), Converged: true, Iterations: 4, Sweeps: 120, DurationMS: 1500}
	require.NoError(t, store.Append(context.Background(), rec))
	old := runlog.RunRecord{ID: "run-old", Timestamp: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, store.Append(context.Background(), old))

	out, err := execute(t, "history", "--since", "24h")
	require.NoError(t, err)
	assert.Contains(t, out, "CONVERGED")
	assert.Contains(t, out, "run-abc")
	assert.Contains(t, out, "1.5s")
	assert.NotContains(t, out, "run-old")
}

func TestHistoryDisabled(t *testing.T) {
	t.Setenv("CR_RUNLOG__BACKEND", "none")
	_, err := execute(t, "history")
	assert.ErrorContains(t, err, "disabled")
}
