package runlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLStore_AppendQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store, err := NewJSONLStore(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	now := time.Now()
	old := RunRecord{ID: "old", Timestamp: now.Add(-time.Hour)}
	recent := RunRecord{ID: "recent", Timestamp: now, Iterations: 4}
	recent.Params.Solver.Modified = true
	require.NoError(t, store.Append(ctx, old))
	require.NoError(t, store.Append(ctx, recent))

	all, err := store.Query(ctx, RunQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "old", all[0].ID)

	out, err := store.Query(ctx, RunQuery{Start: now.Add(-time.Minute)})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 4, out[0].Iterations)

	plain := false
	out, err = store.Query(ctx, RunQuery{Modified: &plain})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "old", out[0].ID)
}

func TestJSONLStore_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store, err := NewJSONLStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), RunRecord{ID: "a", Timestamp: time.Now()}))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, err := store.Query(context.Background(), RunQuery{})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestJSONLStore_LargeRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store, err := NewJSONLStore(path)
	require.NoError(t, err)
	values := make([][]float64, 21)
	for i := range values {
		values[i] = make([]float64, 21)
		for j := range values[i] {
			values[i][j] = 612.3456789 + float64(i*j)
		}
	}
	require.NoError(t, store.Append(context.Background(), RunRecord{ID: "big", Timestamp: time.Now(), Values: values}))
	out, err := store.Query(context.Background(), RunQuery{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, values, out[0].Values)
}
