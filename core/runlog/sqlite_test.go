package runlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_PersistQuery(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	now := time.Now()
	a := RunRecord{ID: "a", Timestamp: now.Add(-time.Hour), Converged: true, Policy: [][]int{{0, -1}}}
	b := RunRecord{ID: "b", Timestamp: now, Converged: true}
	b.Params.Solver.Modified = true
	require.NoError(t, store.Append(ctx, b))
	require.NoError(t, store.Append(ctx, a))

	all, err := store.Query(ctx, RunQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, [][]int{{0, -1}}, all[0].Policy)

	modified := true
	out, err := store.Query(ctx, RunQuery{Modified: &modified})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].ID)

	out, err = store.Query(ctx, RunQuery{End: now.Add(-time.Minute)})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	rec := RunRecord{ID: "dup", Timestamp: time.Now()}
	require.NoError(t, store.Append(context.Background(), rec))
	assert.Error(t, store.Append(context.Background(), rec))
}
