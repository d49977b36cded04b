// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/getids/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.HistoryConfig{Dir: filepath.Join(t.TempDir(), "history")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleCollection(source string, ids ...string) types.Collection {
	return types.Collection{
		Source:      source,
		Selector:    ".card",
		Matched:     len(ids) + 1,
		Missing:     1,
		IDs:         ids,
		CollectedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewStoreCreatesDBFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "history")
	store, err := NewStore(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestNewStoreCreatesSchema(t *testing.T) {
	store := testStore(t)

	for _, table := range []string{"runs", "run_ids"} {
		var n int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestRecordAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	runID, err := store.Record(ctx, sampleCollection("page.html", "a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)

	run, err := store.Get(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, runID, run.ID)
	assert.Equal(t, "page.html", run.Source)
	assert.Equal(t, ".card", run.Selector)
	assert.Equal(t, 4, run.Matched)
	assert.Equal(t, 1, run.Missing)
	assert.Zero(t, run.Duplicates)
	assert.Equal(t, []string{"a", "b", "c"}, run.IDs)
	assert.True(t, run.CollectedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
}

func TestRecordKeepsOrderAndDuplicates(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	runID, err := store.Record(ctx, sampleCollection("p", "z", "a", "z"))
	require.NoError(t, err)

	run, err := store.Get(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "z"}, run.IDs)
}

func TestRecordEmptyCollection(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	runID, err := store.Record(ctx, sampleCollection("empty.html"))
	require.NoError(t, err)

	run, err := store.Get(ctx, runID)
	require.NoError(t, err)
	assert.NotNil(t, run.IDs)
	assert.Empty(t, run.IDs)
}

func TestGetNotFound(t *testing.T) {
	store := testStore(t)
	_, err := store.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListNewestFirst(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for _, src := range []string{"one", "two", "three"} {
		_, err := store.Record(ctx, sampleCollection(src, src+"-id"))
		require.NoError(t, err)
	}

	runs, err := store.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "three", runs[0].Source)
	assert.Equal(t, "one", runs[2].Source)
	assert.Equal(t, []string{"three-id"}, runs[0].IDs)
}

func TestListFilters(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, sampleCollection("a.html", "x", "y"))
	require.NoError(t, err)
	_, err = store.Record(ctx, sampleCollection("b.html", "y"))
	require.NoError(t, err)
	_, err = store.Record(ctx, sampleCollection("a.html", "z"))
	require.NoError(t, err)

	runs, err := store.List(ctx, ListOptions{Source: "a.html"})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = store.List(ctx, ListOptions{ElementID: "y"})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b.html", runs[0].Source)

	runs, err = store.List(ctx, ListOptions{MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestListEmpty(t *testing.T) {
	store := testStore(t)
	runs, err := store.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestExportYAML(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, sampleCollection("page.html", "a", "b"))
	require.NoError(t, err)

	path, err := store.ExportYAML(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "export.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var runs []Run
	require.NoError(t, yaml.Unmarshal(data, &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, int64(1), runs[0].ID)
	assert.Equal(t, "page.html", runs[0].Source)
	assert.Equal(t, []string{"a", "b"}, runs[0].IDs)
}

func TestExportJSON(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, sampleCollection("page.html", "a"))
	require.NoError(t, err)

	path, err := store.ExportJSON(ctx, ListOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, float64(1), raw[0]["run_id"])
	assert.Equal(t, "page.html", raw[0]["source"])
	assert.Equal(t, []any{"a"}, raw[0]["ids"])
}

func TestExportEmptyWritesEmptyList(t *testing.T) {
	store := testStore(t)

	path, err := store.ExportJSON(context.Background(), ListOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
