package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gumcodegen/internal/testutil"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	require.NoError(t, store.InitSchema())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_NotOpen(t *testing.T) {
	store := NewSQLiteStore(nil)

	_, err := store.CreateRun()
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = store.GetContentHash("a.yaml")
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, store.Migrate(), ErrNotOpen)
	assert.NoError(t, store.Close())
}

func TestSQLiteStore_InitSchema(t *testing.T) {
	store := setupTestStore(t)

	for _, table := range []string{"runs", "element_outputs", "content_hashes"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		require.NoError(t, err, "table %s", table)
		_ = rows.Close()
	}

	version, err := store.GetMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// idempotent
	require.NoError(t, store.InitSchema())
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	tests := []struct {
		name      string
		status    RunStatus
		generated int
		skipped   int
		errMsg    string
	}{
		{"completed", RunStatusCompleted, 3, 2, ""},
		{"failed", RunStatusFailed, 1, 0, "write failed"},
		{"cancelled", RunStatusCancelled, 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t)

			run, err := store.CreateRun()
			require.NoError(t, err)
			assert.NotEmpty(t, run.ID)
			assert.Equal(t, RunStatusRunning, run.Status)
			assert.Zero(t, run.Duration())

			require.NoError(t, store.CompleteRun(run.ID, tt.status, tt.generated, tt.skipped, tt.errMsg))

			got, err := store.GetRun(run.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.generated, got.Generated)
			assert.Equal(t, tt.skipped, got.Skipped)
			assert.Equal(t, tt.errMsg, got.Error)
			require.NotNil(t, got.CompletedAt)
			assert.GreaterOrEqual(t, got.Duration().Nanoseconds(), int64(0))
		})
	}
}

func TestSQLiteStore_RunNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetRun("nonexistent-id")
	assert.Error(t, err)
	assert.Error(t, store.CompleteRun("nonexistent-id", RunStatusCompleted, 0, 0, ""))

	latest, err := store.GetLatestRun()
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	store := setupTestStore(t)

	var ids []string
	for range 3 {
		run, err := store.CreateRun()
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)

	latest, err := store.GetLatestRun()
	require.NoError(t, err)
	assert.Equal(t, ids[2], latest.ID)
}

func TestSQLiteStore_Outputs(t *testing.T) {
	store := setupTestStore(t)

	first, err := store.CreateRun()
	require.NoError(t, err)
	require.NoError(t, store.RecordOutput(&ElementOutput{
		RunID: first.ID, Element: "Controls/Button", OutputPath: "Components/Controls/ButtonRuntime.Generated.cs",
		ContentHash: "c1", CodeHash: "k1",
	}))
	require.NoError(t, store.RecordOutput(&ElementOutput{
		RunID: first.ID, Element: "Menu", OutputPath: "Screens/MenuRuntime.Generated.cs",
		ContentHash: "c2", CodeHash: "k2",
	}))
	// re-recording replaces
	require.NoError(t, store.RecordOutput(&ElementOutput{
		RunID: first.ID, Element: "Menu", OutputPath: "Screens/MenuRuntime.Generated.cs",
		ContentHash: "c3", CodeHash: "k3",
	}))

	outputs, err := store.ListOutputs(first.ID)
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, "Controls/Button", outputs[0].Element)
	assert.Equal(t, "c3", outputs[1].ContentHash)

	second, err := store.CreateRun()
	require.NoError(t, err)
	require.NoError(t, store.RecordOutput(&ElementOutput{
		RunID: second.ID, Element: "Menu", OutputPath: "Screens/MenuRuntime.Generated.cs",
		ContentHash: "c4", CodeHash: "k4",
	}))

	latest, err := store.GetLatestOutput("Menu")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.RunID)
	assert.Equal(t, "k4", latest.CodeHash)
	assert.False(t, latest.CreatedAt.IsZero())

	missing, err := store.GetLatestOutput("Nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Error(t, store.RecordOutput(&ElementOutput{RunID: "no-such-run", Element: "X"}),
		"outputs must belong to a run")
}

func TestSQLiteStore_ContentHashes(t *testing.T) {
	store := setupTestStore(t)

	hash, err := store.GetContentHash("components/Button.yaml")
	require.NoError(t, err)
	assert.Empty(t, hash)

	require.NoError(t, store.SetContentHash("components/Button.yaml", "abc", "components"))
	require.NoError(t, store.SetContentHash("components/Button.yaml", "def", "components"))

	hash, err = store.GetContentHash("components/Button.yaml")
	require.NoError(t, err)
	assert.Equal(t, "def", hash)

	require.NoError(t, store.SetContentHash("screens/Menu.yaml", "123", "screens"))
	all, err := store.ListContentHashes()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"components/Button.yaml": "def", "screens/Menu.yaml": "123"}, all)

	require.NoError(t, store.DeleteContentHash("components/Button.yaml"))
	hash, err = store.GetContentHash("components/Button.yaml")
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestSQLiteStore_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(path))
	require.NoError(t, store.InitSchema())
	require.NoError(t, store.SetContentHash("a.yaml", "1", "screens"))
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore(nil)
	require.NoError(t, reopened.Open(path))
	defer reopened.Close()
	require.NoError(t, reopened.InitSchema())
	assert.Equal(t, path, reopened.Path())

	hash, err := reopened.GetContentHash("a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "1", hash)
}
