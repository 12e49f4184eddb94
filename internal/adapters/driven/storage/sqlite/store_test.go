package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zirar/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func testRecord(id string, endedAt time.Time) domain.RunRecord {
	return domain.RunRecord{
		ID:               id,
		ArchivePath:      "/archives/" + id + ".zip",
		PasswordListPath: "/lists/rockyou.txt",
		Format:           domain.FormatZIP,
		Enhanced:         true,
		Outcome:          domain.OutcomeExhausted,
		Attempts:         1200,
		Total:            1200,
		StartedAt:        endedAt.Add(-90 * time.Second),
		EndedAt:          endedAt,
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "history.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.RunHistoryStore().Save(ctx, testRecord("run-1", time.Now())))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	record, err := reopened.RunHistoryStore().Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", record.ID)

	version, err := reopened.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestStore_MigrateAppliesOnlyNewVersions(t *testing.T) {
	store := setupTestStore(t)

	extra := fstest.MapFS{
		"001_run_history.up.sql": {Data: []byte("SELECT 1")},
		"002_notes.up.sql":       {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY)")},
		"002_notes.down.sql":     {Data: []byte("DROP TABLE notes")},
		"README.md":              {Data: []byte("ignored")},
	}
	require.NoError(t, store.migrate(extra))

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	// Running again is a no-op.
	require.NoError(t, store.migrate(extra))
}

func TestStore_MigrateFailureRollsBack(t *testing.T) {
	store := setupTestStore(t)

	broken := fstest.MapFS{
		"005_broken.up.sql": {Data: []byte("CREATE TABLE ok (id INTEGER); NOT VALID SQL")},
	}
	err := store.migrate(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "005_broken.up.sql")

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestRunHistoryStore_SaveAndGet(t *testing.T) {
	history := setupTestStore(t).RunHistoryStore()
	ctx := context.Background()
	endedAt := time.Date(2026, 5, 4, 10, 30, 15, 123456789, time.UTC)

	want := testRecord("run-1", endedAt)
	want.Outcome = domain.OutcomeFailed
	want.Message = "could not read password list: permission denied"
	require.NoError(t, history.Save(ctx, want))

	got, err := history.Get(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, want.ArchivePath, got.ArchivePath)
	assert.Equal(t, want.PasswordListPath, got.PasswordListPath)
	assert.Equal(t, domain.FormatZIP, got.Format)
	assert.True(t, got.Enhanced)
	assert.Equal(t, domain.OutcomeFailed, got.Outcome)
	assert.Equal(t, want.Message, got.Message)
	assert.Equal(t, 1200, got.Attempts)
	assert.Equal(t, 1200, got.Total)
	assert.True(t, want.StartedAt.Equal(got.StartedAt))
	assert.True(t, want.EndedAt.Equal(got.EndedAt))
	assert.Equal(t, 90*time.Second, got.Duration())
}

func TestRunHistoryStore_Save_Upserts(t *testing.T) {
	history := setupTestStore(t).RunHistoryStore()
	ctx := context.Background()
	now := time.Now()

	record := testRecord("run-1", now)
	require.NoError(t, history.Save(ctx, record))

	record.Outcome = domain.OutcomeFound
	record.Attempts = 7
	require.NoError(t, history.Save(ctx, record))

	all, err := history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.OutcomeFound, all[0].Outcome)
	assert.Equal(t, 7, all[0].Attempts)
	assert.Empty(t, all[0].Message)
}

func TestRunHistoryStore_Save_RequiresID(t *testing.T) {
	history := setupTestStore(t).RunHistoryStore()

	err := history.Save(context.Background(), domain.RunRecord{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRunHistoryStore_Get_NotFound(t *testing.T) {
	history := setupTestStore(t).RunHistoryStore()

	_, err := history.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunHistoryStore_List_Ordering(t *testing.T) {
	history := setupTestStore(t).RunHistoryStore()
	ctx := context.Background()
	base := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	// Same second, different nanoseconds.
	require.NoError(t, history.Save(ctx, testRecord("a", base.Add(100*time.Millisecond))))
	require.NoError(t, history.Save(ctx, testRecord("b", base.Add(900*time.Millisecond))))
	// A different zone must still sort by instant.
	east := time.FixedZone("east", 3*3600)
	require.NoError(t, history.Save(ctx, testRecord("c", base.Add(time.Hour).In(east))))

	all, err := history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	limited, err := history.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "c", limited[0].ID)
}

func TestRunHistoryStore_Clear(t *testing.T) {
	history := setupTestStore(t).RunHistoryStore()
	ctx := context.Background()

	require.NoError(t, history.Save(ctx, testRecord("a", time.Now())))
	require.NoError(t, history.Save(ctx, testRecord("b", time.Now())))
	require.NoError(t, history.Clear(ctx))

	all, err := history.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunHistoryStore_ContextCancelled(t *testing.T) {
	history := setupTestStore(t).RunHistoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := history.Save(ctx, testRecord("a", time.Now()))

	assert.Error(t, err)
}
