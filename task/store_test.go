package task

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)

	store, err := NewSQLStore(db, "sqlite")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.(*SQLStore).Close() })

	return store.(*SQLStore)
}

func TestSQLStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := &a2a.Task{
		ID:        "task-1",
		ContextID: "ctx-1",
		Status:    a2a.TaskStatus{State: a2a.TaskStateWorking},
	}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, a2a.TaskID("task-1"), loaded.ID)
	assert.Equal(t, "ctx-1", loaded.ContextID)
	assert.Equal(t, a2a.TaskStateWorking, loaded.Status.State)
}

func TestSQLStore_SaveUpdatesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := &a2a.Task{
		ID:        "task-1",
		ContextID: "ctx-1",
		Status:    a2a.TaskStatus{State: a2a.TaskStateSubmitted},
	}
	require.NoError(t, store.Save(ctx, task))

	task.Status.State = a2a.TaskStateCompleted
	require.NoError(t, store.Save(ctx, task))

	loaded, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, a2a.TaskStateCompleted, loaded.Status.State)
}

func TestSQLStore_GetUnknownTask(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, a2a.ErrTaskNotFound)
}

func TestSQLStore_NilTask(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.Save(context.Background(), nil))
}

func TestNewSQLStore_RejectsUnknownDialect(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = NewSQLStore(db, "oracle")
	assert.Error(t, err)
}
