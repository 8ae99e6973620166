package data

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTodoModel(t *testing.T) TodoModel {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "todos.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	model := TodoModel{DB: db}
	require.NoError(t, model.EnsureSchema(context.Background()))
	return model
}

func TestTodoModelRoundTrip(t *testing.T) {
	ctx := context.Background()
	model := newTodoModel(t)

	require.NoError(t, model.Insert(ctx, Todo{ID: 1, Title: "Learn Go", Description: "Tour of Go", Priority: 3}))
	require.NoError(t, model.Insert(ctx, Todo{ID: 2, Title: "Ship it", Description: "Deploy", Priority: 5, Complete: true}))

	todo, err := model.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, Todo{ID: 2, Title: "Ship it", Description: "Deploy", Priority: 5, Complete: true}, todo)

	_, err = model.Get(ctx, 3)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	maxID, err := model.MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), maxID)

	n, err := model.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.ErrorIs(t, model.Insert(ctx, Todo{ID: 1, Title: "Again", Description: "Dup", Priority: 1}), ErrDuplicateID)
}

func TestTodoModelReplaceAndDelete(t *testing.T) {
	ctx := context.Background()
	model := newTodoModel(t)

	require.NoError(t, model.Insert(ctx, Todo{ID: 1, Title: "Learn Go", Description: "Tour of Go", Priority: 3}))

	require.NoError(t, model.Replace(ctx, Todo{ID: 1, Title: "Learn Go well", Description: "Effective Go", Priority: 4, Complete: true}))
	todos, err := model.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Todo{{ID: 1, Title: "Learn Go well", Description: "Effective Go", Priority: 4, Complete: true}}, todos)

	assert.ErrorIs(t, model.Replace(ctx, Todo{ID: 9, Title: "Nope", Description: "Nope", Priority: 1}), ErrRecordNotFound)

	require.NoError(t, model.Delete(ctx, 1))
	assert.ErrorIs(t, model.Delete(ctx, 1), ErrRecordNotFound)

	todos, err = model.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestTodoStoreOverSQLite(t *testing.T) {
	ctx := context.Background()
	store := NewStore(TodoSchema, Repository[Todo](newTodoModel(t)))

	first, err := store.Create(ctx, TodoInput{Title: ptr("Learn Go"), Description: ptr("Tour of Go"), Priority: ptr(3)})
	require.NoError(t, err)
	second, err := store.Create(ctx, TodoInput{Title: ptr("Ship it"), Description: ptr("Deploy"), Priority: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	found, err := store.FindByTitle(ctx, "SHIP IT")
	require.NoError(t, err)
	assert.Equal(t, second, found)

	require.NoError(t, store.Delete(ctx, 1))
	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
