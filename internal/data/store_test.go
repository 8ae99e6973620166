package data

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validBookInput() BookInput {
	return BookInput{
		Title:       ptr("A New Book"),
		Author:      ptr("RJR - First"),
		Description: ptr("A Brand new Description"),
		Rating:      ptr(3),
		PublishDate: ptr(2025),
	}
}

func newBookStore(t *testing.T, seed ...Book) *Store[Book] {
	t.Helper()
	repo := NewMemoryRepository(BookSchema.ID)
	require.NoError(t, Seed[Book](context.Background(), BookSchema, repo, seed, BookInputFrom))
	return NewStore(BookSchema, repo)
}

func ids(books []Book) []int64 {
	out := make([]int64, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestStoreCreateAssignsNextID(t *testing.T) {
	ctx := context.Background()
	store := newBookStore(t, DefaultBooks()[:3]...)

	book, err := store.Create(ctx, validBookInput())
	require.NoError(t, err)
	assert.Equal(t, int64(4), book.ID)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(all))
}

func TestStoreCreateOnEmptyStoreStartsAtOne(t *testing.T) {
	store := newBookStore(t)

	book, err := store.Create(context.Background(), validBookInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), book.ID)
}

func TestStoreCreateIgnoresClientID(t *testing.T) {
	store := newBookStore(t, DefaultBooks()...)

	in := validBookInput()
	in.ID = ptr(int64(1))
	book, err := store.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(7), book.ID)
}

func TestStoreCreateIDsStrictlyIncrease(t *testing.T) {
	ctx := context.Background()
	store := newBookStore(t)

	var last int64
	seen := map[int64]bool{}
	for i := 0; i < 20; i++ {
		book, err := store.Create(ctx, validBookInput())
		require.NoError(t, err)
		assert.Greater(t, book.ID, last)
		assert.False(t, seen[book.ID])
		seen[book.ID] = true
		last = book.ID
	}
}

func TestStoreConcurrentCreatesGetUniqueIDs(t *testing.T) {
	ctx := context.Background()
	store := newBookStore(t)

	const n = 50
	var wg sync.WaitGroup
	results := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			book, err := store.Create(ctx, validBookInput())
			if err == nil {
				results <- book.ID
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := map[int64]bool{}
	for id := range results {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestStoreCreateThenGet(t *testing.T) {
	ctx := context.Background()
	store := newBookStore(t, DefaultBooks()...)

	in := validBookInput()
	in.Category = ptr("Fantasy")
	created, err := store.Create(ctx, in)
	require.NoError(t, err)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)

	want := in.Record()
	want.ID = created.ID
	assert.Equal(t, want, got)
}

func TestStoreCreateMissingTitle(t *testing.T) {
	ctx := context.Background()
	store := newBookStore(t, Book{ID: 1, Title: "Computer Science Pro", Author: "RJR", Description: "Good", Rating: 4, PublishDate: 2024})

	in := validBookInput()
	in.Title = nil
	_, err := store.Create(ctx, in)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Errors, "title")
	assert.Contains(t, err.Error(), "title")

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStoreCreateReportsEveryViolation(t *testing.T) {
	store := newBookStore(t)

	_, err := store.Create(context.Background(), BookInput{
		Title:       ptr("Hi"),
		Description: ptr(""),
		Rating:      ptr(6),
		PublishDate: ptr(2020),
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"title":       "must be at least 3 characters long",
		"author":      "must be provided",
		"description": "must not be empty",
		"rating":      "must be between 1 and 5",
	}, verr.Errors)
}

func TestStoreGet(t *testing.T) {
	ctx := context.Background()
	store := newBookStore(t, DefaultBooks()...)

	book, err := store.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Master End Points", book.Title)

	_, err = store.Get(ctx, 99)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = store.Get(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = store.Get(ctx, -4)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestStoreFindByTitle(t *testing.T) {
	ctx := context.Background()
	store := newBookStore(t, DefaultBooks()...)

	book, err := store.FindByTitle(ctx, "master end POINTS")
	require.NoError(t, err)
	assert.Equal(t, int64(3), book.ID)

	// Ids 4 and 6 share a title; the earlier record wins.
	book, err = store.FindByTitle(ctx, "hp - 1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), book.ID)
	assert.Equal(t, "Worse", book.Description)

	_, err = store.FindByTitle(ctx, "Missing Book")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestStoreFilter(t *testing.T) {
	ctx := context.Background()
	store := newBookStore(t, DefaultBooks()...)

	tests := []struct {
		name   string
		filter BookFilter
		want   []int64
	}{
		{name: "rating", filter: BookFilter{Rating: 5}, want: []int64{2, 3}},
		{name: "publish date", filter: BookFilter{PublishDate: 2023}, want: []int64{3, 5, 6}},
		{name: "author ignores case", filter: BookFilter{Author: "rjr - 1"}, want: []int64{4, 5, 6}},
		{name: "author and category", filter: BookFilter{Author: "RJR", Category: "computer science"}, want: []int64{1, 2}},
		{name: "no filter", filter: BookFilter{}, want: []int64{1, 2, 3, 4, 5, 6}},
		{name: "no match", filter: BookFilter{Category: "History"}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := store.Filter(ctx, tt.filter.Matches)
			require.NoError(t, err)
			require.NotNil(t, books)
			assert.Equal(t, tt.want, ids(books))
		})
	}
}

func TestStoreUpdateReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	store := newBookStore(t, DefaultBooks()...)

	in := validBookInput()
	in.Title = ptr("Computer Science Pro - Revised")
	require.NoError(t, store.Update(ctx, 2, in))

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids(all))
	assert.Equal(t, "Computer Science Pro - Revised", all[1].Title)
	assert.Equal(t, "", all[1].Category)
}

func TestStoreUpdateMissingIDLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newBookStore(t, DefaultBooks()...)
	before, err := store.List(ctx)
	require.NoError(t, err)

	err = store.Update(ctx, 42, validBookInput())
	assert.ErrorIs(t, err, ErrRecordNotFound)

	after, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStoreUpdateValidatesFirst(t *testing.T) {
	ctx := context.Background()
	store := newBookStore(t, DefaultBooks()...)

	in := validBookInput()
	in.Rating = ptr(0)
	err := store.Update(ctx, 1, in)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Errors, "rating")

	book, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, book.Rating)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := newBookStore(t, DefaultBooks()[:3]...)

	require.NoError(t, store.Delete(ctx, 2))

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(all))

	assert.ErrorIs(t, store.Delete(ctx, 2), ErrRecordNotFound)

	_, err = store.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	assert.ErrorIs(t, store.Delete(ctx, 0), ErrInvalidID)
}

func TestSeedRejectsInvalidAndDuplicateRecords(t *testing.T) {
	ctx := context.Background()

	repo := NewMemoryRepository(BookSchema.ID)
	bad := DefaultBooks()[:1]
	bad[0].Rating = 9
	err := Seed[Book](ctx, BookSchema, repo, bad, BookInputFrom)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Errors, "rating")

	dup := []Book{DefaultBooks()[0], DefaultBooks()[0]}
	err = Seed[Book](ctx, BookSchema, repo, dup, BookInputFrom)
	assert.ErrorIs(t, err, ErrDuplicateID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedNumbersRecordsWithoutID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(TodoSchema.ID)

	seed := []Todo{
		{Title: "Buy milk", Description: "Two litres", Priority: 2},
		{ID: 5, Title: "Walk dog", Description: "Around the park", Priority: 3, Complete: true},
		{Title: "Read book", Description: "Chapter one", Priority: 1},
	}
	require.NoError(t, Seed[Todo](ctx, TodoSchema, repo, seed, TodoInputFrom))

	todos, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, int64(5), todos[0].ID)
	assert.Equal(t, int64(6), todos[1].ID)
	assert.Equal(t, "Buy milk", todos[1].Title)
	assert.Equal(t, int64(7), todos[2].ID)
}

func TestTodoStoreDefaultsComplete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(TodoSchema, Repository[Todo](NewMemoryRepository(TodoSchema.ID)))

	todo, err := store.Create(ctx, TodoInput{
		Title:       ptr("Learn Go"),
		Description: ptr("Work through the tour"),
		Priority:    ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), todo.ID)
	assert.False(t, todo.Complete)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Errors: map[string]string{
		"title":  "must be provided",
		"author": "must be provided",
	}}
	assert.Equal(t, "validation failed: author must be provided; title must be provided", err.Error())
}
