// internal/data/models.go
package data

import "context"

// Backend names a persistence provider for a collection.
type Backend string

const (
	// BackendMemory keeps records in process memory only.
	BackendMemory Backend = "memory"
	// BackendPostgres stores books in a PostgreSQL table.
	BackendPostgres Backend = "postgres"
	// BackendSQLite stores todos in a SQLite database file.
	BackendSQLite Backend = "sqlite"
)

// Models is a top-level container that groups the stores for every entity.
// It is passed around the application via applicationDependencies so every
// handler reaches storage without knowing which backend is in use.
type Models struct {
	Books *Store[Book] // Validated books collection
	Todos *Store[Todo] // Validated todos collection
}

// NewModels wraps the given repositories in validated stores.
func NewModels(books Repository[Book], todos Repository[Todo]) Models {
	return Models{
		Books: NewStore(BookSchema, books),
		Todos: NewStore(TodoSchema, todos),
	}
}

// NewMemoryModels returns Models backed by in-memory repositories seeded
// with books and todos.
func NewMemoryModels(ctx context.Context, books []Book, todos []Todo) (Models, error) {
	bookRepo := NewMemoryRepository(BookSchema.ID)
	if err := Seed[Book](ctx, BookSchema, bookRepo, books, BookInputFrom); err != nil {
		return Models{}, err
	}

	todoRepo := NewMemoryRepository(TodoSchema.ID)
	if err := Seed[Todo](ctx, TodoSchema, todoRepo, todos, TodoInputFrom); err != nil {
		return Models{}, err
	}

	return NewModels(bookRepo, todoRepo), nil
}
