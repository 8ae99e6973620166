package data

import (
	"context"
	"database/sql"
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// TodoModel implements Repository[Todo] over a SQLite todos table.
// The database must be opened with the "sqlite" driver registered by
// modernc.org/sqlite.
type TodoModel struct {
	DB *sql.DB
}

// EnsureSchema creates the todos table and its id index when missing.
func (m TodoModel) EnsureSchema(ctx context.Context) error {
	_, err := m.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS todos (
			id          INTEGER NOT NULL PRIMARY KEY,
			title       VARCHAR,
			description VARCHAR,
			priority    INTEGER,
			complete    BOOLEAN DEFAULT 0
		)`)
	if err != nil {
		return err
	}
	_, err = m.DB.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS ix_todos_id ON todos (id)`)
	return err
}

func (m TodoModel) All(ctx context.Context) ([]Todo, error) {
	rows, err := m.DB.QueryContext(ctx, `
		SELECT id, title, description, priority, complete
		FROM todos
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []Todo{}
	for rows.Next() {
		var todo Todo
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Priority, &todo.Complete); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

func (m TodoModel) Get(ctx context.Context, id int64) (Todo, error) {
	var todo Todo
	err := m.DB.QueryRowContext(ctx, `
		SELECT id, title, description, priority, complete
		FROM todos
		WHERE id = ?`, id).Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Priority, &todo.Complete)
	if errors.Is(err, sql.ErrNoRows) {
		return Todo{}, ErrRecordNotFound
	}
	return todo, err
}

func (m TodoModel) MaxID(ctx context.Context) (int64, error) {
	var id int64
	err := m.DB.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM todos`).Scan(&id)
	return id, err
}

func (m TodoModel) Count(ctx context.Context) (int, error) {
	var n int
	err := m.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&n)
	return n, err
}

func (m TodoModel) Insert(ctx context.Context, todo Todo) error {
	_, err := m.DB.ExecContext(ctx, `
		INSERT INTO todos (id, title, description, priority, complete)
		VALUES (?, ?, ?, ?, ?)`,
		todo.ID, todo.Title, todo.Description, todo.Priority, todo.Complete)
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		return ErrDuplicateID
	}
	return err
}

func (m TodoModel) Replace(ctx context.Context, todo Todo) error {
	result, err := m.DB.ExecContext(ctx, `
		UPDATE todos
		SET title = ?, description = ?, priority = ?, complete = ?
		WHERE id = ?`,
		todo.Title, todo.Description, todo.Priority, todo.Complete, todo.ID)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (m TodoModel) Delete(ctx context.Context, id int64) error {
	result, err := m.DB.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
