package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const pgUniqueViolation = "23505"

// BookModel wraps a *sql.DB connection to PostgreSQL and implements
// Repository[Book] over the books table.
type BookModel struct {
	DB *sql.DB // Shared database connection pool
}

// EnsureSchema creates the books table when it does not exist yet.
func (m BookModel) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS books (
			book_id      bigint PRIMARY KEY,
			title        text NOT NULL,
			author       text NOT NULL,
			description  text NOT NULL,
			rating       integer NOT NULL,
			publish_date integer NOT NULL,
			category     text NOT NULL DEFAULT '',
			created_at   timestamp(0) with time zone NOT NULL DEFAULT NOW(),
			updated_at   timestamp(0) with time zone NOT NULL DEFAULT NOW()
		)`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := m.DB.ExecContext(ctx, query)
	return err
}

// All returns every book ordered by book_id.
func (m BookModel) All(ctx context.Context) ([]Book, error) {
	query := `
		SELECT book_id, title, author, description, rating, publish_date, category
		FROM books
		ORDER BY book_id ASC`

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	// Always close the result set when we are done to free the connection.
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		var book Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Description,
			&book.Rating,
			&book.PublishDate,
			&book.Category,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(ctx context.Context, id int64) (Book, error) {
	query := `
		SELECT book_id, title, author, description, rating, publish_date, category
		FROM books
		WHERE book_id = $1`

	var book Book
	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.Rating,
		&book.PublishDate,
		&book.Category,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return Book{}, ErrRecordNotFound
		default:
			return Book{}, err
		}
	}
	return book, nil
}

// MaxID returns the largest book_id in the table, or 0 when it is empty.
func (m BookModel) MaxID(ctx context.Context) (int64, error) {
	var id int64
	err := m.DB.QueryRowContext(ctx, `SELECT COALESCE(MAX(book_id), 0) FROM books`).Scan(&id)
	return id, err
}

// Count returns the number of rows in the books table.
func (m BookModel) Count(ctx context.Context) (int, error) {
	var n int
	err := m.DB.QueryRowContext(ctx, `SELECT count(*) FROM books`).Scan(&n)
	return n, err
}

// Insert adds a new book row using the id already set on book.
func (m BookModel) Insert(ctx context.Context, book Book) error {
	query := `
		INSERT INTO books (book_id, title, author, description, rating, publish_date, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := m.DB.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Description,
		book.Rating,
		book.PublishDate,
		book.Category,
	)

	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateID
	}
	return err
}

// Replace overwrites every column of the row matching book.ID.
// Returns ErrRecordNotFound if no row was updated.
func (m BookModel) Replace(ctx context.Context, book Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, description = $3, rating = $4,
		    publish_date = $5, category = $6, updated_at = CURRENT_TIMESTAMP
		WHERE book_id = $7`

	// Collect all arguments in order matching the $N placeholders above.
	args := []any{
		book.Title,
		book.Author,
		book.Description,
		book.Rating,
		book.PublishDate,
		book.Category,
		book.ID,
	}

	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes the book with the given id.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(ctx context.Context, id int64) error {
	result, err := m.DB.ExecContext(ctx, `DELETE FROM books WHERE book_id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// requireAffected turns a zero row count into ErrRecordNotFound.
func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
