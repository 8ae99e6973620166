// Package data provides the record types, validation rules and storage
// backends for the books and todos collections.
package data

import (
	"strings"

	"github.com/aoideee/shelf/internal/validator"
)

// Book represents a single book record.
type Book struct {
	ID          int64  `json:"id" yaml:"id"`                                 // Unique identifier assigned by the store
	Title       string `json:"title" yaml:"title"`                           // Title of the book
	Author      string `json:"author" yaml:"author"`                         // Author name
	Description string `json:"description" yaml:"description"`               // Short description, at most 100 characters
	Rating      int    `json:"rating" yaml:"rating"`                         // Reader rating from 1 to 5
	PublishDate int    `json:"publish_date" yaml:"publish_date"`             // Year the book was published
	Category    string `json:"category,omitempty" yaml:"category,omitempty"` // Optional catalog category
}

// BookInput holds the fields a client sends when creating or replacing a book.
// Every field is a pointer so a missing field can be told apart from a zero value.
// ID is ignored on create and required on update.
type BookInput struct {
	ID          *int64  `json:"id"`
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
	Rating      *int    `json:"rating"`
	PublishDate *int    `json:"publish_date"`
	Category    *string `json:"category"`
}

var bookConstraints = []validator.Constraint{
	{Field: "title", Kind: validator.String, MinLength: 3},
	{Field: "author", Kind: validator.String, MinLength: 1},
	{Field: "description", Kind: validator.String, MinLength: 1, MaxLength: 100},
	{Field: "rating", Kind: validator.Int, Min: validator.Bound(1), Max: validator.Bound(5)},
	{Field: "publish_date", Kind: validator.Int, Min: validator.Bound(1), Max: validator.Bound(9999)},
	{Field: "category", Kind: validator.String, Optional: true, MaxLength: 50},
}

// BookSchema describes the book entity to a Store.
var BookSchema = Schema[Book]{
	Name:        "book",
	Constraints: bookConstraints,
	ID:          func(b Book) int64 { return b.ID },
	SetID:       func(b *Book, id int64) { b.ID = id },
	Title:       func(b Book) string { return b.Title },
}

// Values implements Input.
func (in BookInput) Values() map[string]any {
	return map[string]any{
		"title":        in.Title,
		"author":       in.Author,
		"description":  in.Description,
		"rating":       in.Rating,
		"publish_date": in.PublishDate,
		"category":     in.Category,
	}
}

// Record implements Input. The id is left for the store to set.
func (in BookInput) Record() Book {
	return Book{
		Title:       valueOf(in.Title),
		Author:      valueOf(in.Author),
		Description: valueOf(in.Description),
		Rating:      valueOf(in.Rating),
		PublishDate: valueOf(in.PublishDate),
		Category:    valueOf(in.Category),
	}
}

// BookInputFrom maps a stored book back onto an input, for revalidation.
func BookInputFrom(b Book) Input[Book] {
	in := BookInput{
		ID:          &b.ID,
		Title:       &b.Title,
		Author:      &b.Author,
		Description: &b.Description,
		Rating:      &b.Rating,
		PublishDate: &b.PublishDate,
	}
	if b.Category != "" {
		in.Category = &b.Category
	}
	return in
}

// BookFilter selects books by field. Zero-valued fields are ignored; string
// fields compare without regard to case.
type BookFilter struct {
	Rating      int
	PublishDate int
	Author      string
	Category    string
}

// Matches reports whether b satisfies every set field of f.
func (f BookFilter) Matches(b Book) bool {
	if f.Rating != 0 && b.Rating != f.Rating {
		return false
	}
	if f.PublishDate != 0 && b.PublishDate != f.PublishDate {
		return false
	}
	if f.Author != "" && !strings.EqualFold(b.Author, f.Author) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(b.Category, f.Category) {
		return false
	}
	return true
}

// DefaultBooks is the seed set the books collection starts with.
func DefaultBooks() []Book {
	return []Book{
		{ID: 1, Title: "Computer Science Pro", Author: "RJR", Description: "Good", Rating: 4, PublishDate: 2024, Category: "Computer Science"},
		{ID: 2, Title: "Computer Science Pro - 2", Author: "RJR", Description: "Better", Rating: 5, PublishDate: 2024, Category: "Computer Science"},
		{ID: 3, Title: "Master End Points", Author: "RJR", Description: "Better", Rating: 5, PublishDate: 2023, Category: "Programming"},
		{ID: 4, Title: "HP - 1", Author: "RJR - 1", Description: "Worse", Rating: 1, PublishDate: 2024, Category: "Fiction"},
		{ID: 5, Title: "HP - 2", Author: "RJR - 1", Description: "Bad", Rating: 2, PublishDate: 2023, Category: "Fiction"},
		{ID: 6, Title: "HP - 1", Author: "RJR - 1", Description: "Good", Rating: 3, PublishDate: 2023, Category: "Fiction"},
	}
}

func valueOf[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
