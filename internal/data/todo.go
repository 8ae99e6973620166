package data

import "github.com/aoideee/shelf/internal/validator"

// Todo is a single task in the todos collection.
type Todo struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Priority    int    `json:"priority" yaml:"priority"`
	Complete    bool   `json:"complete" yaml:"complete"`
}

// TodoInput is the request body for creating or replacing a todo.
// Complete is optional and defaults to false.
type TodoInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority"`
	Complete    *bool   `json:"complete"`
}

var todoConstraints = []validator.Constraint{
	{Field: "title", Kind: validator.String, MinLength: 3},
	{Field: "description", Kind: validator.String, MinLength: 3, MaxLength: 100},
	{Field: "priority", Kind: validator.Int, Min: validator.Bound(1), Max: validator.Bound(5)},
	{Field: "complete", Kind: validator.Bool, Optional: true},
}

// TodoSchema describes the todo entity to a Store.
var TodoSchema = Schema[Todo]{
	Name:        "todo",
	Constraints: todoConstraints,
	ID:          func(t Todo) int64 { return t.ID },
	SetID:       func(t *Todo, id int64) { t.ID = id },
	Title:       func(t Todo) string { return t.Title },
}

func (in TodoInput) Values() map[string]any {
	return map[string]any{
		"title":       in.Title,
		"description": in.Description,
		"priority":    in.Priority,
		"complete":    in.Complete,
	}
}

func (in TodoInput) Record() Todo {
	return Todo{
		Title:       valueOf(in.Title),
		Description: valueOf(in.Description),
		Priority:    valueOf(in.Priority),
		Complete:    valueOf(in.Complete),
	}
}

// TodoInputFrom maps a stored todo back onto an input.
func TodoInputFrom(t Todo) Input[Todo] {
	return TodoInput{
		Title:       &t.Title,
		Description: &t.Description,
		Priority:    &t.Priority,
		Complete:    &t.Complete,
	}
}
