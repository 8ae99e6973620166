package data

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrRecordNotFound is returned when no record matches the requested id or title.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidID is returned when an id is less than 1.
	ErrInvalidID = errors.New("id must be a positive integer")

	// ErrDuplicateID is returned by a backend asked to insert an id it already holds.
	ErrDuplicateID = errors.New("duplicate record id")
)

// ValidationError reports every field that failed its declared constraints.
// Errors maps the field name to a human readable message.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, field := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field)
		b.WriteString(" ")
		b.WriteString(e.Errors[field])
	}
	return b.String()
}
