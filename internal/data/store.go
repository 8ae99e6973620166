package data

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aoideee/shelf/internal/validator"
)

// Repository is the persistence contract a Store sits on top of.
// Implementations hold records in ascending id order and must be safe for
// concurrent use. They perform no validation and never assign ids.
type Repository[T any] interface {
	All(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (T, error)
	MaxID(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, rec T) error
	Replace(ctx context.Context, rec T) error
	Delete(ctx context.Context, id int64) error
}

// Input is a client-supplied candidate record. Values exposes the raw,
// possibly missing field values for validation; Record maps the input onto
// the canonical record type.
type Input[T any] interface {
	Values() map[string]any
	Record() T
}

// Schema describes one entity type: its constraints and how to reach the
// id and title of a record.
type Schema[T any] struct {
	Name        string
	Constraints []validator.Constraint
	ID          func(T) int64
	SetID       func(*T, int64)
	Title       func(T) string
}

// Store is a validated collection of records of one entity type.
// Mutations are serialized so id assignment stays unique.
type Store[T any] struct {
	mu     sync.Mutex
	schema Schema[T]
	repo   Repository[T]
}

// NewStore returns a Store enforcing schema over repo.
func NewStore[T any](schema Schema[T], repo Repository[T]) *Store[T] {
	return &Store[T]{schema: schema, repo: repo}
}

// Name returns the entity name the store was built for.
func (s *Store[T]) Name() string {
	return s.schema.Name
}

// Validate checks in against the schema constraints and returns a
// *ValidationError listing every violation, or nil.
func (s *Store[T]) Validate(in Input[T]) error {
	v := validator.New()
	v.CheckConstraints(s.schema.Constraints, in.Values())
	if !v.Valid() {
		return &ValidationError{Errors: v.Errors}
	}
	return nil
}

// List returns every record in insertion order.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	return s.repo.All(ctx)
}

// Len returns the number of stored records.
func (s *Store[T]) Len(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Get returns the record with the given id.
func (s *Store[T]) Get(ctx context.Context, id int64) (T, error) {
	if id < 1 {
		var zero T
		return zero, ErrInvalidID
	}
	return s.repo.Get(ctx, id)
}

// FindByTitle returns the first record whose title equals title, ignoring case.
func (s *Store[T]) FindByTitle(ctx context.Context, title string) (T, error) {
	var zero T
	if s.schema.Title == nil {
		return zero, fmt.Errorf("%s records have no title", s.schema.Name)
	}

	records, err := s.repo.All(ctx)
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if strings.EqualFold(s.schema.Title(rec), title) {
			return rec, nil
		}
	}
	return zero, ErrRecordNotFound
}

// Filter returns the records for which match reports true. No match yields
// an empty, non-nil slice.
func (s *Store[T]) Filter(ctx context.Context, match func(T) bool) ([]T, error) {
	records, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	matched := []T{}
	for _, rec := range records {
		if match(rec) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// Create validates in, assigns the next id and stores the record.
// The next id is one past the largest id held, or 1 for an empty store.
func (s *Store[T]) Create(ctx context.Context, in Input[T]) (T, error) {
	var zero T
	if err := s.Validate(in); err != nil {
		return zero, err
	}
	rec := in.Record()

	s.mu.Lock()
	defer s.mu.Unlock()

	maxID, err := s.repo.MaxID(ctx)
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", s.schema.Name, err)
	}
	s.schema.SetID(&rec, maxID+1)

	if err := s.repo.Insert(ctx, rec); err != nil {
		return zero, fmt.Errorf("create %s: %w", s.schema.Name, err)
	}
	return rec, nil
}

// Update validates in and replaces the record with the given id, keeping
// its position in the collection.
func (s *Store[T]) Update(ctx context.Context, id int64, in Input[T]) error {
	if err := s.Validate(in); err != nil {
		return err
	}
	if id < 1 {
		return ErrInvalidID
	}
	rec := in.Record()
	s.schema.SetID(&rec, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Replace(ctx, rec)
}

// Delete removes the record with the given id.
func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Delete(ctx, id)
}

// Seed inserts records into repo when it is empty. Records without an id
// are numbered after the largest id seen so far; every record must pass
// the schema constraints.
func Seed[T any](ctx context.Context, schema Schema[T], repo Repository[T], records []T, toInput func(T) Input[T]) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	records, err = prepareSeed(schema, records, toInput)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := repo.Insert(ctx, rec); err != nil {
			return fmt.Errorf("seed %s %d: %w", schema.Name, schema.ID(rec), err)
		}
	}
	return nil
}

func prepareSeed[T any](schema Schema[T], records []T, toInput func(T) Input[T]) ([]T, error) {
	prepared := make([]T, 0, len(records))
	seen := make(map[int64]bool, len(records))
	var maxID int64

	for _, rec := range records {
		if id := schema.ID(rec); id > maxID {
			maxID = id
		}
	}

	for i, rec := range records {
		v := validator.New()
		v.CheckConstraints(schema.Constraints, toInput(rec).Values())
		if !v.Valid() {
			return nil, fmt.Errorf("seed %s at index %d: %w", schema.Name, i, &ValidationError{Errors: v.Errors})
		}

		id := schema.ID(rec)
		if id < 1 {
			maxID++
			id = maxID
			schema.SetID(&rec, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("seed %s at index %d: %w %d", schema.Name, i, ErrDuplicateID, id)
		}
		seen[id] = true
		prepared = append(prepared, rec)
	}

	// Repositories keep ascending id order.
	sortByID(prepared, schema.ID)
	return prepared, nil
}
