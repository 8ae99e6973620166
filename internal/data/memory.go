package data

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryRepository keeps records in an ordered slice for the lifetime of
// the process. Callers always receive copies of the stored slice.
type MemoryRepository[T any] struct {
	mu      sync.RWMutex
	id      func(T) int64
	records []T
}

// NewMemoryRepository returns an empty repository that reads record ids with id.
func NewMemoryRepository[T any](id func(T) int64) *MemoryRepository[T] {
	return &MemoryRepository[T]{id: id}
}

func (m *MemoryRepository[T]) All(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MemoryRepository[T]) Get(_ context.Context, id int64) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(id); i >= 0 {
		return m.records[i], nil
	}
	var zero T
	return zero, ErrRecordNotFound
}

func (m *MemoryRepository[T]) MaxID(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var maxID int64
	for _, rec := range m.records {
		maxID = max(maxID, m.id(rec))
	}
	return maxID, nil
}

func (m *MemoryRepository[T]) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

func (m *MemoryRepository[T]) Insert(_ context.Context, rec T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(m.id(rec)) >= 0 {
		return ErrDuplicateID
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *MemoryRepository[T]) Replace(_ context.Context, rec T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(m.id(rec))
	if i < 0 {
		return ErrRecordNotFound
	}
	m.records[i] = rec
	return nil
}

func (m *MemoryRepository[T]) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrRecordNotFound
	}
	m.records = slices.Delete(m.records, i, i+1)
	return nil
}

// indexOf returns the position of the first record with the given id, or -1.
// Callers must hold mu.
func (m *MemoryRepository[T]) indexOf(id int64) int {
	return slices.IndexFunc(m.records, func(rec T) bool { return m.id(rec) == id })
}

func sortByID[T any](records []T, id func(T) int64) {
	slices.SortStableFunc(records, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
}
