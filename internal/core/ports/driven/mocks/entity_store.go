package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/bank-core/internal/core/domain"
	"github.com/custodia-labs/bank-core/internal/core/ports/driven"
)

// Ensure MockEntityStore implements EntityStore
var _ driven.EntityStore[*domain.Branch] = (*MockEntityStore[*domain.Branch])(nil)

// MockEntityStore is an in-memory EntityStore for testing
type MockEntityStore[T domain.Entity] struct {
	mu       sync.RWMutex
	entities map[int64]T
	nextID   int64

	Err error
}

// NewMockEntityStore creates a new MockEntityStore
func NewMockEntityStore[T domain.Entity]() *MockEntityStore[T] {
	return &MockEntityStore[T]{
		entities: make(map[int64]T),
	}
}

func (m *MockEntityStore[T]) Save(ctx context.Context, entity T) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	entity.SetID(m.nextID)
	m.entities[m.nextID] = entity
	return nil
}

func (m *MockEntityStore[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	if m.Err != nil {
		return zero, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entity, ok := m.entities[id]
	if !ok {
		return zero, domain.ErrNotFound
	}
	return entity, nil
}

func (m *MockEntityStore[T]) List(ctx context.Context) ([]T, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]T, 0, len(m.entities))
	for _, entity := range m.entities {
		result = append(result, entity)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GetID() < result[j].GetID() })
	return result, nil
}

func (m *MockEntityStore[T]) Delete(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entities, id)
	return nil
}

func (m *MockEntityStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}
