package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/bank-core/internal/core/domain"
	"github.com/custodia-labs/bank-core/internal/core/ports/driven"
)

// Ensure MockCustomerStore implements CustomerStore
var _ driven.CustomerStore = (*MockCustomerStore)(nil)

// MockCustomerStore is an in-memory CustomerStore for testing.
// Set the *Err fields to simulate database failures.
type MockCustomerStore struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.Customer
	nextID  int64

	SaveErr   error
	GetErr    error
	ExistsErr error
}

// NewMockCustomerStore creates a new MockCustomerStore
func NewMockCustomerStore() *MockCustomerStore {
	return &MockCustomerStore{
		byEmail: make(map[string]*domain.Customer),
	}
}

func (m *MockCustomerStore) Save(ctx context.Context, customer *domain.Customer) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[customer.Email]; ok {
		return domain.ErrAlreadyExists
	}
	m.nextID++
	customer.ID = m.nextID
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	stored := *customer
	m.byEmail[customer.Email] = &stored
	return nil
}

func (m *MockCustomerStore) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	customer, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *customer
	return &c, nil
}

func (m *MockCustomerStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byEmail[email]
	return ok, nil
}

// Helper methods for testing

func (m *MockCustomerStore) Remove(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byEmail, email)
}

func (m *MockCustomerStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byEmail)
}
