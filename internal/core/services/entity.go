package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/bank-core/internal/core/domain"
	"github.com/custodia-labs/bank-core/internal/core/ports/driven"
	"github.com/custodia-labs/bank-core/internal/core/ports/driving"
)

// Ensure entityService implements EntityService
var _ driving.EntityService[*domain.Branch] = (*entityService[*domain.Branch])(nil)

// entityService is plain CRUD over an EntityStore.
// prepare fills defaults and rejects incomplete records before insert.
type entityService[T domain.Entity] struct {
	store   driven.EntityStore[T]
	prepare func(T) error
}

func (s *entityService[T]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	if s.prepare != nil {
		if err := s.prepare(entity); err != nil {
			return zero, err
		}
	}
	if err := s.store.Save(ctx, entity); err != nil {
		return zero, err
	}
	return entity, nil
}

func (s *entityService[T]) Get(ctx context.Context, id int64) (T, error) {
	return s.store.Get(ctx, id)
}

func (s *entityService[T]) List(ctx context.Context) ([]T, error) {
	return s.store.List(ctx)
}

// Delete removes an entity. Deleting a missing ID succeeds.
func (s *entityService[T]) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// requireFields returns a ValidationError for every blank value
func requireFields(fields map[string]string) error {
	missing := make(map[string]string)
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing[name] = fmt.Sprintf("%s is required", name)
		}
	}
	if verr := domain.NewValidationError(missing); verr != nil {
		return verr
	}
	return nil
}

// NewAccountService creates the account service
func NewAccountService(store driven.EntityStore[*domain.Account]) driving.EntityService[*domain.Account] {
	return newAccountService(store, time.Now)
}

func newAccountService(store driven.EntityStore[*domain.Account], now func() time.Time) *entityService[*domain.Account] {
	return &entityService[*domain.Account]{
		store: store,
		prepare: func(a *domain.Account) error {
			if err := requireFields(map[string]string{"account_type": a.AccountType}); err != nil {
				return err
			}
			if a.CreatedAt.IsZero() {
				a.CreatedAt = now()
			}
			return nil
		},
	}
}

// NewAdminService creates the admin service. Passwords are hashed before storage.
func NewAdminService(store driven.EntityStore[*domain.Admin], hasher driven.PasswordHasher) driving.EntityService[*domain.Admin] {
	return &entityService[*domain.Admin]{
		store: store,
		prepare: func(a *domain.Admin) error {
			if err := requireFields(map[string]string{
				"name":     a.Name,
				"email":    a.Email,
				"password": a.Password,
			}); err != nil {
				return err
			}
			hash, err := hasher.HashPassword(a.Password)
			if err != nil {
				return fmt.Errorf("hash admin password: %w", err)
			}
			a.PasswordHash = hash
			a.Password = ""
			return nil
		},
	}
}

// NewBranchService creates the branch service
func NewBranchService(store driven.EntityStore[*domain.Branch]) driving.EntityService[*domain.Branch] {
	return &entityService[*domain.Branch]{
		store: store,
		prepare: func(b *domain.Branch) error {
			return requireFields(map[string]string{"name": b.Name})
		},
	}
}

// NewLoanService creates the loan service. New loans start PENDING.
func NewLoanService(store driven.EntityStore[*domain.Loan]) driving.EntityService[*domain.Loan] {
	return newLoanService(store, time.Now)
}

func newLoanService(store driven.EntityStore[*domain.Loan], now func() time.Time) *entityService[*domain.Loan] {
	return &entityService[*domain.Loan]{
		store: store,
		prepare: func(l *domain.Loan) error {
			if l.Status == "" {
				l.Status = domain.StatusPending
			}
			if l.CreatedAt.IsZero() {
				l.CreatedAt = now()
			}
			return nil
		},
	}
}

// NewTransactionService creates the transaction service
func NewTransactionService(store driven.EntityStore[*domain.Transaction]) driving.EntityService[*domain.Transaction] {
	return newTransactionService(store, time.Now)
}

func newTransactionService(store driven.EntityStore[*domain.Transaction], now func() time.Time) *entityService[*domain.Transaction] {
	return &entityService[*domain.Transaction]{
		store: store,
		prepare: func(t *domain.Transaction) error {
			if err := requireFields(map[string]string{"transaction_type": t.TransactionType}); err != nil {
				return err
			}
			if t.Status == "" {
				t.Status = domain.StatusCompleted
			}
			if t.Date.IsZero() {
				t.Date = now()
			}
			return nil
		},
	}
}
