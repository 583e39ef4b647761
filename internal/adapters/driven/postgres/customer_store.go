package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/bank-core/internal/core/domain"
	"github.com/custodia-labs/bank-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CustomerStore = (*CustomerStore)(nil)

// CustomerStore implements driven.CustomerStore using PostgreSQL
type CustomerStore struct {
	db *DB
}

// NewCustomerStore creates a new CustomerStore
func NewCustomerStore(db *DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// Save inserts a customer and fills in its ID and creation time.
// The generated columns are only copied back once the insert commits.
func (s *CustomerStore) Save(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (name, email, password_hash, phone, date_of_birth, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
		RETURNING id, created_at
	`

	var (
		id        int64
		createdAt time.Time
	)
	err := s.db.Transaction(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query,
			customer.Name,
			customer.Email,
			customer.PasswordHash,
			customer.Phone,
			customer.DateOfBirth.Time,
			NullTime(customer.CreatedAt),
		).Scan(&id, &createdAt)
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("customer %s: %w", customer.Email, domain.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}

	customer.ID = id
	customer.CreatedAt = createdAt
	return nil
}

// GetByEmail retrieves a customer by exact email
func (s *CustomerStore) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, password_hash, phone, date_of_birth, created_at
		FROM customers
		WHERE email = $1
	`

	var customer domain.Customer
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.PasswordHash,
		&customer.Phone,
		&customer.DateOfBirth.Time,
		&customer.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select customer: %w", err)
	}

	customer.DateOfBirth = domain.DateOf(customer.DateOfBirth.Time)
	return &customer, nil
}

// ExistsByEmail reports whether a customer with this email exists
func (s *CustomerStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer email: %w", err)
	}
	return exists, nil
}
