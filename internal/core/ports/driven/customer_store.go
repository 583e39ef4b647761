package driven

import (
	"context"

	"github.com/custodia-labs/bank-core/internal/core/domain"
)

// CustomerStore holds customer identity records (PostgreSQL)
type CustomerStore interface {
	// Save creates a customer and assigns its ID.
	// Returns domain.ErrAlreadyExists if the email is taken.
	Save(ctx context.Context, customer *domain.Customer) error

	// GetByEmail retrieves a customer by exact email
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// ExistsByEmail reports whether the email is registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
