package driven

import (
	"context"

	"github.com/custodia-labs/bank-core/internal/core/domain"
)

// EntityStore is plain CRUD persistence for back-office records
type EntityStore[T domain.Entity] interface {
	// Save inserts the entity and assigns its ID
	Save(ctx context.Context, entity T) error

	// Get retrieves an entity by ID, or domain.ErrNotFound
	Get(ctx context.Context, id int64) (T, error)

	// List retrieves all entities ordered by ID
	List(ctx context.Context) ([]T, error)

	// Delete removes an entity. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id int64) error
}
