package driving

import (
	"context"

	"github.com/custodia-labs/bank-core/internal/core/domain"
)

// EntityService manages one kind of back-office record
type EntityService[T domain.Entity] interface {
	Create(ctx context.Context, entity T) (T, error)
	Get(ctx context.Context, id int64) (T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id int64) error
}
