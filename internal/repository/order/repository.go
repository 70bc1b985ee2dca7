package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// GetByCheckoutRef looks up an order previously created for the same
	// checkout reference, used to keep order creation idempotent.
	GetByCheckoutRef(ctx context.Context, ref string) (*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error)
}
