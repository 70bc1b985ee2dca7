package product

import (
	"context"

	"storefront/internal/domain"
)

// ListFilter narrows and pages a product listing. Zero values mean "no
// constraint"; price bounds are cents.
type ListFilter struct {
	Search        string
	CategorySlug  string
	MinPriceCents *int64
	MaxPriceCents *int64
	Featured      *bool
	Sort          string
	Page          int
	PageSize      int
}

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Product, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
