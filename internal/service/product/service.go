package product

import (
	"context"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

const (
	defaultPageSize     = 25
	maxPageSize         = 100
	defaultFeaturedSize = 10
	defaultSearchSize   = 20
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Pagination describes the page of results returned by List.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

func (s *Service) List(ctx context.Context, f productrepo.ListFilter) ([]domain.Product, Pagination, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
	f.Search = strings.TrimSpace(f.Search)
	f.CategorySlug = strings.TrimSpace(f.CategorySlug)

	products, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, Pagination{}, err
	}

	pageCount := total / f.PageSize
	if total%f.PageSize != 0 {
		pageCount++
	}
	return products, Pagination{
		Page:      f.Page,
		PageSize:  f.PageSize,
		PageCount: pageCount,
		Total:     total,
	}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit < 1 {
		limit = defaultFeaturedSize
	}
	return s.repo.ListFeatured(ctx, limit)
}

// Search matches the query against name, description and SKU. An empty
// query returns no results rather than the whole catalog.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Product{}, nil
	}
	if limit < 1 {
		limit = defaultSearchSize
	}
	return s.repo.Search(ctx, query, limit)
}

func (s *Service) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	return s.repo.Upsert(ctx, p)
}
