package product

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

const productColumns = `
p.id, p.document_id, p.name, p.slug, COALESCE(p.description, ''), p.price_cents, p.sale_price_cents,
p.sku, p.stock, p.featured, p.images, p.variants, p.category_id, p.created_at, p.updated_at,
c.id, c.document_id, c.name, c.slug, c.description, c.image, c.created_at, c.updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Product, int, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		where = append(where, "p.name ILIKE "+arg("%"+f.Search+"%"))
	}
	if f.CategorySlug != "" {
		where = append(where, "c.slug = "+arg(f.CategorySlug))
	}
	if f.MinPriceCents != nil {
		where = append(where, "p.price_cents >= "+arg(*f.MinPriceCents))
	}
	if f.MaxPriceCents != nil {
		where = append(where, "p.price_cents <= "+arg(*f.MaxPriceCents))
	}
	if f.Featured != nil {
		where = append(where, "p.featured = "+arg(*f.Featured))
	}

	base := `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
`
	if len(where) > 0 {
		base += "WHERE " + strings.Join(where, " AND ") + "\n"
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+base, args...).Scan(&total); err != nil {
		r.logger.Printf("product repo: count error=%v", err)
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 25
	}

	q := "SELECT " + productColumns + base + "ORDER BY " + orderClause(f.Sort) + "\n"
	q += "LIMIT " + arg(pageSize) + " OFFSET " + arg((page-1)*pageSize)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanProducts(rows)
	if err != nil {
		r.logger.Printf("product repo: list scan error=%v", err)
		return nil, 0, err
	}
	r.logger.Printf("product repo: list count=%d total=%d", len(result), total)
	return result, total, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	q := "SELECT " + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.id = $1
`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	q := "SELECT " + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.slug = $1
`
	return r.getOne(ctx, q, slug)
}

func (r *postgresRepo) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	q := "SELECT " + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.featured = TRUE
ORDER BY p.created_at DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		r.logger.Printf("product repo: featured error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	q := "SELECT " + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.name ILIKE $1 OR p.description ILIKE $1 OR p.sku ILIKE $1
ORDER BY p.name ASC
LIMIT $2
`
	rows, err := r.pool.Query(ctx, q, "%"+query+"%", limit)
	if err != nil {
		r.logger.Printf("product repo: search query=%q error=%v", query, err)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (document_id, name, slug, description, price_cents, sale_price_cents, sku, stock, featured, images, variants, category_id)
VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    sale_price_cents = EXCLUDED.sale_price_cents,
    sku = EXCLUDED.sku,
    stock = EXCLUDED.stock,
    featured = EXCLUDED.featured,
    images = EXCLUDED.images,
    variants = EXCLUDED.variants,
    category_id = EXCLUDED.category_id,
    updated_at = now()
RETURNING id, document_id, created_at, updated_at
`
	out := p
	err := r.pool.QueryRow(ctx, q,
		p.DocumentID,
		p.Name,
		p.Slug,
		p.Description,
		p.PriceCents,
		p.SalePriceCents,
		p.SKU,
		p.Stock,
		p.Featured,
		p.Images,
		p.Variants,
		p.CategoryID,
	).Scan(&out.ID, &out.DocumentID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert slug=%s error=%v", p.Slug, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted slug=%s id=%d", out.Slug, out.ID)
	return &out, nil
}

func (r *postgresRepo) getOne(ctx context.Context, q string, arg interface{}) (*domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, domain.ErrNotFound
	}
	return &result[0], nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		var (
			p            domain.Product
			catID        *int64
			catDocID     *string
			catName      *string
			catSlug      *string
			catDesc      *string
			catImage     *string
			catCreatedAt *time.Time
			catUpdatedAt *time.Time
		)
		if err := rows.Scan(
			&p.ID, &p.DocumentID, &p.Name, &p.Slug, &p.Description, &p.PriceCents, &p.SalePriceCents,
			&p.SKU, &p.Stock, &p.Featured, &p.Images, &p.Variants, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
			&catID, &catDocID, &catName, &catSlug, &catDesc, &catImage, &catCreatedAt, &catUpdatedAt,
		); err != nil {
			return nil, err
		}
		if catID != nil {
			cat := domain.Category{ID: *catID}
			if catDocID != nil {
				cat.DocumentID = *catDocID
			}
			if catName != nil {
				cat.Name = *catName
			}
			if catSlug != nil {
				cat.Slug = *catSlug
			}
			if catDesc != nil {
				cat.Description = *catDesc
			}
			if catImage != nil {
				cat.Image = *catImage
			}
			if catCreatedAt != nil {
				cat.CreatedAt = *catCreatedAt
			}
			if catUpdatedAt != nil {
				cat.UpdatedAt = *catUpdatedAt
			}
			p.Category = &cat
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func orderClause(sort string) string {
	switch sort {
	case "price:asc":
		return "p.price_cents ASC"
	case "price:desc":
		return "p.price_cents DESC"
	case "name:asc":
		return "p.name ASC"
	case "name:desc":
		return "p.name DESC"
	case "createdAt:asc":
		return "p.created_at ASC"
	default:
		return "p.created_at DESC"
	}
}
