package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id, document_id, name, slug, COALESCE(description, ''), COALESCE(image, ''), created_at, updated_at
FROM categories
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	const q = `
SELECT id, document_id, name, slug, COALESCE(description, ''), COALESCE(image, ''), created_at, updated_at
FROM categories
WHERE slug = $1
`
	var c domain.Category
	err := r.pool.QueryRow(ctx, q, slug).Scan(&c.ID, &c.DocumentID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (document_id, name, slug, description, image)
VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, $3, NULLIF($4, ''), NULLIF($5, ''))
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    description = COALESCE(EXCLUDED.description, categories.description),
    image = COALESCE(EXCLUDED.image, categories.image),
    updated_at = now()
RETURNING id, document_id, created_at, updated_at
`
	out := c
	err := r.pool.QueryRow(ctx, q, c.DocumentID, c.Name, c.Slug, c.Description, c.Image).
		Scan(&out.ID, &out.DocumentID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
