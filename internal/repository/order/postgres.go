package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

const orderColumns = `
id, document_id, order_number, status, items, subtotal_cents, tax_cents, shipping_cents, total_cents,
shipping_address, COALESCE(checkout_ref, ''), customer_email, created_at, updated_at`

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

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	const q = `
INSERT INTO orders (document_id, order_number, status, items, subtotal_cents, tax_cents, shipping_cents, total_cents, shipping_address, checkout_ref, customer_email)
VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)
RETURNING id, document_id, created_at, updated_at
`
	out := o
	err := r.pool.QueryRow(ctx, q,
		o.DocumentID,
		o.OrderNumber,
		o.Status,
		o.Items,
		o.SubtotalCents,
		o.TaxCents,
		o.ShippingCents,
		o.TotalCents,
		o.ShippingAddress,
		o.CheckoutRef,
		o.CustomerEmail,
	).Scan(&out.ID, &out.DocumentID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		r.logger.Printf("order repo: create number=%s error=%v", o.OrderNumber, err)
		return nil, err
	}
	r.logger.Printf("order repo: created number=%s id=%d", out.OrderNumber, out.ID)
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	q := "SELECT " + orderColumns + `
FROM orders
WHERE id = $1
`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) GetByCheckoutRef(ctx context.Context, ref string) (*domain.Order, error) {
	q := "SELECT " + orderColumns + `
FROM orders
WHERE checkout_ref = $1
`
	return r.getOne(ctx, q, ref)
}

func (r *postgresRepo) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	q := "SELECT " + orderColumns + `
FROM orders
WHERE customer_email = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, email)
	if err != nil {
		r.logger.Printf("order repo: list email=%s error=%v", email, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	q := `
UPDATE orders
SET status = $1, updated_at = now()
WHERE id = $2
RETURNING ` + orderColumns
	row := r.pool.QueryRow(ctx, q, status, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update status id=%d error=%v", id, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) getOne(ctx context.Context, q string, arg interface{}) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, q, arg)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(s scanner) (*domain.Order, error) {
	var o domain.Order
	if err := s.Scan(
		&o.ID, &o.DocumentID, &o.OrderNumber, &o.Status, &o.Items,
		&o.SubtotalCents, &o.TaxCents, &o.ShippingCents, &o.TotalCents,
		&o.ShippingAddress, &o.CheckoutRef, &o.CustomerEmail, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
