package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

// ErrInvalidInput marks failures the caller can fix by correcting the
// request, as opposed to repository errors.
var ErrInvalidInput = errors.New("invalid order input")

type Service struct {
	repo orderrepo.Repository
	now  func() time.Time
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateInput is the checkout handoff: a read-only snapshot of cart items
// plus the shipping details gathered at checkout. The cart itself is not
// touched here; clearing it after a successful order is the caller's job.
type CreateInput struct {
	Items           []domain.CartItem
	ShippingAddress domain.ShippingAddress
	CustomerEmail   string
	// CheckoutRef identifies the checkout attempt (the original system used
	// the payment session id). Re-submitting the same ref returns the
	// already-created order instead of a duplicate.
	CheckoutRef   string
	TaxCents      int64
	ShippingCents int64
}

// Create builds an order from the cart snapshot. Amounts are derived from
// the snapshotted item prices, not re-read from the catalog.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order requires at least one item", ErrInvalidInput)
	}
	email := strings.TrimSpace(in.CustomerEmail)
	if email == "" {
		return nil, fmt.Errorf("%w: customer email required", ErrInvalidInput)
	}
	if in.TaxCents < 0 || in.ShippingCents < 0 {
		return nil, fmt.Errorf("%w: amounts must be non-negative", ErrInvalidInput)
	}

	if ref := strings.TrimSpace(in.CheckoutRef); ref != "" {
		existing, err := s.repo.GetByCheckoutRef(ctx, ref)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	var subtotal int64
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity %d for product %d", ErrInvalidInput, it.Quantity, it.ProductID)
		}
		lineTotal := it.PriceCents * int64(it.Quantity)
		subtotal += lineTotal
		items = append(items, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.Name,
			ProductSlug: it.Slug,
			PriceCents:  it.PriceCents,
			Quantity:    it.Quantity,
			TotalCents:  lineTotal,
			Variant:     it.Variant,
		})
	}

	order := domain.Order{
		OrderNumber:     fmt.Sprintf("ORD-%d", s.now().UnixMilli()),
		Status:          domain.OrderStatusProcessing,
		Items:           items,
		SubtotalCents:   subtotal,
		TaxCents:        in.TaxCents,
		ShippingCents:   in.ShippingCents,
		TotalCents:      subtotal + in.TaxCents + in.ShippingCents,
		ShippingAddress: in.ShippingAddress,
		CheckoutRef:     strings.TrimSpace(in.CheckoutRef),
		CustomerEmail:   email,
	}
	return s.repo.Create(ctx, order)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return []domain.Order{}, nil
	}
	return s.repo.ListByEmail(ctx, email)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	switch status {
	case domain.OrderStatusPending, domain.OrderStatusProcessing, domain.OrderStatusShipped,
		domain.OrderStatusDelivered, domain.OrderStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
