// Package cart holds the in-process shopping cart: an insertion-ordered
// collection of line items keyed by product+variant, with derived totals
// recomputed after every mutation.
package cart

import (
	"sync"

	"storefront/internal/domain"
)

// Store owns one cart and keeps its invariants under mutation: rows are
// unique per (productId, variant id), quantities are always >= 1, and the
// aggregates always match the item list. Every input produces a defined
// state transition; malformed values are normalized, never rejected.
type Store struct {
	mu    sync.Mutex
	items []domain.CartItem
	total int64
	count int
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{}
}

// AddItem merges the candidate into an existing row with the same identity,
// or appends a new row. On merge the existing row keeps its snapshotted
// metadata (name, price, image); only the quantity accumulates.
//
// A quantity <= 0 is treated as 1: an add always adds at least one unit,
// so a caller passing 0 intending "no-op" adds one instead. Use
// UpdateQuantity to set an exact count or remove a row.
func (s *Store) AddItem(item domain.CartItem, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.find(item.ProductID, item.VariantID()); idx >= 0 {
		s.items[idx].Quantity += quantity
	} else {
		item.Quantity = quantity
		item.Variant = copyVariant(item.Variant)
		s.items = append(s.items, item)
	}
	s.recompute()
}

// RemoveItem drops the row matching the identity exactly. An empty
// variantID matches only rows without a variant. Missing rows are a no-op.
func (s *Store) RemoveItem(productID int64, variantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.find(productID, variantID)
	if idx < 0 {
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.recompute()
}

// UpdateQuantity sets the matching row's quantity to max(0, quantity). A
// resulting quantity of 0 removes the row entirely; rows with quantity 0
// are never stored. Missing rows are a no-op.
func (s *Store) UpdateQuantity(productID int64, quantity int, variantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.find(productID, variantID)
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	} else {
		s.items[idx].Quantity = quantity
	}
	s.recompute()
}

// Clear resets the cart to empty.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.recompute()
}

// ItemQuantity returns the matching row's quantity, or 0 when absent. Pure
// read, no side effects.
func (s *Store) ItemQuantity(productID int64, variantID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.find(productID, variantID); idx >= 0 {
		return s.items[idx].Quantity
	}
	return 0
}

// Snapshot returns a deep copy of the cart. Consumers always observe
// post-mutation aggregates, never an intermediate state.
func (s *Store) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(s.items))
	for i, item := range s.items {
		item.Variant = copyVariant(item.Variant)
		items[i] = item
	}
	return domain.Cart{
		Items:      items,
		TotalCents: s.total,
		ItemCount:  s.count,
	}
}

// Restore replaces the cart contents with a previously persisted snapshot.
// Rows with a non-positive quantity are dropped and aggregates are
// recomputed from the items rather than trusted from the snapshot.
func (s *Store) Restore(cart domain.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	for _, item := range cart.Items {
		if item.Quantity < 1 {
			continue
		}
		item.Variant = copyVariant(item.Variant)
		s.items = append(s.items, item)
	}
	s.recompute()
}

func (s *Store) find(productID int64, variantID string) int {
	// Linear scan: carts hold tens of rows at most, an index would not pay
	// for itself.
	for i, item := range s.items {
		if item.ProductID == productID && item.VariantID() == variantID {
			return i
		}
	}
	return -1
}

// recompute folds over the full item list. Intentionally O(n) per mutation
// rather than incremental counters, so the aggregates can never drift from
// the items. Callers must hold s.mu.
func (s *Store) recompute() {
	var total int64
	count := 0
	for _, item := range s.items {
		total += item.PriceCents * int64(item.Quantity)
		count += item.Quantity
	}
	s.total = total
	s.count = count
}

func copyVariant(v *domain.Variant) *domain.Variant {
	if v == nil {
		return nil
	}
	out := domain.Variant{ID: v.ID, Name: v.Name}
	if v.Attributes != nil {
		out.Attributes = make(map[string]string, len(v.Attributes))
		for k, val := range v.Attributes {
			out.Attributes[k] = val
		}
	}
	return &out
}
