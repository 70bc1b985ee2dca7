package domain

// Variant identifies a specific purchasable configuration of a product,
// e.g. a size or color. When present it participates in cart row identity.
type Variant struct {
	ID         string            `json:"id"`
	Name       string            `json:"name,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// CartItem is one row in the cart. Name, slug, price and image are
// snapshotted at add time and are not live-synced with the product.
type CartItem struct {
	ProductID  int64    `json:"productId"`
	DocumentID string   `json:"documentId,omitempty"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug,omitempty"`
	PriceCents int64    `json:"priceCents"`
	Quantity   int      `json:"quantity"`
	Image      string   `json:"image,omitempty"`
	Variant    *Variant `json:"variant,omitempty"`
}

// VariantID returns the identity component contributed by the variant.
// An absent variant compares as the empty id.
func (i CartItem) VariantID() string {
	if i.Variant == nil {
		return ""
	}
	return i.Variant.ID
}

// Cart is the aggregate of line items plus derived totals for one shopping
// session. TotalCents and ItemCount are always recomputed from Items.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"totalCents"`
	ItemCount  int        `json:"itemCount"`
}
