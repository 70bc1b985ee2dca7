package domain

import "time"

// ProductVariant is a purchasable configuration listed on a product.
type ProductVariant struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	SKU        string            `json:"sku,omitempty"`
	PriceCents int64             `json:"priceCents"`
	Stock      int               `json:"stock"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type Product struct {
	ID             int64            `json:"id"`
	DocumentID     string           `json:"documentId"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Description    string           `json:"description,omitempty"`
	PriceCents     int64            `json:"priceCents"`
	SalePriceCents *int64           `json:"salePriceCents,omitempty"`
	SKU            string           `json:"sku"`
	Stock          int              `json:"stock"`
	Featured       bool             `json:"featured"`
	Images         []string         `json:"images,omitempty"`
	Variants       []ProductVariant `json:"variants,omitempty"`
	CategoryID     *int64           `json:"-"`
	Category       *Category        `json:"category,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}
