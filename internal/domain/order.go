package domain

import "time"

// Order statuses, in rough lifecycle order.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem is a cart row frozen into an order at checkout time.
type OrderItem struct {
	ProductID   int64    `json:"productId"`
	ProductName string   `json:"productName"`
	ProductSlug string   `json:"productSlug,omitempty"`
	PriceCents  int64    `json:"priceCents"`
	Quantity    int      `json:"quantity"`
	TotalCents  int64    `json:"totalCents"`
	Variant     *Variant `json:"variant,omitempty"`
}

type ShippingAddress struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Order struct {
	ID              int64           `json:"id"`
	DocumentID      string          `json:"documentId"`
	OrderNumber     string          `json:"orderNumber"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items"`
	SubtotalCents   int64           `json:"subtotalCents"`
	TaxCents        int64           `json:"taxCents"`
	ShippingCents   int64           `json:"shippingCents"`
	TotalCents      int64           `json:"totalCents"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CheckoutRef     string          `json:"checkoutRef,omitempty"`
	CustomerEmail   string          `json:"customerEmail"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
