package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/domain"
)

type addCartItemRequest struct {
	ProductID  int64           `json:"productId" binding:"required"`
	DocumentID string          `json:"documentId"`
	Name       string          `json:"name" binding:"required"`
	Slug       string          `json:"slug"`
	PriceCents int64           `json:"priceCents"`
	Image      string          `json:"image"`
	Quantity   int             `json:"quantity"`
	Variant    *domain.Variant `json:"variant"`
}

type updateCartItemRequest struct {
	ProductID int64  `json:"productId" binding:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// sessionStore resolves the cart for the request's session header. A
// missing header is the caller's mistake, not a fresh session.
func sessionStore(c *gin.Context, carts *cart.Manager) (*cart.PersistentStore, bool) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		respondError(c, http.StatusBadRequest, sessionHeader+" header required")
		return nil, false
	}
	return carts.Get(c.Request.Context(), sessionID), true
}

func createCartSessionHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, store := carts.Create(c.Request.Context())
		c.Header(sessionHeader, id)
		respondData(c, http.StatusCreated, gin.H{"sessionId": id, "cart": store.Snapshot()})
	}
}

func destroyCartSessionHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			respondError(c, http.StatusBadRequest, sessionHeader+" header required")
			return
		}
		carts.Destroy(c.Request.Context(), sessionID)
		c.Status(http.StatusNoContent)
	}
}

func getCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c, carts)
		if !ok {
			return
		}
		respondData(c, http.StatusOK, store.Snapshot())
	}
}

func clearCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c, carts)
		if !ok {
			return
		}
		store.Clear(c.Request.Context())
		respondData(c, http.StatusOK, store.Snapshot())
	}
}

func addCartItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c, carts)
		if !ok {
			return
		}
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid cart item payload")
			return
		}
		if req.PriceCents < 0 {
			respondError(c, http.StatusBadRequest, "priceCents must be non-negative")
			return
		}

		store.AddItem(c.Request.Context(), domain.CartItem{
			ProductID:  req.ProductID,
			DocumentID: req.DocumentID,
			Name:       req.Name,
			Slug:       req.Slug,
			PriceCents: req.PriceCents,
			Image:      req.Image,
			Variant:    req.Variant,
		}, req.Quantity)
		respondData(c, http.StatusOK, store.Snapshot())
	}
}

func updateCartItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c, carts)
		if !ok {
			return
		}
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid cart update payload")
			return
		}

		store.UpdateQuantity(c.Request.Context(), req.ProductID, req.Quantity, req.VariantID)
		respondData(c, http.StatusOK, store.Snapshot())
	}
}

func removeCartItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c, carts)
		if !ok {
			return
		}
		productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "product id must be an integer")
			return
		}

		store.RemoveItem(c.Request.Context(), productID, c.Query("variant"))
		respondData(c, http.StatusOK, store.Snapshot())
	}
}
