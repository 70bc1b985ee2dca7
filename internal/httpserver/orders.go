package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
)

type createOrderRequest struct {
	// Items may be omitted when the request carries a cart session header;
	// the order is then built from that cart's snapshot.
	Items           []domain.CartItem      `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	CustomerEmail   string                 `json:"customerEmail"`
	CheckoutRef     string                 `json:"checkoutRef"`
	TaxCents        int64                  `json:"taxCents"`
	ShippingCents   int64                  `json:"shippingCents"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func createOrderHandler(orders *ordersvc.Service, carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid order payload")
			return
		}

		sessionID := c.GetHeader(sessionHeader)
		fromCart := len(req.Items) == 0 && sessionID != ""
		if fromCart {
			req.Items = carts.Get(c.Request.Context(), sessionID).Snapshot().Items
		}

		order, err := orders.Create(c.Request.Context(), ordersvc.CreateInput{
			Items:           req.Items,
			ShippingAddress: req.ShippingAddress,
			CustomerEmail:   req.CustomerEmail,
			CheckoutRef:     req.CheckoutRef,
			TaxCents:        req.TaxCents,
			ShippingCents:   req.ShippingCents,
		})
		if err != nil {
			respondServiceError(c, err)
			return
		}

		// The cart handed its items over; an empty cart greets the next visit.
		if fromCart {
			carts.Get(c.Request.Context(), sessionID).Clear(c.Request.Context())
		}

		respondData(c, http.StatusCreated, order)
	}
}

func listOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			respondError(c, http.StatusBadRequest, "email query parameter required")
			return
		}
		orders, err := svc.ListByEmail(c.Request.Context(), email)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, orders)
	}
}

func orderByIDHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "order id must be an integer")
			return
		}
		order, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}

func orderStatusHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "order id must be an integer")
			return
		}
		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "status required")
			return
		}
		order, err := svc.UpdateStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, order)
	}
}
