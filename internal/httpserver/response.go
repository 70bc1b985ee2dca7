package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
)

// dataResponse is the envelope for every successful API payload.
type dataResponse struct {
	Data any   `json:"data"`
	Meta *meta `json:"meta,omitempty"`
}

type meta struct {
	Pagination productsvc.Pagination `json:"pagination"`
}

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, dataResponse{Data: data})
}

func respondPage(c *gin.Context, data any, p productsvc.Pagination) {
	c.JSON(http.StatusOK, dataResponse{Data: data, Meta: &meta{Pagination: p}})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": errorBody{Status: status, Message: message}})
}

// respondServiceError maps service failures onto HTTP statuses. Unexpected
// errors deliberately do not leak their message to the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, ordersvc.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}
