package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	categorysvc "storefront/internal/service/category"
)

func listCategoriesHandler(svc *categorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, categories)
	}
}

func categoryBySlugHandler(svc *categorysvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, category)
	}
}
