package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	productrepo "storefront/internal/repository/product"
	productsvc "storefront/internal/service/product"
)

func listProductsHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := productrepo.ListFilter{
			Search:       c.Query("search"),
			CategorySlug: c.Query("category"),
			Sort:         c.Query("sort"),
		}
		filter.Page, _ = strconv.Atoi(c.Query("page"))
		filter.PageSize, _ = strconv.Atoi(c.Query("pageSize"))

		if v := c.Query("minPrice"); v != "" {
			cents, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				respondError(c, http.StatusBadRequest, "minPrice must be an integer amount in cents")
				return
			}
			filter.MinPriceCents = &cents
		}
		if v := c.Query("maxPrice"); v != "" {
			cents, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				respondError(c, http.StatusBadRequest, "maxPrice must be an integer amount in cents")
				return
			}
			filter.MaxPriceCents = &cents
		}
		if v := c.Query("featured"); v != "" {
			featured, err := strconv.ParseBool(v)
			if err != nil {
				respondError(c, http.StatusBadRequest, "featured must be a boolean")
				return
			}
			filter.Featured = &featured
		}

		products, page, err := svc.List(c.Request.Context(), filter)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondPage(c, products, page)
	}
}

func featuredProductsHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		products, err := svc.Featured(c.Request.Context(), limit)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, products)
	}
}

func searchProductsHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		products, err := svc.Search(c.Request.Context(), c.Query("q"), limit)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, products)
	}
}

func productBySlugHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, product)
	}
}

func productByIDHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "product id must be an integer")
			return
		}
		product, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondData(c, http.StatusOK, product)
	}
}
