package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// sessionHeader carries the shopping session id on every cart request.
const sessionHeader = "X-Cart-Session"

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type", sessionHeader},
		ExposeHeaders:    []string{sessionHeader},
		AllowCredentials: true,
		MaxAge:           5 * time.Minute,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	api.GET("/products", listProductsHandler(deps.Products))
	api.GET("/products/featured", featuredProductsHandler(deps.Products))
	api.GET("/products/search", searchProductsHandler(deps.Products))
	api.GET("/products/slug/:slug", productBySlugHandler(deps.Products))
	api.GET("/products/:id", productByIDHandler(deps.Products))

	api.GET("/categories", listCategoriesHandler(deps.Categories))
	api.GET("/categories/:slug", categoryBySlugHandler(deps.Categories))

	api.POST("/orders", createOrderHandler(deps.Orders, deps.Carts))
	api.GET("/orders", listOrdersHandler(deps.Orders))
	api.GET("/orders/:id", orderByIDHandler(deps.Orders))
	api.PATCH("/orders/:id/status", orderStatusHandler(deps.Orders))

	api.POST("/cart/sessions", createCartSessionHandler(deps.Carts))
	api.DELETE("/cart/sessions", destroyCartSessionHandler(deps.Carts))
	api.GET("/cart", getCartHandler(deps.Carts))
	api.DELETE("/cart", clearCartHandler(deps.Carts))
	api.POST("/cart/items", addCartItemHandler(deps.Carts))
	api.PATCH("/cart/items", updateCartItemHandler(deps.Carts))
	api.DELETE("/cart/items/:productID", removeCartItemHandler(deps.Carts))

	return router
}
