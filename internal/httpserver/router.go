package httpserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"eggypro-store/internal/cart"
	"eggypro-store/internal/service/catalog"
)

// Deps carries the services the routes dispatch to.
type Deps struct {
	CatalogSvc     *catalog.Service
	Carts          *cart.Manager
	AllowedOrigins []string
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	ch := &cartHandlers{carts: deps.Carts, catalog: deps.CatalogSvc, logger: logger}

	api := router.Group("/api")
	{
		api.GET("/products", listProductsHandler(deps.CatalogSvc))
		api.GET("/products/:slug", getProductHandler(deps.CatalogSvc))

		api.GET("/cart", ch.get)
		api.POST("/cart/items", ch.addItem)
		api.PATCH("/cart/items/:id", ch.updateItem)
		api.DELETE("/cart/items/:id", ch.removeItem)
		api.POST("/cart/undo", ch.undo)
		api.DELETE("/cart", ch.clear)
		api.POST("/cart/visibility", ch.visibility)
		api.POST("/buy-now", ch.buyNow)
	}

	return router
}
