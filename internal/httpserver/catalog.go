package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eggypro-store/internal/domain"
	"eggypro-store/internal/price"
	"eggypro-store/internal/service/catalog"
)

// productView decorates a catalog product with display-ready price text.
// The raw price field passes through untouched so clients that do their own
// normalization keep working.
type productView struct {
	domain.Product
	PriceFormatted string `json:"priceFormatted"`
}

func toProductView(p domain.Product) productView {
	return productView{Product: p, PriceFormatted: price.Format(p.Price)}
}

func listProductsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := svc.List(c.Request.Context())
		views := make([]productView, len(products))
		for i, p := range products {
			views[i] = toProductView(p)
		}
		c.JSON(http.StatusOK, gin.H{"products": views, "total": len(views)})
	}
}

func getProductHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, toProductView(*p))
	}
}
