package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"eggypro-store/internal/cart"
	"eggypro-store/internal/domain"
	"eggypro-store/internal/price"
	"eggypro-store/internal/service/catalog"
)

type cartHandlers struct {
	carts   *cart.Manager
	catalog *catalog.Service
	logger  *zap.Logger
}

// cartView is the read-only projection exposed to the view layer. The undo
// buffer contents stay server-side; callers only see whether undo is
// available.
type cartView struct {
	Items               []domain.CartItem `json:"items"`
	TotalItems          int               `json:"totalItems"`
	TotalPrice          float64           `json:"totalPrice"`
	TotalPriceFormatted string            `json:"totalPriceFormatted"`
	IsOpen              bool              `json:"isOpen"`
	CanUndo             bool              `json:"canUndo"`
}

func viewOf(s domain.CartState) cartView {
	items := s.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartView{
		Items:               items,
		TotalItems:          s.TotalItems,
		TotalPrice:          s.TotalPrice,
		TotalPriceFormatted: price.Format(s.TotalPrice),
		IsOpen:              s.IsOpen,
		CanUndo:             s.CanUndo,
	}
}

func (h *cartHandlers) controller(c *gin.Context) *cart.Controller {
	return h.carts.Get(c.Request.Context(), sessionID(c))
}

func (h *cartHandlers) get(c *gin.Context) {
	ctrl := h.controller(c)
	c.JSON(http.StatusOK, viewOf(ctrl.State()))
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Slug      string `json:"slug"`
	Quantity  int    `json:"quantity"`
}

func (h *cartHandlers) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	product, ok := h.resolveProduct(c, req)
	if !ok {
		return
	}

	ctrl := h.controller(c)
	if err := ctrl.AddItem(c.Request.Context(), *product, req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(ctrl.State()))
}

// resolveProduct finds the product being added; the cart freezes its
// name/price/image at add time and never revalidates them.
func (h *cartHandlers) resolveProduct(c *gin.Context, req addItemRequest) (*domain.Product, bool) {
	if req.Slug != "" {
		p, err := h.catalog.Get(c.Request.Context(), req.Slug)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return nil, false
		}
		return p, true
	}
	if req.ProductID != "" {
		for _, p := range h.catalog.List(c.Request.Context()) {
			if p.ID == req.ProductID {
				return &p, true
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	return nil, false
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *cartHandlers) updateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	ctrl := h.controller(c)
	if err := ctrl.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(ctrl.State()))
}

func (h *cartHandlers) removeItem(c *gin.Context) {
	deferred := c.Query("deferred") == "true"
	ctrl := h.controller(c)
	if err := ctrl.Remove(c.Request.Context(), c.Param("id"), deferred); err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(ctrl.State()))
}

func (h *cartHandlers) undo(c *gin.Context) {
	ctrl := h.controller(c)
	if err := ctrl.UndoDelete(c.Request.Context()); err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(ctrl.State()))
}

func (h *cartHandlers) clear(c *gin.Context) {
	ctrl := h.controller(c)
	ctrl.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, viewOf(ctrl.State()))
}

type visibilityRequest struct {
	Open *bool `json:"open"`
}

// visibility sets the open flag when a body is provided and toggles when
// it is absent.
func (h *cartHandlers) visibility(c *gin.Context) {
	ctrl := h.controller(c)
	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Open != nil {
		ctrl.SetOpen(*req.Open)
	} else {
		ctrl.ToggleCart()
	}
	c.JSON(http.StatusOK, viewOf(ctrl.State()))
}

func (h *cartHandlers) buyNow(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	product, ok := h.resolveProduct(c, req)
	if !ok {
		return
	}
	ctrl := h.controller(c)
	if err := ctrl.BuyNow(c.Request.Context(), *product, req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	// The navigation side effect: send the client on to checkout.
	c.Redirect(http.StatusSeeOther, "/checkout")
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrQuantityOutOfRange):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "quantity must be between 1 and 99"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
	case errors.Is(err, domain.ErrNothingToUndo):
		c.JSON(http.StatusConflict, gin.H{"error": "nothing to undo"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart operation failed"})
	}
}
