package handlers

import (
	"errors"
	"net/http"

	"beautyvault/internal/cart"
	"beautyvault/internal/checkout"
	"beautyvault/internal/logger"
	"beautyvault/internal/models"
	"beautyvault/internal/services/wix"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	carts    *cart.Store
	checkout *checkout.Orchestrator
	logger   *logger.Logger
}

func NewCartHandler(carts *cart.Store, checkout *checkout.Orchestrator, logger *logger.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		checkout: checkout,
		logger:   logger,
	}
}

func (h *CartHandler) Get(c *gin.Context) {
	loaded, err := h.carts.Load(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(loaded))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loaded, err := h.carts.AddItem(c.Param("id"), item)
	if errors.Is(err, cart.ErrMissingExternalID) || errors.Is(err, cart.ErrInvalidQuantity) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(loaded))
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loaded, err := h.carts.UpdateQuantity(c.Param("id"), c.Param("productId"), body.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quantity"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(loaded))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	loaded, err := h.carts.RemoveItem(c.Param("id"), c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}
	c.JSON(http.StatusOK, cartResponse(loaded))
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.carts.Clear(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// Checkout converts the cart into a Wix checkout session and returns the
// redirect URL. A failed creation leaves the cart intact for a manual retry.
func (h *CartHandler) Checkout(c *gin.Context) {
	session, err := h.checkout.Create(c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"data": session})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrStaleCart):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, wix.ErrInvalidResponse):
		// Broken integration rather than an unreachable one; the shopper sees
		// the same retryable failure either way.
		h.logger.Error("checkout: invalid platform response: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Checkout could not be created. Please try again."})
	case errors.Is(err, wix.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error("checkout: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Checkout could not be created. Please try again."})
	}
}

func cartResponse(loaded *cart.Cart) gin.H {
	resp := gin.H{
		"data": gin.H{
			"cart_id":     loaded.CartID,
			"items":       loaded.Items,
			"total_items": loaded.TotalItems(),
			"total_price": loaded.TotalPrice(),
		},
	}
	if loaded.Removed > 0 {
		resp["notice"] = gin.H{
			"removed_items": loaded.Removed,
			"message":       "Some outdated items were removed from your cart.",
		}
	}
	return resp
}
