package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewelry-service/models"
)

// CartController handles shopping cart endpoints. The user is identified by
// the X-User-ID header; there is no session layer in front of this service.
type CartController struct {
	cartService CartServiceAPI
	timeout     time.Duration
}

func NewCartController(cs CartServiceAPI) *CartController {
	return &CartController{
		cartService: cs,
		timeout:     DefaultContextTimeout,
	}
}

type addCartItemRequest struct {
	SKU      string          `json:"sku" binding:"required"`
	Kind     models.ItemKind `json:"kind" binding:"required,oneof=rts dyo diamond"`
	Quantity int             `json:"quantity" binding:"required,gt=0"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

func userIDFrom(c *gin.Context) (string, bool) {
	userID := strings.TrimSpace(c.GetHeader("X-User-ID"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return "", false
	}
	return userID, true
}

func (h *CartController) GetCart(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.GetCart(ctx, userID)
	if err != nil {
		zap.L().Error("Failed to fetch cart", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "subtotal": cart.Subtotal()})
}

func (h *CartController) AddItem(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.AddItem(ctx, userID, req.SKU, req.Kind, req.Quantity)
	if err != nil {
		zap.L().Warn("Failed to add cart item", zap.Error(err),
			zap.String("user_id", userID), zap.String("sku", req.SKU))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "subtotal": cart.Subtotal()})
}

func (h *CartController) UpdateItem(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}
	sku := strings.TrimSpace(c.Param("sku"))
	if sku == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SKU is required"})
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.UpdateQuantity(ctx, userID, sku, *req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "subtotal": cart.Subtotal()})
}

func (h *CartController) RemoveItem(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}
	sku := strings.TrimSpace(c.Param("sku"))
	if sku == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SKU is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.RemoveItem(ctx, userID, sku)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "subtotal": cart.Subtotal()})
}

func (h *CartController) ClearCart(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.cartService.ClearCart(ctx, userID); err != nil {
		zap.L().Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
