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

// WishlistController handles wishlist endpoints
type WishlistController struct {
	wishlistService WishlistServiceAPI
	timeout         time.Duration
}

func NewWishlistController(ws WishlistServiceAPI) *WishlistController {
	return &WishlistController{
		wishlistService: ws,
		timeout:         DefaultContextTimeout,
	}
}

type addWishlistItemRequest struct {
	SKU  string          `json:"sku" binding:"required"`
	Kind models.ItemKind `json:"kind" binding:"required,oneof=rts dyo diamond"`
}

func (h *WishlistController) GetWishlist(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	wishlist, err := h.wishlistService.GetWishlist(ctx, userID)
	if err != nil {
		zap.L().Error("Failed to fetch wishlist", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

func (h *WishlistController) AddItem(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var req addWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	wishlist, err := h.wishlistService.AddItem(ctx, userID, req.SKU, req.Kind)
	if err != nil {
		zap.L().Error("Failed to add wishlist item", zap.Error(err),
			zap.String("user_id", userID), zap.String("sku", req.SKU))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add wishlist item"})
		return
	}
	c.JSON(http.StatusOK, wishlist)
}

func (h *WishlistController) RemoveItem(c *gin.Context) {
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

	wishlist, err := h.wishlistService.RemoveItem(ctx, userID, sku)
	if err != nil {
		zap.L().Error("Failed to remove wishlist item", zap.Error(err),
			zap.String("user_id", userID), zap.String("sku", sku))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove wishlist item"})
		return
	}
	c.JSON(http.StatusOK, wishlist)
}
