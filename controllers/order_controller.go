package controllers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"jewelry-service/models"
	"jewelry-service/pkg/apperrors"
)

// OrderController handles checkout and order lifecycle endpoints
type OrderController struct {
	orderService OrderServiceAPI
	timeout      time.Duration
}

func NewOrderController(os OrderServiceAPI) *OrderController {
	return &OrderController{
		orderService: os,
		timeout:      DefaultContextTimeout,
	}
}

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=pending paid shipped delivered cancelled"`
}

// Checkout converts the user's cart into a pending order.
func (h *OrderController) Checkout(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	order, err := h.orderService.CreateFromCart(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		zap.L().Error("Checkout failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderController) GetOrder(c *gin.Context) {
	orderNumber := strings.TrimSpace(c.Param("number"))
	if orderNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order number is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	order, err := h.orderService.GetOrder(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		zap.L().Error("Database error", zap.Error(err), zap.String("order_number", orderNumber))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrders lists the user's orders, newest first.
func (h *OrderController) GetOrders(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("perPage", "20"))
	if err != nil || perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	orders, total, err := h.orderService.ListOrders(ctx, userID, page, perPage)
	if err != nil {
		zap.L().Error("Failed to list orders", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"meta": gin.H{
			"page":       page,
			"perPage":    perPage,
			"total":      total,
			"totalPages": int(math.Ceil(float64(total) / float64(perPage))),
		},
	})
}

// UpdateOrderStatus advances an order along its lifecycle.
func (h *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderNumber := strings.TrimSpace(c.Param("number"))
	if orderNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order number is required"})
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	order, err := h.orderService.UpdateStatus(ctx, orderNumber, req.Status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if strings.Contains(err.Error(), "cannot transition") {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Failed to update order status", zap.Error(err),
			zap.String("order_number", orderNumber), zap.String("status", string(req.Status)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	c.JSON(http.StatusOK, order)
}
