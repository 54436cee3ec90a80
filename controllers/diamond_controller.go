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
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"jewelry-service/services"
)

// DiamondController handles loose stone inventory endpoints
type DiamondController struct {
	diamondService DiamondServiceAPI
	timeout        time.Duration
}

func NewDiamondController(ds DiamondServiceAPI) *DiamondController {
	return &DiamondController{
		diamondService: ds,
		timeout:        DefaultContextTimeout,
	}
}

// SearchDiamonds retrieves paginated stones filtered by shape, carat range
// and price range.
func (h *DiamondController) SearchDiamonds(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("perPage", "20"))
	if err != nil || perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	params := services.SearchDiamondsParams{
		Page:      page,
		PerPage:   perPage,
		Shape:     strings.TrimSpace(c.Query("shape")),
		MinCarat:  parseFloatQuery(c, "min_carat"),
		MaxCarat:  parseFloatQuery(c, "max_carat"),
		MinPrice:  parseFloatQuery(c, "min_price"),
		MaxPrice:  parseFloatQuery(c, "max_price"),
		Available: parseBoolQuery(c, "available"),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	diamonds, total, err := h.diamondService.SearchDiamonds(ctx, params)
	if err != nil {
		zap.L().Error("Error searching diamonds", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch diamonds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"diamonds": diamonds,
		"meta": gin.H{
			"page":       page,
			"perPage":    perPage,
			"total":      total,
			"totalPages": int(math.Ceil(float64(total) / float64(perPage))),
		},
	})
}

func (h *DiamondController) GetDiamondByStockNumber(c *gin.Context) {
	stockNumber := strings.TrimSpace(c.Param("stock_number"))
	if stockNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock number is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	diamond, err := h.diamondService.GetDiamond(ctx, stockNumber)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Diamond not found"})
			return
		}
		zap.L().Error("Database error", zap.Error(err), zap.String("stock_number", stockNumber))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, diamond)
}

func (h *DiamondController) CreateDiamond(c *gin.Context) {
	var req services.DiamondUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	diamond, err := h.diamondService.CreateDiamond(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Stock number already exists"})
			return
		}
		zap.L().Error("Failed to create diamond", zap.Error(err), zap.String("stock_number", req.StockNumber))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create diamond"})
		return
	}
	c.JSON(http.StatusCreated, diamond)
}

func (h *DiamondController) UpdateDiamond(c *gin.Context) {
	stockNumber := strings.TrimSpace(c.Param("stock_number"))
	if stockNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock number is required"})
		return
	}

	var updates bson.M
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}
	delete(updates, "_id")
	delete(updates, "stock_number")
	delete(updates, "created_at")
	delete(updates, "updated_at")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	matched, err := h.diamondService.UpdateDiamond(ctx, stockNumber, updates)
	if err != nil {
		zap.L().Error("Failed to update diamond", zap.Error(err), zap.String("stock_number", stockNumber))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update diamond"})
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Diamond not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Diamond updated", "stock_number": stockNumber})
}

func (h *DiamondController) DeleteDiamond(c *gin.Context) {
	stockNumber := strings.TrimSpace(c.Param("stock_number"))
	if stockNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock number is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	deleted, err := h.diamondService.DeleteDiamond(ctx, stockNumber)
	if err != nil {
		zap.L().Error("Failed to delete diamond", zap.Error(err), zap.String("stock_number", stockNumber))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete diamond"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Diamond not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Diamond deleted", "stock_number": stockNumber})
}
