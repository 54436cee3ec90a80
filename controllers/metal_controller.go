package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"jewelry-service/services"
)

// MetalController handles metal rate administration. Rates feed variant
// pricing, so writes invalidate the product caches.
type MetalController struct {
	metalService MetalServiceAPI
	cache        *CacheManager
	timeout      time.Duration
}

func NewMetalController(ms MetalServiceAPI, cache *CacheManager) *MetalController {
	return &MetalController{
		metalService: ms,
		cache:        cache,
		timeout:      DefaultContextTimeout,
	}
}

func (h *MetalController) GetMetals(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	metals, err := h.metalService.ListMetals(ctx)
	if err != nil {
		zap.L().Error("Failed to list metals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch metals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"metals": metals})
}

func (h *MetalController) GetMetalByType(c *gin.Context) {
	metalType := strings.TrimSpace(c.Param("type"))
	if metalType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Metal type is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	metal, err := h.metalService.GetMetal(ctx, metalType)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Metal not found"})
			return
		}
		zap.L().Error("Database error", zap.Error(err), zap.String("metal_type", metalType))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, metal)
}

// UpsertMetal creates or updates a rate keyed by metal_type.
func (h *MetalController) UpsertMetal(c *gin.Context) {
	var req services.MetalUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	metal, created, err := h.metalService.UpsertMetal(ctx, req)
	if err != nil {
		zap.L().Error("Failed to upsert metal", zap.Error(err), zap.String("metal_type", req.MetalType))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save metal"})
		return
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			zap.L().Error("Failed to invalidate cache after metal change", zap.Error(err))
		}
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, metal)
}

func (h *MetalController) DeleteMetal(c *gin.Context) {
	metalType := strings.TrimSpace(c.Param("type"))
	if metalType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Metal type is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	deleted, err := h.metalService.DeleteMetal(ctx, metalType)
	if err != nil {
		zap.L().Error("Failed to delete metal", zap.Error(err), zap.String("metal_type", metalType))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete metal"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Metal not found"})
		return
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			zap.L().Error("Failed to invalidate cache after metal delete", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Metal deleted", "metal_type": metalType})
}
