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
)

// VariantController handles variant reads and design-your-own quoting
type VariantController struct {
	variantService VariantServiceAPI
	timeout        time.Duration
}

func NewVariantController(vs VariantServiceAPI) *VariantController {
	return &VariantController{
		variantService: vs,
		timeout:        DefaultContextTimeout,
	}
}

// GetProductVariants lists the variant summaries of a product.
func (h *VariantController) GetProductVariants(c *gin.Context) {
	productSKU := strings.TrimSpace(c.Param("sku"))
	if productSKU == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product SKU is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	variants, err := h.variantService.ListByProduct(ctx, productSKU)
	if err != nil {
		zap.L().Error("Failed to list variants", zap.Error(err), zap.String("product_sku", productSKU))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variants"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"variants": variants})
}

// GetExpandedVariants returns either the one priced combination addressed by
// metal_code, shape_code and center_stone_weight, or every priced combination
// of the variant when no combination is addressed.
func (h *VariantController) GetExpandedVariants(c *gin.Context) {
	variantSKU := strings.TrimSpace(c.Param("sku"))
	if variantSKU == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Variant SKU is required"})
		return
	}

	metalCode := strings.TrimSpace(c.Query("metal_code"))
	shapeCode := strings.TrimSpace(c.Query("shape_code"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if metalCode == "" && shapeCode == "" {
		variants, err := h.variantService.ListExpanded(ctx, variantSKU)
		if err != nil {
			zap.L().Error("Failed to list expanded variants", zap.Error(err), zap.String("variant_sku", variantSKU))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variants"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"variants": variants})
		return
	}

	if metalCode == "" || shapeCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "metal_code and shape_code must be supplied together"})
		return
	}

	weight := 0.0
	if w := parseFloatQuery(c, "center_stone_weight"); w != nil {
		weight = *w
	}

	variant, err := h.variantService.GetExpanded(ctx, variantSKU, metalCode, shapeCode, weight)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant combination not found"})
			return
		}
		zap.L().Error("Database error", zap.Error(err), zap.String("variant_sku", variantSKU))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, variant)
}

// GetDYOQuote prices a design-your-own configuration on the fly from current
// metal rates and stone inventory.
func (h *VariantController) GetDYOQuote(c *gin.Context) {
	variantSKU := strings.TrimSpace(c.Param("sku"))
	metalType := strings.TrimSpace(c.Query("metal_type"))
	if variantSKU == "" || metalType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Variant SKU and metal_type are required"})
		return
	}
	stoneStockNumber := strings.TrimSpace(c.Query("stone"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	quote, err := h.variantService.QuoteDYO(ctx, variantSKU, metalType, stoneStockNumber)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Variant, metal or stone not found"})
			return
		}
		zap.L().Error("Failed to quote configuration", zap.Error(err),
			zap.String("variant_sku", variantSKU), zap.String("metal_type", metalType))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to quote configuration"})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// GetDYOVariant returns the configurable options of a design-your-own product.
func (h *VariantController) GetDYOVariant(c *gin.Context) {
	productSKU := strings.TrimSpace(c.Param("sku"))
	if productSKU == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product SKU is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	variant, err := h.variantService.GetDYOVariant(ctx, productSKU)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Design-your-own options not found"})
			return
		}
		zap.L().Error("Database error", zap.Error(err), zap.String("product_sku", productSKU))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, variant)
}
