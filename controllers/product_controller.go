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

// ProductController handles catalog product endpoints
type ProductController struct {
	productService ProductServiceAPI
	cache          *CacheManager
	timeout        time.Duration
}

func NewProductController(ps ProductServiceAPI, cache *CacheManager) *ProductController {
	return &ProductController{
		productService: ps,
		cache:          cache,
		timeout:        DefaultContextTimeout,
	}
}

// GetProducts retrieves paginated products with filters, served from cache
// when possible.
func (h *ProductController) GetProducts(c *gin.Context) {
	params := parseListParams(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if h.cache != nil {
		if cached, ok := h.cache.GetProductList(ctx, params); ok {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	products, total, err := h.productService.ListProducts(ctx, params)
	if err != nil {
		zap.L().Error("Error finding products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(params.PerPage)))
	response := map[string]interface{}{
		"products": products,
		"meta": map[string]interface{}{
			"page":       params.Page,
			"perPage":    params.PerPage,
			"total":      total,
			"totalPages": totalPages,
		},
	}

	if h.cache != nil {
		h.cache.SetProductListAsync(params, response)
	}
	c.JSON(http.StatusOK, response)
}

// GetProductBySKU retrieves a single product.
func (h *ProductController) GetProductBySKU(c *gin.Context) {
	sku := strings.TrimSpace(c.Param("sku"))
	if sku == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product SKU is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if h.cache != nil {
		if product, ok := h.cache.GetProduct(ctx, sku); ok {
			c.JSON(http.StatusOK, product)
			return
		}
	}

	product, err := h.productService.GetProduct(ctx, sku)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		zap.L().Error("Database error", zap.Error(err), zap.String("sku", sku))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if h.cache != nil {
		h.cache.SetProductAsync(sku, product)
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a single product.
func (h *ProductController) CreateProduct(c *gin.Context) {
	var req services.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	product, err := h.productService.CreateProduct(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Product SKU already exists"})
			return
		}
		zap.L().Error("Failed to create product", zap.Error(err), zap.String("sku", req.ProductSKU))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	if h.cache != nil {
		h.cache.InvalidateProduct(ctx, product.ProductSKU)
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update by SKU.
func (h *ProductController) UpdateProduct(c *gin.Context) {
	sku := strings.TrimSpace(c.Param("sku"))
	if sku == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product SKU is required"})
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
	// Natural keys and timestamps are owned by the service.
	delete(updates, "_id")
	delete(updates, "product_sku")
	delete(updates, "created_at")
	delete(updates, "updated_at")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	matched, err := h.productService.UpdateProduct(ctx, sku, updates)
	if err != nil {
		zap.L().Error("Failed to update product", zap.Error(err), zap.String("sku", sku))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	if matched == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if h.cache != nil {
		h.cache.InvalidateProduct(ctx, sku)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "sku": sku})
}

// DeleteProduct removes a product by SKU.
func (h *ProductController) DeleteProduct(c *gin.Context) {
	sku := strings.TrimSpace(c.Param("sku"))
	if sku == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product SKU is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	deleted, err := h.productService.DeleteProduct(ctx, sku)
	if err != nil {
		zap.L().Error("Failed to delete product", zap.Error(err), zap.String("sku", sku))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if h.cache != nil {
		h.cache.InvalidateProduct(ctx, sku)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted", "sku": sku})
}

func parseListParams(c *gin.Context) services.ListProductsParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("perPage", "20"))
	if err != nil || perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	params := services.ListProductsParams{
		Page:     page,
		PerPage:  perPage,
		Category: strings.TrimSpace(c.Query("category")),
		Style:    strings.TrimSpace(c.Query("style")),
		Shape:    strings.TrimSpace(c.Query("shape")),
	}
	params.MinPrice = parseFloatQuery(c, "min_price")
	params.MaxPrice = parseFloatQuery(c, "max_price")
	params.ReadyToShip = parseBoolQuery(c, "ready_to_ship")
	return params
}

func parseFloatQuery(c *gin.Context, name string) *float64 {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseBoolQuery(c *gin.Context, name string) *bool {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
