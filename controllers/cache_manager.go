package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"jewelry-service/models"
	"jewelry-service/services"
)

const (
	ProductCachePrefix     = "product:detail:"
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"
)

// CacheManager handles all Redis caching for catalog reads. List caches are
// versioned: invalidation bumps the version instead of scanning keys, and the
// stale generation ages out through the TTL.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(redis *redis.Client) *CacheManager {
	return &CacheManager{
		redis: redis,
		ttl:   DefaultCacheTTL,
	}
}

// GetProductList retrieves a cached product list response.
func (cm *CacheManager) GetProductList(ctx context.Context, params services.ListProductsParams) (map[string]interface{}, bool) {
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cachedData, err := cm.redis.Get(ctx, cm.listCacheKey(version, params)).Result()
	if err != nil {
		return nil, false
	}

	var response map[string]interface{}
	if err := json.Unmarshal([]byte(cachedData), &response); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return response, true
}

// SetProductListAsync caches a product list response off the request path.
func (cm *CacheManager) SetProductListAsync(params services.ListProductsParams, response map[string]interface{}) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		jsonBytes, err := json.Marshal(response)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, cm.listCacheKey(version, params), jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// SetProductAsync caches a single product off the request path.
func (cm *CacheManager) SetProductAsync(sku string, product *models.Product) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		productJSON, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("Failed to marshal product for cache", zap.Error(err), zap.String("sku", sku))
			return
		}

		if err := cm.redis.Set(bgCtx, ProductCachePrefix+sku, productJSON, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err), zap.String("sku", sku))
		}
	}()
}

// GetProduct retrieves a cached product by SKU.
func (cm *CacheManager) GetProduct(ctx context.Context, sku string) (*models.Product, bool) {
	cachedData, err := cm.redis.Get(ctx, ProductCachePrefix+sku).Result()
	if err != nil {
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal([]byte(cachedData), &product); err != nil {
		return nil, false
	}
	return &product, true
}

// Invalidate invalidates all product list caches by bumping the version.
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	newVersion, err := cm.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	zap.L().Info("Product cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

// InvalidateProduct invalidates both the list caches and one product's cache.
func (cm *CacheManager) InvalidateProduct(ctx context.Context, sku string) {
	if err := cm.Invalidate(ctx); err != nil {
		zap.L().Error("Failed to invalidate product list cache", zap.Error(err), zap.String("sku", sku))
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cm.redis.Del(bgCtx, ProductCachePrefix+sku).Err(); err != nil {
			zap.L().Warn("Failed to delete product cache", zap.Error(err), zap.String("sku", sku))
		}
	}()
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
		if err == nil && ver > 0 {
			return ver, nil
		}

		if err == redis.Nil {
			if err := cm.redis.Set(ctx, CacheVersionKey, 1, 0).Err(); err == nil {
				return 1, nil
			}
		}

		if i < maxRetries-1 {
			time.Sleep(time.Millisecond * 50)
		}
	}

	return 0, fmt.Errorf("failed to get cache version after %d retries", maxRetries)
}

func (cm *CacheManager) listCacheKey(version int64, p services.ListProductsParams) string {
	return fmt.Sprintf(
		"%s%d:p:%d:l:%d:c:%s:st:%s:sh:%s:min:%s:max:%s:rts:%s",
		ProductListCachePrefix,
		version,
		p.Page,
		p.PerPage,
		p.Category,
		p.Style,
		p.Shape,
		formatFloatForCache(p.MinPrice),
		formatFloatForCache(p.MaxPrice),
		formatBoolForCache(p.ReadyToShip),
	)
}

func formatFloatForCache(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func formatBoolForCache(value *bool) string {
	if value == nil {
		return ""
	}
	return strconv.FormatBool(*value)
}
