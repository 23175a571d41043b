package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/montasssar/EcommerceSnazzyWear/models"
)

const (
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"

	DefaultCacheTTL = 5 * time.Minute
)

// CacheManager caches the product catalog in Redis. Invalidation bumps a
// version counter so stale list entries simply stop being addressed.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{redis: client, ttl: DefaultCacheTTL}
}

// GetProductList returns the cached catalog, if any.
func (cm *CacheManager) GetProductList(ctx context.Context) ([]models.Product, bool) {
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, cm.listKey(version)).Result()
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(cached), &products); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetProductListAsync caches the catalog off the request path.
func (cm *CacheManager) SetProductListAsync(products []models.Product) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		jsonBytes, err := json.Marshal(products)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := cm.redis.Set(bgCtx, cm.listKey(version), jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Invalidate bumps the version so every cached list is orphaned.
func (cm *CacheManager) Invalidate(ctx context.Context) {
	newVersion, err := cm.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		zap.L().Error("Failed to invalidate product cache", zap.Error(err))
		return
	}
	zap.L().Info("Product cache invalidated", zap.Int64("new_version", newVersion))
}

func (cm *CacheManager) listKey(version int64) string {
	return fmt.Sprintf("%s%d:all", ProductListCachePrefix, version)
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil && ver > 0 {
		return ver, nil
	}
	if err == redis.Nil {
		if err := cm.redis.Set(ctx, CacheVersionKey, 1, 0).Err(); err == nil {
			return 1, nil
		}
	}
	return 0, fmt.Errorf("failed to get cache version")
}
