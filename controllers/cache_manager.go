package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"
	DefaultCacheTTL        = 5 * time.Minute
)

// CacheManager handles Redis caching of the product list, invalidated by
// bumping a version key on any catalog mutation.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(redisClient *redis.Client) *CacheManager {
	return &CacheManager{redis: redisClient, ttl: DefaultCacheTTL}
}

// GetProductList retrieves the cached product list payload.
func (cm *CacheManager) GetProductList(ctx context.Context) ([]byte, bool) {
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, cm.listCacheKey(version)).Bytes()
	if err != nil {
		return nil, false
	}
	return cached, true
}

// SetProductListAsync caches the product list payload asynchronously.
func (cm *CacheManager) SetProductListAsync(payload interface{}) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		jsonBytes, err := json.Marshal(payload)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, cm.listCacheKey(version), jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Invalidate invalidates all product list caches by bumping the version.
func (cm *CacheManager) Invalidate(ctx context.Context) {
	if err := cm.redis.Incr(ctx, CacheVersionKey).Err(); err != nil {
		zap.L().Warn("Failed to invalidate product cache", zap.Error(err))
	}
}

func (cm *CacheManager) listCacheKey(version int64) string {
	return fmt.Sprintf("%s%d:all", ProductListCachePrefix, version)
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	version, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == redis.Nil {
		return cm.redis.IncrBy(ctx, CacheVersionKey, 1).Result()
	}
	return version, err
}
