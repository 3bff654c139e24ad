package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	awspkg "catalog-service/pkg/aws"
	"catalog-service/services"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	CatalogListCachePrefix = "catalog:v:"
	CacheVersionKey        = "catalog:version"
)

// CacheManager caches serialized list responses in Redis. Keys embed a
// version number, so bumping the version drops every cached list at once.
// A nil *CacheManager caches nothing.
type CacheManager struct {
	redis   *redis.Client
	ttl     time.Duration
	metrics *awspkg.MetricsClient
}

func NewCacheManager(client *redis.Client, ttl time.Duration, metrics *awspkg.MetricsClient) *CacheManager {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheManager{redis: client, ttl: ttl, metrics: metrics}
}

// GetList returns the cached list stored under resource and q.
func (cm *CacheManager) GetList(ctx context.Context, resource string, q services.ProductQuery) ([]map[string]any, bool) {
	if cm == nil {
		return nil, false
	}

	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, cm.listCacheKey(version, resource, q)).Result()
	if err != nil {
		cm.record(awspkg.MetricCacheMisses, resource)
		return nil, false
	}

	var docs []map[string]any
	if err := json.Unmarshal([]byte(cached), &docs); err != nil {
		zap.L().Warn("Failed to unmarshal cached list", zap.String("resource", resource), zap.Error(err))
		return nil, false
	}

	cm.record(awspkg.MetricCacheHits, resource)
	return docs, true
}

// SetListAsync stores docs in the background; failures are only logged.
func (cm *CacheManager) SetListAsync(resource string, q services.ProductQuery, docs []map[string]any) {
	if cm == nil {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		payload, err := json.Marshal(docs)
		if err != nil {
			zap.L().Warn("Failed to marshal list for cache", zap.String("resource", resource), zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, cm.listCacheKey(version, resource, q), payload, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache list", zap.String("resource", resource), zap.Error(err))
		}
	}()
}

// Invalidate bumps the cache version.
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	if cm == nil {
		return nil
	}

	newVersion, err := cm.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	zap.L().Info("Cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

// getCacheVersion reads the current version, creating it on first use.
func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
		if err == nil && ver > 0 {
			return ver, nil
		}

		if err == redis.Nil {
			if err := cm.redis.SetNX(ctx, CacheVersionKey, 1, 0).Err(); err == nil {
				continue
			}
		}

		if i < maxRetries-1 {
			time.Sleep(50 * time.Millisecond)
		}
	}

	return 0, fmt.Errorf("failed to get cache version after %d retries", maxRetries)
}

// listCacheKey encodes the filters so values containing separators cannot
// collide with other filter combinations.
func (cm *CacheManager) listCacheKey(version int64, resource string, q services.ProductQuery) string {
	filters := url.Values{
		"c": {q.Category},
		"b": {q.Brand},
		"f": {formatBoolForCache(q.Featured)},
		"s": {formatBoolForCache(q.InStock)},
	}
	return fmt.Sprintf("%s%d:%s:%s", CatalogListCachePrefix, version, resource, filters.Encode())
}

func (cm *CacheManager) record(metric, resource string) {
	if !cm.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cm.metrics.RecordCount(ctx, metric, map[string]string{"Resource": resource})
	}()
}

func formatBoolForCache(value *bool) string {
	if value == nil {
		return ""
	}
	return strconv.FormatBool(*value)
}
