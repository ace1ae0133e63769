// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"bookify/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CatalogCacheClient is the Redis client used to cache booking provider
// catalog lookups (service variations, locations). It is optional: when no
// REDIS_ADDR is configured the provider client falls back to its in-process
// maps.
var CatalogCacheClient *redis.Client

// InitCatalogCache initializes the Redis catalog cache client. Returns nil
// when Redis is not configured or unreachable.
func InitCatalogCache() *redis.Client {
	if config.AppConfig.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Redis unreachable, catalog cache disabled", zap.Error(err))
		return nil
	}
	CatalogCacheClient = client
	return client
}

// GetCatalogCacheClient returns the catalog cache client, or nil when caching
// is disabled.
func GetCatalogCacheClient() *redis.Client {
	return CatalogCacheClient
}
