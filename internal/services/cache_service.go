package services

import (
	"context"
	"fmt"
	"time"

	"vistoria/pkg/cache"
)

type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type cacheService struct {
	cache *cache.RedisCache
}

func NewCacheService(redisCache *cache.RedisCache) CacheService {
	return &cacheService{
		cache: redisCache,
	}
}

func (s *cacheService) buildKey(key string) string {
	return fmt.Sprintf("vistoria:%s", key)
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return s.cache.Get(ctx, s.buildKey(key), dest)
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.cache.Set(ctx, s.buildKey(key), value, expiration)
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.buildKey(key)
	}
	return s.cache.Delete(ctx, prefixed...)
}
