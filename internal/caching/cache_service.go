package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clearspendly/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type CacheService interface {
	// Tag taxonomy caching
	GetTagCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.TagCategory, error)
	SetTagCategories(ctx context.Context, tenantID uuid.UUID, categories []*models.TagCategory, ttl time.Duration) error
	DeleteTagCategories(ctx context.Context, tenantID uuid.UUID) error

	// Usage row caching
	GetTenantUsage(ctx context.Context, tenantID uuid.UUID) (*models.TenantUsage, error)
	SetTenantUsage(ctx context.Context, tenantID uuid.UUID, usage *models.TenantUsage, ttl time.Duration) error
	DeleteTenantUsage(ctx context.Context, tenantID uuid.UUID) error

	// Cache invalidation
	InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error

	// Ping verifies connectivity, used by health checks
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCacheService(addr, password string, db int, logger *zap.Logger) CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis ping failed on initialization", zap.String("addr", addr), zap.Error(err))
	}

	return &redisCacheService{client: client, logger: logger}
}

func tagCategoriesKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("tenant:%s:tag_categories", tenantID)
}

func tenantUsageKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("tenant:%s:usage", tenantID)
}

func (c *redisCacheService) GetTagCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.TagCategory, error) {
	data, err := c.client.Get(ctx, tagCategoriesKey(tenantID)).Bytes()
	if err != nil {
		return nil, err
	}
	var categories []*models.TagCategory
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *redisCacheService) SetTagCategories(ctx context.Context, tenantID uuid.UUID, categories []*models.TagCategory, ttl time.Duration) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tagCategoriesKey(tenantID), data, ttl).Err()
}

func (c *redisCacheService) DeleteTagCategories(ctx context.Context, tenantID uuid.UUID) error {
	return c.client.Del(ctx, tagCategoriesKey(tenantID)).Err()
}

func (c *redisCacheService) GetTenantUsage(ctx context.Context, tenantID uuid.UUID) (*models.TenantUsage, error) {
	data, err := c.client.Get(ctx, tenantUsageKey(tenantID)).Bytes()
	if err != nil {
		return nil, err
	}
	usage := &models.TenantUsage{}
	if err := json.Unmarshal(data, usage); err != nil {
		return nil, err
	}
	return usage, nil
}

func (c *redisCacheService) SetTenantUsage(ctx context.Context, tenantID uuid.UUID, usage *models.TenantUsage, ttl time.Duration) error {
	data, err := json.Marshal(usage)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tenantUsageKey(tenantID), data, ttl).Err()
}

func (c *redisCacheService) DeleteTenantUsage(ctx context.Context, tenantID uuid.UUID) error {
	return c.client.Del(ctx, tenantUsageKey(tenantID)).Err()
}

func (c *redisCacheService) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	pattern := fmt.Sprintf("tenant:%s:*", tenantID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("failed to delete cache key", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	return iter.Err()
}

func (c *redisCacheService) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
