package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vgauth/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheService caches tenant lookups. A miss is reported as (nil, nil).
type CacheService interface {
	GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	SetTenant(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error
	DeleteTenant(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

// NewRedisCacheService connects to addr, which may carry a redis:// or
// rediss:// scheme. A failed initial ping is logged, not fatal: the cache is
// an optimisation and every caller falls back to the database.
func NewRedisCacheService(addr, password string, db int, logger *zap.Logger) CacheService {
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis ping failed on initialization", zap.String("address", parsedAddr), zap.Error(err))
	} else {
		logger.Info("Redis connection established", zap.String("address", parsedAddr))
	}

	return &redisCacheService{client: client}
}

func tenantKey(id uuid.UUID) string {
	return fmt.Sprintf("vgauth:tenant:%s", id.String())
}

func (r *redisCacheService) GetTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	data, err := r.client.Get(ctx, tenantKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var tenant models.Tenant
	if err := json.Unmarshal(data, &tenant); err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *redisCacheService) SetTenant(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error {
	data, err := json.Marshal(tenant)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, tenantKey(tenant.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteTenant(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, tenantKey(id)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

type noopCacheService struct{}

// NewNoopCacheService returns a cache that never hits. It is used when no
// Redis address is configured.
func NewNoopCacheService() CacheService {
	return noopCacheService{}
}

func (noopCacheService) GetTenant(context.Context, uuid.UUID) (*models.Tenant, error) {
	return nil, nil
}

func (noopCacheService) SetTenant(context.Context, *models.Tenant, time.Duration) error {
	return nil
}

func (noopCacheService) DeleteTenant(context.Context, uuid.UUID) error {
	return nil
}

func (noopCacheService) Ping(context.Context) error {
	return nil
}
