package services

import (
	"context"
	"time"

	"vgauth/internal/caching"
	"vgauth/internal/common"
	"vgauth/internal/models"
	"vgauth/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TenantService interface {
	Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error)
	Get(ctx context.Context, id string) (*models.Tenant, error)
	List(ctx context.Context) ([]*models.Tenant, error)
	Rename(ctx context.Context, id string, req *RenameTenantRequest) (*models.Tenant, error)
	Delete(ctx context.Context, id string) error
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	cache      caching.CacheService
	cacheTTL   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewTenantService(tenantRepo repositories.TenantRepository, cache caching.CacheService, cacheTTL time.Duration, logger *zap.Logger) TenantService {
	if cache == nil {
		cache = caching.NewNoopCacheService()
	}
	return &tenantService{
		tenantRepo: tenantRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type CreateTenantRequest struct {
	Name *string `json:"name"`
}

type RenameTenantRequest struct {
	Name *string `json:"name"`
}

func (s *tenantService) Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error) {
	name, err := common.RequiredString(req.Name, "name")
	if err != nil {
		return nil, err
	}

	now := s.now()
	tenant := &models.Tenant{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("tenant created", zap.String("tenant_id", tenant.ID.String()))
	return tenant, nil
}

// Get resolves a tenant by its string id. Malformed ids are reported as not
// found. Lookups go through the tenant cache; cache faults fall back to the
// repository.
func (s *tenantService) Get(ctx context.Context, id string) (*models.Tenant, error) {
	tenantID, err := common.ValidateUUID(id, "tenant id")
	if err != nil {
		return nil, common.NotFound("tenant")
	}

	cached, err := s.cache.GetTenant(ctx, tenantID)
	if err != nil {
		s.logger.Warn("tenant cache read failed", zap.String("tenant_id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetTenant(ctx, tenant, s.cacheTTL); err != nil {
		s.logger.Warn("tenant cache write failed", zap.String("tenant_id", id), zap.Error(err))
	}
	return tenant, nil
}

func (s *tenantService) List(ctx context.Context) ([]*models.Tenant, error) {
	return s.tenantRepo.List(ctx)
}

// Rename replaces the tenant's name. Renaming onto a name held by another
// tenant is a conflict.
func (s *tenantService) Rename(ctx context.Context, id string, req *RenameTenantRequest) (*models.Tenant, error) {
	tenantID, err := common.ValidateUUID(id, "tenant id")
	if err != nil {
		return nil, common.NotFound("tenant")
	}

	name, err := common.RequiredString(req.Name, "name")
	if err != nil {
		return nil, err
	}

	existing, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.UpdatedAt = s.now()
	if err := s.tenantRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.evict(ctx, tenantID)
	return existing, nil
}

// Delete removes the tenant. Users registered under it are left in place.
func (s *tenantService) Delete(ctx context.Context, id string) error {
	tenantID, err := common.ValidateUUID(id, "tenant id")
	if err != nil {
		return common.NotFound("tenant")
	}

	err = s.tenantRepo.Delete(ctx, tenantID)
	s.evict(ctx, tenantID)
	if err != nil {
		return err
	}

	s.logger.Info("tenant deleted", zap.String("tenant_id", id))
	return nil
}

func (s *tenantService) evict(ctx context.Context, id uuid.UUID) {
	if err := s.cache.DeleteTenant(ctx, id); err != nil {
		s.logger.Warn("tenant cache eviction failed", zap.String("tenant_id", id.String()), zap.Error(err))
	}
}
