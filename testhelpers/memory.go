package testhelpers

import (
	"context"
	"sync"

	"vgauth/internal/common"
	"vgauth/internal/models"
	"vgauth/internal/repositories"

	"github.com/google/uuid"
)

// MemoryTenantRepo is an in-process TenantRepository with the same
// uniqueness and not-found behaviour as the PostgreSQL one.
type MemoryTenantRepo struct {
	mu      sync.Mutex
	tenants []models.Tenant
}

var _ repositories.TenantRepository = (*MemoryTenantRepo)(nil)

func NewMemoryTenantRepo() *MemoryTenantRepo {
	return &MemoryTenantRepo{}
}

func (r *MemoryTenantRepo) Create(_ context.Context, tenant *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tenants {
		if t.Name == tenant.Name {
			return common.Conflict("tenant with this name already exists")
		}
	}
	r.tenants = append(r.tenants, *tenant)
	return nil
}

func (r *MemoryTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tenants {
		if t.ID == id {
			out := t
			return &out, nil
		}
	}
	return nil, common.NotFound("tenant")
}

func (r *MemoryTenantRepo) Update(_ context.Context, tenant *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, t := range r.tenants {
		if t.ID == tenant.ID {
			idx = i
		} else if t.Name == tenant.Name {
			return common.Conflict("tenant with this name already exists")
		}
	}
	if idx < 0 {
		return common.NotFound("tenant")
	}
	r.tenants[idx].Name = tenant.Name
	r.tenants[idx].UpdatedAt = tenant.UpdatedAt
	return nil
}

func (r *MemoryTenantRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.tenants {
		if t.ID == id {
			r.tenants = append(r.tenants[:i], r.tenants[i+1:]...)
			return nil
		}
	}
	return common.NotFound("tenant")
}

func (r *MemoryTenantRepo) List(_ context.Context) ([]*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		t := t
		out = append(out, &t)
	}
	return out, nil
}

// MemoryUserRepo is an in-process UserRepository keyed on
// (tenant, username) like the users_tenant_username_key index.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users []models.User
}

var _ repositories.UserRepository = (*MemoryUserRepo)(nil)

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{}
}

func (r *MemoryUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.TenantID == user.TenantID && u.Username == user.Username {
			return common.Conflict("user already exists in this tenant")
		}
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *MemoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, common.NotFound("user")
}

func (r *MemoryUserRepo) GetByUsername(_ context.Context, tenantID uuid.UUID, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.TenantID == tenantID && u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, common.NotFound("user")
}

func (r *MemoryUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, u := range r.users {
		if u.ID == user.ID {
			idx = i
		} else if u.TenantID == user.TenantID && u.Username == user.Username {
			return common.Conflict("user already exists in this tenant")
		}
	}
	if idx < 0 {
		return common.NotFound("user")
	}
	r.users[idx].Username = user.Username
	r.users[idx].HashedPassword = user.HashedPassword
	r.users[idx].UpdatedAt = user.UpdatedAt
	return nil
}

func (r *MemoryUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return common.NotFound("user")
}

// List strips credentials like the SQL query, which never selects the hash.
func (r *MemoryUserRepo) List(_ context.Context, tenantID *uuid.UUID) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		if tenantID != nil && u.TenantID != *tenantID {
			continue
		}
		out = append(out, u.Sanitized())
	}
	return out, nil
}
