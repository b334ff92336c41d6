package repositories_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"vgauth/internal/common"
	"vgauth/internal/models"
	"vgauth/internal/repositories"
	"vgauth/testhelpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantRepo_ConcurrentDuplicateCreate(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := repositories.NewTenantRepo(db.Pool)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			now := time.Now().UTC()
			err := repo.Create(context.Background(), &models.Tenant{ID: uuid.New(), Name: "Acme", CreatedAt: now, UpdatedAt: now})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, common.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestUserRepo_UsernameScopedToTenant(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := repositories.NewUserRepo(db.Pool)
	ctx := context.Background()

	acme := testhelpers.SetupTestTenant(t, db, "Acme")
	globex := testhelpers.SetupTestTenant(t, db, "Globex")

	newUser := func(tenantID uuid.UUID) *models.User {
		now := time.Now().UTC()
		return &models.User{
			ID:             uuid.New(),
			TenantID:       tenantID,
			Username:       "a@b.com",
			HashedPassword: "$2a$04$hash",
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}

	require.NoError(t, repo.Create(ctx, newUser(acme)))
	require.NoError(t, repo.Create(ctx, newUser(globex)))
	assert.ErrorIs(t, repo.Create(ctx, newUser(acme)), common.ErrConflict)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, u := range all {
		assert.Empty(t, u.HashedPassword)
	}

	scoped, err := repo.List(ctx, &acme)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, acme, scoped[0].TenantID)

	found, err := repo.GetByUsername(ctx, globex, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$04$hash", found.HashedPassword)
}
