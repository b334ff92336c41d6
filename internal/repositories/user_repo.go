package repositories

import (
	"context"
	"fmt"

	"vgauth/internal/common"
	"vgauth/internal/models"

	"github.com/google/uuid"
)

const userConflict = "user already exists in this tenant"

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns users in insertion order. A nil tenantID lists every tenant.
	List(ctx context.Context, tenantID *uuid.UUID) ([]*models.User, error)
}

type userRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepo{db: db}
}

// Create inserts the user. (tenant_id, username) uniqueness is enforced by
// the users_tenant_username_key index.
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, tenant_id, username, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.TenantID, user.Username, user.HashedPassword, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return translate(err, "user", userConflict)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, tenant_id, username, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.TenantID, &user.Username, &user.HashedPassword, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, translate(err, "user", userConflict)
	}
	return user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, tenant_id, username, hashed_password, created_at, updated_at
		FROM users
		WHERE tenant_id = $1 AND username = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, username).Scan(&user.ID, &user.TenantID, &user.Username, &user.HashedPassword, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, translate(err, "user", userConflict)
	}
	return user, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET username = $1, hashed_password = $2, updated_at = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, user.Username, user.HashedPassword, user.UpdatedAt, user.ID)
	if err != nil {
		return translate(err, "user", userConflict)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFound("user")
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NotFound("user")
	}
	return nil
}

func (r *userRepo) List(ctx context.Context, tenantID *uuid.UUID) ([]*models.User, error) {
	query := `
		SELECT id, tenant_id, username, created_at, updated_at
		FROM users
		WHERE $1::uuid IS NULL OR tenant_id = $1
		ORDER BY seq
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.TenantID, &user.Username, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
