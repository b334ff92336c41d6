package services

import (
	"context"
	"time"
	"unicode/utf8"

	"vgauth/internal/common"
	"vgauth/internal/models"
	"vgauth/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MinPasswordLength is the shortest password, in characters, accepted on
// create or update.
const MinPasswordLength = 6

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	List(ctx context.Context, filter *ListUsersFilter) ([]*models.User, error)
	Update(ctx context.Context, id string, req *UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	userRepo      repositories.UserRepository
	tenantService TenantService
	passwords     PasswordService
	logger        *zap.Logger
	now           func() time.Time
}

func NewUserService(userRepo repositories.UserRepository, tenantService TenantService, passwords PasswordService, logger *zap.Logger) UserService {
	return &userService{
		userRepo:      userRepo,
		tenantService: tenantService,
		passwords:     passwords,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type CreateUserRequest struct {
	TenantID *string `json:"tenantId"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// ListUsersFilter narrows List to one tenant. An empty TenantID lists every
// tenant's users.
type ListUsersFilter struct {
	TenantID string `query:"tenantId"`
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return common.Validation("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	rawTenantID, err := common.RequiredString(req.TenantID, "tenantId")
	if err != nil {
		return nil, err
	}
	username, err := common.RequiredString(req.Username, "username")
	if err != nil {
		return nil, err
	}
	if req.Password == nil {
		return nil, common.Validation("password is required")
	}

	tenantID, err := common.ValidateUUID(rawTenantID, "tenantId")
	if err != nil {
		return nil, common.Validation("%s", err.Error())
	}
	if err := validatePassword(*req.Password); err != nil {
		return nil, err
	}

	if _, err := s.tenantService.Get(ctx, tenantID.String()); err != nil {
		return nil, err
	}

	hashed, err := s.passwords.Hash(ctx, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:             uuid.New(),
		TenantID:       tenantID,
		Username:       username,
		HashedPassword: hashed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", user.TenantID.String()))
	return user.Sanitized(), nil
}

func (s *userService) List(ctx context.Context, filter *ListUsersFilter) ([]*models.User, error) {
	var tenantID *uuid.UUID
	if filter != nil && filter.TenantID != "" {
		id, err := common.ValidateUUID(filter.TenantID, "tenantId")
		if err != nil {
			return nil, common.Validation("%s", err.Error())
		}
		tenantID = &id
	}

	users, err := s.userRepo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	sanitized := make([]*models.User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Sanitized())
	}
	return sanitized, nil
}

// Update applies the fields present in req. An absent password keeps the
// stored hash.
func (s *userService) Update(ctx context.Context, id string, req *UpdateUserRequest) (*models.User, error) {
	userID, err := common.ValidateUUID(id, "user id")
	if err != nil {
		return nil, common.NotFound("user")
	}

	if req.Username != nil {
		if _, err := common.RequiredString(req.Username, "username"); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Password != nil {
		hashed, err := s.passwords.Hash(ctx, req.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashed
	}
	user.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	userID, err := common.ValidateUUID(id, "user id")
	if err != nil {
		return common.NotFound("user")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}
