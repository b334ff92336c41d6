package services

import (
	"context"
	"errors"
	"sync"

	"vgauth/internal/common"
	"vgauth/internal/metrics"
	"vgauth/internal/models"
	"vgauth/internal/repositories"

	"go.uber.org/zap"
)

// AuthService exchanges credentials for a signed token.
type AuthService interface {
	Authenticate(ctx context.Context, req *AuthenticateRequest) (string, error)
	Verify(ctx context.Context, token string) (*models.AuthClaim, error)
}

type AuthenticateRequest struct {
	TenantID *string `json:"tenantId"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// invalidCredentials is the single message for every credential failure so
// callers cannot tell an unknown user from a wrong password.
const invalidCredentials = "invalid credentials"

// fallbackDecoyHash is a bcrypt hash at bcrypt.DefaultCost, used when the
// decoy cannot be generated at the configured cost.
const fallbackDecoyHash = "$2a$10$XajjQvNhvvRt5GSeFk1xFeyqRrsxkhBkUiQeg0dt.wU1qD4aFDcga"

type authService struct {
	userRepo  repositories.UserRepository
	passwords PasswordService
	tokens    TokenService
	metrics   *metrics.Metrics
	logger    *zap.Logger

	decoyOnce sync.Once
	decoyHash string
}

func NewAuthService(userRepo repositories.UserRepository, passwords PasswordService, tokens TokenService, m *metrics.Metrics, logger *zap.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		passwords: passwords,
		tokens:    tokens,
		metrics:   m,
		logger:    logger,
	}
}

func (s *authService) Authenticate(ctx context.Context, req *AuthenticateRequest) (string, error) {
	token, err := s.authenticate(ctx, req)
	switch {
	case err == nil:
		s.metrics.ObserveAuthentication(metrics.ResultSuccess)
	case errors.Is(err, common.ErrUnauthorized):
		s.metrics.ObserveAuthentication(metrics.ResultUnauthorized)
	case errors.Is(err, common.ErrValidation):
		s.metrics.ObserveAuthentication(metrics.ResultInvalid)
	default:
		s.metrics.ObserveAuthentication(metrics.ResultError)
	}
	return token, err
}

func (s *authService) authenticate(ctx context.Context, req *AuthenticateRequest) (string, error) {
	rawTenantID, err := common.RequiredString(req.TenantID, "tenantId")
	if err != nil {
		return "", err
	}
	username, err := common.RequiredString(req.Username, "username")
	if err != nil {
		return "", err
	}
	if req.Password == nil {
		return "", common.Validation("password is required")
	}
	tenantID, err := common.ValidateUUID(rawTenantID, "tenantId")
	if err != nil {
		return "", common.Validation("%s", err.Error())
	}

	user, err := s.userRepo.GetByUsername(ctx, tenantID, username)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return "", err
		}
		// Spend the same bcrypt work as a real comparison.
		s.passwords.Verify(ctx, *req.Password, s.decoy(ctx))
		s.logger.Debug("authentication failed: unknown user", zap.String("tenant_id", rawTenantID))
		return "", common.Unauthorized(invalidCredentials)
	}

	if !s.passwords.Verify(ctx, *req.Password, user.HashedPassword) {
		s.logger.Debug("authentication failed: password mismatch", zap.String("user_id", user.ID.String()))
		return "", common.Unauthorized(invalidCredentials)
	}

	token, err := s.tokens.Encode(models.AuthClaim{
		TenantID: user.TenantID.String(),
		Username: user.Username,
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *authService) Verify(_ context.Context, token string) (*models.AuthClaim, error) {
	return s.tokens.Decode(token)
}

// decoy lazily builds a hash to compare against when the user is unknown.
func (s *authService) decoy(ctx context.Context) string {
	s.decoyOnce.Do(func() {
		placeholder := "vgauth-decoy-password"
		hash, err := s.passwords.Hash(context.WithoutCancel(ctx), &placeholder)
		if err != nil {
			s.logger.Warn("failed to build decoy hash, using fallback", zap.Error(err))
			hash = fallbackDecoyHash
		}
		s.decoyHash = hash
	})
	return s.decoyHash
}
