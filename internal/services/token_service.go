package services

import (
	"errors"
	"fmt"

	"vgauth/internal/common"
	"vgauth/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs and decodes authentication claims with a shared secret.
type TokenService interface {
	Encode(claim models.AuthClaim) (string, error)
	Decode(token string) (*models.AuthClaim, error)
}

// tokenClaims is the JWT payload. Registered claims are embedded so the
// parser can validate them, but none are set when encoding: tokens carry no
// expiry and encoding is deterministic.
type tokenClaims struct {
	TenantID string `json:"tenantId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var (
	errEmptySecret     = errors.New("token secret is empty")
	errIncompleteClaim = errors.New("claim requires tenantId and username")
)

type tokenService struct {
	secret []byte
}

func NewTokenService(secret string) TokenService {
	return &tokenService{secret: []byte(secret)}
}

func (s *tokenService) Encode(claim models.AuthClaim) (string, error) {
	return EncodeClaim(claim, s.secret)
}

func (s *tokenService) Decode(token string) (*models.AuthClaim, error) {
	return DecodeClaim(token, s.secret)
}

// EncodeClaim returns an HS256 compact JWT for claim. Claims missing a
// tenantId or username are refused, since DecodeClaim would reject them.
func EncodeClaim(claim models.AuthClaim, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", errEmptySecret
	}
	if claim.TenantID == "" || claim.Username == "" {
		return "", errIncompleteClaim
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		TenantID: claim.TenantID,
		Username: claim.Username,
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}
	return signed, nil
}

// DecodeClaim verifies token under secret and returns its claim. Any
// signature, algorithm or structural problem is reported as
// common.ErrInvalidToken.
func DecodeClaim(token string, secret []byte) (*models.AuthClaim, error) {
	if len(secret) == 0 {
		return nil, common.InvalidToken(errEmptySecret)
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.InvalidToken(err)
	}
	if !parsed.Valid {
		return nil, common.InvalidToken(errors.New("token not valid"))
	}
	if claims.TenantID == "" || claims.Username == "" {
		return nil, common.InvalidToken(errIncompleteClaim)
	}

	return &models.AuthClaim{TenantID: claims.TenantID, Username: claims.Username}, nil
}
