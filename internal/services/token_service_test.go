package services

import (
	"strings"
	"testing"

	"vgauth/internal/common"
	"vgauth/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	claims := []models.AuthClaim{
		{TenantID: "550e8400-e29b-41d4-a716-446655440000", Username: "a@b.com"},
		{TenantID: "t", Username: "user with spaces"},
		{TenantID: "ünïcode", Username: "名前"},
	}
	for _, secret := range []string{"s", "a-much-longer-shared-secret-value"} {
		svc := NewTokenService(secret)
		for _, claim := range claims {
			token, err := svc.Encode(claim)
			require.NoError(t, err)

			decoded, err := svc.Decode(token)
			require.NoError(t, err)
			assert.Equal(t, claim, *decoded)
		}
	}
}

func TestTokenService_EncodeIsDeterministic(t *testing.T) {
	svc := NewTokenService("secret")
	claim := models.AuthClaim{TenantID: "tenant", Username: "a@b.com"}

	first, err := svc.Encode(claim)
	require.NoError(t, err)
	second, err := svc.Encode(claim)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, strings.Split(first, "."), 3)
}

func TestTokenService_DecodeWithDifferentSecret(t *testing.T) {
	token, err := NewTokenService("secret-one").Encode(models.AuthClaim{TenantID: "t", Username: "u"})
	require.NoError(t, err)

	_, err = NewTokenService("secret-two").Decode(token)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestTokenService_DecodeMalformed(t *testing.T) {
	svc := NewTokenService("secret")

	for _, token := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30"} {
		_, err := svc.Decode(token)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "token %q", token)
	}
}

func TestTokenService_DecodeTampered(t *testing.T) {
	svc := NewTokenService("secret")
	token, err := svc.Encode(models.AuthClaim{TenantID: "t", Username: "alice"})
	require.NoError(t, err)

	other, err := svc.Encode(models.AuthClaim{TenantID: "t", Username: "mallory"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	forged := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = svc.Decode(forged)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestTokenService_DecodeRejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, tokenClaims{TenantID: "t", Username: "u"})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService("secret").Decode(unsigned)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, tokenClaims{TenantID: "t", Username: "u"})
	signed, err := hs512.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret").Decode(signed)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestTokenService_ClaimsMustBeComplete(t *testing.T) {
	tests := []struct {
		name  string
		claim models.AuthClaim
	}{
		{name: "missing username", claim: models.AuthClaim{TenantID: "t"}},
		{name: "missing tenantId", claim: models.AuthClaim{Username: "u"}},
		{name: "empty", claim: models.AuthClaim{}},
	}

	tokens := NewTokenService("secret")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tokens.Encode(tt.claim)
			assert.ErrorIs(t, err, errIncompleteClaim)
			assert.Empty(t, token)

			// A token signed elsewhere with the same gap is still refused.
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
				TenantID: tt.claim.TenantID,
				Username: tt.claim.Username,
			}).SignedString([]byte("secret"))
			require.NoError(t, err)
			_, err = tokens.Decode(signed)
			assert.ErrorIs(t, err, common.ErrInvalidToken)
		})
	}
}

func TestTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("").Encode(models.AuthClaim{TenantID: "t", Username: "u"})
	assert.Error(t, err)

	_, err = DecodeClaim("a.b.c", nil)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
