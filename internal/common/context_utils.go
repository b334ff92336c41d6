package common

import (
	"context"
	"fmt"
	"strings"

	"vgauth/internal/models"

	"github.com/google/uuid"
)

type contextKey string

const (
	ClaimKey contextKey = "auth_claim"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// ValidateUUID checks that idStr is a canonical 36 character UUID.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	if len(idStr) != 36 {
		return uuid.Nil, fmt.Errorf("%s must be exactly 36 characters (including hyphens)", fieldName)
	}

	expectedHyphens := []int{8, 13, 18, 23}
	for _, pos := range expectedHyphens {
		if idStr[pos] != '-' {
			return uuid.Nil, fmt.Errorf("%s has invalid UUID format: hyphens must be at positions 9, 14, 19, and 24", fieldName)
		}
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s contains invalid characters: %v", fieldName, err)
	}

	return id, nil
}

// RequiredString returns the value of a required field unchanged, or a
// validation error when it is absent or blank.
func RequiredString(value *string, fieldName string) (string, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return "", Validation("%s is required", fieldName)
	}
	return *value, nil
}

// WithClaim stores an authenticated claim on the context.
func WithClaim(ctx context.Context, claim *models.AuthClaim) context.Context {
	return context.WithValue(ctx, ClaimKey, claim)
}

// GetClaimFromContext extracts the authenticated claim from the request context
func GetClaimFromContext(ctx context.Context) (*models.AuthClaim, bool) {
	claim, ok := ctx.Value(ClaimKey).(*models.AuthClaim)
	return claim, ok && claim != nil
}
