package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	TenantID       uuid.UUID `json:"tenantId" db:"tenant_id"`
	Username       string    `json:"username" db:"username"`
	HashedPassword string    `json:"-" db:"hashed_password"` // Never serialize in JSON
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Sanitized returns a copy of the user with credential fields cleared.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.HashedPassword = ""
	return &out
}
