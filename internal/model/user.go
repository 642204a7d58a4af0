package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a login account. Staff identity lives on Profile; a user only
// carries credentials and account flags.
type User struct {
	Base
	Username     string `db:"username" json:"username"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	Password     string `db:"-" json:"password,omitempty"`
	PasswordHash string `db:"password_hash" json:"-"`
	IsStaff      bool   `db:"is_staff" json:"is_staff"`
	IsSuperuser  bool   `db:"is_superuser" json:"is_superuser"`
	IsActive     bool   `db:"is_active" json:"is_active"`
}

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,max=255"`
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"required,max=255"`
	Password  string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsActive  *bool   `json:"is_active"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	Profile      *Profile `json:"profile,omitempty"`
}

type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// PasswordReset is a single-use reset token delivered by email or SMS.
type PasswordReset struct {
	Base
	Username     string    `db:"username" json:"username"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	Token        string    `db:"token" json:"-"`
	IsUsed       bool      `db:"is_used" json:"is_used"`
	ResetChannel string    `db:"reset_channel" json:"reset_channel"`
	ExpiryDate   time.Time `db:"expiry_date" json:"expiry_date"`
}

func (p *PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiryDate)
}
