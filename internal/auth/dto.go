package auth

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Username string  `json:"username" validate:"required,min=3,max=32"`
	Password string  `json:"password" validate:"required,min=8,max=128"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Birthday *string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateProfileInput carries profile edits. Nil fields are left untouched.
type UpdateProfileInput struct {
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Birthday *string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
}

// LoginInput is the payload for credential verification.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Profile is the public view of an account.
type Profile struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Bio         *string    `json:"bio,omitempty"`
	Birthday    *time.Time `json:"birthday,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}
