package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoicelink/backend/internal/domain/identity"
)

// ==================== Request DTOs ====================

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,min=1,max=200"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UpdateSettingsRequest updates the account profile used on invoices
type UpdateSettingsRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=200"`
	AgencyName      string `json:"agency_name" binding:"max=100"`
	DefaultCurrency string `json:"default_currency" binding:"required,currency"`
}

// ==================== Response DTOs ====================

// UserResponse represents the account in API responses
type UserResponse struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	AgencyName      string     `json:"agency_name,omitempty"`
	DefaultCurrency string     `json:"default_currency"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// AuthResponse represents a successful register/login/refresh
type AuthResponse struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// ==================== Converters ====================

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		AgencyName:      user.AgencyName,
		DefaultCurrency: user.DefaultCurrency.String(),
		LastLoginAt:     user.LastLoginAt,
		CreatedAt:       user.CreatedAt,
	}
}
