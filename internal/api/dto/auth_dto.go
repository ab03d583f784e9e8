package dto

import (
	"time"

	"github.com/afristar/helpdesk/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	StaffID  string `json:"staffId"`
}

// LoginRequest payload. Staff ID is the login key, not email.
type LoginRequest struct {
	StaffID  string `json:"staffId"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful credential check.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// RequireResetResponse is returned when the account still carries a
// temporary password. ResetToken is scoped to the reset endpoint only.
type RequireResetResponse struct {
	RequireReset bool   `json:"requireReset"`
	UserID       string `json:"userId"`
	ResetToken   string `json:"resetToken"`
}

// ResetPasswordRequest payload for completing the temporary-password flow.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string      `json:"id"`
	StaffID   string      `json:"staffId"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		StaffID:   user.StaffID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
