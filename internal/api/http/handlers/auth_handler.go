package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/afristar/helpdesk/internal/api/dto"
	"github.com/afristar/helpdesk/internal/auth"
	"github.com/afristar/helpdesk/internal/service"
	apperrors "github.com/afristar/helpdesk/pkg/util"
)

// AuthHandler exposes registration, login, and password flows.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, err := h.auth.Register(c.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		StaffID:  req.StaffID,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, fiber.Map{"userId": user.ID})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.StaffID == "" || req.Password == "" {
		return apperrors.NewValidationError("staffId and password required")
	}

	result, err := h.auth.Login(c.Context(), req.StaffID, req.Password)
	if err != nil {
		return err
	}

	if result.RequireReset {
		return success(c, http.StatusOK, dto.RequireResetResponse{
			RequireReset: true,
			UserID:       result.User.ID,
			ResetToken:   result.ResetToken,
		})
	}
	return success(c, http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.NewUserResponse(result.User),
	})
}

// ResetPassword handles POST /auth/password/reset. The route is guarded by
// the reset-scoped middleware, so the principal here came from a reset
// token, never from a client-supplied user id.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Scope != auth.ScopePasswordReset {
		return apperrors.NewUnauthorized("reset token required")
	}

	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	result, err := h.auth.ResetPassword(c.Context(), principal.User.ID, req.NewPassword)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.NewUserResponse(result.User),
	})
}

// ChangePassword handles POST /auth/password/change for full sessions.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	if err := h.auth.ChangePassword(c.Context(), principal.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return success(c, http.StatusOK, fiber.Map{"updated": true})
}
