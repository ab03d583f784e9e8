package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/afristar/helpdesk/internal/auth"
	"github.com/afristar/helpdesk/internal/config"
	"github.com/afristar/helpdesk/internal/domain"
	"github.com/afristar/helpdesk/internal/repository"
	apperrors "github.com/afristar/helpdesk/pkg/util"
)

// AuthService coordinates registration, login, and the password reset flow.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTokenTTLMin, cfg.ResetTokenTTLMin),
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterInput describes a registration payload.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	StaffID  string
}

// LoginResult is the outcome of a credential check. When RequireReset is
// set, ResetToken is the only credential issued: it is scoped to password
// reset and grants no API access.
type LoginResult struct {
	User         *domain.User
	Token        string
	ExpiresAt    time.Time
	RequireReset bool
	ResetToken   string
}

// Register creates a CUSTOMER account. Duplicate email or staff id fails
// with a validation error.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.StaffID = strings.TrimSpace(input.StaffID)
	input.Name = strings.TrimSpace(input.Name)
	if input.Email == "" || input.Password == "" || input.Name == "" || input.StaffID == "" {
		return nil, apperrors.NewValidationError("email, password, name, staffId required")
	}

	exists, err := s.users.ExistsByStaffIDOrEmail(ctx, input.StaffID, input.Email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if exists {
		return nil, apperrors.NewValidationError("user with this email or staff ID already exists")
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		StaffID:      input.StaffID,
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login authenticates by staff id. A temporary password yields a
// reset-scoped token instead of a session.
func (s *AuthService) Login(ctx context.Context, staffID, password string) (*LoginResult, error) {
	user, err := s.users.GetByStaffID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	if user.TemporaryPassword {
		resetToken, _, err := s.tokenMgr.GenerateReset(user.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		return &LoginResult{User: user, RequireReset: true, ResetToken: resetToken}, nil
	}

	token, exp, err := s.tokenMgr.GenerateSession(user)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// ResetPassword completes the temporary-password flow for the user carried
// by a reset-scoped token and issues a fresh session.
func (s *AuthService) ResetPassword(ctx context.Context, userID, newPassword string) (*LoginResult, error) {
	if len(newPassword) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash, false); err != nil {
		return nil, apperrors.MapError(err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	token, exp, err := s.tokenMgr.GenerateSession(user)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// ChangePassword verifies the current password before updating to a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	return apperrors.MapError(s.users.UpdatePassword(ctx, userID, hash, false))
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
