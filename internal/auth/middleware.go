package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/afristar/helpdesk/internal/authz"
	"github.com/afristar/helpdesk/internal/domain"
	"github.com/afristar/helpdesk/internal/repository"
	apperrors "github.com/afristar/helpdesk/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User  *domain.User
	Scope Scope
}

// Actor converts the principal into its policy-engine form.
func (p *Principal) Actor() authz.Actor {
	return authz.Actor{ID: p.User.ID, Role: p.User.Role}
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces a session-scoped token for protected routes. A
// reset-scoped token is rejected here, so an account stuck on a temporary
// password cannot reach any protected resource.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	return m.handleScoped(c, ScopeSession)
}

// HandleReset accepts only reset-scoped tokens. Used exclusively by the
// password reset endpoint.
func (m *Middleware) HandleReset(c *fiber.Ctx) error {
	return m.handleScoped(c, ScopePasswordReset)
}

func (m *Middleware) handleScoped(c *fiber.Ctx, scope Scope) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseScoped(parts[1], scope)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user, Scope: scope})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
