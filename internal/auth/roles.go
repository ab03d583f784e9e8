package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/afristar/helpdesk/internal/domain"
	apperrors "github.com/afristar/helpdesk/pkg/util"
)

// RequireRole ensures the authenticated principal holds one of the allowed
// roles. Used to gate whole route groups; per-resource decisions still go
// through the policy engine.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}
