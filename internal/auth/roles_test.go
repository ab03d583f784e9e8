package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/afristar/helpdesk/internal/domain"
	apperrors "github.com/afristar/helpdesk/pkg/util"
)

func newRoleGatedApp(principal *Principal) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"status": "error", "message": de.Message})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		if principal != nil {
			c.Locals(principalKey, principal)
		}
		return c.Next()
	})
	app.Patch("/admin/tickets/:id", RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRequireRoleBlocksCustomerFromAdminRoutes(t *testing.T) {
	customer := &Principal{
		User:  &domain.User{ID: "c1", Role: domain.RoleCustomer},
		Scope: ScopeSession,
	}
	app := newRoleGatedApp(customer)

	resp, err := app.Test(httptest.NewRequest("PATCH", "/admin/tickets/t-1", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("customer on admin route: expected 403, got %d", resp.StatusCode)
	}
}

func TestRequireRoleAdmitsAdmin(t *testing.T) {
	admin := &Principal{
		User:  &domain.User{ID: "a1", Role: domain.RoleAdmin},
		Scope: ScopeSession,
	}
	app := newRoleGatedApp(admin)

	resp, err := app.Test(httptest.NewRequest("PATCH", "/admin/tickets/t-1", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("admin on admin route: expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	app := newRoleGatedApp(nil)

	resp, err := app.Test(httptest.NewRequest("PATCH", "/admin/tickets/t-1", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("missing principal: expected 401, got %d", resp.StatusCode)
	}
}
