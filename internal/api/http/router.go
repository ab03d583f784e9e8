package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/afristar/helpdesk/internal/api/http/handlers"
	"github.com/afristar/helpdesk/internal/auth"
	"github.com/afristar/helpdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Admin          *handlers.AdminHandler
	Content        *handlers.ContentHandler
	AuthMiddleware *auth.Middleware
	RateLimit      fiber.Handler
}

// RegisterRoutes wires HTTP routes. Route groups only distinguish which
// token scope is required; role checks live in the policy engine.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1", cfg.RateLimit)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset", cfg.AuthMiddleware.HandleReset, cfg.Auth.ResetPassword)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	api.Get("/content", cfg.Content.Get)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", cfg.Tickets.Create)
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/stats", cfg.Tickets.Stats)
	tickets.Get("/:id", cfg.Tickets.GetDetails)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Patch("/tickets/:id", cfg.Admin.UpdateTicket)
	admin.Get("/users", cfg.Admin.ListUsers)
}
