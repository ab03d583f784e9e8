package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/afristar/helpdesk/internal/api/dto"
	"github.com/afristar/helpdesk/internal/auth"
	"github.com/afristar/helpdesk/internal/service"
	apperrors "github.com/afristar/helpdesk/pkg/util"
)

// AdminHandler exposes the administrative surface. Authorization is
// enforced by the services through the policy engine, not by the routes,
// so a customer hitting these endpoints gets a 403 rather than a 404.
type AdminHandler struct {
	tickets *service.TicketService
	users   *service.UserService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(tickets *service.TicketService, users *service.UserService) *AdminHandler {
	return &AdminHandler{tickets: tickets, users: users}
}

// UpdateTicket handles PATCH /admin/tickets/:id.
func (h *AdminHandler) UpdateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	ticket, err := h.tickets.Update(c.Context(), principal.Actor(), c.Params("id"), service.TicketPatch{
		Status:       req.Status,
		AssignedToID: req.AssignedToID,
		Priority:     req.Priority,
		Category:     req.Category,
		ScheduledFor: req.ScheduledFor,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, dto.NewTicketResponse(ticket))
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	users, meta, err := h.users.List(c.Context(), principal.Actor(), queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		return err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return successPaged(c, items, meta)
}
