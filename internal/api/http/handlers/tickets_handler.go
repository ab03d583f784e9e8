package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/afristar/helpdesk/internal/api/dto"
	"github.com/afristar/helpdesk/internal/auth"
	"github.com/afristar/helpdesk/internal/domain"
	"github.com/afristar/helpdesk/internal/service"
	apperrors "github.com/afristar/helpdesk/pkg/util"
)

// TicketsHandler exposes the ticket lifecycle routes.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets}
}

// Create handles POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	ticket, err := h.tickets.Create(c.Context(), principal.Actor(), service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, dto.NewTicketResponse(ticket))
}

// List handles GET /tickets with search, status, and pagination query params.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tickets, meta, err := h.tickets.List(c.Context(), principal.Actor(), service.TicketListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	})
	if err != nil {
		return err
	}

	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return successPaged(c, items, meta)
}

// Stats handles GET /tickets/stats.
func (h *TicketsHandler) Stats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	counts, err := h.tickets.Stats(c.Context(), principal.Actor())
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, fiber.Map{
		"open":       counts[domain.TicketStatusOpen],
		"inProgress": counts[domain.TicketStatusInProgress],
		"resolved":   counts[domain.TicketStatusResolved],
		"closed":     counts[domain.TicketStatusClosed],
	})
}

// GetDetails handles GET /tickets/:id. Internal comments are already
// stripped by the service for actors without internal read access.
func (h *TicketsHandler) GetDetails(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ticket, comments, err := h.tickets.GetDetails(c.Context(), principal.Actor(), c.Params("id"))
	if err != nil {
		return err
	}

	resp := dto.TicketDetailResponse{
		TicketResponse: dto.NewTicketResponse(ticket),
		Comments:       make([]dto.CommentResponse, 0, len(comments)),
	}
	for i := range comments {
		resp.Comments = append(resp.Comments, dto.NewCommentResponse(&comments[i]))
	}
	return success(c, http.StatusOK, resp)
}

// AddComment handles POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Content == "" {
		return apperrors.NewValidationError("content required")
	}

	comment, err := h.tickets.AddComment(c.Context(), principal.Actor(), c.Params("id"), req.Content, req.IsInternal)
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, dto.NewCommentResponse(comment))
}
