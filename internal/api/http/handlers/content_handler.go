package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/afristar/helpdesk/internal/api/dto"
	"github.com/afristar/helpdesk/internal/service"
)

// ContentHandler serves the public website content map.
type ContentHandler struct {
	content *service.ContentService
}

// NewContentHandler constructs handler.
func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// Get handles GET /content. Entries are keyed by their content key so the
// frontend can look values up directly.
func (h *ContentHandler) Get(c *fiber.Ctx) error {
	entries, err := h.content.Entries(c.Context())
	if err != nil {
		return err
	}

	out := make(map[string]dto.ContentValue, len(entries))
	for _, entry := range entries {
		out[entry.Key] = dto.ContentValue{Value: entry.Value, ImageURL: entry.ImageURL}
	}
	return success(c, http.StatusOK, out)
}
