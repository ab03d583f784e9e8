package dto

import (
	"time"

	"github.com/afristar/helpdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Category    domain.TicketCategory `json:"category"`
}

// UpdateTicketRequest payload for the admin PATCH route. Nil fields are
// left untouched.
type UpdateTicketRequest struct {
	Status       *domain.TicketStatus   `json:"status"`
	AssignedToID *string                `json:"assignedToId"`
	Priority     *domain.TicketPriority `json:"priority"`
	Category     *domain.TicketCategory `json:"category"`
	ScheduledFor *time.Time             `json:"scheduledFor"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content    string `json:"content"`
	IsInternal bool   `json:"isInternal"`
}

// TicketResponse is the wire form of a ticket.
type TicketResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Status       domain.TicketStatus   `json:"status"`
	Priority     domain.TicketPriority `json:"priority"`
	Category     domain.TicketCategory `json:"category"`
	AuthorID     string                `json:"authorId"`
	AuthorName   string                `json:"authorName,omitempty"`
	AssignedToID *string               `json:"assignedToId"`
	AssigneeName *string               `json:"assigneeName,omitempty"`
	ScheduledFor *time.Time            `json:"scheduledFor"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// CommentResponse is the wire form of a comment.
type CommentResponse struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticketId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"isInternal"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TicketDetailResponse bundles a ticket with its visible comment thread.
type TicketDetailResponse struct {
	TicketResponse
	Comments []CommentResponse `json:"comments"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:           ticket.ID,
		Title:        ticket.Title,
		Description:  ticket.Description,
		Status:       ticket.Status,
		Priority:     ticket.Priority,
		Category:     ticket.Category,
		AuthorID:     ticket.AuthorID,
		AuthorName:   ticket.AuthorName,
		AssignedToID: ticket.AssignedToID,
		AssigneeName: ticket.AssigneeName,
		ScheduledFor: ticket.ScheduledFor,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:         comment.ID,
		TicketID:   comment.TicketID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		Content:    comment.Content,
		IsInternal: comment.Internal,
		CreatedAt:  comment.CreatedAt,
	}
}
