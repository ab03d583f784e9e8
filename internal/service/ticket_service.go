package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/afristar/helpdesk/internal/authz"
	"github.com/afristar/helpdesk/internal/domain"
	"github.com/afristar/helpdesk/internal/events"
	"github.com/afristar/helpdesk/internal/repository"
	apperrors "github.com/afristar/helpdesk/pkg/util"
)

// TicketService coordinates the ticket lifecycle. Every operation consults
// the policy engine before touching state; mutations run inside a single
// store transaction.
type TicketService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Category    domain.TicketCategory
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// TicketPatch describes a partial update; nil fields are left untouched.
type TicketPatch struct {
	Status       *domain.TicketStatus
	AssignedToID *string
	Priority     *domain.TicketPriority
	Category     *domain.TicketCategory
	ScheduledFor *time.Time
}

// Create opens a new ticket for the actor and emits a creation event.
func (s *TicketService) Create(ctx context.Context, actor authz.Actor, input TicketCreateInput) (*domain.Ticket, error) {
	if err := authz.Authorize(actor, authz.ActionTicketCreate, authz.Resource{}); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required")
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		Category:    input.Category,
		AuthorID:    actor.ID,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if ticket.Category == "" {
		ticket.Category = domain.TicketCategoryOther
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	author, err := s.users.GetByID(ctx, actor.ID)
	if err == nil {
		ticket.AuthorName = author.Name
		ticket.AuthorEmail = author.Email
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketCreatedPayload{
			Title:       ticket.Title,
			Description: ticket.Description,
			Priority:    ticket.Priority,
			AuthorEmail: ticket.AuthorEmail,
		},
	})
	return ticket, nil
}

// List returns tickets visible to the actor with pagination metadata.
// Customer listings are implicitly scoped to their own tickets.
func (s *TicketService) List(ctx context.Context, actor authz.Actor, filter TicketListFilter) ([]domain.Ticket, Pagination, error) {
	page, limit, offset := normalizePage(filter.Page, filter.Limit)

	repoFilter := repository.TicketFilter{Limit: limit, Offset: offset}
	if authz.ScopeToOwner(actor) {
		authorID := actor.ID
		repoFilter.AuthorID = &authorID
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		repoFilter.Search = &search
	}
	if filter.Status != "" && filter.Status != "ALL" {
		status := domain.TicketStatus(filter.Status)
		repoFilter.Status = &status
	}

	tickets, total, err := s.tickets.List(ctx, repoFilter)
	if err != nil {
		return nil, Pagination{}, apperrors.MapError(err)
	}
	return tickets, paginate(total, page, limit), nil
}

// Stats aggregates ticket counts by status, scoped like listings.
func (s *TicketService) Stats(ctx context.Context, actor authz.Actor) (map[domain.TicketStatus]int, error) {
	if err := authz.Authorize(actor, authz.ActionTicketStats, authz.Resource{}); err != nil {
		return nil, err
	}

	var authorID *string
	if authz.ScopeToOwner(actor) {
		id := actor.ID
		authorID = &id
	}
	counts, err := s.tickets.CountByStatus(ctx, authorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return counts, nil
}

// Update applies a partial update under a single transaction. A status
// change emits exactly one notification event; scheduling and assignment
// are admin-only regardless of the other fields.
func (s *TicketService) Update(ctx context.Context, actor authz.Actor, ticketID string, patch TicketPatch) (*domain.Ticket, error) {
	if patch.ScheduledFor != nil {
		if err := authz.Authorize(actor, authz.ActionTicketSchedule, authz.Resource{}); err != nil {
			return nil, err
		}
	}
	if patch.AssignedToID != nil {
		if err := authz.Authorize(actor, authz.ActionTicketAssign, authz.Resource{}); err != nil {
			return nil, err
		}
	}

	var oldStatus domain.TicketStatus
	statusChanged := false

	ticket, err := s.tickets.Mutate(ctx, ticketID, func(t *domain.Ticket) error {
		if err := authz.Authorize(actor, authz.ActionTicketUpdate, authz.TicketResource(t)); err != nil {
			return err
		}
		oldStatus = t.Status

		if patch.Status != nil && *patch.Status != t.Status {
			if !domain.ValidTransition(t.Status, *patch.Status) {
				return apperrors.NewValidationError(
					fmt.Sprintf("cannot transition ticket from %s to %s", t.Status, *patch.Status))
			}
			t.Status = *patch.Status
			statusChanged = true
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.Category != nil {
			t.Category = *patch.Category
		}
		if patch.AssignedToID != nil {
			t.AssignedToID = patch.AssignedToID
		}
		if patch.ScheduledFor != nil {
			t.ScheduledFor = patch.ScheduledFor
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.MapError(err)
	}

	if statusChanged {
		authorEmail := ""
		if author, err := s.users.GetByID(ctx, ticket.AuthorID); err == nil {
			authorEmail = author.Email
			ticket.AuthorName = author.Name
			ticket.AuthorEmail = author.Email
		}
		s.publish(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			ActorID:  actor.ID,
			Payload: events.TicketStatusChangedPayload{
				Title:       ticket.Title,
				OldStatus:   oldStatus,
				NewStatus:   ticket.Status,
				AuthorEmail: authorEmail,
			},
		})
	}
	return ticket, nil
}

// AddComment appends a comment to a ticket. Customers may comment only on
// their own tickets and may not post internal notes.
func (s *TicketService) AddComment(ctx context.Context, actor authz.Actor, ticketID, content string, internal bool) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content required")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.MapError(err)
	}
	if err := authz.Authorize(actor, authz.ActionCommentCreate, authz.TicketResource(ticket)); err != nil {
		return nil, err
	}
	if internal && !authz.CanReadInternal(actor) {
		return nil, apperrors.NewForbidden("internal comments are staff-only")
	}

	comment := &domain.Comment{
		TicketID: ticket.ID,
		AuthorID: actor.ID,
		Content:  strings.TrimSpace(content),
		Internal: internal,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return comment, nil
}

// GetDetails returns a ticket with its comment thread. Internal comments
// are stripped for callers who may not read them.
func (s *TicketService) GetDetails(ctx context.Context, actor authz.Actor, ticketID string) (*domain.Ticket, []domain.Comment, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("ticket")
		}
		return nil, nil, apperrors.MapError(err)
	}
	if err := authz.Authorize(actor, authz.ActionTicketRead, authz.TicketResource(ticket)); err != nil {
		return nil, nil, err
	}

	comments, err := s.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if !authz.CanReadInternal(actor) {
		visible := make([]domain.Comment, 0, len(comments))
		for _, comment := range comments {
			if comment.Internal {
				continue
			}
			visible = append(visible, comment)
		}
		comments = visible
	}
	return ticket, comments, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
