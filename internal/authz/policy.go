// Package authz is the single authorization decision point for ticket
// operations. It performs no I/O: decisions are a deterministic function of
// the caller's role, the action, and resource ownership. Anything the rules
// do not explicitly allow is denied.
package authz

import (
	"github.com/afristar/helpdesk/internal/domain"
	"github.com/afristar/helpdesk/pkg/util"
)

// Action identifies an operation subject to authorization.
type Action string

const (
	ActionTicketCreate        Action = "ticket:create"
	ActionTicketRead          Action = "ticket:read"
	ActionTicketUpdate        Action = "ticket:update"
	ActionTicketSchedule      Action = "ticket:schedule"
	ActionTicketAssign        Action = "ticket:assign"
	ActionTicketStats         Action = "ticket:stats"
	ActionCommentCreate       Action = "comment:create"
	ActionInternalCommentRead Action = "comment:read_internal"
	ActionUserList            Action = "user:list"
)

// Actor is the authenticated caller as seen by the policy engine.
type Actor struct {
	ID   string
	Role domain.Role
}

// Resource carries the ownership facts a decision may depend on. For
// actions without a target (create, stats, listing) it is the zero value.
type Resource struct {
	OwnerID string
}

// TicketResource builds a Resource from a ticket.
func TicketResource(t *domain.Ticket) Resource {
	return Resource{OwnerID: t.AuthorID}
}

// Authorize returns nil when the actor may perform the action, or a
// FORBIDDEN DomainError otherwise.
func Authorize(actor Actor, action Action, res Resource) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if actor.Role != domain.RoleCustomer {
		// Unknown roles fail closed.
		return util.NewForbidden("insufficient permissions")
	}

	switch action {
	case ActionTicketCreate, ActionCommentCreate, ActionTicketStats:
		if action == ActionCommentCreate && res.OwnerID != actor.ID {
			return util.NewForbidden("not the ticket author")
		}
		return nil
	case ActionTicketRead, ActionTicketUpdate:
		if res.OwnerID != actor.ID {
			return util.NewForbidden("not the ticket author")
		}
		return nil
	case ActionTicketSchedule:
		return util.NewForbidden("only admins can schedule tickets")
	case ActionTicketAssign:
		return util.NewForbidden("only admins can assign tickets")
	case ActionInternalCommentRead:
		return util.NewForbidden("internal comments are staff-only")
	case ActionUserList:
		return util.NewForbidden("admin access required")
	}
	return util.NewForbidden("insufficient permissions")
}

// CanReadInternal reports whether internal comments are visible to the actor.
func CanReadInternal(actor Actor) bool {
	return Authorize(actor, ActionInternalCommentRead, Resource{}) == nil
}

// ScopeToOwner reports whether listing operations must be filtered to
// records the actor authored.
func ScopeToOwner(actor Actor) bool {
	return actor.Role != domain.RoleAdmin
}
