package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
)

// TicketCategory enumerates the request classification.
type TicketCategory string

const (
	TicketCategorySoftware TicketCategory = "SOFTWARE"
	TicketCategoryAccess   TicketCategory = "ACCESS"
	TicketCategoryOther    TicketCategory = "OTHER"
)

// Ticket is the aggregate for support requests. AuthorID is immutable after
// creation; tickets are never hard-deleted.
type Ticket struct {
	ID           string
	Title        string
	Description  string
	Status       TicketStatus
	Priority     TicketPriority
	Category     TicketCategory
	AuthorID     string
	AssignedToID *string
	ScheduledFor *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Display fields joined from users, populated on reads only.
	AuthorName   string
	AuthorEmail  string
	AssigneeName *string
}

var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed},
	TicketStatusInProgress: {TicketStatusResolved, TicketStatusOpen, TicketStatusClosed},
	TicketStatusResolved:   {TicketStatusOpen, TicketStatusClosed},
	TicketStatusClosed:     {},
}

// ValidTransition reports whether a status change is permitted. CLOSED is
// terminal; RESOLVED may be re-opened.
func ValidTransition(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
