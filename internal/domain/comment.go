package domain

import "time"

// Comment is an append-only entry in a ticket thread. Internal comments are
// never visible to the ticket's customer author.
type Comment struct {
	ID        string
	TicketID  string
	AuthorID  string
	Content   string
	Internal  bool
	CreatedAt time.Time

	// Display field joined from users, populated on reads only.
	AuthorName string
}
