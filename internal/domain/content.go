package domain

import "time"

// ContentEntry is a key/value record backing the public website content
// lookup. Managed through the admin surface, read anonymously.
type ContentEntry struct {
	ID          string
	Key         string
	Value       string
	ImageURL    *string
	Description *string
	UpdatedAt   time.Time
}
