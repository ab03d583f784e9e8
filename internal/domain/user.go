package domain

import "time"

// Role enumerates the access roles recognized by the policy engine.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// User is the single authentication identity for both customers and staff.
// StaffID is the human-facing login key, distinct from email.
type User struct {
	ID                string
	StaffID           string
	Email             string
	Name              string
	PasswordHash      string
	Role              Role
	TemporaryPassword bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
