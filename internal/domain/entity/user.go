package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin   = "admin"   // full control, second-level approvals, clearing
	RoleManager = "manager" // approvals, reports
	RoleEntry   = "entry"   // data entry only
)

// User represents a system user.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plain after persisting
	Name         string
	Role         string // admin, manager, entry
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
