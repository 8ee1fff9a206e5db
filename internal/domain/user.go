package domain

import "time"

// UserRole differentiates requesters from support staff and administrators.
type UserRole string

const (
	UserRoleRequester UserRole = "REQUESTER"
	UserRoleStaff     UserRole = "STAFF"
	UserRoleAdmin     UserRole = "ADMIN"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for everyone who touches tickets: requesters who
// submit them and staff who claim and resolve them.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanActOnTickets reports whether the user may claim or complete tickets.
func (u *User) CanActOnTickets() bool {
	return u.Role == UserRoleStaff || u.Role == UserRoleAdmin
}
