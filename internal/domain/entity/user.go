package entity

import (
	"fmt"
	"time"

	errs "github.com/flatbank/flatbank/internal/domain/error"
)

// Role classifies what a user is allowed to do.
type Role uint8

const (
	RoleCustomer Role = iota
	RoleEmployee
	RoleManager
	RoleAdmin
)

// String returns the lowercase wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleEmployee:
		return "employee"
	case RoleManager:
		return "manager"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParseRole converts a wire role name into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "customer":
		return RoleCustomer, nil
	case "employee":
		return RoleEmployee, nil
	case "manager":
		return RoleManager, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("invalid role %q: must be customer, employee, manager or admin", s)
	}
}

// User represents a login identity and its profile. Usernames, emails and
// phone numbers are unique across all users.
type User struct {
	ID           uint32
	Username     string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	Age          uint8
	Address      string
	Email        string
	Phone        string
	Active       bool
	CreatedAt    time.Time
}

// FullName returns the display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// EnsureActive returns ErrUserInactive for a deactivated user.
func (u *User) EnsureActive() error {
	if !u.Active {
		return errs.ErrUserInactive
	}
	return nil
}

// IsStaff reports whether the user holds any non-customer role.
func (u *User) IsStaff() bool {
	return u.Role != RoleCustomer
}
