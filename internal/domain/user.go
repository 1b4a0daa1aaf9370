package domain

import (
	"regexp"
	"time"
)

// Role represents the role of a platform user.
type Role string

// List of possible user roles
const (
	RoleCustomer      Role = "customer"
	RoleDeliveryAgent Role = "delivery_agent"
	RoleAdmin         Role = "admin"
)

var allowedRoles = [...]Role{
	RoleCustomer, RoleDeliveryAgent, RoleAdmin,
}

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// CanManagePackages reports whether the role may list all packages and post
// status updates. Aggregate stats remain admin-only.
func (r Role) CanManagePackages() bool {
	return r == RoleAdmin || r == RoleDeliveryAgent
}

// User represents a registered platform user.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	Active       bool
}

// reEmail is a deliberately loose email shape check; uniqueness and
// deliverability are the storage layer's and the mail system's problem.
var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail validates the email format
func ValidateEmail(s string) bool {
	return reEmail.MatchString(s)
}
