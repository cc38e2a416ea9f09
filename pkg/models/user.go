package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Credential handling lives in the
// identity provider; this record never carries a password.
type User struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department,omitempty"`
	Year       int       `json:"year,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Role constants for callers and authors.
const (
	RoleStudent    = "student"
	RoleSupervisor = "supervisor"
	RoleFaculty    = "faculty"
	RoleAdmin      = "admin"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleStudent, RoleSupervisor, RoleFaculty, RoleAdmin}

// IsValidRole checks if the given role is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsStaffRole reports whether the role carries review privileges.
// Staff may approve, reject, and add reviews.
func IsStaffRole(role string) bool {
	return role == RoleSupervisor || role == RoleFaculty || role == RoleAdmin
}
