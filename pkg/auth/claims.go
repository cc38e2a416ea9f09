// Package auth resolves caller identity from HS256 bearer tokens issued by
// the identity provider. It exposes a fixed identity record to the rest of
// the system; credential storage and login flows live elsewhere.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campushub/showcase-api/pkg/models"
)

// Claims is the JWT claims structure issued by the identity provider.
// The subject carries the user's UUID.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Identity is the fixed caller record every component receives after
// authentication.
type Identity struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// IsStaff reports whether the identity holds review privileges.
func (i *Identity) IsStaff() bool {
	return models.IsStaffRole(i.Role)
}

// Identity converts validated claims into an Identity record.
func (c *Claims) Identity() (*Identity, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject in token: %w", err)
	}
	if !models.IsValidRole(c.Role) {
		return nil, fmt.Errorf("invalid role in token: %q", c.Role)
	}
	return &Identity{
		ID:    id,
		Name:  c.Name,
		Email: c.Email,
		Role:  c.Role,
	}, nil
}
