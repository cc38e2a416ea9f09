package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService validates inbound requests and resolves caller identity.
type AuthService interface {
	// ValidateRequest extracts and verifies the bearer token on r.
	ValidateRequest(r *http.Request) (*Identity, error)
}

// jwtAuthService verifies HS256 tokens with a shared secret.
type jwtAuthService struct {
	secret []byte
}

// NewAuthService creates an AuthService verifying tokens signed with the
// given secret.
func NewAuthService(secret string) AuthService {
	return &jwtAuthService{secret: []byte(secret)}
}

// ValidateRequest verifies the Authorization header and returns the caller
// identity.
func (s *jwtAuthService) ValidateRequest(r *http.Request) (*Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, fmt.Errorf("missing authorization header")
	}

	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == header {
		return nil, fmt.Errorf("authorization header is not a bearer token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims.Identity()
}

// Ensure jwtAuthService implements AuthService at compile time.
var _ AuthService = (*jwtAuthService)(nil)
