package testhelpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campushub/showcase-api/pkg/auth"
)

// TestJWTSecret signs tokens minted for tests. Wire the same value into
// the auth service under test.
const TestJWTSecret = "test-secret"

// GenerateTestJWT creates a signed HS256 token for the given identity,
// valid for one hour.
func GenerateTestJWT(t interface{ Fatalf(string, ...interface{}) }, id uuid.UUID, name, email, role string) string {
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:  name,
		Email: email,
		Role:  role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return token
}

// GenerateTestJWTWithBearer returns the token with the "Bearer " prefix
// for the Authorization header.
func GenerateTestJWTWithBearer(t interface{ Fatalf(string, ...interface{}) }, id uuid.UUID, name, email, role string) string {
	return "Bearer " + GenerateTestJWT(t, id, name, email, role)
}
