package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushub/showcase-api/pkg/models"
)

func newTestMiddleware() *Middleware {
	return NewMiddleware(NewAuthService(testSecret), zap.NewNop())
}

func TestRequireAuth_ValidToken(t *testing.T) {
	mw := newTestMiddleware()
	id := uuid.New()

	var gotIdent *Identity
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotIdent, _ = GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, requestWithToken(signToken(t, testSecret, validClaims(id))))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotIdent)
	assert.Equal(t, id, gotIdent.ID)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	mw := newTestMiddleware()

	called := false
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	mw := newTestMiddleware()

	claims := validClaims(uuid.New())
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	rec := httptest.NewRecorder()
	handler(rec, requestWithToken(signToken(t, testSecret, claims)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth_NoToken(t *testing.T) {
	mw := newTestMiddleware()

	var present bool
	handler := mw.OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		_, present = GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, present)
}

func TestOptionalAuth_ValidToken(t *testing.T) {
	mw := newTestMiddleware()
	id := uuid.New()

	var gotIdent *Identity
	handler := mw.OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		gotIdent, _ = GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, requestWithToken(signToken(t, testSecret, validClaims(id))))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotIdent)
	assert.Equal(t, id, gotIdent.ID)
}

func TestOptionalAuth_InvalidTokenTreatedAsAnonymous(t *testing.T) {
	mw := newTestMiddleware()

	var present bool
	handler := mw.OptionalAuth(func(w http.ResponseWriter, r *http.Request) {
		_, present = GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, requestWithToken("garbage.token.here"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, present)
}

func TestGetIdentity_Empty(t *testing.T) {
	_, ok := GetIdentity(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestClaims_Identity_RoleRequired(t *testing.T) {
	claims := validClaims(uuid.New())
	claims.Role = ""
	_, err := claims.Identity()
	assert.Error(t, err)

	for _, role := range models.ValidRoles {
		claims.Role = role
		ident, err := claims.Identity()
		require.NoError(t, err)
		assert.Equal(t, role, ident.Role)
	}
}
