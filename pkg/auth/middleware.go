package auth

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Middleware provides HTTP authentication middleware. It is thin and
// delegates token verification to AuthService; role checks belong to the
// policy table consulted inside the services.
type Middleware struct {
	authService AuthService
	logger      *zap.Logger
}

// NewMiddleware creates a new auth middleware with the given AuthService.
func NewMiddleware(authService AuthService, logger *zap.Logger) *Middleware {
	return &Middleware{
		authService: authService,
		logger:      logger,
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller identity in the request context.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, err := m.authService.ValidateRequest(r)
		if err != nil {
			m.unauthorized(w, "Authentication required")
			return
		}
		next(w, r.WithContext(WithIdentity(r.Context(), ident)))
	}
}

// OptionalAuth stores the caller identity when a valid token is present and
// lets anonymous requests through. Endpoints with visibility rules (project
// listing) use this to distinguish public from privileged callers; an
// invalid token is treated as anonymous rather than rejected.
func (m *Middleware) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			if ident, err := m.authService.ValidateRequest(r); err == nil {
				r = r.WithContext(WithIdentity(r.Context(), ident))
			} else {
				m.logger.Debug("Ignoring invalid token on public endpoint", zap.Error(err))
			}
		}
		next(w, r)
	}
}

// unauthorized returns a 401 response with the standard envelope.
func (m *Middleware) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
