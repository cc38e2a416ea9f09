package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/showcase-api/pkg/auth"
	"github.com/campushub/showcase-api/pkg/repositories"
	"github.com/campushub/showcase-api/pkg/services"
)

// AssignSupervisorRequest is the body of POST /api/users/supervisor/{projectID}.
type AssignSupervisorRequest struct {
	SupervisorID uuid.UUID `json:"supervisorId"`
}

// UserHandler handles user HTTP requests.
type UserHandler struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers the user handler's routes on the given mux.
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/users", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("GET /api/users/{userID}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("PUT /api/users/{userID}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("GET /api/users/{userID}/projects", authMiddleware.RequireAuth(h.Projects))
	mux.HandleFunc("POST /api/users/supervisor/{projectID}", authMiddleware.RequireAuth(h.AssignSupervisor))
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	filter := repositories.UserFilter{
		Role:       r.URL.Query().Get("role"),
		Department: r.URL.Query().Get("department"),
	}

	users, err := h.userService.List(r.Context(), ident, filter)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteList(w, http.StatusOK, users, len(users)); err != nil {
		h.logger.Error("Failed to encode user list", zap.Error(err))
	}
}

// Get handles GET /api/users/{userID}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	id, ok := ParseID(w, r, "userID", h.logger)
	if !ok {
		return
	}

	user, err := h.userService.Get(r.Context(), ident, id)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to encode user", zap.Error(err))
	}
}

// Update handles PUT /api/users/{userID}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	id, ok := ParseID(w, r, "userID", h.logger)
	if !ok {
		return
	}

	var update services.UserUpdate
	if !DecodeJSON(w, r, &update, h.logger) {
		return
	}

	user, err := h.userService.Update(r.Context(), ident, id, &update)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to encode user", zap.Error(err))
	}
}

// Projects handles GET /api/users/{userID}/projects.
func (h *UserHandler) Projects(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	id, ok := ParseID(w, r, "userID", h.logger)
	if !ok {
		return
	}

	projects, err := h.userService.Projects(r.Context(), ident, id)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteList(w, http.StatusOK, projects, len(projects)); err != nil {
		h.logger.Error("Failed to encode project list", zap.Error(err))
	}
}

// AssignSupervisor handles POST /api/users/supervisor/{projectID}.
func (h *UserHandler) AssignSupervisor(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	projectID, ok := ParseID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	var req AssignSupervisorRequest
	if !DecodeJSON(w, r, &req, h.logger) {
		return
	}
	if req.SupervisorID == uuid.Nil {
		if err := WriteError(w, http.StatusBadRequest, "supervisorId is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	project, err := h.userService.AssignSupervisor(r.Context(), ident, projectID, req.SupervisorID)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to encode project", zap.Error(err))
	}
}
