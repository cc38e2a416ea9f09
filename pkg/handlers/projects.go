package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/campushub/showcase-api/pkg/auth"
	"github.com/campushub/showcase-api/pkg/models"
	"github.com/campushub/showcase-api/pkg/repositories"
	"github.com/campushub/showcase-api/pkg/services"
)

// ProjectHandler handles project HTTP requests.
type ProjectHandler struct {
	projectService services.ProjectService
	logger         *zap.Logger
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService services.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// RegisterRoutes registers the project handler's routes on the given mux.
func (h *ProjectHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/projects", authMiddleware.OptionalAuth(h.List))
	mux.HandleFunc("POST /api/projects", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /api/projects/{projectID}", h.Get)
	mux.HandleFunc("PUT /api/projects/{projectID}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /api/projects/{projectID}", authMiddleware.RequireAuth(h.Delete))
	mux.HandleFunc("PUT /api/projects/{projectID}/like", h.Like)
	mux.HandleFunc("POST /api/projects/{projectID}/submit", authMiddleware.RequireAuth(h.Submit))
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	filter := repositories.ProjectFilter{
		Status:     r.URL.Query().Get("status"),
		Category:   r.URL.Query().Get("category"),
		Faculty:    r.URL.Query().Get("faculty"),
		Department: r.URL.Query().Get("department"),
		Search:     r.URL.Query().Get("search"),
	}
	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			if err := WriteError(w, http.StatusBadRequest, "invalid year"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		filter.Year = year
	}

	projects, err := h.projectService.List(r.Context(), ident, filter)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteList(w, http.StatusOK, projects, len(projects)); err != nil {
		h.logger.Error("Failed to encode project list", zap.Error(err))
	}
}

// Get handles GET /api/projects/{projectID}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	project, err := h.projectService.Get(r.Context(), id)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to encode project", zap.Error(err))
	}
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	var project models.Project
	if !DecodeJSON(w, r, &project, h.logger) {
		return
	}

	created, err := h.projectService.Create(r.Context(), ident, &project)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to encode project", zap.Error(err))
	}
}

// Update handles PUT /api/projects/{projectID}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	id, ok := ParseID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	var update services.ProjectUpdate
	if !DecodeJSON(w, r, &update, h.logger) {
		return
	}

	project, err := h.projectService.Update(r.Context(), ident, id, &update)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to encode project", zap.Error(err))
	}
}

// Delete handles DELETE /api/projects/{projectID}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	id, ok := ParseID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	if err := h.projectService.Delete(r.Context(), ident, id); err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusOK, struct{}{}); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// Like handles PUT /api/projects/{projectID}/like.
func (h *ProjectHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	project, err := h.projectService.Like(r.Context(), id)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to encode project", zap.Error(err))
	}
}

// Submit handles POST /api/projects/{projectID}/submit.
func (h *ProjectHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	id, ok := ParseID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	project, err := h.projectService.Submit(r.Context(), ident, id)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to encode project", zap.Error(err))
	}
}
