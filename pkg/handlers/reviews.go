package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/showcase-api/pkg/auth"
	"github.com/campushub/showcase-api/pkg/models"
	"github.com/campushub/showcase-api/pkg/services"
)

// RejectRequest is the body of POST /api/reviews/{projectID}/reject. The
// reason is optional; a default comment is recorded when it is absent.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// ReviewHandler handles review and verdict HTTP requests.
type ReviewHandler struct {
	reviewService services.ReviewService
	logger        *zap.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService services.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// RegisterRoutes registers the review handler's routes on the given mux.
func (h *ReviewHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/reviews/{projectID}", h.List)
	mux.HandleFunc("POST /api/reviews/{projectID}", authMiddleware.RequireAuth(h.Add))
	mux.HandleFunc("POST /api/reviews/{projectID}/approve", authMiddleware.RequireAuth(h.Approve))
	mux.HandleFunc("POST /api/reviews/{projectID}/reject", authMiddleware.RequireAuth(h.Reject))
	mux.HandleFunc("POST /api/reviews/{projectID}/publish", authMiddleware.RequireAuth(h.Publish))
}

// List handles GET /api/reviews/{projectID}.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListByProject(r.Context(), projectID)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteList(w, http.StatusOK, reviews, len(reviews)); err != nil {
		h.logger.Error("Failed to encode review list", zap.Error(err))
	}
}

// Add handles POST /api/reviews/{projectID}.
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	projectID, ok := ParseID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	var review models.Review
	if !DecodeJSON(w, r, &review, h.logger) {
		return
	}

	created, err := h.reviewService.Add(r.Context(), ident, projectID, &review)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusCreated, created); err != nil {
		h.logger.Error("Failed to encode review", zap.Error(err))
	}
}

// Approve handles POST /api/reviews/{projectID}/approve.
func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.verdict(w, r, h.reviewService.Approve)
}

// Publish handles POST /api/reviews/{projectID}/publish.
func (h *ReviewHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.verdict(w, r, h.reviewService.Publish)
}

// Reject handles POST /api/reviews/{projectID}/reject.
func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.GetIdentity(r.Context())

	projectID, ok := ParseID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	// The body is optional; rejecting with no reason is legal.
	var req RejectRequest
	if r.Body != nil && r.ContentLength != 0 {
		if !DecodeJSON(w, r, &req, h.logger) {
			return
		}
	}

	project, err := h.reviewService.Reject(r.Context(), ident, projectID, req.Reason)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to encode project", zap.Error(err))
	}
}

// verdict runs an approve or publish style transition that takes no body.
func (h *ReviewHandler) verdict(w http.ResponseWriter, r *http.Request,
	transition func(ctx context.Context, ident *auth.Identity, projectID uuid.UUID) (*models.Project, error)) {
	ident, _ := auth.GetIdentity(r.Context())

	projectID, ok := ParseID(w, r, "projectID", h.logger)
	if !ok {
		return
	}

	project, err := transition(r.Context(), ident, projectID)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	if err := WriteData(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to encode project", zap.Error(err))
	}
}
