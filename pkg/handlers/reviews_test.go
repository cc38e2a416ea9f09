package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushub/showcase-api/pkg/apperrors"
	"github.com/campushub/showcase-api/pkg/auth"
	"github.com/campushub/showcase-api/pkg/models"
)

func TestReviewHandler_List(t *testing.T) {
	projectID := uuid.New()
	svc := &mockReviewService{
		listFunc: func(ctx context.Context, gotID uuid.UUID) ([]*models.Review, error) {
			assert.Equal(t, projectID, gotID)
			return []*models.Review{
				{ID: uuid.New(), ProjectID: projectID, Rating: 4, Comment: "Good."},
				{ID: uuid.New(), ProjectID: projectID, Rating: 2, Comment: "Needs work."},
			}, nil
		},
	}
	handler := NewReviewHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/"+projectID.String(), nil)
	req.SetPathValue("projectID", projectID.String())
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
}

func TestReviewHandler_Add(t *testing.T) {
	projectID := uuid.New()
	ident := testIdentity(models.RoleSupervisor)
	svc := &mockReviewService{
		addFunc: func(ctx context.Context, gotIdent *auth.Identity, gotID uuid.UUID, review *models.Review) (*models.Review, error) {
			assert.Equal(t, ident.ID, gotIdent.ID)
			assert.Equal(t, 5, review.Rating)
			review.ID = uuid.New()
			return review, nil
		},
	}
	handler := NewReviewHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/reviews/"+projectID.String(),
		bytes.NewReader([]byte(`{"rating":5,"comment":"Excellent work"}`)))
	req.SetPathValue("projectID", projectID.String())
	rec := httptest.NewRecorder()
	handler.Add(rec, withIdentity(req, ident))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestReviewHandler_Add_ValidationError(t *testing.T) {
	svc := &mockReviewService{
		addFunc: func(ctx context.Context, ident *auth.Identity, id uuid.UUID, review *models.Review) (*models.Review, error) {
			return nil, apperrors.NewValidationError("rating", "rating must be between 1 and 5")
		},
	}
	handler := NewReviewHandler(svc, zap.NewNop())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews/"+id.String(),
		bytes.NewReader([]byte(`{"rating":9,"comment":"x"}`)))
	req.SetPathValue("projectID", id.String())
	rec := httptest.NewRecorder()
	handler.Add(rec, withIdentity(req, testIdentity(models.RoleFaculty)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Error, "rating must be between 1 and 5")
}

func TestReviewHandler_Approve(t *testing.T) {
	projectID := uuid.New()
	svc := &mockReviewService{
		approveFunc: func(ctx context.Context, ident *auth.Identity, gotID uuid.UUID) (*models.Project, error) {
			return sampleProject(models.StatusApproved), nil
		},
	}
	handler := NewReviewHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/reviews/"+projectID.String()+"/approve", nil)
	req.SetPathValue("projectID", projectID.String())
	rec := httptest.NewRecorder()
	handler.Approve(rec, withIdentity(req, testIdentity(models.RoleSupervisor)))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
}

func TestReviewHandler_Reject_BodyOptional(t *testing.T) {
	projectID := uuid.New()
	var gotReason string
	svc := &mockReviewService{
		rejectFunc: func(ctx context.Context, ident *auth.Identity, gotID uuid.UUID, reason string) (*models.Project, error) {
			gotReason = reason
			return sampleProject(models.StatusRejected), nil
		},
	}
	handler := NewReviewHandler(svc, zap.NewNop())

	// No body at all.
	req := httptest.NewRequest(http.MethodPost, "/api/reviews/"+projectID.String()+"/reject", nil)
	req.SetPathValue("projectID", projectID.String())
	rec := httptest.NewRecorder()
	handler.Reject(rec, withIdentity(req, testIdentity(models.RoleFaculty)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, gotReason)

	// With a reason.
	req = httptest.NewRequest(http.MethodPost, "/api/reviews/"+projectID.String()+"/reject",
		bytes.NewReader([]byte(`{"reason":"incomplete evaluation"}`)))
	req.SetPathValue("projectID", projectID.String())
	rec = httptest.NewRecorder()
	handler.Reject(rec, withIdentity(req, testIdentity(models.RoleFaculty)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "incomplete evaluation", gotReason)
}

func TestReviewHandler_Publish_InvalidTransition(t *testing.T) {
	svc := &mockReviewService{
		publishFunc: func(ctx context.Context, ident *auth.Identity, id uuid.UUID) (*models.Project, error) {
			return nil, &apperrors.InvalidTransitionError{Message: "only approved projects can be published"}
		},
	}
	handler := NewReviewHandler(svc, zap.NewNop())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews/"+id.String()+"/publish", nil)
	req.SetPathValue("projectID", id.String())
	rec := httptest.NewRecorder()
	handler.Publish(rec, withIdentity(req, testIdentity(models.RoleFaculty)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "only approved projects can be published", env.Error)
}
