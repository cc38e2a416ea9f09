package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/showcase-api/pkg/auth"
	"github.com/campushub/showcase-api/pkg/lifecycle"
	"github.com/campushub/showcase-api/pkg/models"
	"github.com/campushub/showcase-api/pkg/policy"
	"github.com/campushub/showcase-api/pkg/repositories"
)

// ReviewService manages reviews and the supervisory lifecycle verdicts.
type ReviewService interface {
	Add(ctx context.Context, ident *auth.Identity, projectID uuid.UUID, review *models.Review) (*models.Review, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Review, error)
	Approve(ctx context.Context, ident *auth.Identity, projectID uuid.UUID) (*models.Project, error)
	// Reject moves the project to rejected and records the rejection review
	// in one transaction. An empty reason falls back to the default comment.
	Reject(ctx context.Context, ident *auth.Identity, projectID uuid.UUID, reason string) (*models.Project, error)
	Publish(ctx context.Context, ident *auth.Identity, projectID uuid.UUID) (*models.Project, error)
}

type reviewService struct {
	reviews  repositories.ReviewRepository
	projects repositories.ProjectRepository
	logger   *zap.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repositories.ReviewRepository, projects repositories.ProjectRepository, logger *zap.Logger) ReviewService {
	return &reviewService{
		reviews:  reviews,
		projects: projects,
		logger:   logger,
	}
}

// Add appends a review to an existing project.
func (s *reviewService) Add(ctx context.Context, ident *auth.Identity, projectID uuid.UUID, review *models.Review) (*models.Review, error) {
	if err := policy.Check(policy.ActionReviewAdd, callerFor(ident, false)); err != nil {
		return nil, err
	}

	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}

	if err := models.ValidateReview(review); err != nil {
		return nil, err
	}

	// Status and creation time are server-owned; anything the caller sent
	// is discarded and the insert applies the defaults.
	review.ID = uuid.Nil
	review.ProjectID = projectID
	review.ReviewerID = ident.ID
	review.Status = ""
	review.CreatedAt = time.Time{}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	review.Reviewer = &models.ReviewerSnapshot{
		Name:  ident.Name,
		Email: ident.Email,
		Role:  ident.Role,
	}

	s.logger.Info("Review added",
		zap.String("project_id", projectID.String()),
		zap.String("reviewer_id", ident.ID.String()))

	return review, nil
}

// ListByProject returns the project's reviews, oldest first. The project
// must exist; listing an unknown project is a not-found, not an empty list.
func (s *reviewService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Review, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.reviews.ListByProject(ctx, projectID)
}

// Approve moves a submitted project to approved.
func (s *reviewService) Approve(ctx context.Context, ident *auth.Identity, projectID uuid.UUID) (*models.Project, error) {
	if err := policy.Check(policy.ActionProjectApprove, callerFor(ident, false)); err != nil {
		return nil, err
	}

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	next, err := lifecycle.Next(project.Status, lifecycle.ActionApprove)
	if err != nil {
		return nil, err
	}

	updated, err := s.projects.UpdateStatus(ctx, projectID, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project approved",
		zap.String("project_id", projectID.String()),
		zap.String("reviewer_id", ident.ID.String()))

	return updated, nil
}

// Reject moves a project to rejected and appends the rejection review.
func (s *reviewService) Reject(ctx context.Context, ident *auth.Identity, projectID uuid.UUID, reason string) (*models.Project, error) {
	if err := policy.Check(policy.ActionProjectReject, callerFor(ident, false)); err != nil {
		return nil, err
	}

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if _, err := lifecycle.Next(project.Status, lifecycle.ActionReject); err != nil {
		return nil, err
	}

	comment := reason
	if comment == "" {
		comment = models.DefaultRejectionComment
	}
	review := &models.Review{
		ReviewerID: ident.ID,
		Rating:     1,
		Comment:    comment,
		Status:     models.ReviewStatusRejected,
	}

	updated, err := s.reviews.CreateRejection(ctx, projectID, review)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project rejected",
		zap.String("project_id", projectID.String()),
		zap.String("reviewer_id", ident.ID.String()))

	return updated, nil
}

// Publish moves an approved project to completed, making it publicly
// visible.
func (s *reviewService) Publish(ctx context.Context, ident *auth.Identity, projectID uuid.UUID) (*models.Project, error) {
	if err := policy.Check(policy.ActionProjectPublish, callerFor(ident, false)); err != nil {
		return nil, err
	}

	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	next, err := lifecycle.Next(project.Status, lifecycle.ActionPublish)
	if err != nil {
		return nil, err
	}

	updated, err := s.projects.UpdateStatus(ctx, projectID, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project published",
		zap.String("project_id", projectID.String()),
		zap.String("publisher_id", ident.ID.String()))

	return updated, nil
}

// Ensure reviewService implements ReviewService at compile time.
var _ ReviewService = (*reviewService)(nil)
