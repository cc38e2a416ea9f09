// Package services contains the orchestration layer. Services consult the
// policy table and the lifecycle state machine before touching the
// repositories; handlers stay thin and repositories stay dumb.
package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/showcase-api/pkg/apperrors"
	"github.com/campushub/showcase-api/pkg/auth"
	"github.com/campushub/showcase-api/pkg/lifecycle"
	"github.com/campushub/showcase-api/pkg/models"
	"github.com/campushub/showcase-api/pkg/policy"
	"github.com/campushub/showcase-api/pkg/repositories"
)

// ProjectService manages project records and their lifecycle.
type ProjectService interface {
	Create(ctx context.Context, ident *auth.Identity, project *models.Project) (*models.Project, error)
	// Get returns the project and counts the read as a view.
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, ident *auth.Identity, filter repositories.ProjectFilter) ([]*models.Project, error)
	Update(ctx context.Context, ident *auth.Identity, id uuid.UUID, update *ProjectUpdate) (*models.Project, error)
	Delete(ctx context.Context, ident *auth.Identity, id uuid.UUID) error
	Like(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Submit(ctx context.Context, ident *auth.Identity, id uuid.UUID) (*models.Project, error)
}

// ProjectUpdate carries a partial update. Nil fields are left unchanged.
// The author snapshot, counters, and timestamps have no fields here; they
// are not updatable through this path.
type ProjectUpdate struct {
	Title        *string                    `json:"title"`
	Description  *string                    `json:"description"`
	Category     *string                    `json:"category"`
	Status       *string                    `json:"status"`
	Technologies []string                   `json:"technologies"`
	Tags         []string                   `json:"tags"`
	GithubLink   *string                    `json:"githubLink"`
	LiveDemo     *string                    `json:"liveDemo"`
	Document     *models.Document           `json:"document"`
	TeamMembers  []models.TeamMember        `json:"teamMembers"`
	Supervisor   *models.SupervisorSnapshot `json:"supervisor"`
	Faculty      *string                    `json:"faculty"`
	Department   *string                    `json:"department"`
	Year         *int                       `json:"year"`
}

type projectService struct {
	projects repositories.ProjectRepository
	logger   *zap.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(projects repositories.ProjectRepository, logger *zap.Logger) ProjectService {
	return &projectService{
		projects: projects,
		logger:   logger,
	}
}

// callerFor builds a policy caller from an optional identity.
func callerFor(ident *auth.Identity, owner bool) policy.Caller {
	if ident == nil {
		return policy.Caller{}
	}
	return policy.Caller{Authenticated: true, Role: ident.Role, Owner: owner}
}

// Create stores a new project record. The record always starts in draft
// regardless of any status the caller supplied, and the author snapshot is
// taken from the verified identity, never from the request body.
func (s *projectService) Create(ctx context.Context, ident *auth.Identity, project *models.Project) (*models.Project, error) {
	if err := policy.Check(policy.ActionProjectCreate, callerFor(ident, false)); err != nil {
		return nil, err
	}

	project.ID = uuid.Nil
	project.Status = models.StatusDraft
	project.Author = models.AuthorSnapshot{
		ID:    ident.ID,
		Name:  ident.Name,
		Email: ident.Email,
		Role:  ident.Role,
	}
	project.Likes = 0
	project.Views = 0

	if err := models.ValidateProject(project); err != nil {
		return nil, err
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("author_id", ident.ID.String()))

	return project, nil
}

// Get returns a project by ID and increments its view counter.
func (s *projectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.projects.IncrementViews(ctx, id)
}

// List returns projects matching the filter. Anonymous and student callers
// only ever see completed projects; their status filter is ignored rather
// than rejected.
func (s *projectService) List(ctx context.Context, ident *auth.Identity, filter repositories.ProjectFilter) ([]*models.Project, error) {
	if ident == nil || !ident.IsStaff() {
		filter.Status = models.StatusCompleted
	}
	return s.projects.List(ctx, filter)
}

// Update merges the supplied fields into the project. Only staff may set
// the status field; this is the one path that can move a project to
// in-progress.
func (s *projectService) Update(ctx context.Context, ident *auth.Identity, id uuid.UUID, update *ProjectUpdate) (*models.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	owner := ident != nil && project.Author.ID == ident.ID
	if err := policy.Check(policy.ActionProjectUpdate, callerFor(ident, owner)); err != nil {
		return nil, err
	}

	if update.Status != nil {
		if !ident.IsStaff() {
			return nil, &apperrors.ForbiddenError{Message: "not authorized to change project status"}
		}
		if !models.IsValidStatus(*update.Status) {
			return nil, apperrors.NewValidationError("status", "invalid project status")
		}
		project.Status = *update.Status
	}
	applyProjectUpdate(project, update)

	if err := models.ValidateProject(project); err != nil {
		return nil, err
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("Project updated", zap.String("project_id", id.String()))

	return project, nil
}

// Delete removes a project. Reviews are left behind as audit trail.
func (s *projectService) Delete(ctx context.Context, ident *auth.Identity, id uuid.UUID) error {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return err
	}

	owner := ident != nil && project.Author.ID == ident.ID
	if err := policy.Check(policy.ActionProjectDelete, callerFor(ident, owner)); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Project deleted", zap.String("project_id", id.String()))

	return nil
}

// Like increments the like counter. Anyone may like a project.
func (s *projectService) Like(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.projects.IncrementLikes(ctx, id)
}

// Submit moves the author's draft into the review queue.
func (s *projectService) Submit(ctx context.Context, ident *auth.Identity, id uuid.UUID) (*models.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	owner := ident != nil && project.Author.ID == ident.ID
	if err := policy.Check(policy.ActionProjectSubmit, callerFor(ident, owner)); err != nil {
		return nil, err
	}

	next, err := lifecycle.Next(project.Status, lifecycle.ActionSubmit)
	if err != nil {
		return nil, err
	}

	updated, err := s.projects.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project submitted", zap.String("project_id", id.String()))

	return updated, nil
}

// applyProjectUpdate copies the non-nil fields of update onto project.
func applyProjectUpdate(project *models.Project, update *ProjectUpdate) {
	if update.Title != nil {
		project.Title = *update.Title
	}
	if update.Description != nil {
		project.Description = *update.Description
	}
	if update.Category != nil {
		project.Category = *update.Category
	}
	if update.Technologies != nil {
		project.Technologies = update.Technologies
	}
	if update.Tags != nil {
		project.Tags = update.Tags
	}
	if update.GithubLink != nil {
		project.GithubLink = *update.GithubLink
	}
	if update.LiveDemo != nil {
		project.LiveDemo = *update.LiveDemo
	}
	if update.Document != nil {
		project.Document = update.Document
	}
	if update.TeamMembers != nil {
		project.TeamMembers = update.TeamMembers
	}
	if update.Supervisor != nil {
		project.Supervisor = update.Supervisor
	}
	if update.Faculty != nil {
		project.Faculty = *update.Faculty
	}
	if update.Department != nil {
		project.Department = *update.Department
	}
	if update.Year != nil {
		project.Year = *update.Year
	}
}

// Ensure projectService implements ProjectService at compile time.
var _ ProjectService = (*projectService)(nil)
