package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/showcase-api/pkg/apperrors"
	"github.com/campushub/showcase-api/pkg/auth"
	"github.com/campushub/showcase-api/pkg/models"
	"github.com/campushub/showcase-api/pkg/policy"
	"github.com/campushub/showcase-api/pkg/repositories"
)

// UserService manages user profiles and supervisor assignment.
type UserService interface {
	List(ctx context.Context, ident *auth.Identity, filter repositories.UserFilter) ([]*models.User, error)
	Get(ctx context.Context, ident *auth.Identity, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, ident *auth.Identity, id uuid.UUID, update *UserUpdate) (*models.User, error)
	// Projects returns the projects authored by the given user.
	Projects(ctx context.Context, ident *auth.Identity, id uuid.UUID) ([]*models.Project, error)
	// AssignSupervisor writes the supervisor's contact snapshot onto the
	// project. The target user must hold a supervising role.
	AssignSupervisor(ctx context.Context, ident *auth.Identity, projectID, supervisorID uuid.UUID) (*models.Project, error)
}

// UserUpdate carries a partial profile update. Nil fields are left
// unchanged.
type UserUpdate struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	Year       *int    `json:"year"`
}

type userService struct {
	users    repositories.UserRepository
	projects repositories.ProjectRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(users repositories.UserRepository, projects repositories.ProjectRepository, logger *zap.Logger) UserService {
	return &userService{
		users:    users,
		projects: projects,
		logger:   logger,
	}
}

// List returns users matching the filter.
func (s *userService) List(ctx context.Context, ident *auth.Identity, filter repositories.UserFilter) ([]*models.User, error) {
	if err := policy.Check(policy.ActionUserList, callerFor(ident, false)); err != nil {
		return nil, err
	}
	return s.users.List(ctx, filter)
}

// Get returns a user profile.
func (s *userService) Get(ctx context.Context, ident *auth.Identity, id uuid.UUID) (*models.User, error) {
	if err := policy.Check(policy.ActionUserGet, callerFor(ident, false)); err != nil {
		return nil, err
	}
	return s.users.Get(ctx, id)
}

// Update merges the supplied fields into the profile. Users may only edit
// their own profile unless they are admins, and only admins may change a
// role.
func (s *userService) Update(ctx context.Context, ident *auth.Identity, id uuid.UUID, update *UserUpdate) (*models.User, error) {
	if err := policy.Check(policy.ActionUserUpdate, callerFor(ident, false)); err != nil {
		return nil, err
	}
	if ident.ID != id && ident.Role != models.RoleAdmin {
		return nil, &apperrors.ForbiddenError{Message: "not authorized to update this user"}
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Role != nil {
		if ident.Role != models.RoleAdmin {
			return nil, &apperrors.ForbiddenError{Message: "only admins can change user roles"}
		}
		if !models.IsValidRole(*update.Role) {
			return nil, apperrors.NewValidationError("role", "invalid role")
		}
		user.Role = *update.Role
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Department != nil {
		user.Department = *update.Department
	}
	if update.Year != nil {
		user.Year = *update.Year
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User updated", zap.String("user_id", id.String()))

	return user, nil
}

// Projects returns the given user's projects, newest first.
func (s *userService) Projects(ctx context.Context, ident *auth.Identity, id uuid.UUID) ([]*models.Project, error) {
	if err := policy.Check(policy.ActionUserProjects, callerFor(ident, false)); err != nil {
		return nil, err
	}
	if _, err := s.users.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.projects.ListByAuthor(ctx, id)
}

// AssignSupervisor attaches a supervising user to a project.
func (s *userService) AssignSupervisor(ctx context.Context, ident *auth.Identity, projectID, supervisorID uuid.UUID) (*models.Project, error) {
	if err := policy.Check(policy.ActionAssignSuper, callerFor(ident, false)); err != nil {
		return nil, err
	}

	supervisor, err := s.users.Get(ctx, supervisorID)
	if err != nil {
		return nil, err
	}
	if supervisor.Role != models.RoleSupervisor && supervisor.Role != models.RoleFaculty {
		return nil, apperrors.NewValidationError("supervisorId", "user is not a supervisor")
	}

	project, err := s.projects.SetSupervisor(ctx, projectID, models.SupervisorSnapshot{
		Name:  supervisor.Name,
		Email: supervisor.Email,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Supervisor assigned",
		zap.String("project_id", projectID.String()),
		zap.String("supervisor_id", supervisorID.String()))

	return project, nil
}

// Ensure userService implements UserService at compile time.
var _ UserService = (*userService)(nil)
