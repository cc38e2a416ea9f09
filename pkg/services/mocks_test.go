package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/showcase-api/pkg/apperrors"
	"github.com/campushub/showcase-api/pkg/models"
	"github.com/campushub/showcase-api/pkg/repositories"
)

// ============================================================================
// Mock Implementations for Service Tests
// ============================================================================

type mockProjectRepo struct {
	projects  map[uuid.UUID]*models.Project
	createErr error
	updateErr error
	deleteErr error
	listErr   error
	// lastFilter records what List was called with.
	lastFilter repositories.ProjectFilter
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[uuid.UUID]*models.Project)}
}

func (m *mockProjectRepo) Create(ctx context.Context, project *models.Project) error {
	if m.createErr != nil {
		return m.createErr
	}
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.Status == "" {
		project.Status = models.StatusDraft
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	copied := *project
	m.projects[project.ID] = &copied
	return nil
}

func (m *mockProjectRepo) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, ok := m.projects[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *project
	return &copied, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, project *models.Project) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.projects[project.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	// Author columns and counters stay untouched, matching the SQL.
	copied := *project
	copied.Author = stored.Author
	copied.Likes = stored.Likes
	copied.Views = stored.Views
	copied.UpdatedAt = time.Now()
	m.projects[project.ID] = &copied
	project.UpdatedAt = copied.UpdatedAt
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.projects[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *mockProjectRepo) List(ctx context.Context, filter repositories.ProjectFilter) ([]*models.Project, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := []*models.Project{}
	for _, project := range m.projects {
		if filter.Status != "" && project.Status != filter.Status {
			continue
		}
		if filter.Category != "" && project.Category != filter.Category {
			continue
		}
		copied := *project
		result = append(result, &copied)
	}
	return result, nil
}

func (m *mockProjectRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Project, error) {
	result := []*models.Project{}
	for _, project := range m.projects {
		if project.Author.ID == authorID {
			copied := *project
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Project, error) {
	project, ok := m.projects[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	project.Status = status
	project.UpdatedAt = time.Now()
	copied := *project
	return &copied, nil
}

func (m *mockProjectRepo) SetSupervisor(ctx context.Context, id uuid.UUID, snapshot models.SupervisorSnapshot) (*models.Project, error) {
	project, ok := m.projects[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	project.Supervisor = &snapshot
	project.UpdatedAt = time.Now()
	copied := *project
	return &copied, nil
}

func (m *mockProjectRepo) IncrementLikes(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, ok := m.projects[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	project.Likes++
	copied := *project
	return &copied, nil
}

func (m *mockProjectRepo) IncrementViews(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, ok := m.projects[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	project.Views++
	copied := *project
	return &copied, nil
}

var _ repositories.ProjectRepository = (*mockProjectRepo)(nil)

type mockReviewRepo struct {
	reviews      []*models.Review
	projects     *mockProjectRepo
	createErr    error
	rejectionErr error
}

func newMockReviewRepo(projects *mockProjectRepo) *mockReviewRepo {
	return &mockReviewRepo{projects: projects}
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	if m.createErr != nil {
		return m.createErr
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	// Defaults mirror the SQL insert: empty status becomes pending and a
	// zero timestamp becomes now, non-zero values are kept.
	if review.Status == "" {
		review.Status = models.ReviewStatusPending
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	copied := *review
	m.reviews = append(m.reviews, &copied)
	return nil
}

func (m *mockReviewRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Review, error) {
	result := []*models.Review{}
	for _, review := range m.reviews {
		if review.ProjectID == projectID {
			copied := *review
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockReviewRepo) CreateRejection(ctx context.Context, projectID uuid.UUID, review *models.Review) (*models.Project, error) {
	if m.rejectionErr != nil {
		return nil, m.rejectionErr
	}
	project, err := m.projects.UpdateStatus(ctx, projectID, models.StatusRejected)
	if err != nil {
		return nil, err
	}
	review.ProjectID = projectID
	review.Status = models.ReviewStatusRejected
	if err := m.Create(ctx, review); err != nil {
		return nil, err
	}
	return project, nil
}

var _ repositories.ReviewRepository = (*mockReviewRepo)(nil)

type mockUserRepo struct {
	users     map[uuid.UUID]*models.User
	updateErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.users[user.ID]; !ok {
		return apperrors.ErrNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, filter repositories.UserFilter) ([]*models.User, error) {
	result := []*models.User{}
	for _, user := range m.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Department != "" && user.Department != filter.Department {
			continue
		}
		copied := *user
		result = append(result, &copied)
	}
	return result, nil
}

var _ repositories.UserRepository = (*mockUserRepo)(nil)
