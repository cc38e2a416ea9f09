package handlers

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/campushub/showcase-api/pkg/auth"
	"github.com/campushub/showcase-api/pkg/models"
	"github.com/campushub/showcase-api/pkg/repositories"
	"github.com/campushub/showcase-api/pkg/services"
)

// ============================================================================
// Mock Implementations for Handler Tests
// ============================================================================

type mockProjectService struct {
	createFunc func(ctx context.Context, ident *auth.Identity, project *models.Project) (*models.Project, error)
	getFunc    func(ctx context.Context, id uuid.UUID) (*models.Project, error)
	listFunc   func(ctx context.Context, ident *auth.Identity, filter repositories.ProjectFilter) ([]*models.Project, error)
	updateFunc func(ctx context.Context, ident *auth.Identity, id uuid.UUID, update *services.ProjectUpdate) (*models.Project, error)
	deleteFunc func(ctx context.Context, ident *auth.Identity, id uuid.UUID) error
	likeFunc   func(ctx context.Context, id uuid.UUID) (*models.Project, error)
	submitFunc func(ctx context.Context, ident *auth.Identity, id uuid.UUID) (*models.Project, error)
}

func (m *mockProjectService) Create(ctx context.Context, ident *auth.Identity, project *models.Project) (*models.Project, error) {
	return m.createFunc(ctx, ident, project)
}

func (m *mockProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return m.getFunc(ctx, id)
}

func (m *mockProjectService) List(ctx context.Context, ident *auth.Identity, filter repositories.ProjectFilter) ([]*models.Project, error) {
	return m.listFunc(ctx, ident, filter)
}

func (m *mockProjectService) Update(ctx context.Context, ident *auth.Identity, id uuid.UUID, update *services.ProjectUpdate) (*models.Project, error) {
	return m.updateFunc(ctx, ident, id, update)
}

func (m *mockProjectService) Delete(ctx context.Context, ident *auth.Identity, id uuid.UUID) error {
	return m.deleteFunc(ctx, ident, id)
}

func (m *mockProjectService) Like(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return m.likeFunc(ctx, id)
}

func (m *mockProjectService) Submit(ctx context.Context, ident *auth.Identity, id uuid.UUID) (*models.Project, error) {
	return m.submitFunc(ctx, ident, id)
}

var _ services.ProjectService = (*mockProjectService)(nil)

type mockReviewService struct {
	addFunc     func(ctx context.Context, ident *auth.Identity, projectID uuid.UUID, review *models.Review) (*models.Review, error)
	listFunc    func(ctx context.Context, projectID uuid.UUID) ([]*models.Review, error)
	approveFunc func(ctx context.Context, ident *auth.Identity, projectID uuid.UUID) (*models.Project, error)
	rejectFunc  func(ctx context.Context, ident *auth.Identity, projectID uuid.UUID, reason string) (*models.Project, error)
	publishFunc func(ctx context.Context, ident *auth.Identity, projectID uuid.UUID) (*models.Project, error)
}

func (m *mockReviewService) Add(ctx context.Context, ident *auth.Identity, projectID uuid.UUID, review *models.Review) (*models.Review, error) {
	return m.addFunc(ctx, ident, projectID, review)
}

func (m *mockReviewService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Review, error) {
	return m.listFunc(ctx, projectID)
}

func (m *mockReviewService) Approve(ctx context.Context, ident *auth.Identity, projectID uuid.UUID) (*models.Project, error) {
	return m.approveFunc(ctx, ident, projectID)
}

func (m *mockReviewService) Reject(ctx context.Context, ident *auth.Identity, projectID uuid.UUID, reason string) (*models.Project, error) {
	return m.rejectFunc(ctx, ident, projectID, reason)
}

func (m *mockReviewService) Publish(ctx context.Context, ident *auth.Identity, projectID uuid.UUID) (*models.Project, error) {
	return m.publishFunc(ctx, ident, projectID)
}

var _ services.ReviewService = (*mockReviewService)(nil)

type mockUserService struct {
	listFunc     func(ctx context.Context, ident *auth.Identity, filter repositories.UserFilter) ([]*models.User, error)
	getFunc      func(ctx context.Context, ident *auth.Identity, id uuid.UUID) (*models.User, error)
	updateFunc   func(ctx context.Context, ident *auth.Identity, id uuid.UUID, update *services.UserUpdate) (*models.User, error)
	projectsFunc func(ctx context.Context, ident *auth.Identity, id uuid.UUID) ([]*models.Project, error)
	assignFunc   func(ctx context.Context, ident *auth.Identity, projectID, supervisorID uuid.UUID) (*models.Project, error)
}

func (m *mockUserService) List(ctx context.Context, ident *auth.Identity, filter repositories.UserFilter) ([]*models.User, error) {
	return m.listFunc(ctx, ident, filter)
}

func (m *mockUserService) Get(ctx context.Context, ident *auth.Identity, id uuid.UUID) (*models.User, error) {
	return m.getFunc(ctx, ident, id)
}

func (m *mockUserService) Update(ctx context.Context, ident *auth.Identity, id uuid.UUID, update *services.UserUpdate) (*models.User, error) {
	return m.updateFunc(ctx, ident, id, update)
}

func (m *mockUserService) Projects(ctx context.Context, ident *auth.Identity, id uuid.UUID) ([]*models.Project, error) {
	return m.projectsFunc(ctx, ident, id)
}

func (m *mockUserService) AssignSupervisor(ctx context.Context, ident *auth.Identity, projectID, supervisorID uuid.UUID) (*models.Project, error) {
	return m.assignFunc(ctx, ident, projectID, supervisorID)
}

var _ services.UserService = (*mockUserService)(nil)

type mockUploadService struct {
	saveFunc    func(ident *auth.Identity, file *multipart.FileHeader) (*models.Document, error)
	saveAllFunc func(ident *auth.Identity, files []*multipart.FileHeader) ([]*models.Document, error)
	deleteFunc  func(ident *auth.Identity, filename string) error
}

func (m *mockUploadService) Save(ident *auth.Identity, file *multipart.FileHeader) (*models.Document, error) {
	return m.saveFunc(ident, file)
}

func (m *mockUploadService) SaveAll(ident *auth.Identity, files []*multipart.FileHeader) ([]*models.Document, error) {
	return m.saveAllFunc(ident, files)
}

func (m *mockUploadService) Delete(ident *auth.Identity, filename string) error {
	return m.deleteFunc(ident, filename)
}

var _ services.UploadService = (*mockUploadService)(nil)
