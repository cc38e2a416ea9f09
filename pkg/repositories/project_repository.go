// Package repositories contains the pgx-backed record stores. Repositories
// own persistence only; lifecycle legality and authorization are decided
// before a repository is called.
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campushub/showcase-api/pkg/apperrors"
	"github.com/campushub/showcase-api/pkg/database"
	"github.com/campushub/showcase-api/pkg/models"
)

// ProjectFilter narrows a project listing. Zero values mean "no filter".
// All predicates are ANDed.
type ProjectFilter struct {
	Status     string
	Category   string
	Faculty    string
	Department string
	Year       int
	Search     string
}

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ProjectFilter) ([]*models.Project, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Project, error)
	// UpdateStatus moves a project to the given status and refreshes
	// updated_at, returning the updated record.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Project, error)
	// SetSupervisor writes the supervisor snapshot onto the project.
	SetSupervisor(ctx context.Context, id uuid.UUID, snapshot models.SupervisorSnapshot) (*models.Project, error)
	// IncrementLikes atomically adds one like and returns the updated record.
	IncrementLikes(ctx context.Context, id uuid.UUID) (*models.Project, error)
	// IncrementViews atomically adds one view and returns the updated record.
	IncrementViews(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

// projectColumns is the canonical select list scanned by scanProject.
const projectColumns = `id, title, description, category, status,
	author_id, author_name, author_email, author_role,
	supervisor_name, supervisor_email,
	technologies, tags, github_link, live_demo,
	document, team_members, faculty, department, year,
	likes, views, created_at, updated_at`

// projectRepository implements ProjectRepository using PostgreSQL.
type projectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *database.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create inserts a new project record.
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.Status == "" {
		project.Status = models.StatusDraft
	}

	document, teamMembers, err := marshalProjectJSON(project)
	if err != nil {
		return err
	}

	var supName, supEmail *string
	if project.Supervisor != nil {
		supName = &project.Supervisor.Name
		supEmail = &project.Supervisor.Email
	}

	query := `
		INSERT INTO projects (id, title, description, category, status,
			author_id, author_name, author_email, author_role,
			supervisor_name, supervisor_email,
			technologies, tags, github_link, live_demo,
			document, team_members, faculty, department, year,
			likes, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

	_, err = r.db.Exec(ctx, query,
		project.ID,
		project.Title,
		project.Description,
		project.Category,
		project.Status,
		project.Author.ID,
		project.Author.Name,
		project.Author.Email,
		project.Author.Role,
		supName,
		supEmail,
		project.Technologies,
		project.Tags,
		project.GithubLink,
		project.LiveDemo,
		document,
		teamMembers,
		project.Faculty,
		project.Department,
		project.Year,
		project.Likes,
		project.Views,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID.
func (r *projectRepository) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// Update rewrites the mutable fields of an existing project. Author columns
// and counters are deliberately excluded; the author snapshot is immutable
// and counters move only through the increment operations.
func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	document, teamMembers, err := marshalProjectJSON(project)
	if err != nil {
		return err
	}

	var supName, supEmail *string
	if project.Supervisor != nil {
		supName = &project.Supervisor.Name
		supEmail = &project.Supervisor.Email
	}

	query := `
		UPDATE projects
		SET title = $2, description = $3, category = $4, status = $5,
			supervisor_name = $6, supervisor_email = $7,
			technologies = $8, tags = $9, github_link = $10, live_demo = $11,
			document = $12, team_members = $13,
			faculty = $14, department = $15, year = $16,
			updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err = r.db.QueryRow(ctx, query,
		project.ID,
		project.Title,
		project.Description,
		project.Category,
		project.Status,
		supName,
		supEmail,
		project.Technologies,
		project.Tags,
		project.GithubLink,
		project.LiveDemo,
		document,
		teamMembers,
		project.Faculty,
		project.Department,
		project.Year,
	).Scan(&project.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// Delete removes a project by ID. Its reviews are left in place as audit
// trail.
func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns projects matching the filter, newest first.
func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]*models.Project, error) {
	var conditions []string
	var args []interface{}

	addCondition := func(expr string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(expr, len(args)))
	}

	if filter.Status != "" {
		addCondition("status = $%d", filter.Status)
	}
	if filter.Category != "" {
		addCondition("category = $%d", filter.Category)
	}
	if filter.Faculty != "" {
		addCondition("faculty = $%d", filter.Faculty)
	}
	if filter.Department != "" {
		addCondition("department = $%d", filter.Department)
	}
	if filter.Year != 0 {
		addCondition("year = $%d", filter.Year)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			`(title ILIKE $%d OR description ILIKE $%d
				OR EXISTS (SELECT 1 FROM unnest(technologies) AS t WHERE t ILIKE $%d))`,
			n, n, n))
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

// ListByAuthor returns the projects created by the given user, newest first.
func (r *projectRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE author_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects by author: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

// UpdateStatus moves a project to the given status.
func (r *projectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Project, error) {
	query := `UPDATE projects SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + projectColumns
	project, err := scanProject(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}
	return project, nil
}

// SetSupervisor writes the supervisor snapshot onto the project.
func (r *projectRepository) SetSupervisor(ctx context.Context, id uuid.UUID, snapshot models.SupervisorSnapshot) (*models.Project, error) {
	query := `UPDATE projects SET supervisor_name = $2, supervisor_email = $3, updated_at = now()
		WHERE id = $1 RETURNING ` + projectColumns
	project, err := scanProject(r.db.QueryRow(ctx, query, id, snapshot.Name, snapshot.Email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to set supervisor: %w", err)
	}
	return project, nil
}

// IncrementLikes adds one like in a single atomic statement so concurrent
// likes are never lost to read-then-write races.
func (r *projectRepository) IncrementLikes(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `UPDATE projects SET likes = likes + 1, updated_at = now() WHERE id = $1 RETURNING ` + projectColumns
	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to increment likes: %w", err)
	}
	return project, nil
}

// IncrementViews adds one view in a single atomic statement.
func (r *projectRepository) IncrementViews(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `UPDATE projects SET views = views + 1, updated_at = now() WHERE id = $1 RETURNING ` + projectColumns
	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to increment views: %w", err)
	}
	return project, nil
}

// marshalProjectJSON serializes the document and team member columns.
func marshalProjectJSON(project *models.Project) (document, teamMembers []byte, err error) {
	if project.Document != nil {
		document, err = json.Marshal(project.Document)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal document: %w", err)
		}
	}
	members := project.TeamMembers
	if members == nil {
		members = []models.TeamMember{}
	}
	teamMembers, err = json.Marshal(members)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal team members: %w", err)
	}
	return document, teamMembers, nil
}

// scanProject reads one project row in projectColumns order.
func scanProject(row pgx.Row) (*models.Project, error) {
	var project models.Project
	var supName, supEmail *string
	var document, teamMembers []byte

	err := row.Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.Category,
		&project.Status,
		&project.Author.ID,
		&project.Author.Name,
		&project.Author.Email,
		&project.Author.Role,
		&supName,
		&supEmail,
		&project.Technologies,
		&project.Tags,
		&project.GithubLink,
		&project.LiveDemo,
		&document,
		&teamMembers,
		&project.Faculty,
		&project.Department,
		&project.Year,
		&project.Likes,
		&project.Views,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if supName != nil || supEmail != nil {
		project.Supervisor = &models.SupervisorSnapshot{}
		if supName != nil {
			project.Supervisor.Name = *supName
		}
		if supEmail != nil {
			project.Supervisor.Email = *supEmail
		}
	}
	if document != nil {
		project.Document = &models.Document{}
		if err := json.Unmarshal(document, project.Document); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
	}
	if teamMembers != nil {
		if err := json.Unmarshal(teamMembers, &project.TeamMembers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal team members: %w", err)
		}
	}

	return &project, nil
}

// collectProjects drains rows into a slice.
func collectProjects(rows pgx.Rows) ([]*models.Project, error) {
	projects := []*models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}
	return projects, nil
}

// Ensure projectRepository implements ProjectRepository at compile time.
var _ ProjectRepository = (*projectRepository)(nil)
