package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campushub/showcase-api/pkg/apperrors"
	"github.com/campushub/showcase-api/pkg/database"
	"github.com/campushub/showcase-api/pkg/models"
)

// ReviewRepository defines the interface for review data access. Reviews
// are append-only: there is no update or delete.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	// ListByProject returns a project's reviews, oldest first, with the
	// reviewer snapshot joined from the user store where available.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Review, error)
	// CreateRejection atomically moves the project to rejected and appends
	// the rejection review in a single transaction, returning the updated
	// project. A crash can never leave one write without the other.
	CreateRejection(ctx context.Context, projectID uuid.UUID, review *models.Review) (*models.Project, error)
}

// reviewRepository implements ReviewRepository using PostgreSQL.
type reviewRepository struct {
	db *database.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *database.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

const insertReviewQuery = `
	INSERT INTO reviews (id, project_id, reviewer_id, rating, comment, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Create appends a new review record.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	prepareReview(review)

	_, err := r.db.Exec(ctx, insertReviewQuery,
		review.ID,
		review.ProjectID,
		review.ReviewerID,
		review.Rating,
		review.Comment,
		review.Status,
		review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// ListByProject returns a project's reviews, oldest first.
func (r *reviewRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Review, error) {
	query := `
		SELECT r.id, r.project_id, r.reviewer_id, r.rating, r.comment, r.status, r.created_at,
			u.name, u.email, u.role
		FROM reviews r
		LEFT JOIN users u ON u.id = r.reviewer_id
		WHERE r.project_id = $1
		ORDER BY r.created_at ASC`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		var review models.Review
		var name, email, role *string
		err := rows.Scan(
			&review.ID,
			&review.ProjectID,
			&review.ReviewerID,
			&review.Rating,
			&review.Comment,
			&review.Status,
			&review.CreatedAt,
			&name,
			&email,
			&role,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		if name != nil {
			review.Reviewer = &models.ReviewerSnapshot{Name: *name}
			if email != nil {
				review.Reviewer.Email = *email
			}
			if role != nil {
				review.Reviewer.Role = *role
			}
		}
		reviews = append(reviews, &review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}

	return reviews, nil
}

// CreateRejection performs the two rejection writes inside one transaction.
func (r *reviewRepository) CreateRejection(ctx context.Context, projectID uuid.UUID, review *models.Review) (*models.Project, error) {
	prepareReview(review)
	review.ProjectID = projectID
	review.Status = models.ReviewStatusRejected

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	statusQuery := `UPDATE projects SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + projectColumns
	project, err := scanProject(tx.QueryRow(ctx, statusQuery, projectID, models.StatusRejected))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark project rejected: %w", err)
	}

	_, err = tx.Exec(ctx, insertReviewQuery,
		review.ID,
		review.ProjectID,
		review.ReviewerID,
		review.Rating,
		review.Comment,
		review.Status,
		review.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rejection review: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit rejection: %w", err)
	}

	return project, nil
}

// prepareReview fills defaults for a new review record.
func prepareReview(review *models.Review) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	if review.Status == "" {
		review.Status = models.ReviewStatusPending
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
}

// Ensure reviewRepository implements ReviewRepository at compile time.
var _ ReviewRepository = (*reviewRepository)(nil)
