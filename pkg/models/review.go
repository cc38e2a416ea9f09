package models

import (
	"time"

	"github.com/google/uuid"
)

// Review status values.
const (
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
	ReviewStatusPending  = "pending"
)

// DefaultRejectionComment is recorded when a project is rejected without a
// stated reason.
const DefaultRejectionComment = "Project rejected"

// ReviewerSnapshot is the reviewer's contact details joined from the user
// store when listing reviews.
type ReviewerSnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Review is an append-only audit record of a supervisory judgment on a
// project. Reviews are never mutated or deleted after creation.
type Review struct {
	ID         uuid.UUID         `json:"id"`
	ProjectID  uuid.UUID         `json:"project"`
	ReviewerID uuid.UUID         `json:"reviewer"`
	Reviewer   *ReviewerSnapshot `json:"reviewerInfo,omitempty"`
	Rating     int               `json:"rating" validate:"required,min=1,max=5"`
	Comment    string            `json:"comment" validate:"required"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
}
