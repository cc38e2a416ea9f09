// Package models contains domain types for showcase-api.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Project status values. A project starts as draft and moves through the
// review lifecycle; in-progress is reachable only through a staff update.
const (
	StatusDraft      = "draft"
	StatusSubmitted  = "submitted"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// ValidStatuses contains all valid project status values.
var ValidStatuses = []string{
	StatusDraft, StatusSubmitted, StatusApproved,
	StatusRejected, StatusInProgress, StatusCompleted,
}

// IsValidStatus checks if the given status is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Project category values.
const (
	CategoryTechnology  = "Technology"
	CategoryHealthcare  = "Healthcare"
	CategoryEducation   = "Education"
	CategoryAgriculture = "Agriculture"
	CategoryBusiness    = "Business"
	CategoryOther       = "Other"
)

// AuthorSnapshot is a copy of the creating identity embedded at creation
// time. It is never re-synced when the user's profile changes.
type AuthorSnapshot struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// SupervisorSnapshot is a copy of the assigned supervisor's contact details
// embedded at assignment time, not a live reference.
type SupervisorSnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TeamMember describes one collaborator on a project.
type TeamMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Document describes an uploaded attachment.
type Document struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	StoragePath  string `json:"path"`
	Size         int64  `json:"size"`
}

// Project represents a student project record.
type Project struct {
	ID           uuid.UUID           `json:"id"`
	Title        string              `json:"title" validate:"required,max=100"`
	Description  string              `json:"description" validate:"required,max=2000"`
	Category     string              `json:"category" validate:"required,oneof=Technology Healthcare Education Agriculture Business Other"`
	Status       string              `json:"status"`
	Author       AuthorSnapshot      `json:"author"`
	Supervisor   *SupervisorSnapshot `json:"supervisor,omitempty"`
	Technologies []string            `json:"technologies,omitempty"`
	Tags         []string            `json:"tags,omitempty"`
	GithubLink   string              `json:"githubLink,omitempty" validate:"omitempty,github_url"`
	LiveDemo     string              `json:"liveDemo,omitempty" validate:"omitempty,http_url_pattern"`
	Document     *Document           `json:"document,omitempty"`
	TeamMembers  []TeamMember        `json:"teamMembers,omitempty"`
	Faculty      string              `json:"faculty,omitempty"`
	Department   string              `json:"department,omitempty"`
	Year         int                 `json:"year,omitempty"`
	Likes        int64               `json:"likes"`
	Views        int64               `json:"views"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}
