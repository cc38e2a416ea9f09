// Package policy is the single declarative authorization table. Every
// mutating operation consults it before touching state; handlers never
// perform ad-hoc role checks of their own.
package policy

import (
	"github.com/campushub/showcase-api/pkg/apperrors"
	"github.com/campushub/showcase-api/pkg/models"
)

// Action names an operation subject to authorization.
type Action string

const (
	ActionProjectCreate  Action = "project.create"
	ActionProjectSubmit  Action = "project.submit"
	ActionProjectUpdate  Action = "project.update"
	ActionProjectDelete  Action = "project.delete"
	ActionProjectLike    Action = "project.like"
	ActionProjectView    Action = "project.view"
	ActionProjectApprove Action = "project.approve"
	ActionProjectReject  Action = "project.reject"
	ActionProjectPublish Action = "project.publish"
	ActionReviewAdd      Action = "review.add"
	ActionUserList       Action = "user.list"
	ActionUserGet        Action = "user.get"
	ActionUserUpdate     Action = "user.update"
	ActionUserProjects   Action = "user.projects"
	ActionAssignSuper    Action = "supervisor.assign"
	ActionUploadFile     Action = "upload.file"
)

// Caller describes the principal a decision is made for. Owner is true when
// the caller is the author of the resource in question; it is ignored by
// rules that carry no ownership clause.
type Caller struct {
	Authenticated bool
	Role          string
	Owner         bool
}

// rule is one row of the permit table.
type rule struct {
	public       bool     // anyone, no authentication needed
	roles        []string // roles permitted; empty means any authenticated
	requireOwner bool     // role match alone is insufficient
	allowOwner   bool     // resource owner permitted regardless of role
	message      string   // denial message surfaced to the caller
}

var rules = map[Action]rule{
	ActionProjectCreate: {roles: []string{models.RoleStudent},
		message: "only students can create projects"},
	ActionProjectSubmit: {roles: []string{models.RoleStudent}, requireOwner: true,
		message: "not authorized to submit this project"},
	ActionProjectUpdate: {roles: []string{models.RoleSupervisor, models.RoleFaculty, models.RoleAdmin}, allowOwner: true,
		message: "not authorized to update this project"},
	ActionProjectDelete: {roles: []string{models.RoleSupervisor, models.RoleFaculty, models.RoleAdmin}, allowOwner: true,
		message: "not authorized to delete this project"},
	ActionProjectLike: {public: true},
	ActionProjectView: {public: true},
	ActionProjectApprove: {roles: []string{models.RoleSupervisor, models.RoleFaculty, models.RoleAdmin},
		message: "not authorized to approve projects"},
	ActionProjectReject: {roles: []string{models.RoleSupervisor, models.RoleFaculty, models.RoleAdmin},
		message: "not authorized to reject projects"},
	ActionProjectPublish: {roles: []string{models.RoleFaculty, models.RoleAdmin},
		message: "not authorized to publish projects"},
	ActionReviewAdd: {roles: []string{models.RoleSupervisor, models.RoleFaculty, models.RoleAdmin},
		message: "not authorized to review projects"},
	ActionUserList: {roles: []string{models.RoleAdmin, models.RoleFaculty},
		message: "not authorized to list users"},
	ActionUserGet:      {},
	ActionUserUpdate:   {},
	ActionUserProjects: {},
	ActionAssignSuper: {roles: []string{models.RoleAdmin, models.RoleFaculty},
		message: "not authorized to assign supervisors"},
	ActionUploadFile: {},
}

// Check returns nil when the caller may perform the action, otherwise
// ErrUnauthorized for missing identity or a ForbiddenError describing the
// denial. It has no side effects.
func Check(action Action, c Caller) error {
	r, ok := rules[action]
	if !ok {
		return &apperrors.ForbiddenError{Message: "unknown action"}
	}
	if r.public {
		return nil
	}
	if !c.Authenticated {
		return apperrors.ErrUnauthorized
	}
	roleMatch := len(r.roles) == 0
	for _, role := range r.roles {
		if role == c.Role {
			roleMatch = true
			break
		}
	}
	permitted := roleMatch
	if r.requireOwner {
		permitted = roleMatch && c.Owner
	} else if r.allowOwner && c.Owner {
		permitted = true
	}
	if !permitted {
		return &apperrors.ForbiddenError{Message: r.message}
	}
	return nil
}
