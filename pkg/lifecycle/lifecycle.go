// Package lifecycle owns the project status state machine. It is a pure
// decision table: given a current status and a requested action it either
// yields the resulting status or an invalid-transition error. Authorization
// is a separate concern handled by the policy package.
package lifecycle

import (
	"github.com/campushub/showcase-api/pkg/apperrors"
	"github.com/campushub/showcase-api/pkg/models"
)

// Action is a named lifecycle transition.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionPublish Action = "publish"
)

type transition struct {
	from    []string
	to      string
	message string
}

// transitions is the single source of truth for legal lifecycle moves.
// rejected and completed are terminal: no action lists them as a
// predecessor. in-progress is reserved for manual staff updates and is
// likewise never produced here.
var transitions = map[Action]transition{
	ActionSubmit: {
		from:    []string{models.StatusDraft},
		to:      models.StatusSubmitted,
		message: "only draft projects can be submitted",
	},
	ActionApprove: {
		from:    []string{models.StatusSubmitted},
		to:      models.StatusApproved,
		message: "only submitted projects can be approved",
	},
	// reject carries no predecessor restriction; staff may reject a
	// project in any state, matching the observed workflow.
	ActionReject: {
		from:    models.ValidStatuses,
		to:      models.StatusRejected,
		message: "project cannot be rejected",
	},
	ActionPublish: {
		from:    []string{models.StatusApproved},
		to:      models.StatusCompleted,
		message: "only approved projects can be published",
	},
}

// Next returns the status produced by applying action to current, or an
// invalid-transition error if the move is not legal. The input record is
// never mutated on failure.
func Next(current string, action Action) (string, error) {
	t, ok := transitions[action]
	if !ok {
		return "", &apperrors.InvalidTransitionError{Message: "unknown lifecycle action"}
	}
	for _, s := range t.from {
		if s == current {
			return t.to, nil
		}
	}
	return "", &apperrors.InvalidTransitionError{Message: t.message}
}

// CanTransition reports whether action is legal from the current status.
func CanTransition(current string, action Action) bool {
	_, err := Next(current, action)
	return err == nil
}
