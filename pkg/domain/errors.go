package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNodeNotFound is returned by loaders when a node ID does not exist.
var ErrNodeNotFound = errors.New("node not found")

// ErrNoActiveQuiz is returned when a quiz operation arrives while no
// drag-drop attempt is open.
var ErrNoActiveQuiz = errors.New("no active quiz attempt")

// ErrPrematureSubmission is returned when a quiz answer is checked while
// targets are still unassigned. The attempt and game state stay unchanged.
var ErrPrematureSubmission = errors.New("quiz placements incomplete")

// GraphIntegrityError reports a transition whose target does not exist in the
// decision tree. It is fatal: traversal aborts and the error is surfaced to
// the caller, never defaulted.
type GraphIntegrityError struct {
	FromNodeID   string
	TargetNodeID string
}

func (e *GraphIntegrityError) Error() string {
	if e.FromNodeID == "" {
		return fmt.Sprintf("graph integrity violation: node %q does not exist", e.TargetNodeID)
	}
	return fmt.Sprintf("graph integrity violation: node %q references missing node %q", e.FromNodeID, e.TargetNodeID)
}
