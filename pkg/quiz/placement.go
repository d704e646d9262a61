// Package quiz implements the placement engine for drag-drop matching nodes:
// attempt initialization, placement/swap semantics, and completion and
// correctness checks. It owns no durable state; attempts live inside the
// session State and are discarded when the node is left.
package quiz

import (
	"fmt"
	"math/rand"

	"github.com/aretw0/espalier/pkg/domain"
)

// Pool is the pseudo-target representing the unplaced item pool. Dropping an
// item onto it vacates the item without a swap.
const Pool = "_pool"

// InvalidDragError reports a placement operation referencing an item or
// target the active quiz node does not declare. Callers treat it as a
// recoverable no-op: the attempt is left unchanged.
type InvalidDragError struct {
	NodeID string
	ItemID string
}

func (e *InvalidDragError) Error() string {
	return fmt.Sprintf("invalid drag operation: item %q is not part of quiz node %q", e.ItemID, e.NodeID)
}

// NewAttempt initializes a fresh attempt for a quiz node: every target
// unassigned and the items shuffled into a presentation order. The shuffle is
// always a permutation of exactly the node's items and, when there is more
// than one item, differs from the declared order. Determinism is up to the
// injected rng.
func NewAttempt(node *domain.Node, rng *rand.Rand) *domain.QuizAttempt {
	order := make([]string, 0, len(node.Items))
	for _, it := range node.Items {
		order = append(order, it.ID)
	}

	if len(order) > 1 {
		for {
			rng.Shuffle(len(order), func(i, j int) {
				order[i], order[j] = order[j], order[i]
			})
			if !sameOrder(node.Items, order) {
				break
			}
		}
	}

	placements := make(map[string]string, len(node.Targets))
	for _, t := range node.Targets {
		placements[t.ID] = ""
	}

	return &domain.QuizAttempt{
		NodeID:     node.ID,
		Order:      order,
		Placements: placements,
	}
}

func sameOrder(items []domain.QuizItem, order []string) bool {
	for i, it := range items {
		if it.ID != order[i] {
			return false
		}
	}
	return true
}

// UnplacedItems returns the node's items whose ID is not assigned to any
// target, preserving the attempt's shuffled presentation order.
func UnplacedItems(node *domain.Node, attempt *domain.QuizAttempt) []domain.QuizItem {
	placed := make(map[string]bool, len(attempt.Placements))
	for _, itemID := range attempt.Placements {
		if itemID != "" {
			placed[itemID] = true
		}
	}

	byID := make(map[string]domain.QuizItem, len(node.Items))
	for _, it := range node.Items {
		byID[it.ID] = it
	}

	out := make([]domain.QuizItem, 0, len(attempt.Order))
	for _, id := range attempt.Order {
		if !placed[id] {
			out = append(out, byID[id])
		}
	}
	return out
}

// Place assigns itemID to targetID, mutating the attempt in place.
//
// Rules: the item is first removed from wherever it sits; if the target
// already held a different item, that item moves to the slot the dragged item
// vacated (a swap), or becomes unplaced when the dragged item came from the
// pool. Dropping onto Pool vacates the item. Dropping an item onto the target
// it already occupies is a no-op. An empty itemID (no active drag) is a
// no-op.
func Place(node *domain.Node, attempt *domain.QuizAttempt, itemID, targetID string) error {
	if itemID == "" {
		return nil
	}
	if !node.HasItem(itemID) {
		return &InvalidDragError{NodeID: node.ID, ItemID: itemID}
	}
	if targetID != Pool && !node.HasTarget(targetID) {
		return &InvalidDragError{NodeID: node.ID, ItemID: itemID}
	}

	// Where does the dragged item currently sit?
	origin := Pool
	for t, it := range attempt.Placements {
		if it == itemID {
			origin = t
			break
		}
	}

	if origin == targetID {
		return nil
	}

	if targetID == Pool {
		attempt.Placements[origin] = ""
		return nil
	}

	displaced := attempt.Placements[targetID]
	attempt.Placements[targetID] = itemID
	if origin != Pool {
		// Swap: the displaced item (possibly none) takes the vacated slot.
		attempt.Placements[origin] = displaced
	}
	// Origin == Pool: the displaced item simply becomes unplaced.
	return nil
}

// IsComplete reports whether every target holds an item, regardless of
// correctness. It is the gate for answer submission.
func IsComplete(attempt *domain.QuizAttempt) bool {
	for _, itemID := range attempt.Placements {
		if itemID == "" {
			return false
		}
	}
	return true
}

// CheckCorrectness reports whether every target holds its declared correct
// item. This is the sole condition for advancing past the quiz node.
func CheckCorrectness(node *domain.Node, attempt *domain.QuizAttempt) bool {
	for _, t := range node.Targets {
		if attempt.Placements[t.ID] != t.Correct {
			return false
		}
	}
	return true
}
