package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// ConversationEngine is the stateless traversal core consumed by adapters
// (HTTP, CLI runner). State is carried by the caller per request; every
// method returns a new snapshot and never mutates its input.
type ConversationEngine interface {
	// Start creates a session positioned at the root node and processes the
	// entry (redirect chasing, first messages, bookkeeping).
	Start(ctx context.Context, sessionID string) (*domain.State, error)

	// Choose selects button i on the current question/answer node.
	Choose(ctx context.Context, state *domain.State, i int) (*domain.State, error)

	// ChooseBranch selects a named branch on the current loop question.
	ChooseBranch(ctx context.Context, state *domain.State, key string) (*domain.State, error)

	// ChooseDefault applies the loop question's default continuation. The
	// engine never fires it on its own; the host signals it explicitly.
	ChooseDefault(ctx context.Context, state *domain.State) (*domain.State, error)

	// Continue advances past a prompt (or an answer with a default
	// continuation) after the host rendered it.
	Continue(ctx context.Context, state *domain.State) (*domain.State, error)

	// PlaceItem applies one drag-drop placement to the active quiz attempt.
	PlaceItem(ctx context.Context, state *domain.State, itemID, targetID string) (*domain.State, error)

	// CheckAnswer resolves the active quiz attempt. Rejected with
	// domain.ErrPrematureSubmission while targets remain unassigned.
	CheckAnswer(ctx context.Context, state *domain.State) (*domain.State, bool, error)

	// Inspect returns the full graph for visualization or validation tools.
	Inspect() ([]domain.Node, error)
}
