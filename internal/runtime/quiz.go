package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/quiz"
)

// PlaceItem applies one drag-drop placement to the active attempt. An
// operation referencing an unknown item or target is logged and ignored: the
// returned state is the input state, byte-for-byte unchanged. A stray UI
// event must not corrupt the session.
func (e *Engine) PlaceItem(ctx context.Context, state *domain.State, itemID, targetID string) (*domain.State, error) {
	node, err := e.quizNode(state)
	if err != nil {
		return nil, err
	}

	next := state.Clone()
	if err := quiz.Place(node, next.Quiz, itemID, targetID); err != nil {
		var dragErr *quiz.InvalidDragError
		if errors.As(err, &dragErr) {
			e.logger.Warn("invalid drag operation ignored",
				"session_id", state.SessionID,
				"node_id", dragErr.NodeID,
				"item_id", dragErr.ItemID)
			return state, nil
		}
		return nil, err
	}
	return next, nil
}

// CheckAnswer resolves the active attempt. It refuses to evaluate while any
// target is unassigned: no transition, no game state mutation. On a complete
// board the attempt is discarded either way; a correct outcome advances to
// the node's Next, an incorrect one to IncorrectNext, with streak and score
// updated accordingly.
func (e *Engine) CheckAnswer(ctx context.Context, state *domain.State) (*domain.State, bool, error) {
	node, err := e.quizNode(state)
	if err != nil {
		return nil, false, err
	}

	if !quiz.IsComplete(state.Quiz) {
		return nil, false, domain.ErrPrematureSubmission
	}

	correct := quiz.CheckCorrectness(node, state.Quiz)

	next := state.Clone()
	next.Game.RecordQuizOutcome(correct, e.quizPoints)
	next.Quiz = nil
	next.Status = domain.StatusActive

	e.logger.Info("quiz resolved",
		"session_id", state.SessionID,
		"node_id", node.ID,
		"correct", correct,
		"streak", next.Game.Streak)
	e.emitQuizResolved(ctx, next, node.ID, correct)

	target := node.Next
	if !correct {
		target = node.IncorrectNext
	}
	if err := e.enterNode(ctx, next, node.ID, target, 0); err != nil {
		return nil, false, err
	}
	return next, correct, nil
}

// UnplacedItems returns the items of the active attempt that are still in
// the pool, in presentation order.
func (e *Engine) UnplacedItems(state *domain.State) ([]domain.QuizItem, error) {
	node, err := e.quizNode(state)
	if err != nil {
		return nil, err
	}
	return quiz.UnplacedItems(node, state.Quiz), nil
}

// quizNode loads the node owning the active attempt.
func (e *Engine) quizNode(state *domain.State) (*domain.Node, error) {
	if state.Status != domain.StatusQuiz || state.Quiz == nil {
		return nil, domain.ErrNoActiveQuiz
	}
	node, err := e.loadNode("", state.Quiz.NodeID)
	if err != nil {
		return nil, err
	}
	if node.Type != domain.NodeQuizDragDrop {
		return nil, fmt.Errorf("node %s is not a quiz node", node.ID)
	}
	return node, nil
}
