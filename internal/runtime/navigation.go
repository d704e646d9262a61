package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/quiz"
)

// maxRedirectHops bounds invisible redirect chains so a redirect cycle in a
// malformed tree cannot hang the engine.
const maxRedirectHops = 64

// Choose selects button i on the current question or answer node.
func (e *Engine) Choose(ctx context.Context, state *domain.State, i int) (*domain.State, error) {
	node, err := e.activeNode(state)
	if err != nil {
		return nil, err
	}
	if node.Type != domain.NodeQuestion && node.Type != domain.NodeAnswer {
		return nil, fmt.Errorf("node %s (%s) has no buttons to choose from", node.ID, node.Type)
	}
	if i < 0 || i >= len(node.Buttons) {
		return nil, fmt.Errorf("node %s has no button %d", node.ID, i)
	}
	btn := node.Buttons[i]

	next := state.Clone()
	e.appendUserMessage(ctx, next, e.translate(btn.TextKey))
	if btn.BranchKey != "" {
		// Branch keys feed loop resumption; they must never be dropped.
		next.BranchHistory = append(next.BranchHistory, btn.BranchKey)
	}
	if err := e.enterNode(ctx, next, node.ID, btn.Next, 0); err != nil {
		return nil, err
	}
	return next, nil
}

// ChooseBranch selects a named branch on the current loop question.
func (e *Engine) ChooseBranch(ctx context.Context, state *domain.State, key string) (*domain.State, error) {
	node, err := e.activeNode(state)
	if err != nil {
		return nil, err
	}
	if node.Type != domain.NodeLoopQuestion {
		return nil, fmt.Errorf("node %s (%s) has no branches", node.ID, node.Type)
	}
	branch, ok := node.Branches[key]
	if !ok {
		return nil, fmt.Errorf("node %s has no branch %q", node.ID, key)
	}

	next := state.Clone()
	e.appendUserMessage(ctx, next, e.translate(branch.TextKey))
	next.BranchHistory = append(next.BranchHistory, key)
	if err := e.enterNode(ctx, next, node.ID, branch.Next, 0); err != nil {
		return nil, err
	}
	return next, nil
}

// ChooseDefault applies the loop question's default continuation. Without an
// explicit host signal the node simply waits; the engine never fires the
// default on its own.
func (e *Engine) ChooseDefault(ctx context.Context, state *domain.State) (*domain.State, error) {
	node, err := e.activeNode(state)
	if err != nil {
		return nil, err
	}
	if node.Type != domain.NodeLoopQuestion {
		return nil, fmt.Errorf("node %s (%s) is not a loop question", node.ID, node.Type)
	}
	if node.Next == "" {
		return nil, fmt.Errorf("loop question %s has no default continuation", node.ID)
	}

	next := state.Clone()
	if err := e.enterNode(ctx, next, node.ID, node.Next, 0); err != nil {
		return nil, err
	}
	return next, nil
}

// Continue advances past a prompt, or past an answer node that carries a
// default continuation instead of buttons.
func (e *Engine) Continue(ctx context.Context, state *domain.State) (*domain.State, error) {
	node, err := e.activeNode(state)
	if err != nil {
		return nil, err
	}
	switch node.Type {
	case domain.NodePrompt, domain.NodeAnswer:
		// ok
	default:
		return nil, fmt.Errorf("node %s (%s) does not support continuation", node.ID, node.Type)
	}
	if node.Next == "" {
		return nil, fmt.Errorf("node %s has no continuation", node.ID)
	}

	next := state.Clone()
	if err := e.enterNode(ctx, next, node.ID, node.Next, 0); err != nil {
		return nil, err
	}
	return next, nil
}

// activeNode loads the current node and rejects operations that arrive in
// the wrong execution mode.
func (e *Engine) activeNode(state *domain.State) (*domain.Node, error) {
	if state.Status == domain.StatusTerminated {
		return nil, fmt.Errorf("session %s is terminated", state.SessionID)
	}
	if state.Status == domain.StatusQuiz {
		return nil, fmt.Errorf("session %s has an open quiz attempt", state.SessionID)
	}
	return e.loadNode("", state.CurrentNodeID)
}

// loadNode fetches a node, mapping a missing ID to a GraphIntegrityError.
func (e *Engine) loadNode(from, id string) (*domain.Node, error) {
	node, err := e.loader.GetNode(id)
	if err != nil {
		if errors.Is(err, domain.ErrNodeNotFound) {
			return nil, &domain.GraphIntegrityError{FromNodeID: from, TargetNodeID: id}
		}
		return nil, fmt.Errorf("failed to load node %s: %w", id, err)
	}
	return node, nil
}

// enterNode moves the (already cloned) state onto nodeID and processes the
// entry: redirect chasing, achievement and visit bookkeeping, message
// emission, quiz attempt initialization, and terminal detection.
func (e *Engine) enterNode(ctx context.Context, state *domain.State, from, nodeID string, hops int) error {
	if hops > maxRedirectHops {
		return fmt.Errorf("redirect chain exceeded %d hops at node %s", maxRedirectHops, nodeID)
	}

	node, err := e.loadNode(from, nodeID)
	if err != nil {
		return err
	}
	state.CurrentNodeID = node.ID

	switch node.Type {
	case domain.NodeRedirect:
		// Invisible: no message, no bookkeeping. The target node's own
		// achievement handling applies normally once reached.
		if node.Next == "" {
			return &domain.GraphIntegrityError{FromNodeID: node.ID, TargetNodeID: ""}
		}
		return e.enterNode(ctx, state, node.ID, node.Next, hops+1)

	case domain.NodeRedirectQuiz:
		if e.quizEntryNodeID == "" {
			return fmt.Errorf("node %s requires a configured quiz entry node", node.ID)
		}
		return e.enterNode(ctx, state, node.ID, e.quizEntryNodeID, hops+1)
	}

	e.applyEntryBookkeeping(ctx, state, node)
	e.emitNodeEnter(ctx, state, node)

	switch node.Type {
	case domain.NodeQuestion, domain.NodeLoopQuestion:
		state.Game.LastQuestionID = node.ID
		state.Status = domain.StatusActive
		e.appendBotMessage(ctx, state, node)

	case domain.NodePrompt:
		state.Status = domain.StatusActive
		e.appendBotMessage(ctx, state, node)

	case domain.NodeAnswer:
		e.appendBotMessage(ctx, state, node)
		if len(node.Buttons) == 0 && node.Next == "" {
			state.Status = domain.StatusTerminated
		} else {
			state.Status = domain.StatusActive
		}

	case domain.NodeQuizDragDrop:
		e.rngMu.Lock()
		state.Quiz = quiz.NewAttempt(node, e.rng)
		e.rngMu.Unlock()
		state.Status = domain.StatusQuiz
		e.appendQuizMessage(ctx, state, node)

	default:
		return fmt.Errorf("node %s has unknown type %q", node.ID, node.Type)
	}

	return nil
}

// applyEntryBookkeeping grants the node's achievement (once, ever) and
// records the first visit. Redirect variants never reach this point.
func (e *Engine) applyEntryBookkeeping(ctx context.Context, state *domain.State, node *domain.Node) {
	if node.AchievementID != "" {
		points := e.achievementPoints[node.AchievementID]
		if state.Game.Award(node.AchievementID, points) {
			e.logger.Debug("achievement granted",
				"session_id", state.SessionID,
				"achievement_id", node.AchievementID,
				"points", points)
			e.emitAchievement(ctx, state, node.AchievementID, points)
		}
	}

	if state.Game.MarkVisited(node.ID) {
		e.logger.Debug("first visit", "session_id", state.SessionID, "node_id", node.ID)
	}

	if e.quizEndNodeID != "" && node.ID == e.quizEndNodeID {
		state.Game.MarkQuizCompleted()
	}
}
