package runtime

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
)

// appendBotMessage renders a visible node into a transcript entry.
func (e *Engine) appendBotMessage(ctx context.Context, state *domain.State, node *domain.Node) {
	msg := domain.Message{
		ID:       e.nextMessageID(state),
		Sender:   domain.SenderBot,
		Text:     e.translate(node.TextKey),
		Language: e.language,
		Dynamic:  node.Dynamic,
	}

	switch node.Type {
	case domain.NodeQuestion, domain.NodeAnswer:
		for i, btn := range node.Buttons {
			msg.Buttons = append(msg.Buttons, domain.MessageButton{
				Index:     i,
				Label:     e.translate(btn.TextKey),
				BranchKey: btn.BranchKey,
				Style:     btn.Style,
			})
		}
	case domain.NodeLoopQuestion:
		keys := make([]string, 0, len(node.Branches))
		for key := range node.Branches {
			keys = append(keys, key)
		}
		sort.Strings(keys) // Deterministic button order
		for i, key := range keys {
			msg.Buttons = append(msg.Buttons, domain.MessageButton{
				Index:     i,
				Label:     e.translate(node.Branches[key].TextKey),
				BranchKey: key,
			})
		}
	}

	state.Transcript = append(state.Transcript, msg)
	e.emitMessage(ctx, state, &msg)
}

// appendQuizMessage renders a quiz node with its board payload. Items follow
// the attempt's shuffled order; correct answers are not exposed.
func (e *Engine) appendQuizMessage(ctx context.Context, state *domain.State, node *domain.Node) {
	byID := make(map[string]domain.QuizItem, len(node.Items))
	for _, it := range node.Items {
		byID[it.ID] = it
	}

	prompt := &domain.QuizPrompt{NodeID: node.ID}
	for _, id := range state.Quiz.Order {
		prompt.Items = append(prompt.Items, domain.QuizPromptItem{
			ID:   id,
			Text: e.translate(byID[id].TextKey),
		})
	}
	for _, t := range node.Targets {
		prompt.Targets = append(prompt.Targets, domain.QuizPromptTarget{
			ID:    t.ID,
			Label: t.Label,
		})
	}

	msg := domain.Message{
		ID:       e.nextMessageID(state),
		Sender:   domain.SenderBot,
		Text:     e.translate(node.TextKey),
		Quiz:     prompt,
		Language: e.language,
		Dynamic:  node.Dynamic,
	}
	state.Transcript = append(state.Transcript, msg)
	e.emitMessage(ctx, state, &msg)
}

// appendUserMessage records the user's side of an exchange.
func (e *Engine) appendUserMessage(ctx context.Context, state *domain.State, text string) {
	msg := domain.Message{
		ID:       e.nextMessageID(state),
		Sender:   domain.SenderUser,
		Text:     text,
		Language: e.language,
	}
	state.Transcript = append(state.Transcript, msg)
	e.emitMessage(ctx, state, &msg)
}

func (e *Engine) nextMessageID(state *domain.State) string {
	return fmt.Sprintf("msg-%d", len(state.Transcript)+1)
}

func (e *Engine) emitNodeEnter(ctx context.Context, state *domain.State, node *domain.Node) {
	if e.hooks.OnNodeEnter == nil {
		return
	}
	e.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
		EventBase: eventBase(domain.EventNodeEnter, state.SessionID),
		NodeID:    node.ID,
		NodeType:  node.Type,
	})
}

func (e *Engine) emitMessage(ctx context.Context, state *domain.State, msg *domain.Message) {
	if e.hooks.OnMessage == nil {
		return
	}
	e.hooks.OnMessage(ctx, &domain.MessageEvent{
		EventBase: eventBase(domain.EventMessage, state.SessionID),
		MessageID: msg.ID,
		Sender:    msg.Sender,
	})
}

func (e *Engine) emitAchievement(ctx context.Context, state *domain.State, achievementID string, points int) {
	if e.hooks.OnAchievement == nil {
		return
	}
	e.hooks.OnAchievement(ctx, &domain.AchievementEvent{
		EventBase:     eventBase(domain.EventAchievement, state.SessionID),
		AchievementID: achievementID,
		Points:        points,
	})
}

func (e *Engine) emitQuizResolved(ctx context.Context, state *domain.State, nodeID string, correct bool) {
	if e.hooks.OnQuizResolved == nil {
		return
	}
	e.hooks.OnQuizResolved(ctx, &domain.QuizEvent{
		EventBase: eventBase(domain.EventQuizResolved, state.SessionID),
		NodeID:    nodeID,
		Correct:   correct,
		Streak:    state.Game.Streak,
	})
}

func eventBase(typ domain.EventType, sessionID string) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      typ,
		SessionID: sessionID,
	}
}
