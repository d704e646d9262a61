package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter    EventType = "node_enter"
	EventMessage      EventType = "message"
	EventAchievement  EventType = "achievement"
	EventQuizResolved EventType = "quiz_resolved"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// NodeEvent represents entry into a node.
type NodeEvent struct {
	EventBase
	NodeID   string   `json:"node_id"`
	NodeType NodeType `json:"node_type"`
}

// MessageEvent represents a message appended to the transcript.
type MessageEvent struct {
	EventBase
	MessageID string `json:"message_id"`
	Sender    Sender `json:"sender"`
}

// AchievementEvent represents a newly granted achievement.
type AchievementEvent struct {
	EventBase
	AchievementID string `json:"achievement_id"`
	Points        int    `json:"points"`
}

// QuizEvent represents a resolved drag-drop attempt.
type QuizEvent struct {
	EventBase
	NodeID  string `json:"node_id"`
	Correct bool   `json:"correct"`
	Streak  int    `json:"streak"`
}

// LifecycleHooks defines callbacks for engine observability. Any nil hook is
// skipped.
type LifecycleHooks struct {
	OnNodeEnter    func(context.Context, *NodeEvent)
	OnMessage      func(context.Context, *MessageEvent)
	OnAchievement  func(context.Context, *AchievementEvent)
	OnQuizResolved func(context.Context, *QuizEvent)
}
