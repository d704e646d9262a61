package domain

// ExecutionStatus defines the current mode of the traversal.
type ExecutionStatus string

const (
	// StatusActive means the engine is waiting for a regular user action.
	StatusActive ExecutionStatus = "active"
	// StatusQuiz means a drag-drop attempt is open and placement operations
	// are the only accepted input.
	StatusQuiz ExecutionStatus = "quiz"
	// StatusTerminated means a sink node was reached.
	StatusTerminated ExecutionStatus = "terminated"
)

// QuizAttempt is the transient state of one drag-drop attempt. It is created
// fresh when a quiz node is entered and discarded when the node is left,
// whatever the outcome.
type QuizAttempt struct {
	// NodeID of the quiz node this attempt belongs to.
	NodeID string `json:"node_id"`

	// Order is the shuffled presentation order of item IDs.
	Order []string `json:"order"`

	// Placements maps every target ID to the item currently assigned to it.
	// The empty string means unassigned. The key set is fixed at attempt
	// creation, so a target can structurally never hold two items.
	Placements map[string]string `json:"placements"`
}

// State is the full snapshot of one conversation session.
type State struct {
	SessionID     string          `json:"session_id"`
	CurrentNodeID string          `json:"current_node_id"`
	Status        ExecutionStatus `json:"status"`

	// Game is the cumulative gamification record for this session.
	Game GameState `json:"game"`

	// Transcript is the append-only message log. Entries are never mutated
	// after creation.
	Transcript []Message `json:"transcript"`

	// BranchHistory records branch keys carried by chosen buttons, in
	// selection order. The host replays it to resume loop questions.
	BranchHistory []string `json:"branch_history,omitempty"`

	// Quiz is the active attempt, non-nil only while Status == StatusQuiz.
	Quiz *QuizAttempt `json:"quiz,omitempty"`
}

// NewState creates a clean session snapshot positioned at startNodeID.
func NewState(sessionID, startNodeID string) *State {
	return &State{
		SessionID:     sessionID,
		CurrentNodeID: startNodeID,
		Status:        StatusActive,
		Game:          NewGameState(),
	}
}

// Clone returns a deep copy of the state, safe to mutate independently.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.Game = s.Game.clone()
	next.Transcript = append([]Message(nil), s.Transcript...)
	next.BranchHistory = append([]string(nil), s.BranchHistory...)
	if s.Quiz != nil {
		q := *s.Quiz
		q.Order = append([]string(nil), s.Quiz.Order...)
		q.Placements = make(map[string]string, len(s.Quiz.Placements))
		for k, v := range s.Quiz.Placements {
			q.Placements[k] = v
		}
		next.Quiz = &q
	}
	return &next
}
