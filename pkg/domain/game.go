package domain

// GameState is the cumulative, monotonically growing gamification record of
// one session. Score never decreases, achievements are never removed, and
// QuizCompleted is one-directional.
type GameState struct {
	Score              int  `json:"score"`
	Streak             int  `json:"streak"`
	QuizCorrectAnswers int  `json:"quiz_correct_answers"`
	QuizCompleted      bool `json:"quiz_completed"`

	// Profile fields, free-form.
	UserName string `json:"user_name,omitempty"`
	Major    string `json:"major,omitempty"`

	// LastQuestionID is the most recent question or loop-question node
	// visited, used for resumption and loop returns.
	LastQuestionID string `json:"last_question_id,omitempty"`

	// Achievements is the set of unlocked achievement IDs.
	Achievements map[string]bool `json:"achievements"`

	// VisitedProgressNodes tracks first visits, distinct from achievements.
	VisitedProgressNodes map[string]bool `json:"visited_progress_nodes"`
}

// NewGameState returns an all-zero game record.
func NewGameState() GameState {
	return GameState{
		Achievements:         make(map[string]bool),
		VisitedProgressNodes: make(map[string]bool),
	}
}

// Award unlocks an achievement and adds its point value. Idempotent per ID:
// repeated calls for the same achievement never re-award. Reports whether the
// achievement was newly granted.
func (g *GameState) Award(achievementID string, points int) bool {
	if achievementID == "" || g.Achievements[achievementID] {
		return false
	}
	g.Achievements[achievementID] = true
	g.Score += points
	return true
}

// RecordQuizOutcome applies one resolved quiz attempt. A correct outcome
// extends the streak and adds points; an incorrect one resets the streak and
// leaves score and counter untouched.
func (g *GameState) RecordQuizOutcome(correct bool, points int) {
	if correct {
		g.QuizCorrectAnswers++
		g.Streak++
		g.Score += points
		return
	}
	g.Streak = 0
}

// MarkVisited records a first visit. Reports whether the node was new.
func (g *GameState) MarkVisited(nodeID string) bool {
	if g.VisitedProgressNodes[nodeID] {
		return false
	}
	g.VisitedProgressNodes[nodeID] = true
	return true
}

// MarkQuizCompleted flags the overall quiz flow as finished. Monotonic: once
// true it stays true.
func (g *GameState) MarkQuizCompleted() {
	g.QuizCompleted = true
}

// clone deep-copies the record so session snapshots stay independent.
func (g GameState) clone() GameState {
	next := g
	next.Achievements = make(map[string]bool, len(g.Achievements))
	for k, v := range g.Achievements {
		next.Achievements[k] = v
	}
	next.VisitedProgressNodes = make(map[string]bool, len(g.VisitedProgressNodes))
	for k, v := range g.VisitedProgressNodes {
		next.VisitedProgressNodes[k] = v
	}
	return next
}
