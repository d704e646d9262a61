package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_Award(t *testing.T) {
	g := NewGameState()

	assert.True(t, g.Award("first", 25))
	assert.Equal(t, 25, g.Score)

	// Re-awarding the same achievement never adds points.
	assert.False(t, g.Award("first", 25))
	assert.Equal(t, 25, g.Score)

	assert.True(t, g.Award("second", 10))
	assert.Equal(t, 35, g.Score)

	// Empty IDs are ignored.
	assert.False(t, g.Award("", 100))
	assert.Equal(t, 35, g.Score)
}

func TestGameState_RecordQuizOutcome(t *testing.T) {
	g := NewGameState()

	g.RecordQuizOutcome(true, 50)
	g.RecordQuizOutcome(true, 50)
	assert.Equal(t, 2, g.QuizCorrectAnswers)
	assert.Equal(t, 2, g.Streak)
	assert.Equal(t, 100, g.Score)

	// Incorrect resets the streak but never rolls back score or counter.
	g.RecordQuizOutcome(false, 50)
	assert.Equal(t, 0, g.Streak)
	assert.Equal(t, 2, g.QuizCorrectAnswers)
	assert.Equal(t, 100, g.Score)

	g.RecordQuizOutcome(true, 50)
	assert.Equal(t, 1, g.Streak)
	assert.Equal(t, 3, g.QuizCorrectAnswers)
}

func TestGameState_MarkVisited(t *testing.T) {
	g := NewGameState()

	assert.True(t, g.MarkVisited("intro"))
	assert.False(t, g.MarkVisited("intro"))
	assert.True(t, g.VisitedProgressNodes["intro"])
}

func TestGameState_MarkQuizCompleted(t *testing.T) {
	g := NewGameState()

	g.MarkQuizCompleted()
	g.MarkQuizCompleted()
	assert.True(t, g.QuizCompleted)
}

func TestState_Clone(t *testing.T) {
	s := NewState("s1", "start")
	s.Game.Award("first", 25)
	s.Transcript = append(s.Transcript, Message{ID: "msg-1", Sender: SenderBot, Text: "hi"})
	s.BranchHistory = append(s.BranchHistory, "learn")
	s.Quiz = &QuizAttempt{
		NodeID:     "match",
		Order:      []string{"a", "b"},
		Placements: map[string]string{"X": "a", "Y": ""},
	}

	c := s.Clone()
	c.Game.Award("second", 10)
	c.Game.MarkVisited("hub")
	c.Transcript = append(c.Transcript, Message{ID: "msg-2"})
	c.BranchHistory[0] = "changed"
	c.Quiz.Placements["Y"] = "b"
	c.Quiz.Order[0] = "z"

	// The original is untouched by any mutation of the clone.
	assert.Len(t, s.Game.Achievements, 1)
	assert.False(t, s.Game.VisitedProgressNodes["hub"])
	assert.Len(t, s.Transcript, 1)
	assert.Equal(t, "learn", s.BranchHistory[0])
	assert.Equal(t, "", s.Quiz.Placements["Y"])
	assert.Equal(t, "a", s.Quiz.Order[0])
}

func TestState_CloneNil(t *testing.T) {
	var s *State
	assert.Nil(t, s.Clone())
}
