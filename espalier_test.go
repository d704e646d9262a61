package espalier_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `
root: start
quiz_entry: match
quiz_end: farewell
language: en
nodes:
  start:
    type: question
    text_key: start.text
    buttons:
      - text_key: start.quiz
        next: to_quiz
      - text_key: start.bye
        next: farewell
  to_quiz:
    type: redirect_quiz
  match:
    type: quiz_drag_drop
    text_key: match.text
    items:
      - id: a
        text_key: match.item.a
      - id: b
        text_key: match.item.b
    targets:
      - id: X
        label: First
        correct: a
      - id: Y
        label: Second
        correct: b
    next: farewell
    incorrect_next: start
  farewell:
    type: answer
    text_key: farewell.text
translations:
  en:
    start.text: "Welcome!"
    start.quiz: "Play the quiz"
    start.bye: "Goodbye"
    farewell.text: "See you!"
`

func writeSampleTree(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))
	return path
}

func TestNew_FromFile(t *testing.T) {
	eng, err := espalier.New(writeSampleTree(t))
	require.NoError(t, err)

	assert.Equal(t, "start", eng.EntryNodeID())

	state, err := eng.Start(context.Background(), "s1")
	require.NoError(t, err)

	// Document translations are wired automatically.
	require.Len(t, state.Transcript, 1)
	assert.Equal(t, "Welcome!", state.Transcript[0].Text)
	assert.Equal(t, "Play the quiz", state.Transcript[0].Buttons[0].Label)
}

func TestNew_QuizConfigFromFile(t *testing.T) {
	eng, err := espalier.New(writeSampleTree(t))
	require.NoError(t, err)
	ctx := context.Background()

	state, err := eng.Start(ctx, "s1")
	require.NoError(t, err)

	// redirect_quiz resolves through the document's quiz_entry.
	state, err = eng.Choose(ctx, state, 0)
	require.NoError(t, err)
	assert.Equal(t, "match", state.CurrentNodeID)
	assert.Equal(t, domain.StatusQuiz, state.Status)

	state, err = eng.PlaceItem(ctx, state, "a", "X")
	require.NoError(t, err)
	state, err = eng.PlaceItem(ctx, state, "b", "Y")
	require.NoError(t, err)

	state, correct, err := eng.CheckAnswer(ctx, state)
	require.NoError(t, err)
	assert.True(t, correct)
	// farewell is the document's quiz_end.
	assert.True(t, state.Game.QuizCompleted)
}

func TestNew_WithLoader(t *testing.T) {
	loader, err := memory.NewLoader(domain.DecisionTree{
		"root": {Type: domain.NodeAnswer, TextKey: "root.text"},
	})
	require.NoError(t, err)

	eng, err := espalier.New("", espalier.WithLoader(loader), espalier.WithEntryNode("root"))
	require.NoError(t, err)

	state, err := eng.Start(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTerminated, state.Status)
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := espalier.New("")
	assert.Error(t, err)
}

func TestNew_ExplicitOptionsWin(t *testing.T) {
	eng, err := espalier.New(writeSampleTree(t), espalier.WithLanguage("pt"))
	require.NoError(t, err)

	state, err := eng.Start(context.Background(), "s1")
	require.NoError(t, err)
	// pt has no entries; translation falls back to the document language.
	assert.Equal(t, "Welcome!", state.Transcript[0].Text)
}
