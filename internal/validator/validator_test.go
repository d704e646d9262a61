package validator

import (
	"strings"
	"testing"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGraph(t *testing.T) {
	t.Run("Valid Graph", func(t *testing.T) {
		loader, err := memory.NewLoader(domain.DecisionTree{
			"start": {
				Type:    domain.NodeQuestion,
				Buttons: []domain.Button{{TextKey: "go", Next: "quiz"}},
			},
			"quiz": {
				Type:          domain.NodeQuizDragDrop,
				Items:         []domain.QuizItem{{ID: "a"}, {ID: "b"}},
				Targets:       []domain.QuizTarget{{ID: "X", Correct: "a"}, {ID: "Y", Correct: "b"}},
				Next:          "end",
				IncorrectNext: "retry",
			},
			"retry": {Type: domain.NodePrompt, Next: "quiz"},
			"end":   {Type: domain.NodeAnswer},
		})
		require.NoError(t, err)

		assert.NoError(t, ValidateGraph(loader, "start", ""))
	})

	t.Run("Broken Link", func(t *testing.T) {
		loader, err := memory.NewLoader(domain.DecisionTree{
			"start": {
				Type:    domain.NodeQuestion,
				Buttons: []domain.Button{{TextKey: "go", Next: "ghost"}},
			},
		})
		require.NoError(t, err)

		err = ValidateGraph(loader, "start", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing node")
	})

	t.Run("Missing Root", func(t *testing.T) {
		loader, err := memory.NewLoader(domain.DecisionTree{})
		require.NoError(t, err)

		err = ValidateGraph(loader, "start", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "root node")
	})

	t.Run("Prompt Without Continuation", func(t *testing.T) {
		loader, err := memory.NewLoader(domain.DecisionTree{
			"start": {Type: domain.NodePrompt},
		})
		require.NoError(t, err)

		err = ValidateGraph(loader, "start", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required continuation")
	})

	t.Run("Redirect Quiz Without Entry", func(t *testing.T) {
		loader, err := memory.NewLoader(domain.DecisionTree{
			"start": {Type: domain.NodeRedirectQuiz},
		})
		require.NoError(t, err)

		err = ValidateGraph(loader, "start", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no quiz entry configured")
	})

	t.Run("Quiz Shape Problems", func(t *testing.T) {
		loader, err := memory.NewLoader(domain.DecisionTree{
			"start": {
				Type:  domain.NodeQuizDragDrop,
				Items: []domain.QuizItem{{ID: "a"}, {ID: "a"}},
				Targets: []domain.QuizTarget{
					{ID: "X", Correct: "a"},
					{ID: "X", Correct: "zz"},
				},
				Next:          "end",
				IncorrectNext: "end",
			},
			"end": {Type: domain.NodeAnswer},
		})
		require.NoError(t, err)

		err = ValidateGraph(loader, "start", "")
		require.Error(t, err)
		for _, want := range []string{
			`duplicate item "a"`,
			`duplicate target "X"`,
			`unknown item "zz"`,
		} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("expected error to mention %q, got: %v", want, err)
			}
		}
	})

	t.Run("Loop Cycle Terminates", func(t *testing.T) {
		// Loops referencing themselves or ancestors must not hang the walk.
		loader, err := memory.NewLoader(domain.DecisionTree{
			"hub": {
				Type: domain.NodeLoopQuestion,
				Branches: map[string]domain.Branch{
					"self": {TextKey: "again", Next: "hub"},
				},
				Next:       "end",
				ParentLoop: "hub",
			},
			"end": {Type: domain.NodeAnswer},
		})
		require.NoError(t, err)

		assert.NoError(t, ValidateGraph(loader, "hub", ""))
	})
}
