package quiz_test

import (
	"math/rand"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizNode() *domain.Node {
	return &domain.Node{
		ID:   "q_match",
		Type: domain.NodeQuizDragDrop,
		Items: []domain.QuizItem{
			{ID: "a", TextKey: "item.a"},
			{ID: "b", TextKey: "item.b"},
			{ID: "c", TextKey: "item.c"},
		},
		Targets: []domain.QuizTarget{
			{ID: "E", Label: "Earth", Correct: "a"},
			{ID: "S", Label: "Sun", Correct: "b"},
			{ID: "G", Label: "Galaxy", Correct: "c"},
		},
		Next:          "q_correct",
		IncorrectNext: "q_wrong",
	}
}

func testRng() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestNewAttempt(t *testing.T) {
	node := quizNode()

	t.Run("All Targets Unassigned", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())

		require.Len(t, att.Placements, 3)
		for _, target := range node.Targets {
			got, ok := att.Placements[target.ID]
			assert.True(t, ok, "target %s missing from placements", target.ID)
			assert.Empty(t, got)
		}
	})

	t.Run("Order Is A Permutation", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())

		require.Len(t, att.Order, len(node.Items))
		assert.ElementsMatch(t, []string{"a", "b", "c"}, att.Order)
	})

	t.Run("Order Differs From Declared Order", func(t *testing.T) {
		// Repeated initializations must never present the declared order.
		rng := testRng()
		for i := 0; i < 50; i++ {
			att := quiz.NewAttempt(node, rng)
			assert.NotEqual(t, []string{"a", "b", "c"}, att.Order)
		}
	})

	t.Run("Single Item Keeps Its Order", func(t *testing.T) {
		single := &domain.Node{
			ID:      "q_single",
			Type:    domain.NodeQuizDragDrop,
			Items:   []domain.QuizItem{{ID: "only"}},
			Targets: []domain.QuizTarget{{ID: "T", Correct: "only"}},
		}
		att := quiz.NewAttempt(single, testRng())
		assert.Equal(t, []string{"only"}, att.Order)
	})
}

func TestPlace(t *testing.T) {
	node := quizNode()

	t.Run("Assign From Pool", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())

		require.NoError(t, quiz.Place(node, att, "a", "E"))
		assert.Equal(t, "a", att.Placements["E"])
		assert.Len(t, quiz.UnplacedItems(node, att), 2)
	})

	t.Run("Swap Between Targets", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())
		require.NoError(t, quiz.Place(node, att, "a", "E"))
		require.NoError(t, quiz.Place(node, att, "b", "S"))

		// Dragging a onto S swaps it with b.
		require.NoError(t, quiz.Place(node, att, "a", "S"))
		assert.Equal(t, "a", att.Placements["S"])
		assert.Equal(t, "b", att.Placements["E"])
	})

	t.Run("Displace To Pool", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())
		require.NoError(t, quiz.Place(node, att, "a", "E"))

		// b comes from the pool, so a has no slot to swap into.
		require.NoError(t, quiz.Place(node, att, "b", "E"))
		assert.Equal(t, "b", att.Placements["E"])

		unplaced := quiz.UnplacedItems(node, att)
		ids := make([]string, 0, len(unplaced))
		for _, it := range unplaced {
			ids = append(ids, it.ID)
		}
		assert.ElementsMatch(t, []string{"a", "c"}, ids)
	})

	t.Run("Drop Onto Pool Vacates", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())
		require.NoError(t, quiz.Place(node, att, "a", "E"))

		require.NoError(t, quiz.Place(node, att, "a", quiz.Pool))
		assert.Empty(t, att.Placements["E"])
		assert.Len(t, quiz.UnplacedItems(node, att), 3)
	})

	t.Run("Self Drop Is Noop", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())
		require.NoError(t, quiz.Place(node, att, "a", "E"))
		before := snapshot(att)

		require.NoError(t, quiz.Place(node, att, "a", "E"))
		assert.Equal(t, before, snapshot(att))
	})

	t.Run("Empty Drag Is Noop", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())
		before := snapshot(att)

		require.NoError(t, quiz.Place(node, att, "", "E"))
		assert.Equal(t, before, snapshot(att))
	})

	t.Run("Unknown Item Rejected Unchanged", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())
		require.NoError(t, quiz.Place(node, att, "a", "E"))
		before := snapshot(att)

		err := quiz.Place(node, att, "zz", "E")
		var dragErr *quiz.InvalidDragError
		require.ErrorAs(t, err, &dragErr)
		assert.Equal(t, "zz", dragErr.ItemID)
		assert.Equal(t, before, snapshot(att))
	})

	t.Run("Round Trip Is Idempotent", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())
		require.NoError(t, quiz.Place(node, att, "a", "E"))
		require.NoError(t, quiz.Place(node, att, "b", "S"))
		before := snapshot(att)

		require.NoError(t, quiz.Place(node, att, "a", "S"))
		require.NoError(t, quiz.Place(node, att, "a", "E"))
		assert.Equal(t, before, snapshot(att))
	})

	t.Run("No Item Occupies Two Targets", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())
		moves := [][2]string{
			{"a", "E"}, {"b", "S"}, {"a", "S"}, {"c", "G"},
			{"c", "E"}, {"b", quiz.Pool}, {"a", "G"},
		}
		for _, m := range moves {
			require.NoError(t, quiz.Place(node, att, m[0], m[1]))
			seen := make(map[string]string)
			for target, item := range att.Placements {
				if item == "" {
					continue
				}
				prev, dup := seen[item]
				assert.False(t, dup, "item %s occupies both %s and %s", item, prev, target)
				seen[item] = target
			}
		}
	})
}

func TestCompletionAndCorrectness(t *testing.T) {
	node := quizNode()

	t.Run("Complete Agrees With Unplaced", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())

		steps := [][2]string{{"a", "E"}, {"b", "S"}, {"c", "G"}}
		for _, s := range steps {
			assert.Equal(t, len(quiz.UnplacedItems(node, att)) == 0, quiz.IsComplete(att))
			require.NoError(t, quiz.Place(node, att, s[0], s[1]))
		}
		assert.True(t, quiz.IsComplete(att))
		assert.Empty(t, quiz.UnplacedItems(node, att))
	})

	t.Run("Correct Assignment", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())
		require.NoError(t, quiz.Place(node, att, "a", "E"))
		require.NoError(t, quiz.Place(node, att, "b", "S"))
		require.NoError(t, quiz.Place(node, att, "c", "G"))

		assert.True(t, quiz.CheckCorrectness(node, att))
	})

	t.Run("Single Swap Flips Result", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())
		require.NoError(t, quiz.Place(node, att, "a", "E"))
		require.NoError(t, quiz.Place(node, att, "b", "S"))
		require.NoError(t, quiz.Place(node, att, "c", "G"))
		require.True(t, quiz.CheckCorrectness(node, att))

		require.NoError(t, quiz.Place(node, att, "a", "S"))
		assert.True(t, quiz.IsComplete(att))
		assert.False(t, quiz.CheckCorrectness(node, att))
	})

	t.Run("Incomplete Is Never Correct", func(t *testing.T) {
		att := quiz.NewAttempt(node, testRng())
		require.NoError(t, quiz.Place(node, att, "a", "E"))

		assert.False(t, quiz.IsComplete(att))
		assert.False(t, quiz.CheckCorrectness(node, att))
	})
}

func snapshot(att *domain.QuizAttempt) map[string]string {
	out := make(map[string]string, len(att.Placements))
	for k, v := range att.Placements {
		out[k] = v
	}
	return out
}
