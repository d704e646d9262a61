package memory_test

import (
	"testing"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader(t *testing.T) {
	loader, err := memory.NewLoader(domain.DecisionTree{
		"start": {Type: domain.NodeQuestion, TextKey: "start.text"},
		"end":   {Type: domain.NodeAnswer, TextKey: "end.text"},
	})
	require.NoError(t, err)

	t.Run("GetNode Fills ID", func(t *testing.T) {
		node, err := loader.GetNode("start")
		require.NoError(t, err)
		assert.Equal(t, "start", node.ID)
		assert.Equal(t, domain.NodeQuestion, node.Type)
	})

	t.Run("GetNode Not Found", func(t *testing.T) {
		_, err := loader.GetNode("ghost")
		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	})

	t.Run("GetNode Returns Copy", func(t *testing.T) {
		node, err := loader.GetNode("start")
		require.NoError(t, err)
		node.TextKey = "mutated"

		again, err := loader.GetNode("start")
		require.NoError(t, err)
		assert.Equal(t, "start.text", again.TextKey)
	})

	t.Run("ListNodes Sorted", func(t *testing.T) {
		ids, err := loader.ListNodes()
		require.NoError(t, err)
		assert.Equal(t, []string{"end", "start"}, ids)
	})

	t.Run("Conflicting ID Rejected", func(t *testing.T) {
		_, err := memory.NewLoader(domain.DecisionTree{
			"a": {ID: "b", Type: domain.NodeAnswer},
		})
		assert.Error(t, err)
	})
}

func TestNewFromNodes(t *testing.T) {
	t.Run("Duplicate ID Rejected", func(t *testing.T) {
		_, err := memory.NewFromNodes(
			domain.Node{ID: "a", Type: domain.NodeAnswer},
			domain.Node{ID: "a", Type: domain.NodePrompt},
		)
		assert.Error(t, err)
	})

	t.Run("Missing ID Rejected", func(t *testing.T) {
		_, err := memory.NewFromNodes(domain.Node{Type: domain.NodeAnswer})
		assert.Error(t, err)
	})
}
