package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests verifying that a StateStore
// implementation adheres to the interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState(sessionID, "root")
		state.Game.Award("first_step", 10)
		state.Game.MarkVisited("root")
		state.Transcript = append(state.Transcript, domain.Message{
			ID: "msg-1", Sender: domain.SenderBot, Text: "hello",
		})

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.CurrentNodeID, loaded.CurrentNodeID)
		assert.Equal(t, 10, loaded.Game.Score)
		assert.True(t, loaded.Game.Achievements["first_step"])
		require.Len(t, loaded.Transcript, 1)
		assert.Equal(t, "hello", loaded.Transcript[0].Text)
	})

	t.Run("Load Isolation", func(t *testing.T) {
		// Mutating a loaded copy must not leak into the store.
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Game.Award("leak_check", 99)

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.False(t, again.Game.Achievements["leak_check"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewState(sessionID, "root"))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState(id1, "root"))
		_ = store.Save(ctx, id2, domain.NewState(id2, "root"))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
