package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := &domain.State{
			SessionID: sessionID,
			Input:     "100",
			Mode:      domain.ModeTemperature,
			Result:    "38 °C",
			Revision:  3,
			UpdatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		}

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.Input, loaded.Input)
		assert.Equal(t, state.Mode, loaded.Mode)
		assert.Equal(t, state.Result, loaded.Result)
		assert.Equal(t, state.Revision, loaded.Revision)
		assert.True(t, state.UpdatedAt.Equal(loaded.UpdatedAt))
	})

	t.Run("Load Returns Isolated Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Input = "mutated"

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "100", again.Input)
	})

	t.Run("Overwrite", func(t *testing.T) {
		err := store.Save(ctx, sessionID, &domain.State{SessionID: sessionID, Input: "5", Mode: domain.ModeWeight, Result: "0.005 Kilograms"})
		require.NoError(t, err)

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "5", loaded.Input)
		assert.Equal(t, domain.ModeWeight, loaded.Mode)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, &domain.State{SessionID: sessionID, Mode: domain.ModeDistance})
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, &domain.State{SessionID: id1, Mode: domain.ModeDistance}))
		require.NoError(t, store.Save(ctx, id2, &domain.State{SessionID: id2, Mode: domain.ModeWeight}))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})

	t.Run("List Names That Look Temporary", func(t *testing.T) {
		id := "tmp-" + sessionID
		require.NoError(t, store.Save(ctx, id, &domain.State{SessionID: id, Mode: domain.ModeDistance}))
		defer func() { _ = store.Delete(ctx, id) }()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id)
	})
}
