package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPlaybackStoreContract runs a suite of tests to verify that a PlaybackStore implementation
// adheres to the defined interface contract.
func RunPlaybackStoreContract(t *testing.T, store PlaybackStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := domain.Snapshot{
			SessionID:  sessionID,
			EventID:    "main",
			Status:     domain.StatusPaused,
			ClockMs:    3200,
			DurationMs: 7000,
			Scenes: []domain.SceneSummary{
				{SceneID: "a", InstanceID: 1, Phase: domain.PhaseTransitioningOut},
				{SceneID: "b", InstanceID: 2, Phase: domain.PhaseTransitioningIn},
			},
		}

		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "main", loaded.EventID)
		assert.Equal(t, domain.StatusPaused, loaded.Status)
		assert.Equal(t, 3200.0, loaded.ClockMs)
		assert.Len(t, loaded.Scenes, 2)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.Snapshot{EventID: "main", ClockMs: 10}))
		require.NoError(t, store.Save(ctx, sessionID, domain.Snapshot{EventID: "main", ClockMs: 20}))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 20.0, loaded.ClockMs)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.Snapshot{EventID: "main"})
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.Snapshot{EventID: "main"})
		_ = store.Save(ctx, id2, domain.Snapshot{EventID: "main"})

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

// RunSurfaceContract verifies the container lifecycle of a Surface implementation.
func RunSurfaceContract(t *testing.T, surface Surface) {
	t.Run("Create Style Destroy", func(t *testing.T) {
		c, err := surface.CreateContainer("intro", 1, domain.RolePrimary)
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, "intro", c.SceneID)
		assert.Equal(t, uint64(1), c.InstanceID)
		assert.Equal(t, domain.RolePrimary, c.Role)

		require.NoError(t, surface.ApplyStyle(c, domain.IdentityStyle()))
		require.NoError(t, surface.DestroyContainer(c))
	})

	t.Run("Unique IDs", func(t *testing.T) {
		a, err := surface.CreateContainer("intro", 2, domain.RoleOutgoing)
		require.NoError(t, err)
		b, err := surface.CreateContainer("intro", 2, domain.RoleIncoming)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)

		require.NoError(t, surface.MountLayer(a, domain.Layer{ID: "bg", Kind: "image", Source: "bg.png"}))
		require.NoError(t, surface.MoveLayers(a, b))
		require.NoError(t, surface.UnmountLayer(b, "bg"))
		require.NoError(t, surface.DestroyContainer(a))
		require.NoError(t, surface.DestroyContainer(b))
	})

	t.Run("Destroy Twice", func(t *testing.T) {
		c, err := surface.CreateContainer("outro", 3, domain.RolePrimary)
		require.NoError(t, err)
		require.NoError(t, surface.DestroyContainer(c))
		assert.NoError(t, surface.DestroyContainer(c))
	})
}
