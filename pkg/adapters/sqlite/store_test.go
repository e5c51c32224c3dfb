package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/marquee/pkg/adapters/sqlite"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.PlaybackStore = (*sqlite.Store)(nil)

func open(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_Contract(t *testing.T) {
	ports.RunPlaybackStoreContract(t, open(t, filepath.Join(t.TempDir(), "sessions.db")))
}

func TestStore_SharedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	writer := open(t, path)
	require.NoError(t, writer.Save(ctx, "b", domain.Snapshot{EventID: "main", Status: domain.StatusPlaying, ClockMs: 10}))
	require.NoError(t, writer.Save(ctx, "a", domain.Snapshot{EventID: "lobby", Status: domain.StatusPaused, ClockMs: 20}))

	reader := open(t, path)
	ids, err := reader.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	snap, err := reader.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "lobby", snap.EventID)
	assert.Equal(t, 20.0, snap.ClockMs)
}

func TestStore_EmptyID(t *testing.T) {
	store := open(t, filepath.Join(t.TempDir(), "sessions.db"))
	assert.Error(t, store.Save(context.Background(), "", domain.Snapshot{}))
}
