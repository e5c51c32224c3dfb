package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/marquee/pkg/adapters/redis"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setup(t)
	ports.RunPlaybackStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTLExpiration(t *testing.T) {
	mr, client := setup(t)
	now := time.Unix(1_700_000_000, 0)
	store := redis.NewFromClient(client,
		redis.WithTTL(time.Second),
		redis.WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", domain.Snapshot{EventID: "show", ClockMs: 400}))
	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, sessions, "s1")

	mr.FastForward(2 * time.Second)
	now = now.Add(2 * time.Second)

	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	sessions, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := setup(t)
	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "my-session", domain.Snapshot{EventID: "show"}))
	assert.True(t, mr.Exists("custom:app:my-session"))
	assert.True(t, mr.Exists("custom:app:index"))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, "my-session")
}

func TestRedisStore_PreservesSnapshot(t *testing.T) {
	_, client := setup(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	snap := domain.Snapshot{
		EventID:    "show",
		Status:     domain.StatusPlaying,
		ClockMs:    3200,
		DurationMs: 7000,
		Transition: &domain.TransitionFrame{Kind: domain.TransitionCrossfade, From: "a", To: "b", Progress: 0.2},
	}
	require.NoError(t, store.Save(ctx, "s1", snap))

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got.Transition)
	assert.Equal(t, "b", got.Transition.To)
	assert.Equal(t, 0.2, got.Transition.Progress)
}
