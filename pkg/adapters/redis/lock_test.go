package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/marquee/pkg/adapters/redis"
	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_LockUnlock(t *testing.T) {
	mr, client := setup(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "resource1", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:resource1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:resource1"))
}

func TestRedisLocker_Contention(t *testing.T) {
	mr, client := setup(t)
	first := redis.NewLocker(client, "test:")
	second := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock1, err := first.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)

	short, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_, err = second.Lock(short, "shared", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock1(ctx))

	unlock2, err := second.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)
	defer unlock2(ctx)
	assert.True(t, mr.Exists("test:lock:shared"))
}

func TestRedisLocker_StaleUnlockKeepsNewLease(t *testing.T) {
	mr, client := setup(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	stale, err := locker.Lock(ctx, "k", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	fresh, err := locker.Lock(ctx, "k", 5*time.Second)
	require.NoError(t, err)
	defer fresh(ctx)

	require.NoError(t, stale(ctx))
	assert.True(t, mr.Exists("test:lock:k"), "an expired holder must not release the new lease")
}

func TestRedisLocker_GuardsSessionManager(t *testing.T) {
	_, client := setup(t)
	mgr := session.NewManager(memory.NewStore(), session.WithLocker(redis.NewLocker(client, "marquee:")))
	ctx := context.Background()

	require.NoError(t, mgr.Save(ctx, "lobby", domain.Snapshot{EventID: "show", ClockMs: 10}))
	snap, err := mgr.Load(ctx, "lobby")
	require.NoError(t, err)
	assert.Equal(t, 10.0, snap.ClockMs)
}
