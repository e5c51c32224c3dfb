package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/aretw0/marquee/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStore simulates latency so overlapping saves would interleave without locking.
type slowStore struct {
	*memory.Store
	mu       sync.Mutex
	inFlight int
	overlap  bool
}

func (s *slowStore) Save(ctx context.Context, sessionID string, snap domain.Snapshot) error {
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > 1 {
		s.overlap = true
	}
	s.mu.Unlock()

	time.Sleep(2 * time.Millisecond)
	err := s.Store.Save(ctx, sessionID, snap)

	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
	return err
}

func TestManager_SerialisesSaves(t *testing.T) {
	store := &slowStore{Store: memory.NewStore()}
	mgr := session.NewManager(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(ms float64) {
			defer wg.Done()
			assert.NoError(t, mgr.Save(ctx, "race", domain.Snapshot{EventID: "show", ClockMs: ms}))
		}(float64(i))
	}
	wg.Wait()

	assert.False(t, store.overlap, "saves of one session must not overlap")
}

func TestManager_SaveStampsSnapshot(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, mgr.Save(ctx, "s1", domain.Snapshot{EventID: "show", ClockMs: 1200}))
	snap, err := mgr.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", snap.SessionID)
	assert.Equal(t, 1200.0, snap.ClockMs)
	assert.False(t, snap.UpdatedAt.IsZero())
}

func TestManager_Resume(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, found, err := mgr.Resume(ctx, "fresh")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, mgr.Save(ctx, "fresh", domain.Snapshot{EventID: "show", Status: domain.StatusPaused}))
	snap, found, err := mgr.Resume(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.StatusPaused, snap.Status)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, ids)
}

type countingLocker struct {
	mu       sync.Mutex
	locks    int
	unlocks  int
	lastTTL  time.Duration
	failWith error
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failWith != nil {
		return nil, l.failWith
	}
	l.locks++
	l.lastTTL = ttl
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocks++
		return nil
	}, nil
}

func TestManager_DistributedLock(t *testing.T) {
	locker := &countingLocker{}
	mgr := session.NewManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(5*time.Second))
	ctx := context.Background()

	require.NoError(t, mgr.Save(ctx, "s1", domain.Snapshot{EventID: "show"}))
	_, err := mgr.Load(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, 2, locker.locks)
	assert.Equal(t, 2, locker.unlocks)
	assert.Equal(t, 5*time.Second, locker.lastTTL)

	locker.failWith = errors.New("lease held elsewhere")
	assert.ErrorContains(t, mgr.Save(ctx, "s1", domain.Snapshot{}), "lease held elsewhere")
}
