package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/persistence/middleware"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, middleware.KeySize)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func snapshot() domain.Snapshot {
	return domain.Snapshot{
		SessionID:  "s1",
		EventID:    "main",
		Status:     domain.StatusPaused,
		ClockMs:    4200,
		DurationMs: 9000,
		Scenes:     []domain.SceneSummary{{SceneID: "logo", InstanceID: 3, Phase: domain.PhaseActive}},
	}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunPlaybackStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	ctx := context.Background()

	require.NoError(t, secure.Save(ctx, "s1", snapshot()))

	stored, err := underlying.Load(ctx, "s1")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Sealed)
	assert.Empty(t, stored.EventID, "event is hidden")
	assert.Zero(t, stored.ClockMs, "position is hidden")
	assert.Empty(t, stored.Scenes)
	assert.Equal(t, domain.StatusPaused, stored.Status, "status stays listable")

	loaded, err := secure.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, snapshot(), loaded)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)
	ctx := context.Background()

	oldStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)
	require.NoError(t, oldStore.Save(ctx, "s1", snapshot()))

	newStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)
	loaded, err := newStore.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4200.0, loaded.ClockMs)

	require.NoError(t, newStore.Save(ctx, "s1", loaded))
	_, err = oldStore.Load(ctx, "s1")
	assert.Error(t, err, "a snapshot sealed with the new key is unreadable with the old one")
}

func TestEncryptionMiddleware_RejectsPlainSnapshots(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, "s1", snapshot()))

	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := secure.Load(ctx, "s1")
	assert.ErrorIs(t, err, middleware.ErrNotSealed)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}

func TestParseKeys(t *testing.T) {
	a, b := generateKey(t), generateKey(t)

	cfg, err := middleware.ParseKeys(hex.EncodeToString(a) + ", " + hex.EncodeToString(b))
	require.NoError(t, err)
	assert.Equal(t, a, cfg.ActiveKey)
	assert.Equal(t, [][]byte{b}, cfg.FallbackKeys)

	_, err = middleware.ParseKeys("zz")
	assert.Error(t, err)
	_, err = middleware.ParseKeys(strings.Repeat("ab", 16))
	assert.ErrorContains(t, err, "want 32 bytes")
}

func TestChain(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.PlaybackStore) ports.PlaybackStore {
			return recordingStore{PlaybackStore: next, name: name, order: &order}
		}
	}

	store := middleware.Chain(memory.NewStore(), tag("outer"), tag("inner"))
	require.NoError(t, store.Save(context.Background(), "s1", snapshot()))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

type recordingStore struct {
	ports.PlaybackStore
	name  string
	order *[]string
}

func (s recordingStore) Save(ctx context.Context, id string, snap domain.Snapshot) error {
	*s.order = append(*s.order, s.name)
	return s.PlaybackStore.Save(ctx, id, snap)
}
