package runner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_HandleEvent(t *testing.T) {
	var buf bytes.Buffer
	h := NewTextHandler(&buf, WithColorProfile(termenv.Ascii))
	ctx := context.Background()

	require.NoError(t, h.HandleEvent(ctx, domain.LifecycleEvent{
		Type: domain.EventTransitionStart, ClockMs: 3000, From: "a", To: "b", Transition: domain.TransitionCrossfade,
	}))
	require.NoError(t, h.HandleEvent(ctx, domain.LifecycleEvent{
		Type: domain.EventSceneEnd, ClockMs: 4000, SceneID: "a", InstanceID: 1, Reason: domain.ReasonTransition,
	}))
	require.NoError(t, h.HandleEvent(ctx, domain.LifecycleEvent{
		Type: domain.EventAssetMissing, ClockMs: 61234, SceneID: "b", InstanceID: 2, Error: "bg.png not ready",
	}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "00:03.000")
	assert.Contains(t, string(lines[0]), "crossfade a -> b")
	assert.Contains(t, string(lines[1]), "a#1 (transition)")
	assert.Contains(t, string(lines[2]), "01:01.234")
	assert.Contains(t, string(lines[2]), "bg.png not ready")
	assert.NotContains(t, buf.String(), "\x1b[", "ascii profile must not emit escape codes")
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00.000", FormatClock(-3))
	assert.Equal(t, "00:02.500", FormatClock(2500))
	assert.Equal(t, "10:00.001", FormatClock(600001))
}

func TestJSONHandler_WritesNDJSON(t *testing.T) {
	var buf bytes.Buffer
	h := NewJSONHandler(&buf)
	ctx := context.Background()

	require.NoError(t, h.HandleEvent(ctx, domain.LifecycleEvent{Seq: 1, Type: domain.EventSceneStart, SceneID: "a"}))
	require.NoError(t, h.HandleEvent(ctx, domain.LifecycleEvent{Seq: 2, Type: domain.EventTimelineComplete, ClockMs: 7000}))

	sc := bufio.NewScanner(&buf)
	var got []domain.LifecycleEvent
	for sc.Scan() {
		var ev domain.LifecycleEvent
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
		got = append(got, ev)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].SceneID)
	assert.Equal(t, 7000.0, got[1].ClockMs)
}

func TestEventHandlerFunc(t *testing.T) {
	var seen domain.EventType
	var h EventHandler = EventHandlerFunc(func(_ context.Context, ev domain.LifecycleEvent) error {
		seen = ev.Type
		return nil
	})
	require.NoError(t, h.HandleEvent(context.Background(), domain.LifecycleEvent{Type: domain.EventSceneEnd}))
	assert.Equal(t, domain.EventSceneEnd, seen)
}
