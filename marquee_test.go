package marquee_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/observability"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const show = `
title: Show
scenes:
  a:
    duration_ms: 3000
    layers:
      - { id: bg, kind: image, source: a.png }
  b:
    duration_ms: 4000
    layers:
      - { id: bg, kind: image, source: b.png }
      - id: caption
        kind: text
        data: { text: Hello }
events:
  - id: show
    scenes: [a, b]
    transitions:
      - { kind: crossfade, duration_ms: 1000 }
`

func writeShow(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "show.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func graph() *domain.SceneGraph {
	scene := func(id string, ms float64) *domain.Scene {
		return &domain.Scene{ID: id, DurationMs: ms, Layers: []domain.Layer{{ID: "bg", Kind: "image", Source: id + ".png"}}}
	}
	return &domain.SceneGraph{
		Scenes: map[string]*domain.Scene{"a": scene("a", 3000), "b": scene("b", 4000)},
		Events: []*domain.Event{{
			ID:          "show",
			Scenes:      []string{"a", "b"},
			Transitions: []domain.TransitionDescriptor{{Kind: domain.TransitionCrossfade, DurationMs: 1000}},
		}},
	}
}

func play(t *testing.T, eng *marquee.Engine) {
	t.Helper()
	require.NoError(t, eng.Load(""))
	require.NoError(t, eng.Play())
	eng.Tick(0)
}

func TestNew_RequiresGraph(t *testing.T) {
	_, err := marquee.New()
	assert.Error(t, err)
}

func TestNew_RejectsInvalidGraph(t *testing.T) {
	g := graph()
	g.Scenes["a"].DurationMs = 0

	_, err := marquee.New(marquee.WithGraph(g))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration_ms")
}

func TestNew_FromLoader(t *testing.T) {
	loader, err := memory.NewLoader(graph())
	require.NoError(t, err)

	eng, err := marquee.New(marquee.WithLoader(loader))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, eng.Graph().SceneIDs())
	assert.Same(t, loader, eng.Loader())
}

func TestOpen_YAMLFile(t *testing.T) {
	eng, err := marquee.Open(writeShow(t, show))
	require.NoError(t, err)

	assert.Equal(t, "show", eng.Name)
	assert.Equal(t, "Show", eng.Graph().Title)
	require.NoError(t, eng.Load("show"))
	assert.Equal(t, domain.StatusIdle, eng.Status())
}

func TestOpen_MissingPath(t *testing.T) {
	_, err := marquee.Open(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEngine_DispatchesLayerFrames(t *testing.T) {
	images := memory.NewRenderer()
	eng, err := marquee.New(marquee.WithGraph(graph()), marquee.WithRenderer("image", images))
	require.NoError(t, err)
	play(t, eng)

	eng.Tick(1000)
	eng.Tick(3500)
	f := eng.Tick(4100)
	require.Len(t, f.Unmounted, 1)

	assert.Equal(t, []domain.LayerSignal{
		domain.SignalMounted,
		domain.SignalUpdated,
		domain.SignalUpdated,
		domain.SignalUnmount,
	}, images.Signals(1, "bg"))
	assert.Equal(t, []domain.LayerSignal{
		domain.SignalMounted,
		domain.SignalUpdated,
	}, images.Signals(2, "bg"))
}

func TestEngine_RenderErrorsAreContained(t *testing.T) {
	metrics := observability.NewMetrics()
	failing := ports.LayerRendererFunc(func(domain.LayerFrame) error { return errors.New("gpu lost") })
	eng, err := marquee.New(
		marquee.WithGraph(graph()),
		marquee.WithFallbackRenderer(failing),
		marquee.WithMetrics(metrics),
	)
	require.NoError(t, err)
	play(t, eng)

	f := eng.Tick(1000)
	assert.Equal(t, domain.StatusPlaying, f.Status)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "marquee_render_errors_total 2")
	assert.Contains(t, rec.Body.String(), "marquee_ticks_total 2")
}

func TestEngine_DrainRunsHooksInOrder(t *testing.T) {
	var got []string
	record := func(_ context.Context, ev domain.LifecycleEvent) {
		got = append(got, string(ev.Type)+":"+ev.SceneID)
	}
	metrics := observability.NewMetrics()
	eng, err := marquee.New(
		marquee.WithGraph(graph()),
		marquee.WithMetrics(metrics),
		marquee.WithLifecycleHooks(domain.LifecycleHooks{
			OnSceneStart:       record,
			OnSceneEnd:         record,
			OnTimelineComplete: record,
		}),
	)
	require.NoError(t, err)
	play(t, eng)

	eng.Tick(7500)
	evs := eng.Drain(context.Background())
	assert.Len(t, evs, 7)
	assert.Equal(t, []string{
		"scene-start:a",
		"scene-start:b",
		"scene-end:a",
		"scene-end:b",
		"timeline-complete:",
	}, got)
	assert.Empty(t, eng.Drain(context.Background()))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `marquee_transitions_total{kind="crossfade"} 1`)
}

func TestEngine_RestoreRebuildsStage(t *testing.T) {
	first, err := marquee.New(marquee.WithGraph(graph()))
	require.NoError(t, err)
	play(t, first)
	first.Tick(3200)
	snap := first.Snapshot()

	second, err := marquee.New(marquee.WithGraph(graph()))
	require.NoError(t, err)
	require.NoError(t, second.Restore(snap))

	got := second.Snapshot()
	assert.Equal(t, domain.StatusPlaying, got.Status)
	assert.Equal(t, 3200.0, got.ClockMs)
	require.NotNil(t, got.Transition)
	assert.InDelta(t, 0.2, got.Transition.Progress, 1e-9)
	require.Len(t, got.Scenes, 2)
	assert.Equal(t, domain.PhaseTransitioningOut, got.Scenes[0].Phase)
	assert.Equal(t, domain.PhaseTransitioningIn, got.Scenes[1].Phase)
}

func TestEngine_RestoreStatuses(t *testing.T) {
	eng, err := marquee.New(marquee.WithGraph(graph()))
	require.NoError(t, err)

	require.NoError(t, eng.Restore(domain.Snapshot{EventID: "show", Status: domain.StatusPaused, ClockMs: 1500}))
	assert.Equal(t, domain.StatusPaused, eng.Status())
	assert.Equal(t, 1500.0, eng.Snapshot().ClockMs)

	require.NoError(t, eng.Restore(domain.Snapshot{EventID: "show", Status: domain.StatusComplete, ClockMs: 7000}))
	assert.Equal(t, domain.StatusComplete, eng.Status())

	require.NoError(t, eng.Restore(domain.Snapshot{EventID: "show", Status: domain.StatusStopped}))
	assert.Equal(t, domain.StatusStopped, eng.Status())

	assert.ErrorIs(t, eng.Restore(domain.Snapshot{EventID: "gone"}), domain.ErrEventNotFound)
}

func TestEngine_ReloadKeepsPosition(t *testing.T) {
	path := writeShow(t, show)
	eng, err := marquee.Open(path)
	require.NoError(t, err)
	play(t, eng)
	eng.Tick(1000)

	longer := []byte(`
scenes:
  a: { duration_ms: 5000 }
  b: { duration_ms: 4000 }
events:
  - id: show
    scenes: [a, b]
    transitions: [{ kind: crossfade, duration_ms: 0 }]
`)
	require.NoError(t, os.WriteFile(path, longer, 0o644))
	require.NoError(t, eng.Reload(context.Background()))

	snap := eng.Snapshot()
	assert.Equal(t, domain.StatusPlaying, snap.Status)
	assert.Equal(t, 1000.0, snap.ClockMs)
	assert.Equal(t, 9000.0, snap.DurationMs)

	assert.Equal(t, 1000.0, eng.Tick(1500).ClockMs, "first tick after a restore anchors the host clock")
	assert.Equal(t, 1500.0, eng.Tick(2000).ClockMs)
}

func TestEngine_ReloadEndsMountedScenes(t *testing.T) {
	path := writeShow(t, show)
	eng, err := marquee.Open(path)
	require.NoError(t, err)
	play(t, eng)
	eng.Tick(1000)
	eng.Drain(context.Background())

	require.NoError(t, eng.Reload(context.Background()))
	evs := eng.Drain(context.Background())
	require.Len(t, evs, 2)
	assert.Equal(t, domain.EventSceneEnd, evs[0].Type)
	assert.Equal(t, domain.ReasonReload, evs[0].Reason)
	assert.Equal(t, uint64(1), evs[0].InstanceID)
	assert.Equal(t, domain.EventSceneStart, evs[1].Type)
	assert.Equal(t, uint64(2), evs[1].InstanceID)

	f := eng.Tick(1500)
	require.Len(t, f.Unmounted, 1)
	assert.Equal(t, "bg", f.Unmounted[0].LayerID)
	assert.Equal(t, uint64(1), f.Unmounted[0].InstanceID)
}

func TestEngine_ReloadRejectsInvalidGraph(t *testing.T) {
	path := writeShow(t, show)
	eng, err := marquee.Open(path)
	require.NoError(t, err)
	play(t, eng)

	require.NoError(t, os.WriteFile(path, []byte("scenes: {}\nevents: []\n"), 0o644))
	assert.Error(t, eng.Reload(context.Background()))
	assert.Equal(t, "Show", eng.Graph().Title)
}

func TestEngine_WatchNeedsWatchableLoader(t *testing.T) {
	eng, err := marquee.New(marquee.WithGraph(graph()))
	require.NoError(t, err)
	_, err = eng.Watch(context.Background())
	assert.Error(t, err)
	assert.Error(t, eng.Reload(context.Background()))
}

func TestEngine_WatchYAMLFile(t *testing.T) {
	path := writeShow(t, show)
	eng, err := marquee.Open(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, err := eng.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(show), 0o644))
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestEngine_ControlBeforeLoad(t *testing.T) {
	eng, err := marquee.New(marquee.WithGraph(graph()))
	require.NoError(t, err)
	assert.ErrorIs(t, eng.Play(), domain.ErrNotLoaded)
	assert.ErrorIs(t, eng.Seek(10), domain.ErrNotLoaded)
	assert.Equal(t, domain.StatusIdle, eng.Tick(100).Status)
}

func TestOpen_ExampleShow(t *testing.T) {
	eng, err := marquee.Open(filepath.Join("examples", "launch", "show.yaml"))
	require.NoError(t, err)

	g := eng.Graph()
	assert.Equal(t, "Product Launch", g.Title)
	require.Len(t, g.Events, 2)
	assert.Equal(t, "main", g.Events[0].ID)
	assert.True(t, g.Events[1].Loop)
}
