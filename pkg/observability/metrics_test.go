package observability_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *observability.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func TestMetrics_ObserveEvent(t *testing.T) {
	m := observability.NewMetrics()
	m.ObserveEvent(domain.LifecycleEvent{Type: domain.EventTransitionStart, Transition: domain.TransitionWipe})
	m.ObserveEvent(domain.LifecycleEvent{Type: domain.EventSceneStart})
	m.ObserveEvent(domain.LifecycleEvent{Type: domain.EventAssetMissing})

	body := scrape(t, m)
	assert.Contains(t, body, `marquee_transitions_total{kind="wipe"} 1`)
	assert.Contains(t, body, `marquee_lifecycle_events_total{type="scene-start"} 1`)
	assert.Contains(t, body, `marquee_contained_errors_total{kind="asset-missing"} 1`)
	assert.NotContains(t, body, `marquee_contained_errors_total{kind="scene-start"}`)
}

func TestMetrics_ObserveTick(t *testing.T) {
	m := observability.NewMetrics()
	m.ObserveTick(time.Millisecond, 1234)
	m.ObserveTick(time.Millisecond, 1250)

	body := scrape(t, m)
	assert.Contains(t, body, "marquee_ticks_total 2")
	assert.Contains(t, body, "marquee_clock_ms 1250")
	assert.Contains(t, body, "marquee_tick_duration_seconds_count 2")
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.ObserveTick(time.Millisecond, 1)
		m.ObserveEvent(domain.LifecycleEvent{Type: domain.EventSceneStart})
		m.ObserveRenderError()
	})
}
