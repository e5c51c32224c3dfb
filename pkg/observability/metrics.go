package observability

import (
	"net/http"
	"time"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the set of playback collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Ticks        prometheus.Counter
	TickDuration prometheus.Histogram
	Clock        prometheus.Gauge
	Events       *prometheus.CounterVec
	Transitions  *prometheus.CounterVec
	Errors       *prometheus.CounterVec
	RenderErrors prometheus.Counter
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marquee_ticks_total",
			Help: "Total number of scheduler ticks",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "marquee_tick_duration_seconds",
			Help:    "Wall time spent computing one frame",
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025},
		}),
		Clock: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "marquee_clock_ms",
			Help: "Current timeline clock in milliseconds",
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marquee_lifecycle_events_total",
			Help: "Lifecycle events by type",
		}, []string{"type"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marquee_transitions_total",
			Help: "Transitions started by kind",
		}, []string{"kind"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marquee_contained_errors_total",
			Help: "Contained playback failures by kind",
		}, []string{"kind"}),
		RenderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marquee_render_errors_total",
			Help: "Layer frames a renderer failed to handle",
		}),
	}
	m.registry.MustRegister(m.Ticks, m.TickDuration, m.Clock, m.Events, m.Transitions, m.Errors, m.RenderErrors)
	return m
}

// Registry is the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveTick records one computed frame.
func (m *Metrics) ObserveTick(d time.Duration, clockMs float64) {
	if m == nil {
		return
	}
	m.Ticks.Inc()
	m.TickDuration.Observe(d.Seconds())
	m.Clock.Set(clockMs)
}

// ObserveEvent records one drained lifecycle event.
func (m *Metrics) ObserveEvent(ev domain.LifecycleEvent) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(string(ev.Type)).Inc()
	if ev.Type == domain.EventTransitionStart {
		m.Transitions.WithLabelValues(string(ev.Transition)).Inc()
	}
	if ev.IsError() {
		m.Errors.WithLabelValues(string(ev.Type)).Inc()
	}
}

// ObserveRenderError counts a failed layer render.
func (m *Metrics) ObserveRenderError() {
	if m == nil {
		return
	}
	m.RenderErrors.Inc()
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
