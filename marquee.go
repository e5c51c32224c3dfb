package marquee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/marquee/internal/lifecycle"
	"github.com/aretw0/marquee/internal/logging"
	"github.com/aretw0/marquee/internal/runtime"
	loamAdapter "github.com/aretw0/marquee/pkg/adapters/loam"
	"github.com/aretw0/marquee/pkg/adapters/yamlfile"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/observability"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/aretw0/marquee/pkg/registry"
	"github.com/aretw0/marquee/pkg/schema"
)

// Engine is the high-level entry point for the Marquee library.
// It wraps the timeline scheduler, dispatches layer frames to renderers and
// routes lifecycle events to hooks and metrics.
//
// An Engine is not safe for concurrent use; package runner serialises
// access for hosts that control playback from several goroutines.
type Engine struct {
	graph     *domain.SceneGraph
	loader    ports.GraphLoader
	sched     *runtime.Scheduler
	renderers *registry.Registry
	hooks     domain.LifecycleHooks
	metrics   *observability.Metrics
	logger    *slog.Logger
	lifecycle []lifecycle.Option
	Name      string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithGraph plays an in-memory scene graph.
func WithGraph(g *domain.SceneGraph) Option {
	return func(e *Engine) {
		e.graph = g
	}
}

// WithLoader injects a custom GraphLoader. It is also what Reload and
// Watch use.
func WithLoader(l ports.GraphLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithName labels the engine in logs and snapshots.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSurface sets the surface scene containers are created on.
func WithSurface(s ports.Surface) Option {
	return func(e *Engine) {
		e.lifecycle = append(e.lifecycle, lifecycle.WithSurface(s))
	}
}

// WithAudioSink sets the audio output.
func WithAudioSink(a ports.AudioSink) Option {
	return func(e *Engine) {
		e.lifecycle = append(e.lifecycle, lifecycle.WithAudioSink(a))
	}
}

// WithAssetLoader sets the loader polled for asset readiness.
func WithAssetLoader(a ports.AssetLoader) Option {
	return func(e *Engine) {
		e.lifecycle = append(e.lifecycle, lifecycle.WithAssetLoader(a))
	}
}

// WithRenderer registers a renderer for one layer kind.
func WithRenderer(kind string, r ports.LayerRenderer) Option {
	return func(e *Engine) {
		e.renderers.Register(kind, r)
	}
}

// WithFallbackRenderer handles every layer kind without its own renderer.
func WithFallbackRenderer(r ports.LayerRenderer) Option {
	return func(e *Engine) {
		e.renderers.SetFallback(r)
	}
}

// WithLifecycleHooks registers observability hooks. They run inside Drain.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithAssetTimeout sets how long a layer may wait for its asset before the
// scene goes on without it.
func WithAssetTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.lifecycle = append(e.lifecycle, lifecycle.WithAssetTimeout(float64(d.Milliseconds())))
	}
}

// WithAudioDriftTolerance sets how far audio may drift from the timeline
// before an audio-drift event is raised.
func WithAudioDriftTolerance(d time.Duration) Option {
	return func(e *Engine) {
		e.lifecycle = append(e.lifecycle, lifecycle.WithDriftTolerance(float64(d.Milliseconds())))
	}
}

// WithMetrics records playback metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New initializes an engine from WithGraph or WithLoader.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{renderers: registry.NewRegistry()}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.graph == nil {
		if eng.loader == nil {
			return nil, errors.New("no scene graph: use WithGraph, WithLoader or Open")
		}
		g, err := eng.loader.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to load scene graph: %w", err)
		}
		eng.graph = g
	}
	if err := schema.ValidateGraph(eng.graph); err != nil {
		return nil, fmt.Errorf("invalid scene graph: %w", err)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("show", eng.Name)
	}
	eng.sched = eng.newScheduler(eng.graph)
	return eng, nil
}

// Open initializes an engine from a YAML scene graph file or a Loam project
// directory.
func Open(path string, opts ...Option) (*Engine, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}

	var loader ports.GraphLoader
	if info.IsDir() {
		l, err := loamAdapter.Open(absPath)
		if err != nil {
			return nil, err
		}
		loader = l
	} else {
		loader = yamlfile.New(absPath)
	}

	name := filepath.Base(absPath)
	base := []Option{WithLoader(loader), WithName(name[:len(name)-len(filepath.Ext(name))])}
	return New(append(base, opts...)...)
}

func (e *Engine) newScheduler(g *domain.SceneGraph) *runtime.Scheduler {
	return runtime.NewScheduler(g,
		runtime.WithLogger(e.logger),
		runtime.WithLifecycle(e.lifecycle...),
	)
}

// Graph returns the scene graph being played.
func (e *Engine) Graph() *domain.SceneGraph {
	return e.graph
}

// Loader returns the GraphLoader, or nil for engines built WithGraph.
func (e *Engine) Loader() ports.GraphLoader {
	return e.loader
}

// Metrics returns the metrics the engine records into, or nil.
func (e *Engine) Metrics() *observability.Metrics {
	return e.metrics
}

// Load prepares an event for playback. An empty id selects the first event.
func (e *Engine) Load(eventID string) error {
	return e.sched.Load(eventID)
}

// Play starts or resumes playback.
func (e *Engine) Play() error { return e.sched.Play() }

// Pause freezes the timeline clock.
func (e *Engine) Pause() error { return e.sched.Pause() }

// Resume continues after Pause.
func (e *Engine) Resume() error { return e.sched.Resume() }

// Stop tears down every scene and rewinds to zero.
func (e *Engine) Stop() error { return e.sched.Stop() }

// Seek jumps to ms on the timeline. See runtime.Scheduler.Seek.
func (e *Engine) Seek(ms float64) error { return e.sched.Seek(ms) }

// Status is the current play state.
func (e *Engine) Status() domain.PlaybackStatus { return e.sched.Status() }

// Tick advances playback to the host time hostNowMs, hands every layer
// frame to its renderer and returns the full frame.
func (e *Engine) Tick(hostNowMs float64) domain.Frame {
	start := time.Now()
	f := e.sched.Tick(hostNowMs)
	e.dispatch(f)
	e.metrics.ObserveTick(time.Since(start), f.ClockMs)
	return f
}

func (e *Engine) dispatch(f domain.Frame) {
	if e.renderers.Empty() {
		return
	}
	render := func(lf domain.LayerFrame) {
		if err := e.renderers.Render(lf); err != nil {
			e.metrics.ObserveRenderError()
			e.logger.Debug("render layer", "scene", lf.SceneID, "layer", lf.LayerID, "kind", lf.Kind, "err", err)
		}
	}
	for _, lf := range f.Unmounted {
		render(lf)
	}
	for _, sf := range f.Scenes {
		for _, lf := range sf.Layers {
			render(lf)
		}
	}
}

// Drain empties the lifecycle event queue, running the hooks for every
// event in emission order, and returns the events.
func (e *Engine) Drain(ctx context.Context) []domain.LifecycleEvent {
	evs := e.sched.Drain()
	for _, ev := range evs {
		e.metrics.ObserveEvent(ev)
		e.hooks.Dispatch(ctx, ev)
	}
	return evs
}

// Snapshot reports where playback is.
func (e *Engine) Snapshot() domain.Snapshot {
	return e.sched.Snapshot()
}

// Restore loads snap's event and rebuilds the stage at its clock, leaving
// playback in the recorded status.
func (e *Engine) Restore(snap domain.Snapshot) error {
	if err := e.sched.Load(snap.EventID); err != nil {
		return err
	}
	switch snap.Status {
	case domain.StatusIdle:
		return nil
	case domain.StatusStopped:
		return e.sched.Stop()
	}

	err := e.sched.Seek(snap.ClockMs)
	var rangeErr *domain.ClockSeekOutOfRangeError
	if err != nil && !errors.As(err, &rangeErr) {
		return err
	}
	if snap.Status == domain.StatusPlaying {
		return e.sched.Play()
	}
	return nil
}

// Reload reads the scene graph again from the loader and rebuilds the
// current playback position on it. Mounted scenes end with reason "reload".
func (e *Engine) Reload(ctx context.Context) error {
	if e.loader == nil {
		return errors.New("engine has no loader to reload from")
	}
	g, err := e.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload scene graph: %w", err)
	}
	if err := schema.ValidateGraph(g); err != nil {
		return fmt.Errorf("invalid scene graph: %w", err)
	}

	e.graph = g
	if err := e.sched.Replace(g); err != nil {
		e.logger.Warn("playback not restored after reload", "err", err)
		return err
	}
	snap := e.sched.Snapshot()
	e.logger.Info("scene graph reloaded", "event", snap.EventID, "clock_ms", snap.ClockMs)
	return nil
}

// Watch returns a channel that signals when the underlying graph changes.
// Returns error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}
