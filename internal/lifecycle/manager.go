// Package lifecycle owns scene instances: it creates their containers,
// mounts their layers, starts their audio, runs the transition between two
// of them and tears everything down again, emitting a lifecycle event for
// every step.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/aretw0/marquee/internal/camera"
	"github.com/aretw0/marquee/internal/logging"
	"github.com/aretw0/marquee/internal/transition"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/aretw0/marquee/pkg/schema"
)

// Defaults for the contained-failure policies.
const (
	DefaultAssetTimeoutMs   = 3000.0
	DefaultDriftToleranceMs = 250.0
)

// Emitter receives lifecycle events in emission order.
type Emitter func(domain.LifecycleEvent)

// Manager is the arena of scene instances. At most one instance holds the
// current role (active or transitioning-in) and at most one is
// transitioning out.
type Manager struct {
	ctx     context.Context
	surface ports.Surface
	audio   ports.AudioSink
	assets  ports.AssetLoader
	logger  *slog.Logger
	emit    Emitter

	assetTimeoutMs   float64
	driftToleranceMs float64

	nextID    uint64
	instances map[uint64]*Instance
	current   *Instance
	outgoing  *Instance
	running   *transition.Transition
	styles    transition.Styles
	unmounted []domain.LayerFrame
	// audio is held while the clock is not running
	suspended bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithSurface sets the container surface.
func WithSurface(s ports.Surface) Option {
	return func(m *Manager) { m.surface = s }
}

// WithAudioSink sets the audio output.
func WithAudioSink(a ports.AudioSink) Option {
	return func(m *Manager) { m.audio = a }
}

// WithAssetLoader sets the asset loader polled for readiness.
func WithAssetLoader(a ports.AssetLoader) Option {
	return func(m *Manager) { m.assets = a }
}

// WithLogger sets the logger for contained failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithAssetTimeout bounds how long a layer may wait for its asset.
func WithAssetTimeout(ms float64) Option {
	return func(m *Manager) { m.assetTimeoutMs = ms }
}

// WithDriftTolerance sets how far audio may lag or lead before it is reported.
func WithDriftTolerance(ms float64) Option {
	return func(m *Manager) { m.driftToleranceMs = ms }
}

// WithContext sets the context handed to asset prefetches.
func WithContext(ctx context.Context) Option {
	return func(m *Manager) { m.ctx = ctx }
}

// NewManager creates an empty arena. Events are passed to emit.
func NewManager(emit Emitter, opts ...Option) *Manager {
	m := &Manager{
		ctx:              context.Background(),
		surface:          &nopSurface{},
		audio:            nopAudio{},
		assets:           nopAssets{},
		logger:           logging.NewNop(),
		emit:             emit,
		assetTimeoutMs:   DefaultAssetTimeoutMs,
		driftToleranceMs: DefaultDriftToleranceMs,
		instances:        make(map[uint64]*Instance),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.emit == nil {
		m.emit = func(domain.LifecycleEvent) {}
	}
	return m
}

// Current is the instance holding the current role, or nil.
func (m *Manager) Current() *Instance { return m.current }

// Outgoing is the instance transitioning out, or nil.
func (m *Manager) Outgoing() *Instance { return m.outgoing }

// Transition is the running transition, or nil.
func (m *Manager) Transition() *transition.Transition { return m.running }

// Instances returns every live instance ordered by id.
func (m *Manager) Instances() []*Instance {
	out := make([]*Instance, 0, len(m.instances))
	for _, inst := range m.instances {
		out = append(out, inst)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// Prefetch asks the asset loader to start loading the assets of scene.
func (m *Manager) Prefetch(scene *domain.Scene) {
	if srcs := scene.Assets(); len(srcs) > 0 {
		m.assets.Prefetch(m.ctx, srcs)
	}
}

// Activate instantiates scene directly into the active state with its own
// primary container. An invalid scene is reported as a ConfigurationError
// and skipped.
func (m *Manager) Activate(scene *domain.Scene, slot int64, startMs, nowMs float64) (*Instance, error) {
	if m.current != nil {
		return nil, fmt.Errorf("activate %s: instance %d still holds the current role", scene.ID, m.current.ID)
	}
	inst, err := m.instantiate(scene, slot, startMs, nowMs)
	if err != nil {
		return nil, err
	}

	c, err := m.surface.CreateContainer(scene.ID, inst.ID, domain.RolePrimary)
	if err != nil {
		return nil, m.reject(scene, nowMs, fmt.Errorf("create container: %w", err))
	}
	inst.primary = &c
	m.instances[inst.ID] = inst
	m.current = inst

	m.mountReady(inst, nowMs)
	inst.Phase = domain.PhaseActive
	m.logger.Debug("scene active", "scene", scene.ID, "instance", inst.ID, "clock_ms", nowMs)
	m.emit(domain.LifecycleEvent{Type: domain.EventSceneStart, ClockMs: nowMs, SceneID: scene.ID, InstanceID: inst.ID})
	return inst, nil
}

// BeginTransition blends the current instance into a new instance of next.
// Without a current instance it falls back to Activate. A request made
// while a transition is running is dropped with a TransitionConflictError.
func (m *Manager) BeginTransition(next *domain.Scene, slot int64, startMs float64, spec transition.Spec, nowMs float64) (*Instance, error) {
	out := m.current
	if out == nil {
		return m.Activate(next, slot, startMs, nowMs)
	}
	if m.running != nil {
		err := &domain.TransitionConflictError{SceneID: out.Scene.ID, InstanceID: out.ID, Requested: spec.Kind, Running: m.running.Kind()}
		m.logger.Warn("transition dropped", "scene", out.Scene.ID, "instance", out.ID, "err", err)
		m.emit(domain.LifecycleEvent{
			Type: domain.EventTransitionConflict, ClockMs: nowMs, SceneID: out.Scene.ID, InstanceID: out.ID,
			From: out.Scene.ID, To: next.ID, Transition: spec.Kind, Error: err.Error(),
		})
		return nil, err
	}

	in, err := m.instantiate(next, slot, startMs, nowMs)
	if err != nil {
		return nil, err
	}
	tr := transition.Begin(spec, startMs)
	initial := tr.Initial()

	outC, err := m.surface.CreateContainer(out.Scene.ID, out.ID, domain.RoleOutgoing)
	if err != nil {
		return nil, m.reject(next, nowMs, fmt.Errorf("create outgoing container: %w", err))
	}
	inC, err := m.surface.CreateContainer(next.ID, in.ID, domain.RoleIncoming)
	if err != nil {
		m.destroyContainer(outC)
		return nil, m.reject(next, nowMs, fmt.Errorf("create incoming container: %w", err))
	}

	m.applyStyle(outC, initial.Out)
	if out.primary != nil {
		if err := m.surface.MoveLayers(*out.primary, outC); err != nil {
			m.logger.Warn("move outgoing layers", "scene", out.Scene.ID, "instance", out.ID, "err", err)
		}
	}
	out.transitional = &outC
	out.Phase = domain.PhaseTransitioningOut

	m.applyStyle(inC, initial.In)
	in.transitional = &inC
	m.instances[in.ID] = in
	m.mountReady(in, nowMs)
	in.Phase = domain.PhaseTransitioningIn

	m.outgoing, m.current = out, in
	m.running = tr
	m.styles = initial

	m.logger.Debug("transition start", "from", out.Scene.ID, "to", next.ID, "kind", spec.Kind, "duration_ms", spec.DurationMs)
	m.emit(domain.LifecycleEvent{
		Type: domain.EventTransitionStart, ClockMs: nowMs, SceneID: next.ID, InstanceID: in.ID,
		From: out.Scene.ID, To: next.ID, Transition: spec.Kind,
	})
	m.emit(domain.LifecycleEvent{Type: domain.EventSceneStart, ClockMs: nowMs, SceneID: next.ID, InstanceID: in.ID})
	return in, nil
}

// AdvanceTransition applies the running transition's styles at nowMs and,
// once it completes, promotes the incoming instance and destroys the
// outgoing one.
func (m *Manager) AdvanceTransition(nowMs float64) {
	if m.running == nil {
		return
	}
	styles, changed := m.running.Advance(nowMs)
	if changed {
		m.styles = styles
		if m.outgoing != nil && m.outgoing.transitional != nil {
			m.applyStyle(*m.outgoing.transitional, styles.Out)
		}
		if m.current != nil && m.current.transitional != nil {
			m.applyStyle(*m.current.transitional, styles.In)
		}
		m.duck(m.outgoing, 1-m.running.Eased())
	}
	if m.running.Complete() {
		m.complete(nowMs)
	}
}

func (m *Manager) complete(nowMs float64) {
	in, out, tr := m.current, m.outgoing, m.running

	// the incoming scene is fully in place before anything is destroyed
	if in != nil && in.transitional != nil {
		c, err := m.surface.CreateContainer(in.Scene.ID, in.ID, domain.RolePrimary)
		if err != nil {
			m.logger.Warn("create primary container", "scene", in.Scene.ID, "instance", in.ID, "err", err)
		} else {
			if err := m.surface.MoveLayers(*in.transitional, c); err != nil {
				m.logger.Warn("move incoming layers", "scene", in.Scene.ID, "instance", in.ID, "err", err)
			}
			m.applyStyle(c, domain.IdentityStyle())
			m.destroyContainer(*in.transitional)
			in.primary, in.transitional = &c, nil
		}
		in.Phase = domain.PhaseActive
	}

	m.running = nil
	m.styles = transition.Styles{}
	ev := domain.LifecycleEvent{Type: domain.EventTransitionEnd, ClockMs: nowMs, Transition: tr.Kind(), Reason: domain.ReasonCompleted}
	if in != nil {
		ev.SceneID, ev.InstanceID, ev.To = in.Scene.ID, in.ID, in.Scene.ID
	}
	if out != nil {
		ev.From = out.Scene.ID
	}
	m.emit(ev)

	if out != nil {
		m.Destroy(out, nowMs, domain.ReasonTransition)
	}
}

// Destroy tears an instance down: layers are unmounted, audio stopped with
// its fade-out and containers released.
func (m *Manager) Destroy(inst *Instance, nowMs float64, reason string) {
	if inst == nil || inst.Phase == domain.PhaseDestroyed {
		return
	}

	c, hasContainer := inst.Container()
	local := inst.LocalMs(nowMs)
	for _, l := range inst.layers {
		if !l.mounted {
			continue
		}
		if hasContainer {
			if err := m.surface.UnmountLayer(c, l.def.ID); err != nil {
				m.logger.Warn("unmount layer", "scene", inst.Scene.ID, "layer", l.def.ID, "err", err)
			}
		}
		m.unmounted = append(m.unmounted, m.layerFrame(inst, l, c, domain.SignalUnmount, domain.IdentityStyle(), local))
		l.mounted = false
	}

	for _, t := range inst.tracks {
		if !t.started {
			continue
		}
		if err := m.audio.Stop(t.handle, t.def.FadeOutMs); err != nil {
			m.logger.Warn("stop audio", "scene", inst.Scene.ID, "track", t.def.ID, "err", err)
		}
		t.started = false
	}

	if inst.transitional != nil {
		m.destroyContainer(*inst.transitional)
		inst.transitional = nil
	}
	if inst.primary != nil {
		m.destroyContainer(*inst.primary)
		inst.primary = nil
	}

	inst.Phase = domain.PhaseDestroyed
	delete(m.instances, inst.ID)
	if m.current == inst {
		m.current = nil
	}
	if m.outgoing == inst {
		m.outgoing = nil
	}

	m.logger.Debug("scene destroyed", "scene", inst.Scene.ID, "instance", inst.ID, "reason", reason)
	m.emit(domain.LifecycleEvent{Type: domain.EventSceneEnd, ClockMs: nowMs, SceneID: inst.Scene.ID, InstanceID: inst.ID, Reason: reason})
}

// TearDown cancels the running transition and destroys every live instance.
func (m *Manager) TearDown(nowMs float64, reason string) {
	if m.running != nil {
		ev := domain.LifecycleEvent{Type: domain.EventTransitionEnd, ClockMs: nowMs, Transition: m.running.Kind(), Reason: reason}
		if m.outgoing != nil {
			ev.From = m.outgoing.Scene.ID
		}
		if m.current != nil {
			ev.SceneID, ev.InstanceID, ev.To = m.current.Scene.ID, m.current.ID, m.current.Scene.ID
		}
		m.running = nil
		m.styles = transition.Styles{}
		m.emit(ev)
	}
	m.Destroy(m.outgoing, nowMs, reason)
	m.Destroy(m.current, nowMs, reason)
	for _, inst := range m.Instances() {
		m.Destroy(inst, nowMs, reason)
	}
}

// UpdateCameras commits the camera transform of every live instance at nowMs.
func (m *Manager) UpdateCameras(nowMs float64) {
	for _, inst := range m.Instances() {
		if _, err := inst.Camera.Update(inst.LocalMs(nowMs)); err != nil {
			m.logger.Warn("camera update", "scene", inst.Scene.ID, "instance", inst.ID, "err", err)
		}
	}
}

func (m *Manager) instantiate(scene *domain.Scene, slot int64, startMs, nowMs float64) (*Instance, error) {
	if scene == nil {
		return nil, m.reject(&domain.Scene{}, nowMs, errors.New("scene is nil"))
	}
	if err := schema.ValidateScene(scene); err != nil {
		return nil, m.reject(scene, nowMs, err)
	}

	m.nextID++
	inst := &Instance{
		ID:          m.nextID,
		Scene:       scene,
		Slot:        slot,
		StartMs:     startMs,
		Phase:       domain.PhasePending,
		Camera:      camera.New(scene.Camera),
		activatedMs: nowMs,
	}
	for _, l := range scene.Layers {
		inst.layers = append(inst.layers, &layerState{def: l, props: l.BaseProps()})
	}
	for _, t := range scene.Audio {
		inst.tracks = append(inst.tracks, &trackState{def: t, handle: trackHandle(inst, t.ID)})
	}
	m.Prefetch(scene)
	return inst, nil
}

// reject reports a scene that cannot be instantiated.
func (m *Manager) reject(scene *domain.Scene, nowMs float64, cause error) error {
	err := &domain.ConfigurationError{SceneID: scene.ID, Err: cause}
	m.logger.Error("scene skipped", "scene", scene.ID, "err", err)
	m.emit(domain.LifecycleEvent{Type: domain.EventSceneError, ClockMs: nowMs, SceneID: scene.ID, Error: err.Error()})
	return err
}

func (m *Manager) applyStyle(c domain.Container, s domain.Style) {
	if err := m.surface.ApplyStyle(c, s); err != nil {
		m.logger.Warn("apply style", "container", c.ID, "err", err)
	}
}

func (m *Manager) destroyContainer(c domain.Container) {
	if err := m.surface.DestroyContainer(c); err != nil {
		m.logger.Warn("destroy container", "container", c.ID, "err", err)
	}
}
