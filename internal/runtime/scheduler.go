// Package runtime drives an event's timeline. The Scheduler owns the clock,
// decides which scene occupies the stage at every instant and tells the
// lifecycle manager when to activate, blend and destroy instances.
package runtime

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/marquee/internal/lifecycle"
	"github.com/aretw0/marquee/internal/logging"
	"github.com/aretw0/marquee/pkg/domain"
)

// Scheduler is a single-threaded, tick-driven timeline. It never reads wall
// time; the host passes its own clock to Tick.
type Scheduler struct {
	graph  *domain.SceneGraph
	mgr    *lifecycle.Manager
	queue  *Queue
	logger *slog.Logger

	plan    *Plan
	status  domain.PlaybackStatus
	clockMs float64
	// host clock of the previous playing tick
	hostMs   float64
	anchored bool
	// ordinal last entered, -1 before the first slot
	cursor int64
	last   *domain.Frame
}

// Option configures a Scheduler.
type Option func(*schedulerConfig)

type schedulerConfig struct {
	logger    *slog.Logger
	lifecycle []lifecycle.Option
}

// WithLogger sets the logger shared by the scheduler and its manager.
func WithLogger(l *slog.Logger) Option {
	return func(c *schedulerConfig) { c.logger = l }
}

// WithLifecycle passes options to the lifecycle manager.
func WithLifecycle(opts ...lifecycle.Option) Option {
	return func(c *schedulerConfig) { c.lifecycle = append(c.lifecycle, opts...) }
}

// NewScheduler creates a scheduler for graph. Nothing plays until Load and Play.
func NewScheduler(graph *domain.SceneGraph, opts ...Option) *Scheduler {
	cfg := schedulerConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Scheduler{
		graph:  graph,
		queue:  NewQueue(),
		logger: cfg.logger,
		status: domain.StatusIdle,
		cursor: -1,
	}
	mopts := append([]lifecycle.Option{lifecycle.WithLogger(cfg.logger)}, cfg.lifecycle...)
	s.mgr = lifecycle.NewManager(s.queue.Push, mopts...)
	return s
}

// Manager exposes the lifecycle manager, mostly for inspection in tests.
func (s *Scheduler) Manager() *lifecycle.Manager { return s.mgr }

// Plan is the layout of the loaded event, or nil.
func (s *Scheduler) Plan() *Plan { return s.plan }

// Status is the current play state.
func (s *Scheduler) Status() domain.PlaybackStatus { return s.status }

// ClockMs is the timeline clock.
func (s *Scheduler) ClockMs() float64 { return s.clockMs }

// Load prepares eventID for playback, tearing down anything already
// mounted. An empty id selects the first event of the graph.
func (s *Scheduler) Load(eventID string) error {
	if eventID == "" && len(s.graph.Events) > 0 {
		eventID = s.graph.Events[0].ID
	}
	ev, err := s.graph.Event(eventID)
	if err != nil {
		return fmt.Errorf("load %q: %w", eventID, err)
	}
	plan, err := BuildPlan(s.graph, ev)
	if err != nil {
		return err
	}

	if s.plan != nil {
		s.mgr.TearDown(s.clockMs, domain.ReasonStop)
	}
	s.plan = plan
	s.reset(domain.StatusIdle)
	s.logger.Debug("event loaded", "event", ev.ID, "scenes", len(plan.Slots), "duration_ms", plan.TotalMs, "loop", ev.Loop)
	return nil
}

// Play starts playback. A complete or stopped timeline restarts from zero;
// a paused one resumes.
func (s *Scheduler) Play() error {
	if s.plan == nil {
		return domain.ErrNotLoaded
	}
	switch s.status {
	case domain.StatusPlaying:
		return nil
	case domain.StatusComplete, domain.StatusStopped:
		s.mgr.TearDown(s.clockMs, domain.ReasonStop)
		s.reset(domain.StatusPlaying)
	default:
		s.status = domain.StatusPlaying
		s.anchored = false
	}
	s.logger.Debug("play", "event", s.plan.Event.ID, "clock_ms", s.clockMs)
	return nil
}

// Pause freezes the clock and holds audio. Mounted instances stay as they are.
func (s *Scheduler) Pause() error {
	if s.plan == nil {
		return domain.ErrNotLoaded
	}
	if s.status == domain.StatusPlaying {
		s.status = domain.StatusPaused
		s.anchored = false
		s.mgr.Suspend()
	}
	return nil
}

// Resume continues a paused timeline. The time spent paused is skipped and
// audio picks up again on the next tick.
func (s *Scheduler) Resume() error {
	if s.plan == nil {
		return domain.ErrNotLoaded
	}
	if s.status == domain.StatusPaused {
		s.status = domain.StatusPlaying
		s.anchored = false
	}
	return nil
}

// Stop tears everything down and rewinds the clock.
func (s *Scheduler) Stop() error {
	if s.plan == nil {
		return domain.ErrNotLoaded
	}
	s.mgr.TearDown(s.clockMs, domain.ReasonStop)
	s.reset(domain.StatusStopped)
	return nil
}

// Seek moves the clock to ms and rebuilds the stage as if playback had
// reached it naturally. A target past the end of a non-looping timeline
// completes it and returns a ClockSeekOutOfRangeError; a negative target
// is clamped to zero and also reported.
func (s *Scheduler) Seek(ms float64) error {
	if s.plan == nil {
		return domain.ErrNotLoaded
	}
	s.mgr.TearDown(s.clockMs, domain.ReasonSeek)
	s.last = nil

	var rangeErr error
	switch {
	case ms < 0:
		rangeErr = &domain.ClockSeekOutOfRangeError{RequestedMs: ms, ClampedMs: 0, DurationMs: s.plan.TotalMs}
		ms = 0
	case !s.plan.Loop() && ms > s.plan.TotalMs:
		rangeErr = &domain.ClockSeekOutOfRangeError{RequestedMs: ms, ClampedMs: s.plan.TotalMs, DurationMs: s.plan.TotalMs}
		ms = s.plan.TotalMs
	}
	if rangeErr != nil {
		s.logger.Warn("seek out of range", "event", s.plan.Event.ID, "err", rangeErr)
	}

	s.clockMs = ms
	ord := s.plan.OrdinalAt(ms)
	if ord >= int64(len(s.plan.Slots)) && !s.plan.Loop() {
		s.finish()
		return rangeErr
	}

	switch s.status {
	case domain.StatusIdle, domain.StatusStopped, domain.StatusComplete:
		s.status = domain.StatusPaused
	}
	if s.status == domain.StatusPaused {
		s.mgr.Suspend()
	}

	start := s.plan.StartOf(ord)
	scene := s.plan.slot(ord).Scene
	if spec := s.plan.SpecInto(ord); spec != nil && ms < start+spec.DurationMs {
		prev := ord - 1
		_, _ = s.mgr.Activate(s.plan.slot(prev).Scene, prev, s.plan.StartOf(prev), ms)
		_, _ = s.mgr.BeginTransition(scene, ord, start, *spec, ms)
	} else {
		_, _ = s.mgr.Activate(scene, ord, start, ms)
	}
	s.cursor = ord
	s.prefetchAfter(ord)
	s.mgr.UpdateCameras(ms)
	s.mgr.AdvanceTransition(ms)
	return rangeErr
}

// Replace swaps in a reloaded graph and rebuilds the loaded event on it at
// the current clock. The session carries on: instance ids keep counting and
// the event queue keeps its order. If the event no longer exists the
// scheduler is left unloaded.
func (s *Scheduler) Replace(graph *domain.SceneGraph) error {
	if s.plan == nil {
		s.graph = graph
		return nil
	}
	id := s.plan.Event.ID
	s.mgr.TearDown(s.clockMs, domain.ReasonReload)
	s.graph = graph

	ev, err := graph.Event(id)
	var plan *Plan
	if err == nil {
		plan, err = BuildPlan(graph, ev)
	}
	if err != nil {
		s.plan = nil
		s.reset(domain.StatusIdle)
		return fmt.Errorf("replace %q: %w", id, err)
	}
	s.plan = plan

	status, clock := s.status, s.clockMs
	switch status {
	case domain.StatusIdle, domain.StatusStopped:
		s.reset(status)
		return nil
	}
	err = s.Seek(clock)
	var rangeErr *domain.ClockSeekOutOfRangeError
	if err != nil && !errors.As(err, &rangeErr) {
		return err
	}
	s.anchored = false
	s.logger.Debug("graph replaced", "event", id, "clock_ms", s.clockMs, "status", s.status)
	return nil
}

// Tick advances the clock by the host delta while playing, brings the stage
// in line with it and returns the frame to render. Once the timeline is
// complete every further Tick returns the same frame.
func (s *Scheduler) Tick(hostNowMs float64) domain.Frame {
	if s.plan == nil {
		return domain.Frame{Status: s.status, Camera: domain.IdentityCamera()}
	}
	if s.status == domain.StatusComplete && s.last != nil {
		return *s.last
	}

	if s.status == domain.StatusPlaying {
		if !s.anchored {
			s.mgr.Unsuspend()
		}
		if s.anchored && hostNowMs > s.hostMs {
			s.clockMs += hostNowMs - s.hostMs
		}
		s.hostMs, s.anchored = hostNowMs, true
		s.step()
	}

	f := s.frame()
	if s.status == domain.StatusComplete {
		last := f
		last.Unmounted = nil
		s.last = &last
	}
	return f
}

// Drain returns the lifecycle events queued since the previous call.
func (s *Scheduler) Drain() []domain.LifecycleEvent {
	return s.queue.Drain()
}

// Snapshot reports where playback is.
func (s *Scheduler) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{Status: s.status, ClockMs: s.clockMs}
	if s.plan == nil {
		return snap
	}
	snap.EventID = s.plan.Event.ID
	snap.DurationMs = s.plan.TotalMs
	snap.Loop = s.plan.Loop()
	for _, inst := range s.mgr.Instances() {
		snap.Scenes = append(snap.Scenes, inst.Summary())
	}
	snap.Transition = s.mgr.TransitionFrame()
	return snap
}

func (s *Scheduler) reset(status domain.PlaybackStatus) {
	s.status = status
	s.clockMs = 0
	s.cursor = -1
	s.anchored = false
	s.last = nil
}

func (s *Scheduler) step() {
	s.reconcile()
	if s.status == domain.StatusComplete {
		return
	}
	s.mgr.Poll(s.clockMs)
	s.mgr.UpdateCameras(s.clockMs)
	s.mgr.AdvanceTransition(s.clockMs)
}

// reconcile replays every threshold crossed since the previous tick in clock
// order, each at its own time, so a long tick yields the same events as many
// short ones.
func (s *Scheduler) reconcile() {
	n := int64(len(s.plan.Slots))
	for {
		if tr := s.mgr.Transition(); tr != nil && tr.EndMs() <= s.clockMs {
			s.mgr.AdvanceTransition(tr.EndMs())
		}
		if s.cursor >= s.plan.OrdinalAt(s.clockMs) {
			return
		}
		next := s.cursor + 1
		if next >= n && !s.plan.Loop() {
			s.finish()
			return
		}
		s.enter(next, s.plan.StartOf(next))
		s.cursor = next
	}
}

// enter puts ordinal ord on stage at atMs, blending from the previous
// ordinal when a transition is defined and cutting otherwise.
func (s *Scheduler) enter(ord int64, atMs float64) {
	scene := s.plan.slot(ord).Scene
	cur := s.mgr.Current()
	spec := s.plan.SpecInto(ord)

	if spec != nil && cur != nil && cur.Slot == ord-1 {
		_, err := s.mgr.BeginTransition(scene, ord, atMs, *spec, atMs)
		var cfg *domain.ConfigurationError
		if errors.As(err, &cfg) {
			// the failed slot stays blank
			s.mgr.Destroy(cur, atMs, domain.ReasonCompleted)
		}
	} else {
		if cur != nil {
			s.mgr.Destroy(cur, atMs, domain.ReasonCompleted)
		}
		_, _ = s.mgr.Activate(scene, ord, atMs, atMs)
	}
	s.prefetchAfter(ord)
}

func (s *Scheduler) prefetchAfter(ord int64) {
	next := ord + 1
	if next >= int64(len(s.plan.Slots)) && !s.plan.Loop() {
		return
	}
	s.mgr.Prefetch(s.plan.slot(next).Scene)
}

func (s *Scheduler) finish() {
	end := s.plan.TotalMs
	if tr := s.mgr.Transition(); tr != nil {
		s.mgr.AdvanceTransition(tr.EndMs())
	}
	s.mgr.Destroy(s.mgr.Current(), end, domain.ReasonCompleted)
	s.mgr.TearDown(end, domain.ReasonCompleted)

	s.clockMs = end
	s.cursor = int64(len(s.plan.Slots))
	s.status = domain.StatusComplete
	s.queue.Push(domain.LifecycleEvent{Type: domain.EventTimelineComplete, ClockMs: end})
	s.logger.Info("timeline complete", "event", s.plan.Event.ID, "clock_ms", end)
}

func (s *Scheduler) frame() domain.Frame {
	scenes, unmounted := s.mgr.Render(s.clockMs)
	f := domain.Frame{
		ClockMs:    s.clockMs,
		Status:     s.status,
		EventID:    s.plan.Event.ID,
		Camera:     domain.IdentityCamera(),
		Scenes:     scenes,
		Transition: s.mgr.TransitionFrame(),
		Unmounted:  unmounted,
	}
	if cur := s.mgr.Current(); cur != nil {
		f.Camera = cur.Camera.Transform()
	}
	return f
}
