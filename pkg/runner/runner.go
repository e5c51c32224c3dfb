package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/internal/logging"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/session"
	"github.com/google/uuid"
)

// ErrNotRunning is returned by control calls made while Run is not active.
var ErrNotRunning = errors.New("runner is not running")

// subscriberBuffer is the number of events a slow subscriber may lag
// behind before events are dropped for it.
const subscriberBuffer = 64

// Runner ticks an engine in real time and serialises access to it.
type Runner struct {
	engine    *marquee.Engine
	eventID   string
	handler   EventHandler
	sessions  *session.Manager
	sessionID string
	fps       int
	saveEvery time.Duration
	hold      bool
	watch     bool
	logger    *slog.Logger
	now       func() time.Time

	commands chan command

	mu   sync.Mutex
	exit chan struct{} // closed when the active Run returns

	subMu   sync.Mutex
	subs    map[int]chan domain.LifecycleEvent
	nextSub int
}

type command struct {
	apply func(*marquee.Engine) error
	reply chan result
}

type result struct {
	snap domain.Snapshot
	err  error
}

// New creates a runner for engine.
func New(engine *marquee.Engine, opts ...Option) *Runner {
	r := &Runner{
		engine:    engine,
		fps:       DefaultFPS,
		saveEvery: DefaultSaveInterval,
		logger:    logging.NewNop(),
		now:       time.Now,
		commands:  make(chan command),
		subs:      make(map[int]chan domain.LifecycleEvent),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sessionID == "" {
		r.sessionID = uuid.NewString()
	}
	r.logger = r.logger.With("session_id", r.sessionID)
	return r
}

// SessionID identifies this playback in the session store.
func (r *Runner) SessionID() string {
	return r.sessionID
}

// Engine returns the engine being driven. Only touch it while Run is not
// active.
func (r *Runner) Engine() *marquee.Engine {
	return r.engine
}

// Run resumes or starts playback and ticks the engine until the timeline
// completes (or, with WithHold, until ctx is canceled). Cancellation is a
// normal way to end a run: a final snapshot is saved and Run returns nil.
func (r *Runner) Run(ctx context.Context) error {
	exit, err := r.begin()
	if err != nil {
		return err
	}
	defer r.end(exit)

	if err := r.start(ctx); err != nil {
		return err
	}

	var changes <-chan string
	if r.watch {
		changes, err = r.engine.Watch(ctx)
		if err != nil {
			return err
		}
	}

	ticker := time.NewTicker(time.Second / time.Duration(r.fps))
	defer ticker.Stop()

	origin := r.now()
	lastSave := origin
	r.tick(ctx, 0)

	for {
		select {
		case <-ctx.Done():
			r.save(context.WithoutCancel(ctx))
			return nil

		case cmd := <-r.commands:
			err := cmd.apply(r.engine)
			cmd.reply <- result{snap: r.engine.Snapshot(), err: err}
			r.save(ctx)

		case id, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			r.logger.Info("scene graph changed", "document", id)
			if err := r.engine.Reload(ctx); err != nil {
				r.logger.Error("reload failed", "err", err)
			}

		case <-ticker.C:
			now := r.now()
			f := r.tick(ctx, float64(now.Sub(origin))/float64(time.Millisecond))
			if r.saveEvery > 0 && now.Sub(lastSave) >= r.saveEvery {
				r.save(ctx)
				lastSave = now
			}
			if !r.hold && (f.Status == domain.StatusComplete || f.Status == domain.StatusStopped) {
				r.save(ctx)
				return nil
			}
		}
	}
}

func (r *Runner) begin() (chan struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.exit != nil {
		return nil, errors.New("runner is already running")
	}
	r.exit = make(chan struct{})
	return r.exit, nil
}

func (r *Runner) end(exit chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	close(exit)
	r.exit = nil
}

// start restores the stored session or loads a fresh event, then plays.
func (r *Runner) start(ctx context.Context) error {
	if r.sessions != nil {
		snap, found, err := r.sessions.Resume(ctx, r.sessionID)
		if err != nil {
			return err
		}
		if found {
			if err := r.engine.Restore(snap); err != nil {
				return fmt.Errorf("failed to resume session %s: %w", r.sessionID, err)
			}
			r.logger.Info("session resumed", "event", snap.EventID, "clock_ms", snap.ClockMs, "status", snap.Status)
			return r.engine.Play()
		}
	}

	if r.eventID != "" || r.engine.Snapshot().EventID == "" {
		if err := r.engine.Load(r.eventID); err != nil {
			return err
		}
	}
	r.logger.Info("playback started", "event", r.engine.Snapshot().EventID)
	return r.engine.Play()
}

func (r *Runner) tick(ctx context.Context, hostMs float64) domain.Frame {
	f := r.engine.Tick(hostMs)
	for _, ev := range r.engine.Drain(ctx) {
		if r.handler != nil {
			if err := r.handler.HandleEvent(ctx, ev); err != nil {
				r.logger.Warn("event handler failed", "type", ev.Type, "err", err)
			}
		}
		r.broadcast(ev)
	}
	return f
}

func (r *Runner) save(ctx context.Context) {
	if r.sessions == nil {
		return
	}
	if err := r.sessions.Save(ctx, r.sessionID, r.engine.Snapshot()); err != nil {
		r.logger.Warn("snapshot not saved", "err", err)
	}
}

// do queues apply for the loop and waits for its result.
func (r *Runner) do(ctx context.Context, apply func(*marquee.Engine) error) (domain.Snapshot, error) {
	r.mu.Lock()
	exit := r.exit
	r.mu.Unlock()
	if exit == nil {
		return domain.Snapshot{}, ErrNotRunning
	}

	reply := make(chan result, 1)
	select {
	case r.commands <- command{apply: apply, reply: reply}:
	case <-exit:
		return domain.Snapshot{}, ErrNotRunning
	case <-ctx.Done():
		return domain.Snapshot{}, ctx.Err()
	}

	select {
	case res := <-reply:
		return res.snap, res.err
	case <-ctx.Done():
		return domain.Snapshot{}, ctx.Err()
	}
}

// State reports where playback is.
func (r *Runner) State(ctx context.Context) (domain.Snapshot, error) {
	return r.do(ctx, func(*marquee.Engine) error { return nil })
}

// Play starts playback, restarting a complete or stopped timeline.
func (r *Runner) Play(ctx context.Context) (domain.Snapshot, error) {
	return r.do(ctx, (*marquee.Engine).Play)
}

// Pause freezes the timeline.
func (r *Runner) Pause(ctx context.Context) (domain.Snapshot, error) {
	return r.do(ctx, (*marquee.Engine).Pause)
}

// Resume continues a paused timeline.
func (r *Runner) Resume(ctx context.Context) (domain.Snapshot, error) {
	return r.do(ctx, (*marquee.Engine).Resume)
}

// Stop tears every scene down and rewinds.
func (r *Runner) Stop(ctx context.Context) (domain.Snapshot, error) {
	return r.do(ctx, (*marquee.Engine).Stop)
}

// Seek moves the timeline to ms. An out-of-range target still moves the
// clock; the ClockSeekOutOfRangeError is returned with the new snapshot.
func (r *Runner) Seek(ctx context.Context, ms float64) (domain.Snapshot, error) {
	return r.do(ctx, func(e *marquee.Engine) error { return e.Seek(ms) })
}

// Load switches to another event.
func (r *Runner) Load(ctx context.Context, eventID string) (domain.Snapshot, error) {
	return r.do(ctx, func(e *marquee.Engine) error { return e.Load(eventID) })
}

// Graph returns the scene graph being played.
func (r *Runner) Graph(ctx context.Context) (*domain.SceneGraph, error) {
	var g *domain.SceneGraph
	_, err := r.do(ctx, func(e *marquee.Engine) error {
		g = e.Graph()
		return nil
	})
	return g, err
}

// Subscribe registers a listener for lifecycle events. Events are dropped
// for a subscriber that falls too far behind. Call the returned function
// to unsubscribe.
func (r *Runner) Subscribe() (<-chan domain.LifecycleEvent, func()) {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	id := r.nextSub
	r.nextSub++
	ch := make(chan domain.LifecycleEvent, subscriberBuffer)
	r.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.subMu.Lock()
			defer r.subMu.Unlock()
			delete(r.subs, id)
			close(ch)
		})
	}
}

func (r *Runner) broadcast(ev domain.LifecycleEvent) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- ev:
		default:
			r.logger.Debug("subscriber lagging, event dropped", "seq", ev.Seq)
		}
	}
}
