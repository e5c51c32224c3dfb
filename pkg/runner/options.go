package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/marquee/pkg/session"
)

// DefaultFPS is the tick rate used when none is configured.
const DefaultFPS = 60

// DefaultSaveInterval is how often a playing session is snapshotted.
const DefaultSaveInterval = time.Second

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithEvent selects the event to play. Without it the engine's loaded
// event is kept, or the first event of the graph is loaded.
func WithEvent(id string) Option {
	return func(r *Runner) {
		r.eventID = id
	}
}

// WithHandler configures the EventHandler.
func WithHandler(h EventHandler) Option {
	return func(r *Runner) {
		r.handler = h
	}
}

// WithSessions enables snapshot persistence and resume.
func WithSessions(m *session.Manager) Option {
	return func(r *Runner) {
		r.sessions = m
	}
}

// WithSessionID sets the session ID for persistence context.
// A random UUID is used when empty.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.sessionID = id
	}
}

// WithFPS sets the tick rate.
func WithFPS(fps int) Option {
	return func(r *Runner) {
		if fps > 0 {
			r.fps = fps
		}
	}
}

// WithSaveInterval sets how often a playing session is snapshotted.
func WithSaveInterval(d time.Duration) Option {
	return func(r *Runner) {
		r.saveEvery = d
	}
}

// WithHold keeps the loop alive after the timeline completes or is stopped,
// so remote controls can restart it. Run then only returns when its context
// is canceled.
func WithHold(hold bool) Option {
	return func(r *Runner) {
		r.hold = hold
	}
}

// WithWatch reloads the scene graph whenever the engine's loader reports a
// change.
func WithWatch(watch bool) Option {
	return func(r *Runner) {
		r.watch = watch
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}
