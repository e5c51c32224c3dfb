package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/internal/presentation/tui"
	"github.com/aretw0/marquee/pkg/runner"
	"github.com/aretw0/marquee/pkg/session"
)

// Play runs a show in real time, printing lifecycle events to stdout, until
// the timeline completes or ctx is cancelled.
func Play(ctx context.Context, opts Options, stdout io.Writer) error {
	logger, err := createLogger(opts)
	if err != nil {
		return err
	}
	eng, err := createEngine(opts, logger, nil)
	if err != nil {
		return err
	}
	sessions, closeSessions, err := openSessions(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer closeSessions()

	var handler runner.EventHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(stdout)
	} else {
		profile := colorProfile(stdout)
		if !opts.Quiet && isTerminal(stdout) {
			tui.PrintBanner(stdout, profile, marquee.Version)
		}
		handler = runner.NewTextHandler(stdout, runner.WithColorProfile(profile))
	}

	r := runner.New(eng, runnerOptions(opts, logger, sessions, handler)...)
	return r.Run(ctx)
}

func runnerOptions(opts Options, logger *slog.Logger, sessions *session.Manager, handler runner.EventHandler) []runner.Option {
	sessionID := opts.SessionID
	if sessionID == "" && opts.Watch {
		sessionID = watchSessionID(opts.Path)
	}

	runOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithFPS(opts.FPS),
		runner.WithHold(opts.Hold || opts.Watch),
		runner.WithWatch(opts.Watch),
	}
	if handler != nil {
		runOpts = append(runOpts, runner.WithHandler(handler))
	}
	if opts.EventID != "" {
		runOpts = append(runOpts, runner.WithEvent(opts.EventID))
	}
	if sessions != nil {
		runOpts = append(runOpts, runner.WithSessions(sessions))
	}
	if sessionID != "" {
		runOpts = append(runOpts, runner.WithSessionID(sessionID))
	}
	return runOpts
}
