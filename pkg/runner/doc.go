/*
Package runner drives a Marquee engine in real time.

The engine itself owns no clock. A Runner ticks it from a wall-clock ticker,
hands drained lifecycle events to an EventHandler and fans them out to
subscribers. Control calls (Play, Pause, Seek, ...) may come from any
goroutine: they are queued on a command channel and applied between ticks,
so the engine is only ever touched by the loop.

With a session manager configured, the runner snapshots playback
periodically and on every control change, and resumes from the stored
snapshot when started with the same session id.

# Usage

	r := runner.New(engine,
		runner.WithHandler(runner.NewTextHandler(os.Stdout)),
		runner.WithSessions(session.NewManager(store)),
		runner.WithSessionID("lobby-screen"),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
