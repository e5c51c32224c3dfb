package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/marquee/pkg/adapters/http"
	"github.com/aretw0/marquee/pkg/adapters/mcp"
	"github.com/aretw0/marquee/pkg/observability"
	"github.com/aretw0/marquee/pkg/runner"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Serve plays a show and exposes its control API on addr until ctx is
// cancelled. The show is held on its last frame when it completes.
func Serve(ctx context.Context, opts Options, addr string) error {
	logger, err := createLogger(opts)
	if err != nil {
		return err
	}
	metrics := observability.NewMetrics()
	eng, err := createEngine(opts, logger, metrics)
	if err != nil {
		return err
	}
	sessions, closeSessions, err := openSessions(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer closeSessions()

	opts.Hold = true
	r := runner.New(eng, runnerOptions(opts, logger, sessions, nil)...)
	srv := &http.Server{
		Addr: addr,
		Handler: httpAdapter.NewHandler(r,
			httpAdapter.WithMetrics(metrics),
			httpAdapter.WithLogger(logger),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.Run(ctx) })
	g.Go(func() error {
		logger.Info("control API listening", "addr", addr, "session", r.SessionID())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		return nil
	})
	return g.Wait()
}

// ServeMCP plays a show and exposes it to agents over the given MCP
// transport, "stdio" or "sse".
func ServeMCP(ctx context.Context, opts Options, transport string, port int) error {
	if transport != "stdio" && transport != "sse" {
		return fmt.Errorf("unknown transport %q: supported: stdio, sse", transport)
	}
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

	opts.Hold = true
	r := runner.New(eng, runnerOptions(opts, logger, sessions, nil)...)
	srv := mcp.NewServer(r, mcp.WithLogger(logger))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.Run(ctx) })
	g.Go(func() error {
		// Stdio ends when the client closes stdin.
		defer cancel()
		if transport == "stdio" {
			return srv.ServeStdio()
		}
		return srv.ServeSSE(ctx, port)
	})
	return g.Wait()
}
