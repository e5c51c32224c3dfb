package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/marquee"
	"github.com/aretw0/marquee/internal/logging"
	"github.com/aretw0/marquee/pkg/adapters/assets"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/observability"
)

// createLogger configures the application logger. Logs always go to Stderr
// so stdout stays free for events.
func createLogger(opts Options) (*slog.Logger, error) {
	if opts.LogLevel == "" {
		return logging.NewNop(), nil
	}
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	if opts.LogJSON {
		return logging.NewJSON(os.Stderr, level), nil
	}
	return logging.New(level), nil
}

// createEngine opens the show with the CLI conventions: asset sources
// resolve next to the scene graph and debug logging traces every event.
func createEngine(opts Options, logger *slog.Logger, metrics *observability.Metrics) (*marquee.Engine, error) {
	root := opts.Path
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		root = filepath.Dir(root)
	}

	engineOpts := []marquee.Option{
		marquee.WithLogger(logger),
		marquee.WithAssetLoader(assets.New(assets.WithRoot(root), assets.WithLogger(logger))),
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		engineOpts = append(engineOpts, marquee.WithLifecycleHooks(debugHooks(logger)))
	}
	if metrics != nil {
		engineOpts = append(engineOpts, marquee.WithMetrics(metrics))
	}

	eng, err := marquee.Open(opts.Path, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing marquee: %w", err)
	}
	return eng, nil
}

func debugHooks(logger *slog.Logger) domain.LifecycleHooks {
	trace := func(ctx context.Context, ev domain.LifecycleEvent) {
		logger.DebugContext(ctx, "lifecycle",
			"type", ev.Type,
			"clock_ms", ev.ClockMs,
			"scene", ev.SceneID,
			"instance", ev.InstanceID,
			"reason", ev.Reason)
	}
	return domain.LifecycleHooks{
		OnSceneStart:       trace,
		OnSceneEnd:         trace,
		OnTransitionStart:  trace,
		OnTransitionEnd:    trace,
		OnTimelineComplete: trace,
		OnError: func(ctx context.Context, ev domain.LifecycleEvent) {
			logger.WarnContext(ctx, "contained playback error",
				"type", ev.Type,
				"scene", ev.SceneID,
				"instance", ev.InstanceID,
				"err", ev.Error)
		},
	}
}
