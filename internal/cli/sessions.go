package cli

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/marquee/internal/logging"
	"github.com/aretw0/marquee/pkg/adapters/file"
	redisAdapter "github.com/aretw0/marquee/pkg/adapters/redis"
	"github.com/aretw0/marquee/pkg/adapters/sqlite"
	"github.com/aretw0/marquee/pkg/persistence/middleware"
	"github.com/aretw0/marquee/pkg/ports"
	"github.com/aretw0/marquee/pkg/session"
	backend "github.com/redis/go-redis/v9"
)

const lockPrefix = "marquee:"

// openSessions picks the playback store: redis, then a sqlite database,
// then the file store. Without a store flag only a named or watched session
// is persisted; otherwise the manager is nil.
func openSessions(ctx context.Context, opts Options, logger *slog.Logger) (*session.Manager, func() error, error) {
	if opts.RedisURL == "" && opts.SessionDB == "" && opts.SessionID == "" && !opts.Watch {
		return nil, func() error { return nil }, nil
	}
	return openStore(ctx, opts, logger)
}

func openStore(ctx context.Context, opts Options, logger *slog.Logger) (*session.Manager, func() error, error) {
	noop := func() error { return nil }
	seal, err := sealer(opts.SessionKeys)
	if err != nil {
		return nil, noop, err
	}

	switch {
	case opts.RedisURL != "":
		return openRedis(ctx, opts.RedisURL, seal, logger)
	case opts.SessionDB != "":
		store, err := sqlite.Open(opts.SessionDB)
		if err != nil {
			return nil, noop, err
		}
		return session.NewManager(seal(store), session.WithLogger(logger)), store.Close, nil
	default:
		return session.NewManager(seal(file.New(opts.SessionDir)), session.WithLogger(logger)), noop, nil
	}
}

func openRedis(ctx context.Context, url string, seal middleware.Middleware, logger *slog.Logger) (*session.Manager, func() error, error) {
	noop := func() error { return nil }
	o, err := backend.ParseURL(url)
	if err != nil {
		return nil, noop, fmt.Errorf("invalid redis url: %w", err)
	}
	client := backend.NewClient(o)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, noop, fmt.Errorf("redis unreachable: %w", err)
	}

	store := redisAdapter.NewFromClient(client)
	mgr := session.NewManager(seal(store),
		session.WithLocker(redisAdapter.NewLocker(client, lockPrefix)),
		session.WithLogger(logger),
	)
	return mgr, store.Close, nil
}

// sealer encrypts stored snapshots when keys are configured.
func sealer(keys string) (middleware.Middleware, error) {
	if keys == "" {
		return func(s ports.PlaybackStore) ports.PlaybackStore { return s }, nil
	}
	cfg, err := middleware.ParseKeys(keys)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", SessionKeysEnv, err)
	}
	return middleware.NewEncryptionMiddleware(cfg), nil
}

// watchSessionID scopes the default watch session by project path, so
// restarting a watch resumes where it left off without colliding with
// other projects.
func watchSessionID(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	hash := md5.Sum([]byte(abs))
	return fmt.Sprintf("watch-%x", hash[:4])
}

// ListSessions writes the stored sessions to w, one per line.
func ListSessions(ctx context.Context, opts Options, w io.Writer) error {
	mgr, closeFn, err := storedSessions(ctx, opts)
	if err != nil {
		return err
	}
	defer closeFn()

	ids, err := mgr.List(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No active sessions.")
		return nil
	}
	for _, id := range ids {
		snap, err := mgr.Load(ctx, id)
		if err != nil {
			fmt.Fprintln(w, id)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fms\n", id, snap.EventID, snap.Status, snap.ClockMs)
	}
	return nil
}

// DeleteSession removes a stored session.
func DeleteSession(ctx context.Context, opts Options, id string) error {
	mgr, closeFn, err := storedSessions(ctx, opts)
	if err != nil {
		return err
	}
	defer closeFn()
	return mgr.Delete(ctx, id)
}

// storedSessions opens the store the playback commands would write to,
// whether or not a session is named.
func storedSessions(ctx context.Context, opts Options) (*session.Manager, func() error, error) {
	return openStore(ctx, opts, logging.NewNop())
}
