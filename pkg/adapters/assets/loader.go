// Package assets checks that layer and audio sources are reachable before
// their scenes need them. Files are stat'ed and URLs are probed with HEAD
// requests, a bounded number at a time.
package assets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/marquee/internal/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel probes.
const DefaultConcurrency = 4

type status int

const (
	pending status = iota
	ready
	failed
)

type entry struct {
	status status
	err    error
}

// Loader implements ports.AssetLoader.
type Loader struct {
	root   string
	client *http.Client
	limit  int
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

// Option configures a Loader.
type Option func(*Loader)

// WithRoot resolves relative file sources against dir.
func WithRoot(dir string) Option {
	return func(l *Loader) { l.root = dir }
}

// WithHTTPClient sets the client used for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithConcurrency bounds how many sources are probed at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.limit = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// New creates a loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		client:  http.DefaultClient,
		limit:   DefaultConcurrency,
		logger:  logging.NewNop(),
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Prefetch starts probing sources in the background and returns at once.
func (l *Loader) Prefetch(ctx context.Context, sources []string) {
	go func() {
		_ = l.Fetch(ctx, sources)
	}()
}

// Fetch probes every source not already known and waits for the probes to
// finish. It returns the first failure; the other sources are still probed.
func (l *Loader) Fetch(ctx context.Context, sources []string) error {
	var g errgroup.Group
	g.SetLimit(l.limit)
	for _, src := range l.claim(sources) {
		g.Go(func() error {
			err := l.probe(ctx, src)
			l.settle(src, err)
			return err
		})
	}
	return g.Wait()
}

// Ready reports whether source has been found. An unknown source is
// scheduled for probing and reported as not ready yet.
func (l *Loader) Ready(source string) (bool, error) {
	l.mu.Lock()
	e, ok := l.entries[source]
	l.mu.Unlock()
	if !ok {
		l.Prefetch(context.Background(), []string{source})
		return false, nil
	}
	switch e.status {
	case ready:
		return true, nil
	case failed:
		return false, e.err
	}
	return false, nil
}

// claim marks unknown sources as pending and returns them.
func (l *Loader) claim(sources []string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, src := range sources {
		if _, ok := l.entries[src]; ok || src == "" {
			continue
		}
		l.entries[src] = &entry{status: pending}
		out = append(out, src)
	}
	return out
}

func (l *Loader) settle(src string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case err == nil:
		l.entries[src] = &entry{status: ready}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// forget it so the next Ready retries
		delete(l.entries, src)
	default:
		l.entries[src] = &entry{status: failed, err: err}
		l.logger.Warn("asset unavailable", "source", src, "err", err)
	}
}

func (l *Loader) probe(ctx context.Context, src string) error {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, src, nil)
		if err != nil {
			return err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode >= 400 {
			return fmt.Errorf("%s: %s", src, resp.Status)
		}
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	p := src
	if !filepath.IsAbs(p) && l.root != "" {
		p = filepath.Join(l.root, p)
	}
	info, err := os.Stat(p)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", p)
	}
	return nil
}
