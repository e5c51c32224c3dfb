package memory

import (
	"context"
	"sync"
)

// Assets implements ports.AssetLoader over a fixed readiness table.
// Sources are ready unless marked pending or failed.
type Assets struct {
	mu         sync.Mutex
	pending    map[string]bool
	failed     map[string]error
	prefetched []string
	polls      map[string]int
}

// NewAssets creates a loader where every source is ready.
func NewAssets() *Assets {
	return &Assets{
		pending: make(map[string]bool),
		failed:  make(map[string]error),
		polls:   make(map[string]int),
	}
}

// Hold marks sources as not ready yet.
func (a *Assets) Hold(sources ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range sources {
		a.pending[s] = true
	}
}

// Release marks sources as ready.
func (a *Assets) Release(sources ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, s := range sources {
		delete(a.pending, s)
	}
}

// Fail marks a source as permanently broken.
func (a *Assets) Fail(source string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failed[source] = err
}

func (a *Assets) Prefetch(ctx context.Context, sources []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.prefetched = append(a.prefetched, sources...)
}

func (a *Assets) Ready(source string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.polls[source]++
	if err, ok := a.failed[source]; ok {
		return false, err
	}
	return !a.pending[source], nil
}

// Prefetched lists every source passed to Prefetch, in call order.
func (a *Assets) Prefetched() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.prefetched...)
}

// Polls reports how many times source was polled.
func (a *Assets) Polls(source string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.polls[source]
}
