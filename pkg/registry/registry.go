// Package registry maps layer kinds to the renderers that draw them.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/ports"
)

// ErrRendererNotFound is returned when no renderer handles a layer kind.
var ErrRendererNotFound = errors.New("renderer not found")

// Registry manages the available layer renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]ports.LayerRenderer
	fallback  ports.LayerRenderer
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]ports.LayerRenderer),
	}
}

// Register adds a renderer for a layer kind.
// If a renderer for the same kind exists, it is overwritten.
func (r *Registry) Register(kind string, lr ports.LayerRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[kind] = lr
}

// SetFallback sets the renderer used for kinds nobody registered.
func (r *Registry) SetFallback(lr ports.LayerRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = lr
}

// Empty reports whether no renderer at all is registered.
func (r *Registry) Empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.renderers) == 0 && r.fallback == nil
}

// Kinds lists the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.renderers))
	for k := range r.renderers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Render hands frame to the renderer registered for its kind.
func (r *Registry) Render(frame domain.LayerFrame) error {
	r.mu.RLock()
	lr, ok := r.renderers[frame.Kind]
	if !ok {
		lr = r.fallback
	}
	r.mu.RUnlock()

	if lr == nil {
		return fmt.Errorf("%w: %s", ErrRendererNotFound, frame.Kind)
	}
	return lr.RenderLayer(frame)
}
