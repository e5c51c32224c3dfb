package ports

import (
	"context"

	"github.com/aretw0/marquee/pkg/domain"
)

// GraphLoader retrieves a scene graph from its storage.
// This allows the storage layer (YAML file, Loam, Memory) to be decoupled.
type GraphLoader interface {
	// Load reads and decodes the full scene graph.
	Load(ctx context.Context) (*domain.SceneGraph, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload during authoring.
type Watchable interface {
	// Watch returns a channel that receives the id of every changed document.
	Watch(ctx context.Context) (<-chan string, error)
}
