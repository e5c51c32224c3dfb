package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/marquee/pkg/domain"
)

// Loader implements ports.GraphLoader over a graph built in code.
type Loader struct {
	raw []byte
}

// NewLoader snapshots graph. Later changes to graph are not seen by Load.
// Serializing here keeps loaded graphs isolated, like a file-backed loader.
func NewLoader(graph *domain.SceneGraph) (*Loader, error) {
	raw, err := json.Marshal(graph)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize graph: %w", err)
	}
	return &Loader{raw: raw}, nil
}

// Load returns a fresh copy of the graph.
func (l *Loader) Load(ctx context.Context) (*domain.SceneGraph, error) {
	var g domain.SceneGraph
	if err := json.Unmarshal(l.raw, &g); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	return &g, nil
}
