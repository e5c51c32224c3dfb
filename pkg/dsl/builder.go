package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/schema"
)

// Builder manages the graph construction.
type Builder struct {
	title  string
	scenes map[string]*SceneBuilder
	events []*EventBuilder
	errs   []error
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		scenes: make(map[string]*SceneBuilder),
	}
}

// Title sets the graph title.
func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

// Scene creates a scene lasting durationMs.
// If the scene already exists, it returns the existing builder.
func (b *Builder) Scene(id string, durationMs float64) *SceneBuilder {
	if sb, ok := b.scenes[id]; ok {
		return sb
	}
	sb := &SceneBuilder{
		scene:   domain.Scene{ID: id, DurationMs: durationMs},
		builder: b,
	}
	b.scenes[id] = sb
	return sb
}

// Event starts a new event.
func (b *Builder) Event(id string) *EventBuilder {
	eb := &EventBuilder{event: domain.Event{ID: id}}
	b.events = append(b.events, eb)
	return eb
}

func (b *Builder) fail(err error) {
	b.errs = append(b.errs, err)
}

// Graph assembles and validates the scene graph.
func (b *Builder) Graph() (*domain.SceneGraph, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	g := &domain.SceneGraph{
		Title:  b.title,
		Scenes: make(map[string]*domain.Scene, len(b.scenes)),
	}
	for id, sb := range b.scenes {
		scene := sb.scene
		g.Scenes[id] = &scene
	}
	for _, eb := range b.events {
		ev := eb.event
		g.Events = append(g.Events, &ev)
	}

	if err := schema.ValidateGraph(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Build compiles the graph into a memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	g, err := b.Graph()
	if err != nil {
		return nil, err
	}

	loader, err := memory.NewLoader(g)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
