package dsl

import "github.com/aretw0/marquee/pkg/domain"

// EventBuilder sequences scenes into an event. Transitions are declared
// between two Play calls; scenes played back to back without one are cut.
type EventBuilder struct {
	event   domain.Event
	pending *domain.TransitionDescriptor
}

// Title sets the event title.
func (e *EventBuilder) Title(title string) *EventBuilder {
	e.event.Title = title
	return e
}

// Play appends a scene to the event.
func (e *EventBuilder) Play(sceneID string) *EventBuilder {
	if len(e.event.Scenes) > 0 {
		e.event.Transitions = append(e.event.Transitions, e.take())
	}
	e.event.Scenes = append(e.event.Scenes, sceneID)
	return e
}

// take returns the pending transition, or a cut.
func (e *EventBuilder) take() domain.TransitionDescriptor {
	if e.pending == nil {
		return domain.TransitionDescriptor{Kind: domain.TransitionCrossfade}
	}
	t := *e.pending
	e.pending = nil
	return t
}

// Transition sets the transition into the next played scene.
func (e *EventBuilder) Transition(t domain.TransitionDescriptor) *EventBuilder {
	e.pending = &t
	return e
}

// Crossfade blends into the next scene.
func (e *EventBuilder) Crossfade(ms float64) *EventBuilder {
	return e.Transition(domain.TransitionDescriptor{Kind: domain.TransitionCrossfade, DurationMs: ms})
}

// Slide pushes the next scene in from dir.
func (e *EventBuilder) Slide(ms float64, dir domain.Direction) *EventBuilder {
	return e.Transition(domain.TransitionDescriptor{
		Kind:       domain.TransitionSlide,
		DurationMs: ms,
		Options:    map[string]any{"direction": string(dir)},
	})
}

// Wipe reveals the next scene travelling towards dir.
func (e *EventBuilder) Wipe(ms float64, dir domain.Direction) *EventBuilder {
	return e.Transition(domain.TransitionDescriptor{
		Kind:       domain.TransitionWipe,
		DurationMs: ms,
		Options:    map[string]any{"direction": string(dir)},
	})
}

// Ease sets the easing of the pending transition.
func (e *EventBuilder) Ease(name string) *EventBuilder {
	if e.pending != nil {
		e.pending.Easing = name
	}
	return e
}

// Loop restarts the event after its last scene. A pending transition
// becomes the loop transition; otherwise the wrap is a cut.
func (e *EventBuilder) Loop() *EventBuilder {
	e.event.Loop = true
	if e.pending != nil {
		t := *e.pending
		e.event.LoopTransition = &t
		e.pending = nil
	}
	return e
}
