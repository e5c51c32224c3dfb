package runtime

import (
	"fmt"
	"math"

	"github.com/aretw0/marquee/internal/transition"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/schema"
)

// Slot is one scene's place on an event timeline.
type Slot struct {
	Scene   *domain.Scene
	StartMs float64
	EndMs   float64
	// In blends the previous slot into this one. Nil means a cut.
	In *transition.Spec
}

// Plan lays an event out on the clock. Slots follow each other back to
// back; a transition into slot i starts at its StartMs and never outlasts
// the slot, so at most two instances are mounted at any time.
type Plan struct {
	Event   *domain.Event
	Slots   []Slot
	TotalMs float64
	// Wrap blends the last slot into the first when the event loops.
	Wrap *transition.Spec
}

// BuildPlan validates ev against g and computes its slot layout.
func BuildPlan(g *domain.SceneGraph, ev *domain.Event) (*Plan, error) {
	if err := schema.ValidateEvent(g, ev); err != nil {
		return nil, fmt.Errorf("event %s: %w", ev.ID, err)
	}

	p := &Plan{Event: ev}
	var at float64
	for i, id := range ev.Scenes {
		scene, err := g.Scene(id)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", ev.ID, err)
		}
		d := math.Max(scene.DurationMs, 0)
		s := Slot{Scene: scene, StartMs: at, EndMs: at + d}
		if i > 0 {
			spec, err := compileClamped(ev.Transitions[i-1], d)
			if err != nil {
				return nil, fmt.Errorf("event %s transitions[%d]: %w", ev.ID, i-1, err)
			}
			s.In = spec
		}
		p.Slots = append(p.Slots, s)
		at = s.EndMs
	}
	p.TotalMs = at

	if ev.Loop {
		if p.TotalMs <= 0 {
			return nil, fmt.Errorf("event %s: cannot loop a timeline of zero length", ev.ID)
		}
		if ev.LoopTransition != nil {
			spec, err := compileClamped(*ev.LoopTransition, p.Slots[0].EndMs-p.Slots[0].StartMs)
			if err != nil {
				return nil, fmt.Errorf("event %s loop_transition: %w", ev.ID, err)
			}
			p.Wrap = spec
		}
	}
	return p, nil
}

func compileClamped(desc domain.TransitionDescriptor, maxMs float64) (*transition.Spec, error) {
	spec, err := transition.Compile(desc)
	if err != nil {
		return nil, err
	}
	spec.DurationMs = math.Min(spec.DurationMs, maxMs)
	return &spec, nil
}

// Loop reports whether the timeline wraps around.
func (p *Plan) Loop() bool { return p.Event.Loop }

// Ordinals count slots across loop cycles: ordinal = cycle*len(Slots) + index.

func (p *Plan) slot(ord int64) Slot {
	return p.Slots[ord%int64(len(p.Slots))]
}

func (p *Plan) cycle(ord int64) int64 {
	return ord / int64(len(p.Slots))
}

// StartOf is the absolute clock time at which ordinal ord starts.
func (p *Plan) StartOf(ord int64) float64 {
	return float64(p.cycle(ord))*p.TotalMs + p.slot(ord).StartMs
}

// SpecInto returns the transition entering ordinal ord, or nil for a cut.
func (p *Plan) SpecInto(ord int64) *transition.Spec {
	if ord <= 0 {
		return nil
	}
	if ord%int64(len(p.Slots)) == 0 {
		return p.Wrap
	}
	return p.slot(ord).In
}

// OrdinalAt returns the ordinal playing at clock time t. For a timeline
// that does not loop, any t at or past TotalMs maps to len(Slots).
func (p *Plan) OrdinalAt(t float64) int64 {
	n := int64(len(p.Slots))
	if t < 0 {
		t = 0
	}
	var cycle int64
	if p.Loop() {
		c := math.Floor(t / p.TotalMs)
		cycle = int64(c)
		t -= c * p.TotalMs
	} else if t >= p.TotalMs {
		return n
	}

	idx := 0
	for i, s := range p.Slots {
		if s.StartMs <= t {
			idx = i
		}
	}
	return cycle*n + int64(idx)
}
