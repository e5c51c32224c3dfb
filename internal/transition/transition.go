// Package transition computes the blend between an outgoing and an incoming
// scene container. Each kind is a pure function of eased progress; the
// Transition record only tracks where along that function playback is.
package transition

import (
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/easing"
)

// Transition is the state of one running blend.
type Transition struct {
	Spec    Spec
	StartMs float64

	progress float64
	eased    float64
	complete bool
}

// Begin starts spec at startMs. Nothing is mutated until Advance is called;
// Initial gives the incoming container's first-frame style.
func Begin(spec Spec, startMs float64) *Transition {
	return &Transition{Spec: spec, StartMs: startMs}
}

// Initial returns the styles at zero progress.
func (t *Transition) Initial() Styles {
	return StylesAt(t.Spec, 0)
}

// EndMs is the clock time at which the transition completes.
func (t *Transition) EndMs() float64 {
	return t.StartMs + t.Spec.DurationMs
}

// Advance moves the transition to nowMs and returns the styles to apply.
// It returns false once the transition has completed, without recomputing
// anything, so repeated calls after completion are no-ops.
func (t *Transition) Advance(nowMs float64) (Styles, bool) {
	if t.complete {
		return Styles{}, false
	}

	p := 1.0
	if t.Spec.DurationMs > 0 {
		p = easing.Clamp01((nowMs - t.StartMs) / t.Spec.DurationMs)
	}
	t.progress = p
	t.eased = easing.Ease(t.Spec.Easing, p)
	if p >= 1 {
		t.complete = true
	}
	return StylesAt(t.Spec, t.eased), true
}

// Complete reports whether progress has reached 1.
func (t *Transition) Complete() bool { return t.complete }

// Progress is the raw progress of the last Advance.
func (t *Transition) Progress() float64 { return t.progress }

// Eased is the eased progress of the last Advance.
func (t *Transition) Eased() float64 { return t.eased }

// Kind is a shortcut for Spec.Kind.
func (t *Transition) Kind() domain.TransitionKind { return t.Spec.Kind }
