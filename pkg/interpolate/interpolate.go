// Package interpolate evaluates animations at a point of scene-local time.
//
// Values are interpolated component by component, so the same code path
// serves scalars (zoom, opacity) and colours (RGBA arrays).
package interpolate

import (
	"errors"
	"fmt"
	"math"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/easing"
)

// ErrComponentMismatch is wrapped when animated values disagree on their component count.
var ErrComponentMismatch = errors.New("component count mismatch")

// ValueAt returns the value of anim at localMs. The boolean is false when
// the animation has no say over its property at that time (before it starts).
func ValueAt(anim domain.Animation, localMs float64) (domain.Value, bool, error) {
	if err := checkShape(anim); err != nil {
		return nil, false, err
	}

	if localMs < anim.StartMs {
		if anim.FillBackward {
			return first(anim), true, nil
		}
		return nil, false, nil
	}

	span := anim.EndMs - anim.StartMs
	if span <= 0 {
		return last(anim), true, nil
	}

	raw, done := Progress(anim, localMs)
	if done {
		return last(anim), true, nil
	}

	eased := easing.EaseName(anim.Easing, raw)
	if len(anim.Keyframes) > 0 {
		return keyframeAt(anim.Keyframes, eased*span), true, nil
	}
	return Lerp(anim.From, anim.To, eased), true, nil
}

// Progress maps localMs onto the raw (uneased) progress of anim, applying
// loop and yoyo. done is true once a non-looping animation has finished.
// Callers must ensure localMs >= StartMs and EndMs > StartMs.
func Progress(anim domain.Animation, localMs float64) (raw float64, done bool) {
	span := anim.EndMs - anim.StartMs
	elapsed := localMs - anim.StartMs

	if !anim.Loop {
		if elapsed >= span {
			return 1, true
		}
		return elapsed / span, false
	}

	cycle := math.Floor(elapsed / span)
	raw = (elapsed - cycle*span) / span
	if anim.Yoyo && math.Mod(cycle, 2) == 1 {
		raw = 1 - raw
	}
	return raw, false
}

// Lerp interpolates a and b per component. Both must have the same length.
func Lerp(a, b domain.Value, t float64) domain.Value {
	out := make(domain.Value, len(a))
	for i := range a {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

func keyframeAt(kfs []domain.Keyframe, at float64) domain.Value {
	if at <= kfs[0].AtMs {
		return clone(kfs[0].Value)
	}
	for i := 0; i < len(kfs)-1; i++ {
		a, b := kfs[i], kfs[i+1]
		if at >= b.AtMs {
			continue
		}
		gap := b.AtMs - a.AtMs
		if gap <= 0 {
			return clone(b.Value)
		}
		return Lerp(a.Value, b.Value, (at-a.AtMs)/gap)
	}
	return clone(kfs[len(kfs)-1].Value)
}

func first(anim domain.Animation) domain.Value {
	if len(anim.Keyframes) > 0 {
		return clone(anim.Keyframes[0].Value)
	}
	return clone(anim.From)
}

func last(anim domain.Animation) domain.Value {
	if n := len(anim.Keyframes); n > 0 {
		return clone(anim.Keyframes[n-1].Value)
	}
	return clone(anim.To)
}

func clone(v domain.Value) domain.Value {
	return append(domain.Value(nil), v...)
}

func checkShape(anim domain.Animation) error {
	field := "animation " + anim.Property
	if len(anim.Keyframes) > 0 {
		want := len(anim.Keyframes[0].Value)
		if want == 0 {
			return &domain.ConfigurationError{Field: field, Err: errors.New("keyframe 0 has no value")}
		}
		for i, kf := range anim.Keyframes[1:] {
			if len(kf.Value) != want {
				return &domain.ConfigurationError{Field: field, Err: fmt.Errorf("%w: keyframe %d has %d, want %d", ErrComponentMismatch, i+1, len(kf.Value), want)}
			}
		}
		return nil
	}
	if len(anim.From) == 0 || len(anim.To) == 0 {
		return &domain.ConfigurationError{Field: field, Err: errors.New("from and to are required without keyframes")}
	}
	if len(anim.From) != len(anim.To) {
		return &domain.ConfigurationError{Field: field, Err: fmt.Errorf("%w: from has %d, to has %d", ErrComponentMismatch, len(anim.From), len(anim.To))}
	}
	return nil
}

// Validate checks anim before it is scheduled.
func Validate(anim domain.Animation) error {
	field := "animation " + anim.Property
	if anim.Property == "" {
		return &domain.ConfigurationError{Field: "animation", Err: errors.New("property is required")}
	}
	if anim.EndMs < anim.StartMs {
		return &domain.ConfigurationError{Field: field, Err: fmt.Errorf("end_ms %.0f before start_ms %.0f", anim.EndMs, anim.StartMs)}
	}
	if err := checkShape(anim); err != nil {
		return err
	}
	span := anim.EndMs - anim.StartMs
	prev := 0.0
	for i, kf := range anim.Keyframes {
		if kf.AtMs < prev || kf.AtMs > span {
			return &domain.ConfigurationError{Field: field, Err: fmt.Errorf("keyframe %d at %.0fms outside [%.0f, %.0f]", i, kf.AtMs, prev, span)}
		}
		prev = kf.AtMs
	}
	if _, err := easing.Parse(anim.Easing); err != nil {
		return &domain.ConfigurationError{Field: field, Err: err}
	}
	return nil
}
