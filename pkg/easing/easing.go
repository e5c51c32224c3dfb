// Package easing maps linear progress in [0,1] onto eased progress.
package easing

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind names an easing curve.
type Kind string

const (
	Linear         Kind = "linear"
	EaseIn         Kind = "ease-in"
	EaseOut        Kind = "ease-out"
	EaseInOut      Kind = "ease-in-out"
	EaseInCubic    Kind = "ease-in-cubic"
	EaseOutCubic   Kind = "ease-out-cubic"
	EaseInOutCubic Kind = "ease-in-out-cubic"
	Smoothstep     Kind = "smoothstep"
	Smootherstep   Kind = "smootherstep"
)

var curves = map[Kind]func(float64) float64{
	Linear:  func(t float64) float64 { return t },
	EaseIn:  func(t float64) float64 { return t * t },
	EaseOut: func(t float64) float64 { return t * (2 - t) },
	EaseInOut: func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	},
	EaseInCubic: func(t float64) float64 { return t * t * t },
	EaseOutCubic: func(t float64) float64 {
		u := t - 1
		return u*u*u + 1
	},
	EaseInOutCubic: func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := 2*t - 2
		return 0.5*u*u*u + 1
	},
	Smoothstep:   func(t float64) float64 { return t * t * (3 - 2*t) },
	Smootherstep: func(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) },
}

// Kinds lists every known curve.
func Kinds() []Kind {
	return []Kind{Linear, EaseIn, EaseOut, EaseInOut, EaseInCubic, EaseOutCubic, EaseInOutCubic, Smoothstep, Smootherstep}
}

// Ease applies kind to t. t is clamped to [0,1]; unknown kinds are linear.
func Ease(kind Kind, t float64) float64 {
	t = Clamp01(t)
	fn, ok := curves[kind]
	if !ok {
		return t
	}
	// pin the endpoints so float error never leaks past them
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	}
	return fn(t)
}

// EaseName is Ease for a free-form name as written in scene files.
// An empty name is linear.
func EaseName(name string, t float64) float64 {
	k, err := Parse(name)
	if err != nil {
		k = Linear
	}
	return Ease(k, t)
}

// Parse normalises a curve name. "easeInOut", "EASE_IN_OUT" and
// "ease-in-out" are the same curve. An empty name is linear.
func Parse(name string) (Kind, error) {
	if strings.TrimSpace(name) == "" {
		return Linear, nil
	}
	var b strings.Builder
	var prev rune
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '_' || r == ' ':
			b.WriteRune('-')
		case unicode.IsUpper(r):
			if unicode.IsLower(prev) {
				b.WriteRune('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	k := Kind(b.String())
	if _, ok := curves[k]; !ok {
		return "", fmt.Errorf("unknown easing %q", name)
	}
	return k, nil
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
