package transition

import (
	"fmt"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/easing"
	"github.com/mitchellh/mapstructure"
)

// Default option values.
const (
	DefaultDissolveBlur     = 8.0
	DefaultDissolveContrast = 0.5
	DefaultBlurAmount       = 12.0
)

// Options are the kind-specific settings decoded from a descriptor. Nil
// numbers are unset; an explicit zero is kept.
type Options struct {
	Direction domain.Direction `mapstructure:"direction"`
	Blur      *float64         `mapstructure:"blur"`
	Contrast  *float64         `mapstructure:"contrast"`
	Fade      *bool            `mapstructure:"fade"`
}

func (o Options) blur() float64     { return deref(o.Blur) }
func (o Options) contrast() float64 { return deref(o.Contrast) }

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func orDefault(p *float64, def float64) *float64 {
	if p == nil {
		return &def
	}
	return p
}

// Spec is a validated descriptor with its options resolved.
type Spec struct {
	Kind       domain.TransitionKind
	DurationMs float64
	Easing     easing.Kind
	Options    Options
}

// Compile validates desc and resolves its defaults. Transitions ease in and
// out unless told otherwise.
func Compile(desc domain.TransitionDescriptor) (Spec, error) {
	if !desc.Kind.Valid() {
		return Spec{}, fmt.Errorf("unknown transition kind %q", desc.Kind)
	}
	if desc.DurationMs < 0 {
		return Spec{}, fmt.Errorf("%s: negative duration %.0fms", desc.Kind, desc.DurationMs)
	}

	ease := easing.EaseInOut
	if desc.Easing != "" {
		k, err := easing.Parse(desc.Easing)
		if err != nil {
			return Spec{}, fmt.Errorf("%s: %w", desc.Kind, err)
		}
		ease = k
	}

	opts, err := decodeOptions(desc)
	if err != nil {
		return Spec{}, err
	}

	return Spec{Kind: desc.Kind, DurationMs: desc.DurationMs, Easing: ease, Options: opts}, nil
}

func decodeOptions(desc domain.TransitionDescriptor) (Options, error) {
	var opts Options
	if len(desc.Options) > 0 {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &opts,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		})
		if err != nil {
			return opts, err
		}
		if err := dec.Decode(desc.Options); err != nil {
			return opts, fmt.Errorf("%s options: %w", desc.Kind, err)
		}
	}

	switch desc.Kind {
	case domain.TransitionSlide, domain.TransitionWipe:
		if opts.Direction == "" {
			opts.Direction = domain.DirectionLeft
		}
		if !opts.Direction.Valid() {
			return opts, fmt.Errorf("%s: unknown direction %q", desc.Kind, opts.Direction)
		}
	case domain.TransitionDissolve:
		opts.Blur = orDefault(opts.Blur, DefaultDissolveBlur)
		opts.Contrast = orDefault(opts.Contrast, DefaultDissolveContrast)
	case domain.TransitionBlur:
		opts.Blur = orDefault(opts.Blur, DefaultBlurAmount)
	}
	return opts, nil
}
