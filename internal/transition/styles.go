package transition

import "github.com/aretw0/marquee/pkg/domain"

// Styles are the container overrides of both sides of a transition.
type Styles struct {
	Out domain.Style
	In  domain.Style
}

// StylesAt computes the container styles of spec at eased progress e.
// It is pure: the same inputs always give the same styles.
func StylesAt(spec Spec, e float64) Styles {
	out, in := domain.IdentityStyle(), domain.IdentityStyle()

	switch spec.Kind {
	case domain.TransitionCrossfade:
		out.Opacity = 1 - e
		in.Opacity = e

	case domain.TransitionSlide:
		sign := 1.0
		if spec.Options.Direction == domain.DirectionRight || spec.Options.Direction == domain.DirectionDown {
			sign = -1
		}
		outShift, inShift := -sign*e*100, sign*(1-e)*100
		if spec.Options.Direction == domain.DirectionUp || spec.Options.Direction == domain.DirectionDown {
			out.TranslateY, in.TranslateY = outShift, inShift
		} else {
			out.TranslateX, in.TranslateX = outShift, inShift
		}

	case domain.TransitionZoom:
		out.Scale = 1 - e
		in.Scale = e
		if spec.Options.Fade == nil || *spec.Options.Fade {
			out.Opacity = 1 - e
			in.Opacity = e
		}

	case domain.TransitionWipe:
		inset := (1 - e) * 100
		switch spec.Options.Direction {
		case domain.DirectionRight:
			in.Clip.Right = inset
		case domain.DirectionUp:
			in.Clip.Top = inset
		case domain.DirectionDown:
			in.Clip.Bottom = inset
		default:
			in.Clip.Left = inset
		}

	case domain.TransitionDissolve:
		out.Blur = spec.Options.blur() * e
		out.Contrast = 1 + spec.Options.contrast()*e
		out.Opacity = 1 - e
		in.Opacity = e

	case domain.TransitionBlur:
		out.Blur = spec.Options.blur() * e
		if e < 1 {
			in.Opacity = 0
		}
	}

	return Styles{Out: out, In: in}
}
