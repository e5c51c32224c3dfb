package domain

// TransitionKind selects how an outgoing scene is blended into an incoming one.
type TransitionKind string

const (
	TransitionCrossfade TransitionKind = "crossfade"
	TransitionSlide     TransitionKind = "slide"
	TransitionZoom      TransitionKind = "zoom"
	TransitionWipe      TransitionKind = "wipe"
	TransitionDissolve  TransitionKind = "dissolve"
	TransitionBlur      TransitionKind = "blur"
)

// TransitionKinds lists every supported kind.
var TransitionKinds = []TransitionKind{
	TransitionCrossfade, TransitionSlide, TransitionZoom,
	TransitionWipe, TransitionDissolve, TransitionBlur,
}

// Valid reports whether k is a known kind.
func (k TransitionKind) Valid() bool {
	for _, known := range TransitionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Direction is the travel direction of slide and wipe transitions.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	switch d {
	case DirectionLeft, DirectionRight, DirectionUp, DirectionDown:
		return true
	}
	return false
}

// TransitionDescriptor configures the blend between two consecutive scenes.
// Options holds kind-specific settings (direction, blur amount, ...).
type TransitionDescriptor struct {
	Kind       TransitionKind `json:"kind" yaml:"kind"`
	DurationMs float64        `json:"duration_ms" yaml:"duration_ms"`
	Easing     string         `json:"easing,omitempty" yaml:"easing,omitempty"`
	Options    map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}
