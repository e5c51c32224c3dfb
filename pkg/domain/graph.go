package domain

import (
	"fmt"
	"sort"
)

// Layer property names that animations may target.
const (
	PropX        = "x"
	PropY        = "y"
	PropScale    = "scale"
	PropRotation = "rotation"
	PropOpacity  = "opacity"
	PropColor    = "color"
)

// Camera property names that camera animations may target.
const (
	CameraPanX     = "pan_x"
	CameraPanY     = "pan_y"
	CameraZoom     = "zoom"
	CameraRotation = "rotation"
)

// SceneGraph is a playable document: scenes keyed by id and the events that sequence them.
type SceneGraph struct {
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	Scenes map[string]*Scene `json:"scenes" yaml:"scenes"`
	Events []*Event          `json:"events" yaml:"events"`
}

// Scene looks up a scene by id.
func (g *SceneGraph) Scene(id string) (*Scene, error) {
	if s, ok := g.Scenes[id]; ok && s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrSceneNotFound, id)
}

// Event looks up an event by id.
func (g *SceneGraph) Event(id string) (*Event, error) {
	for _, ev := range g.Events {
		if ev != nil && ev.ID == id {
			return ev, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
}

// SceneIDs returns the scene ids in sorted order.
func (g *SceneGraph) SceneIDs() []string {
	ids := make([]string, 0, len(g.Scenes))
	for id := range g.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Event is an ordered sequence of scenes played back to back.
// Transitions[i] blends Scenes[i] into Scenes[i+1].
type Event struct {
	ID          string                 `json:"id" yaml:"id"`
	Title       string                 `json:"title,omitempty" yaml:"title,omitempty"`
	Scenes      []string               `json:"scenes" yaml:"scenes"`
	Transitions []TransitionDescriptor `json:"transitions,omitempty" yaml:"transitions,omitempty"`

	// Loop restarts the event from its first scene once the last one ends.
	Loop bool `json:"loop,omitempty" yaml:"loop,omitempty"`
	// LoopTransition blends the last scene into the first when looping. A cut is used when nil.
	LoopTransition *TransitionDescriptor `json:"loop_transition,omitempty" yaml:"loop_transition,omitempty"`
}

// Scene is a self-contained composition with a fixed duration.
type Scene struct {
	ID         string       `json:"id" yaml:"id"`
	Title      string       `json:"title,omitempty" yaml:"title,omitempty"`
	DurationMs float64      `json:"duration_ms" yaml:"duration_ms"`
	Layers     []Layer      `json:"layers,omitempty" yaml:"layers,omitempty"`
	Audio      []AudioTrack `json:"audio,omitempty" yaml:"audio,omitempty"`
	Camera     []Animation  `json:"camera,omitempty" yaml:"camera,omitempty"`
}

// Assets lists every asset source the scene depends on.
func (s *Scene) Assets() []string {
	var out []string
	for _, l := range s.Layers {
		if l.Source != "" {
			out = append(out, l.Source)
		}
	}
	for _, a := range s.Audio {
		if a.Source != "" {
			out = append(out, a.Source)
		}
	}
	return out
}

// Layer is a visual element mounted inside a scene's container.
type Layer struct {
	ID     string `json:"id" yaml:"id"`
	Kind   string `json:"kind" yaml:"kind"` // image, video, text, shape...
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	X        float64  `json:"x,omitempty" yaml:"x,omitempty"`
	Y        float64  `json:"y,omitempty" yaml:"y,omitempty"`
	Rotation float64  `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Scale    *float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Color    Value    `json:"color,omitempty" yaml:"color,omitempty"`

	// Data carries kind-specific payload (text content, shape geometry) passed through to renderers.
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`

	Animations []Animation `json:"animations,omitempty" yaml:"animations,omitempty"`
}

// BaseProps resolves the layer's static properties, defaulting scale and opacity to 1.
func (l Layer) BaseProps() LayerProps {
	p := LayerProps{X: l.X, Y: l.Y, Rotation: l.Rotation, Scale: 1, Opacity: 1}
	if l.Scale != nil {
		p.Scale = *l.Scale
	}
	if l.Opacity != nil {
		p.Opacity = *l.Opacity
	}
	if len(l.Color) > 0 {
		p.Color = append(Value(nil), l.Color...)
	}
	return p
}

// AudioTrack is a sound played while its scene is mounted.
type AudioTrack struct {
	ID        string   `json:"id" yaml:"id"`
	Source    string   `json:"source" yaml:"source"`
	Volume    *float64 `json:"volume,omitempty" yaml:"volume,omitempty"`
	Loop      bool     `json:"loop,omitempty" yaml:"loop,omitempty"`
	FadeInMs  float64  `json:"fade_in_ms,omitempty" yaml:"fade_in_ms,omitempty"`
	FadeOutMs float64  `json:"fade_out_ms,omitempty" yaml:"fade_out_ms,omitempty"`
}

// Level returns the configured volume, 1 when unset.
func (a AudioTrack) Level() float64 {
	if a.Volume == nil {
		return 1
	}
	return *a.Volume
}

// Animation changes one property over [StartMs, EndMs] of scene-local time.
// Either From/To or Keyframes is set; keyframe offsets are relative to StartMs.
type Animation struct {
	Property  string     `json:"property" yaml:"property"`
	StartMs   float64    `json:"start_ms" yaml:"start_ms"`
	EndMs     float64    `json:"end_ms" yaml:"end_ms"`
	From      Value      `json:"from,omitempty" yaml:"from,omitempty"`
	To        Value      `json:"to,omitempty" yaml:"to,omitempty"`
	Keyframes []Keyframe `json:"keyframes,omitempty" yaml:"keyframes,omitempty"`
	Easing    string     `json:"easing,omitempty" yaml:"easing,omitempty"`
	Loop      bool       `json:"loop,omitempty" yaml:"loop,omitempty"`
	Yoyo      bool       `json:"yoyo,omitempty" yaml:"yoyo,omitempty"`

	// FillBackward makes the animation own the property before StartMs, holding its first value.
	FillBackward bool `json:"fill_backward,omitempty" yaml:"fill_backward,omitempty"`
}

// Keyframe pins a value at an offset from the animation start.
type Keyframe struct {
	AtMs  float64 `json:"at_ms" yaml:"at_ms"`
	Value Value   `json:"value" yaml:"value"`
}
