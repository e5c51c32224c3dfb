package dsl

import (
	"fmt"

	"github.com/aretw0/marquee/pkg/domain"
)

// SceneBuilder provides a fluent API for configuring a scene.
type SceneBuilder struct {
	scene   domain.Scene
	builder *Builder
}

// Title sets the scene title.
func (s *SceneBuilder) Title(title string) *SceneBuilder {
	s.scene.Title = title
	return s
}

// Layer adds a layer of the given kind and returns its builder.
func (s *SceneBuilder) Layer(id, kind string) *LayerBuilder {
	s.scene.Layers = append(s.scene.Layers, domain.Layer{ID: id, Kind: kind})
	return &LayerBuilder{scene: s, index: len(s.scene.Layers) - 1}
}

// Audio adds an audio track played while the scene is mounted.
func (s *SceneBuilder) Audio(id, source string) *AudioBuilder {
	s.scene.Audio = append(s.scene.Audio, domain.AudioTrack{ID: id, Source: source})
	return &AudioBuilder{scene: s, index: len(s.scene.Audio) - 1}
}

// Camera animates a camera property (pan_x, pan_y, zoom, rotation) between
// two values.
func (s *SceneBuilder) Camera(property string, startMs, endMs, from, to float64, easing string) *SceneBuilder {
	s.scene.Camera = append(s.scene.Camera, domain.Animation{
		Property: property,
		StartMs:  startMs,
		EndMs:    endMs,
		From:     domain.Scalar(from),
		To:       domain.Scalar(to),
		Easing:   easing,
	})
	return s
}

// LayerBuilder configures one layer of a scene.
type LayerBuilder struct {
	scene *SceneBuilder
	index int
}

func (l *LayerBuilder) layer() *domain.Layer {
	return &l.scene.scene.Layers[l.index]
}

// Scene returns the builder of the owning scene.
func (l *LayerBuilder) Scene() *SceneBuilder {
	return l.scene
}

// Source sets the asset the layer displays.
func (l *LayerBuilder) Source(src string) *LayerBuilder {
	l.layer().Source = src
	return l
}

// At positions the layer.
func (l *LayerBuilder) At(x, y float64) *LayerBuilder {
	l.layer().X, l.layer().Y = x, y
	return l
}

// Rotate sets the static rotation in degrees.
func (l *LayerBuilder) Rotate(deg float64) *LayerBuilder {
	l.layer().Rotation = deg
	return l
}

// Scale sets the static scale.
func (l *LayerBuilder) Scale(v float64) *LayerBuilder {
	l.layer().Scale = &v
	return l
}

// Opacity sets the static opacity.
func (l *LayerBuilder) Opacity(v float64) *LayerBuilder {
	l.layer().Opacity = &v
	return l
}

// Color sets the layer colour from a CSS name, #hex, rgb() or rgba() string.
func (l *LayerBuilder) Color(css string) *LayerBuilder {
	v, err := domain.ParseColor(css)
	if err != nil {
		l.scene.builder.fail(fmt.Errorf("scene %s layer %s: %w", l.scene.scene.ID, l.layer().ID, err))
		return l
	}
	l.layer().Color = v
	return l
}

// Set stores a kind-specific data field.
func (l *LayerBuilder) Set(key string, value any) *LayerBuilder {
	if l.layer().Data == nil {
		l.layer().Data = make(map[string]any)
	}
	l.layer().Data[key] = value
	return l
}

// Text sets the content of a text layer.
func (l *LayerBuilder) Text(content string) *LayerBuilder {
	return l.Set("text", content)
}

// Animate tweens a numeric property from one value to another over
// [startMs, endMs] of scene time.
func (l *LayerBuilder) Animate(property string, startMs, endMs, from, to float64) *LayerBuilder {
	return l.animate(domain.Animation{
		Property: property,
		StartMs:  startMs,
		EndMs:    endMs,
		From:     domain.Scalar(from),
		To:       domain.Scalar(to),
	})
}

// Fade is shorthand for an opacity animation.
func (l *LayerBuilder) Fade(startMs, endMs, from, to float64) *LayerBuilder {
	return l.Animate(domain.PropOpacity, startMs, endMs, from, to)
}

// Keyframes animates a property through keyframes whose offsets are
// relative to startMs.
func (l *LayerBuilder) Keyframes(property string, startMs, endMs float64, kfs ...domain.Keyframe) *LayerBuilder {
	return l.animate(domain.Animation{
		Property:  property,
		StartMs:   startMs,
		EndMs:     endMs,
		Keyframes: kfs,
	})
}

func (l *LayerBuilder) animate(a domain.Animation) *LayerBuilder {
	l.layer().Animations = append(l.layer().Animations, a)
	return l
}

func (l *LayerBuilder) last() *domain.Animation {
	anims := l.layer().Animations
	if len(anims) == 0 {
		l.scene.builder.fail(fmt.Errorf("scene %s layer %s: no animation to modify", l.scene.scene.ID, l.layer().ID))
		return &domain.Animation{}
	}
	return &anims[len(anims)-1]
}

// Ease sets the easing of the last animation.
func (l *LayerBuilder) Ease(name string) *LayerBuilder {
	l.last().Easing = name
	return l
}

// Repeat makes the last animation loop, optionally bouncing back and forth.
func (l *LayerBuilder) Repeat(yoyo bool) *LayerBuilder {
	a := l.last()
	a.Loop, a.Yoyo = true, yoyo
	return l
}

// HoldBefore makes the last animation own its property before it starts.
func (l *LayerBuilder) HoldBefore() *LayerBuilder {
	l.last().FillBackward = true
	return l
}

// AudioBuilder configures one audio track.
type AudioBuilder struct {
	scene *SceneBuilder
	index int
}

func (a *AudioBuilder) track() *domain.AudioTrack {
	return &a.scene.scene.Audio[a.index]
}

// Scene returns the builder of the owning scene.
func (a *AudioBuilder) Scene() *SceneBuilder {
	return a.scene
}

// Volume sets the track volume.
func (a *AudioBuilder) Volume(v float64) *AudioBuilder {
	a.track().Volume = &v
	return a
}

// Loop repeats the track while the scene is mounted.
func (a *AudioBuilder) Loop() *AudioBuilder {
	a.track().Loop = true
	return a
}

// Fades sets the fade-in and fade-out lengths.
func (a *AudioBuilder) Fades(inMs, outMs float64) *AudioBuilder {
	a.track().FadeInMs, a.track().FadeOutMs = inMs, outMs
	return a
}
