package schema

import (
	"errors"
	"fmt"

	"github.com/aretw0/marquee/internal/transition"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/interpolate"
)

var layerProps = map[string]bool{
	domain.PropX: true, domain.PropY: true, domain.PropScale: true,
	domain.PropRotation: true, domain.PropOpacity: true, domain.PropColor: true,
}

var cameraProps = map[string]bool{
	domain.CameraPanX: true, domain.CameraPanY: true,
	domain.CameraZoom: true, domain.CameraRotation: true,
}

// sourced lists the layer kinds that cannot render without an asset.
var sourced = map[string]bool{"image": true, "video": true}

// ValidateGraph checks every scene and event of g.
func ValidateGraph(g *domain.SceneGraph) error {
	if g == nil {
		return &AggregateError{Errors: []error{errors.New("scene graph is nil")}}
	}

	var c collector
	if len(g.Events) == 0 {
		c.fail("events", "at least one event is required", nil)
	}

	for _, id := range g.SceneIDs() {
		s := g.Scenes[id]
		key := "scenes." + id
		if s == nil {
			c.fail(key, "empty scene", nil)
			continue
		}
		if s.ID != id {
			c.fail(key+".id", fmt.Sprintf("does not match key %q", id), s.ID)
		}
		validateScene(&c, key, s)
	}

	seen := make(map[string]bool)
	for i, ev := range g.Events {
		key := fmt.Sprintf("events[%d]", i)
		if ev == nil {
			c.fail(key, "empty event", nil)
			continue
		}
		if seen[ev.ID] {
			c.fail(key+".id", "duplicate event id", ev.ID)
		}
		seen[ev.ID] = true
		validateEvent(&c, key, g, ev)
	}
	return c.err()
}

// ValidateScene checks a single scene. The lifecycle manager runs it when a
// scene is instantiated.
func ValidateScene(s *domain.Scene) error {
	var c collector
	validateScene(&c, "scene", s)
	return c.err()
}

// ValidateEvent checks ev against the scenes of g.
func ValidateEvent(g *domain.SceneGraph, ev *domain.Event) error {
	var c collector
	validateEvent(&c, "event", g, ev)
	return c.err()
}

func validateScene(c *collector, key string, s *domain.Scene) {
	if s.ID == "" {
		c.fail(key+".id", "required", nil)
	}
	if s.DurationMs <= 0 {
		c.fail(key+".duration_ms", "must be positive", s.DurationMs)
	}

	ids := make(map[string]bool)
	for i, l := range s.Layers {
		lk := fmt.Sprintf("%s.layers[%d]", key, i)
		switch {
		case l.ID == "":
			c.fail(lk+".id", "required", nil)
		case ids[l.ID]:
			c.fail(lk+".id", "duplicate layer id", l.ID)
		}
		ids[l.ID] = true

		if l.Kind == "" {
			c.fail(lk+".kind", "required", nil)
		}
		if sourced[l.Kind] && l.Source == "" {
			c.fail(lk+".source", "required for "+l.Kind+" layers", nil)
		}
		if n := len(l.Color); n != 0 && n != 3 && n != 4 {
			c.fail(lk+".color", "expected 3 or 4 components", n)
		}
		if fields, ok := LayerData[l.Kind]; ok {
			fields.validate(c, lk+".data", l.Data)
		}
		for j, a := range l.Animations {
			ak := fmt.Sprintf("%s.animations[%d]", lk, j)
			if !layerProps[a.Property] {
				c.fail(ak+".property", "unknown layer property", a.Property)
				continue
			}
			validateAnimation(c, ak, a)
		}
	}

	tracks := make(map[string]bool)
	for i, a := range s.Audio {
		ak := fmt.Sprintf("%s.audio[%d]", key, i)
		switch {
		case a.ID == "":
			c.fail(ak+".id", "required", nil)
		case tracks[a.ID]:
			c.fail(ak+".id", "duplicate track id", a.ID)
		}
		tracks[a.ID] = true
		if a.Source == "" {
			c.fail(ak+".source", "required", nil)
		}
		if a.Level() < 0 {
			c.fail(ak+".volume", "must not be negative", a.Level())
		}
		if a.FadeInMs < 0 || a.FadeOutMs < 0 {
			c.fail(ak, "fades must not be negative", nil)
		}
	}

	for i, a := range s.Camera {
		ck := fmt.Sprintf("%s.camera[%d]", key, i)
		if !cameraProps[a.Property] {
			c.fail(ck+".property", "unknown camera property", a.Property)
			continue
		}
		validateAnimation(c, ck, a)
	}
}

func validateAnimation(c *collector, key string, a domain.Animation) {
	if err := interpolate.Validate(a); err != nil {
		var cfg *domain.ConfigurationError
		if errors.As(err, &cfg) {
			c.fail(key, cfg.Err.Error(), nil)
			return
		}
		c.fail(key, err.Error(), nil)
	}
}

func validateEvent(c *collector, key string, g *domain.SceneGraph, ev *domain.Event) {
	if ev.ID == "" {
		c.fail(key+".id", "required", nil)
	}
	if len(ev.Scenes) == 0 {
		c.fail(key+".scenes", "at least one scene is required", nil)
	}
	for i, id := range ev.Scenes {
		if _, err := g.Scene(id); err != nil {
			c.fail(fmt.Sprintf("%s.scenes[%d]", key, i), "unknown scene", id)
		}
	}

	if want := len(ev.Scenes) - 1; len(ev.Scenes) > 0 && len(ev.Transitions) != want {
		c.fail(key+".transitions", fmt.Sprintf("expected %d transitions for %d scenes", want, len(ev.Scenes)), len(ev.Transitions))
	}
	for i, t := range ev.Transitions {
		if _, err := transition.Compile(t); err != nil {
			c.fail(fmt.Sprintf("%s.transitions[%d]", key, i), err.Error(), nil)
		}
	}
	if ev.LoopTransition != nil {
		if !ev.Loop {
			c.fail(key+".loop_transition", "set without loop", nil)
		}
		if _, err := transition.Compile(*ev.LoopTransition); err != nil {
			c.fail(key+".loop_transition", err.Error(), nil)
		}
	}
}
