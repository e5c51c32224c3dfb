// Package camera tracks the camera transform of a single scene instance.
package camera

import (
	"fmt"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/interpolate"
)

// Camera owns the committed transform of one scene instance.
// Instances never share a camera.
type Camera struct {
	anims     []domain.Animation
	committed domain.CameraTransform
}

// New creates a camera at the identity transform driven by anims.
func New(anims []domain.Animation) *Camera {
	return &Camera{
		anims:     anims,
		committed: domain.IdentityCamera(),
	}
}

// Transform returns the last committed transform.
func (c *Camera) Transform() domain.CameraTransform {
	return c.committed
}

// Update evaluates every camera animation at localMs, merges them over the
// committed transform and commits the result. When several animations set
// the same property the later one wins. On error nothing is committed.
func (c *Camera) Update(localMs float64) (domain.CameraTransform, error) {
	next := c.committed
	for _, anim := range c.anims {
		v, ok, err := interpolate.ValueAt(anim, localMs)
		if err != nil {
			return c.committed, err
		}
		if !ok {
			continue
		}
		if err := set(&next, anim.Property, v.Float()); err != nil {
			return c.committed, err
		}
	}
	c.committed = next
	return next, nil
}

// Validate reports the first animation that targets an unknown camera property.
func Validate(anims []domain.Animation) error {
	var probe domain.CameraTransform
	for _, a := range anims {
		if err := set(&probe, a.Property, 0); err != nil {
			return err
		}
	}
	return nil
}

func set(t *domain.CameraTransform, prop string, v float64) error {
	switch prop {
	case domain.CameraPanX:
		t.PanX = v
	case domain.CameraPanY:
		t.PanY = v
	case domain.CameraZoom:
		t.Zoom = v
	case domain.CameraRotation:
		t.Rotation = v
	default:
		return &domain.ConfigurationError{Field: "camera", Err: fmt.Errorf("unknown property %q", prop)}
	}
	return nil
}
