package camera

import (
	"testing"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_IdentityBeforeAnimations(t *testing.T) {
	c := New([]domain.Animation{
		{Property: domain.CameraZoom, StartMs: 1000, EndMs: 2000, From: domain.Scalar(1), To: domain.Scalar(3)},
	})

	tr, err := c.Update(500)
	require.NoError(t, err)
	assert.Equal(t, domain.IdentityCamera(), tr)
}

func TestCamera_MergesProperties(t *testing.T) {
	c := New([]domain.Animation{
		{Property: domain.CameraZoom, EndMs: 1000, From: domain.Scalar(1), To: domain.Scalar(2)},
		{Property: domain.CameraPanX, EndMs: 1000, From: domain.Scalar(0), To: domain.Scalar(100)},
		{Property: domain.CameraRotation, EndMs: 1000, From: domain.Scalar(0), To: domain.Scalar(90)},
	})

	tr, err := c.Update(500)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, tr.Zoom, 1e-9)
	assert.InDelta(t, 50, tr.PanX, 1e-9)
	assert.InDelta(t, 45, tr.Rotation, 1e-9)
	assert.Equal(t, 0.0, tr.PanY)
}

func TestCamera_LaterAnimationWins(t *testing.T) {
	c := New([]domain.Animation{
		{Property: domain.CameraZoom, EndMs: 1000, From: domain.Scalar(1), To: domain.Scalar(2)},
		{Property: domain.CameraZoom, StartMs: 1500, EndMs: 2500, From: domain.Scalar(2), To: domain.Scalar(4)},
	})

	tr, _ := c.Update(1200)
	assert.Equal(t, 2.0, tr.Zoom)
	tr, _ = c.Update(2000)
	assert.InDelta(t, 3.0, tr.Zoom, 1e-9)
}

func TestCamera_KeepsCommittedOnError(t *testing.T) {
	c := New([]domain.Animation{
		{Property: domain.CameraZoom, EndMs: 1000, From: domain.Scalar(1), To: domain.Value{2, 2}},
	})
	tr, err := c.Update(500)
	assert.Error(t, err)
	assert.Equal(t, domain.IdentityCamera(), tr)
	assert.Equal(t, domain.IdentityCamera(), c.Transform())
}

func TestCamera_InstancesDoNotShareState(t *testing.T) {
	anims := []domain.Animation{
		{Property: domain.CameraPanY, EndMs: 100, From: domain.Scalar(0), To: domain.Scalar(10)},
	}
	a, b := New(anims), New(anims)
	_, _ = a.Update(100)
	assert.Equal(t, 10.0, a.Transform().PanY)
	assert.Equal(t, 0.0, b.Transform().PanY)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([]domain.Animation{{Property: domain.CameraPanX}}))
	assert.Error(t, Validate([]domain.Animation{{Property: "tilt"}}))
}
