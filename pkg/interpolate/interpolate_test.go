package interpolate

import (
	"testing"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zoom(from, to float64) domain.Animation {
	return domain.Animation{
		Property: domain.CameraZoom,
		StartMs:  0,
		EndMs:    3000,
		From:     domain.Scalar(from),
		To:       domain.Scalar(to),
	}
}

func TestValueAt_LoopYoyo(t *testing.T) {
	anim := zoom(1, 2)
	anim.Loop = true
	anim.Yoyo = true

	v, ok, err := ValueAt(anim, 4500)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 1.5, v.Float(), 1e-9)

	// second cycle runs backwards
	v, _, _ = ValueAt(anim, 3000)
	assert.InDelta(t, 2.0, v.Float(), 1e-9)
	v, _, _ = ValueAt(anim, 3750)
	assert.InDelta(t, 1.75, v.Float(), 1e-9)
	v, _, _ = ValueAt(anim, 6000)
	assert.InDelta(t, 1.0, v.Float(), 1e-9)
}

func TestValueAt_LoopWithoutYoyo(t *testing.T) {
	anim := zoom(0, 10)
	anim.Loop = true

	v, _, _ := ValueAt(anim, 4500)
	assert.InDelta(t, 5.0, v.Float(), 1e-9)
	v, _, _ = ValueAt(anim, 3000)
	assert.InDelta(t, 0.0, v.Float(), 1e-9)
}

func TestValueAt_EndValueIsExact(t *testing.T) {
	for _, ease := range []string{"", "ease-in", "ease-out", "ease-in-out", "smoothstep"} {
		anim := zoom(1, 2.337)
		anim.Easing = ease
		for _, at := range []float64{3000, 3001, 1e9} {
			v, ok, err := ValueAt(anim, at)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 2.337, v.Float(), "easing %q at %v", ease, at)
		}
	}

	anim := zoom(1, 2)
	anim.Yoyo = true
	v, _, _ := ValueAt(anim, 5000)
	assert.Equal(t, 2.0, v.Float())
}

func TestValueAt_BeforeStart(t *testing.T) {
	anim := zoom(1, 2)
	anim.StartMs = 500
	anim.EndMs = 1000

	_, ok, err := ValueAt(anim, 100)
	require.NoError(t, err)
	assert.False(t, ok)

	anim.FillBackward = true
	v, ok, _ := ValueAt(anim, 100)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v.Float())
}

func TestValueAt_Degenerate(t *testing.T) {
	anim := zoom(1, 4)
	anim.StartMs = 200
	anim.EndMs = 200

	_, ok, _ := ValueAt(anim, 199)
	assert.False(t, ok)
	v, ok, _ := ValueAt(anim, 200)
	assert.True(t, ok)
	assert.Equal(t, 4.0, v.Float())
}

func TestValueAt_Easing(t *testing.T) {
	anim := zoom(0, 1)
	anim.Easing = "ease-in-out"

	v, _, _ := ValueAt(anim, 600)
	assert.InDelta(t, 0.08, v.Float(), 1e-9)
}

func TestValueAt_Color(t *testing.T) {
	anim := domain.Animation{
		Property: domain.PropColor,
		EndMs:    1000,
		From:     domain.Value{0, 0, 0, 1},
		To:       domain.Value{255, 100, 50, 0},
	}
	v, _, err := ValueAt(anim, 500)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{127.5, 50, 25, 0.5}, v, 1e-9)
}

func TestValueAt_ComponentMismatch(t *testing.T) {
	anim := domain.Animation{
		Property: domain.PropColor,
		EndMs:    1000,
		From:     domain.Value{0, 0, 0},
		To:       domain.Value{255, 100, 50, 1},
	}
	_, ok, err := ValueAt(anim, 500)
	assert.False(t, ok)
	var cfg *domain.ConfigurationError
	require.ErrorAs(t, err, &cfg)
	assert.ErrorIs(t, err, ErrComponentMismatch)
}

func TestValueAt_Keyframes(t *testing.T) {
	anim := domain.Animation{
		Property: domain.PropOpacity,
		StartMs:  1000,
		EndMs:    2000,
		Keyframes: []domain.Keyframe{
			{AtMs: 0, Value: domain.Scalar(0)},
			{AtMs: 200, Value: domain.Scalar(1)},
			{AtMs: 800, Value: domain.Scalar(1)},
			{AtMs: 1000, Value: domain.Scalar(0)},
		},
	}

	cases := map[float64]float64{
		1000: 0,
		1100: 0.5,
		1500: 1,
		1900: 0.5,
		2000: 0,
		9000: 0,
	}
	for at, want := range cases {
		v, ok, err := ValueAt(anim, at)
		require.NoError(t, err)
		require.True(t, ok)
		assert.InDelta(t, want, v.Float(), 1e-9, "at %v", at)
	}
}

func TestValueAt_KeyframesLoopWholeTimeline(t *testing.T) {
	anim := domain.Animation{
		Property: domain.PropX,
		EndMs:    100,
		Loop:     true,
		Yoyo:     true,
		Keyframes: []domain.Keyframe{
			{AtMs: 0, Value: domain.Scalar(0)},
			{AtMs: 50, Value: domain.Scalar(10)},
			{AtMs: 100, Value: domain.Scalar(20)},
		},
	}
	v, _, _ := ValueAt(anim, 125)
	assert.InDelta(t, 15, v.Float(), 1e-9)
}

func TestValidate(t *testing.T) {
	ok := zoom(1, 2)
	assert.NoError(t, Validate(ok))

	bad := zoom(1, 2)
	bad.EndMs = -1
	assert.Error(t, Validate(bad))

	bad = zoom(1, 2)
	bad.Easing = "wobble"
	assert.Error(t, Validate(bad))

	bad = domain.Animation{Property: "x", EndMs: 100, Keyframes: []domain.Keyframe{
		{AtMs: 50, Value: domain.Scalar(1)},
		{AtMs: 10, Value: domain.Scalar(2)},
	}}
	assert.Error(t, Validate(bad))

	bad = domain.Animation{Property: "x", EndMs: 100}
	assert.Error(t, Validate(bad))
}
