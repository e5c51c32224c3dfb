package transition

import (
	"testing"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/easing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, desc domain.TransitionDescriptor) Spec {
	t.Helper()
	spec, err := Compile(desc)
	require.NoError(t, err)
	return spec
}

func TestAdvance_CrossfadeProgress(t *testing.T) {
	spec := compile(t, domain.TransitionDescriptor{Kind: domain.TransitionCrossfade, DurationMs: 1000, Easing: "ease-in-out"})
	tr := Begin(spec, 3000)

	styles, ok := tr.Advance(3200)
	require.True(t, ok)
	assert.InDelta(t, 0.2, tr.Progress(), 1e-9)
	assert.InDelta(t, 0.08, tr.Eased(), 1e-9)
	assert.InDelta(t, 0.92, styles.Out.Opacity, 1e-9)
	assert.InDelta(t, 0.08, styles.In.Opacity, 1e-9)
	assert.False(t, tr.Complete())
}

func TestAdvance_CrossfadeOpacitiesSumToOne(t *testing.T) {
	spec := compile(t, domain.TransitionDescriptor{Kind: domain.TransitionCrossfade, DurationMs: 700})
	for _, k := range easing.Kinds() {
		spec.Easing = k
		tr := Begin(spec, 0)
		for now := 0.0; now <= 700; now += 7 {
			s, ok := tr.Advance(now)
			if !ok {
				break
			}
			assert.InDelta(t, 1.0, s.Out.Opacity+s.In.Opacity, 1e-12, "easing %s at %v", k, now)
		}
	}
}

func TestAdvance_IdempotentAfterComplete(t *testing.T) {
	spec := compile(t, domain.TransitionDescriptor{Kind: domain.TransitionSlide, DurationMs: 100})
	tr := Begin(spec, 0)

	_, ok := tr.Advance(150)
	require.True(t, ok)
	require.True(t, tr.Complete())

	for i := 0; i < 3; i++ {
		_, ok = tr.Advance(200 + float64(i))
		assert.False(t, ok)
	}
	assert.Equal(t, 1.0, tr.Progress())
}

func TestAdvance_ZeroDuration(t *testing.T) {
	spec := compile(t, domain.TransitionDescriptor{Kind: domain.TransitionCrossfade})
	tr := Begin(spec, 500)

	s, ok := tr.Advance(500)
	require.True(t, ok)
	assert.True(t, tr.Complete())
	assert.Equal(t, 1.0, s.In.Opacity)
	assert.Equal(t, 0.0, s.Out.Opacity)
}

func TestInitial_HidesIncoming(t *testing.T) {
	for _, kind := range []domain.TransitionKind{domain.TransitionCrossfade, domain.TransitionDissolve, domain.TransitionZoom, domain.TransitionBlur} {
		spec := compile(t, domain.TransitionDescriptor{Kind: kind, DurationMs: 100})
		assert.Equal(t, 0.0, Begin(spec, 0).Initial().In.Opacity, "kind %s", kind)
	}

	wipe := compile(t, domain.TransitionDescriptor{Kind: domain.TransitionWipe, DurationMs: 100, Options: map[string]any{"direction": "right"}})
	assert.Equal(t, 100.0, Begin(wipe, 0).Initial().In.Clip.Right)
}

func TestStylesAt_Slide(t *testing.T) {
	tests := []struct {
		dir        domain.Direction
		outX, outY float64
		inX, inY   float64
	}{
		{domain.DirectionLeft, -50, 0, 50, 0},
		{domain.DirectionRight, 50, 0, -50, 0},
		{domain.DirectionUp, 0, -50, 0, 50},
		{domain.DirectionDown, 0, 50, 0, -50},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			spec := compile(t, domain.TransitionDescriptor{Kind: domain.TransitionSlide, DurationMs: 10, Options: map[string]any{"direction": string(tt.dir)}})
			s := StylesAt(spec, 0.5)
			assert.Equal(t, tt.outX, s.Out.TranslateX)
			assert.Equal(t, tt.outY, s.Out.TranslateY)
			assert.Equal(t, tt.inX, s.In.TranslateX)
			assert.Equal(t, tt.inY, s.In.TranslateY)
		})
	}
}

func TestStylesAt_DissolveAndBlur(t *testing.T) {
	dissolve := compile(t, domain.TransitionDescriptor{Kind: domain.TransitionDissolve, DurationMs: 10})
	s := StylesAt(dissolve, 0.5)
	assert.Equal(t, 4.0, s.Out.Blur)
	assert.Equal(t, 1.25, s.Out.Contrast)
	assert.Equal(t, 0.5, s.In.Opacity)

	blur := compile(t, domain.TransitionDescriptor{Kind: domain.TransitionBlur, DurationMs: 10, Options: map[string]any{"blur": "20"}})
	s = StylesAt(blur, 0.5)
	assert.Equal(t, 10.0, s.Out.Blur)
	assert.Equal(t, 1.0, s.Out.Opacity)
	assert.Equal(t, 0.0, s.In.Opacity)
	assert.Equal(t, 1.0, StylesAt(blur, 1).In.Opacity)
}

func TestCompile_ExplicitZeroOptionsAreKept(t *testing.T) {
	dissolve := compile(t, domain.TransitionDescriptor{Kind: domain.TransitionDissolve, DurationMs: 10, Options: map[string]any{"blur": 0, "contrast": 0.0}})
	require.NotNil(t, dissolve.Options.Blur)
	assert.Equal(t, 0.0, *dissolve.Options.Blur)
	s := StylesAt(dissolve, 0.5)
	assert.Equal(t, 0.0, s.Out.Blur)
	assert.Equal(t, 1.0, s.Out.Contrast)

	blur := compile(t, domain.TransitionDescriptor{Kind: domain.TransitionBlur, DurationMs: 10, Options: map[string]any{"blur": "0"}})
	assert.Equal(t, 0.0, StylesAt(blur, 0.5).Out.Blur)

	unset := compile(t, domain.TransitionDescriptor{Kind: domain.TransitionBlur, DurationMs: 10})
	require.NotNil(t, unset.Options.Blur)
	assert.Equal(t, DefaultBlurAmount, *unset.Options.Blur)
}

func TestStylesAt_ZoomWithoutFade(t *testing.T) {
	spec := compile(t, domain.TransitionDescriptor{Kind: domain.TransitionZoom, DurationMs: 10, Options: map[string]any{"fade": false}})
	s := StylesAt(spec, 0.25)
	assert.Equal(t, 0.75, s.Out.Scale)
	assert.Equal(t, 0.25, s.In.Scale)
	assert.Equal(t, 1.0, s.Out.Opacity)
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile(domain.TransitionDescriptor{Kind: "spin"})
	assert.Error(t, err)

	_, err = Compile(domain.TransitionDescriptor{Kind: domain.TransitionSlide, Options: map[string]any{"direction": "sideways"}})
	assert.Error(t, err)

	_, err = Compile(domain.TransitionDescriptor{Kind: domain.TransitionWipe, Options: map[string]any{"speed": 2}})
	assert.Error(t, err)

	_, err = Compile(domain.TransitionDescriptor{Kind: domain.TransitionCrossfade, Easing: "wobble"})
	assert.Error(t, err)

	spec, err := Compile(domain.TransitionDescriptor{Kind: domain.TransitionCrossfade})
	require.NoError(t, err)
	assert.Equal(t, easing.EaseInOut, spec.Easing)
}
