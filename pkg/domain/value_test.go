package domain_test

import (
	"context"
	"testing"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Value
	}{
		{"#fff", domain.Value{255, 255, 255, 1}},
		{"#ff8000", domain.Value{255, 128, 0, 1}},
		{"#00000080", domain.Value{0, 0, 0, 128.0 / 255}},
		{"Red", domain.Value{255, 0, 0, 1}},
		{"0.5", domain.Value{0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseColor(tt.in)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-9)
		})
	}

	_, err := domain.ParseColor("#12345")
	assert.Error(t, err)
	_, err = domain.ParseColor("not-a-colour")
	assert.Error(t, err)
}

func TestValue_UnmarshalYAML(t *testing.T) {
	var anim domain.Animation
	src := `
property: color
start_ms: 0
end_ms: 1000
from: "#000000"
to: [255, 255, 255, 1]
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &anim))
	assert.Equal(t, domain.Value{0, 0, 0, 1}, anim.From)
	assert.Equal(t, domain.Value{255, 255, 255, 1}, anim.To)

	var scalar struct {
		V domain.Value `yaml:"v"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("v: 2"), &scalar))
	assert.Equal(t, 2.0, scalar.V.Float())

	err := yaml.Unmarshal([]byte("v: [[1]]"), &scalar)
	assert.Error(t, err)
}

func TestLayer_BaseProps(t *testing.T) {
	half := 0.5
	l := domain.Layer{ID: "bg", X: 10, Opacity: &half}
	p := l.BaseProps()
	assert.Equal(t, 10.0, p.X)
	assert.Equal(t, 1.0, p.Scale)
	assert.Equal(t, 0.5, p.Opacity)
}

func TestSceneGraph_Lookup(t *testing.T) {
	g := &domain.SceneGraph{
		Scenes: map[string]*domain.Scene{"a": {ID: "a", DurationMs: 100}},
		Events: []*domain.Event{{ID: "main", Scenes: []string{"a"}}},
	}

	_, err := g.Scene("missing")
	assert.ErrorIs(t, err, domain.ErrSceneNotFound)
	_, err = g.Event("missing")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	ev, err := g.Event("main")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ev.Scenes)
}

func TestLifecycleHooks_Dispatch(t *testing.T) {
	var got []domain.EventType
	record := func(_ context.Context, ev domain.LifecycleEvent) { got = append(got, ev.Type) }
	hooks := domain.LifecycleHooks{OnSceneStart: record, OnError: record}

	ctx := context.Background()
	hooks.Dispatch(ctx, domain.LifecycleEvent{Type: domain.EventSceneStart})
	hooks.Dispatch(ctx, domain.LifecycleEvent{Type: domain.EventSceneEnd})
	hooks.Dispatch(ctx, domain.LifecycleEvent{Type: domain.EventAssetMissing})

	assert.Equal(t, []domain.EventType{domain.EventSceneStart, domain.EventAssetMissing}, got)
}
