package runtime_test

import (
	"testing"

	"github.com/aretw0/marquee/internal/runtime"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlan_Layout(t *testing.T) {
	g := twoScenes(crossfade(1000))
	p, err := runtime.BuildPlan(g, g.Events[0])
	require.NoError(t, err)

	require.Len(t, p.Slots, 2)
	assert.Equal(t, 0.0, p.Slots[0].StartMs)
	assert.Equal(t, 3000.0, p.Slots[1].StartMs)
	assert.Equal(t, 7000.0, p.TotalMs)
	assert.Nil(t, p.Slots[0].In)
	require.NotNil(t, p.Slots[1].In)
	assert.Equal(t, 1000.0, p.Slots[1].In.DurationMs)

	assert.Equal(t, int64(0), p.OrdinalAt(2999))
	assert.Equal(t, int64(1), p.OrdinalAt(3000))
	assert.Equal(t, int64(2), p.OrdinalAt(7000), "past the end")
}

func TestBuildPlan_ClampsTransitionToIncomingScene(t *testing.T) {
	g := twoScenes(crossfade(9000))
	p, err := runtime.BuildPlan(g, g.Events[0])
	require.NoError(t, err)
	assert.Equal(t, 4000.0, p.Slots[1].In.DurationMs)
}

func TestBuildPlan_LoopOrdinals(t *testing.T) {
	g := twoScenes(crossfade(1000))
	g.Events[0].Loop = true
	p, err := runtime.BuildPlan(g, g.Events[0])
	require.NoError(t, err)

	assert.Equal(t, int64(2), p.OrdinalAt(7000))
	assert.Equal(t, int64(3), p.OrdinalAt(10500))
	assert.Equal(t, 7000.0, p.StartOf(2))
	assert.Equal(t, 10000.0, p.StartOf(3))
	assert.Nil(t, p.SpecInto(2), "wrap cuts without a loop transition")
	assert.NotNil(t, p.SpecInto(3))
}

func TestBuildPlan_Rejects(t *testing.T) {
	g := twoScenes(crossfade(1000))
	g.Events[0].Transitions = nil
	_, err := runtime.BuildPlan(g, g.Events[0])
	assert.Error(t, err)

	g = twoScenes(domain.TransitionDescriptor{Kind: "spin", DurationMs: 100})
	_, err = runtime.BuildPlan(g, g.Events[0])
	assert.Error(t, err)
}

func TestQueue_SequenceSurvivesDrain(t *testing.T) {
	q := runtime.NewQueue()
	q.Push(domain.LifecycleEvent{Type: domain.EventSceneStart})
	q.Push(domain.LifecycleEvent{Type: domain.EventSceneEnd})
	assert.Equal(t, 2, q.Len())

	first := q.Drain()
	require.Len(t, first, 2)
	assert.Equal(t, uint64(2), first[1].Seq)
	assert.Zero(t, q.Len())

	q.Push(domain.LifecycleEvent{Type: domain.EventTimelineComplete})
	assert.Equal(t, uint64(3), q.Drain()[0].Seq)
}
