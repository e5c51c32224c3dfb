package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/marquee/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func showGraph() *domain.SceneGraph {
	return &domain.SceneGraph{
		Title: "Launch",
		Scenes: map[string]*domain.Scene{
			"intro": {ID: "intro", DurationMs: 3000, Layers: []domain.Layer{
				{ID: "bg", Kind: "image", Source: "bg.png"},
			}},
			"logo": {ID: "logo", DurationMs: 4000},
		},
		Events: []*domain.Event{{
			ID:             "main",
			Title:          "Main show",
			Scenes:         []string{"intro", "logo"},
			Transitions:    []domain.TransitionDescriptor{{Kind: domain.TransitionCrossfade, DurationMs: 1000}},
			Loop:           true,
			LoopTransition: &domain.TransitionDescriptor{Kind: domain.TransitionSlide, DurationMs: 500},
		}},
	}
}

func TestReport(t *testing.T) {
	md, err := Report(showGraph())
	require.NoError(t, err)

	assert.Contains(t, md, "# Launch\n")
	assert.Contains(t, md, "| main | 2 | 00:07.000 | yes |\n")
	assert.Contains(t, md, "## main\n\nMain show\n")
	assert.Contains(t, md, "| 1 | intro | 00:00.000 | 00:03.000 | - |\n")
	assert.Contains(t, md, "| 2 | logo | 00:03.000 | 00:07.000 | crossfade 1000ms |\n")
	assert.Contains(t, md, "Loops back to intro with a slide 500ms.\n")
	assert.Contains(t, md, "| intro | 00:03.000 | 1 | 0 | bg.png |\n")
	assert.Contains(t, md, "| logo | 00:04.000 | 0 | 0 | - |\n")
}

func TestReport_InvalidEvent(t *testing.T) {
	g := showGraph()
	g.Events[0].Scenes = append(g.Events[0].Scenes, "missing")

	_, err := Report(g)
	assert.Error(t, err)
}

func TestRenderer_Plain(t *testing.T) {
	render, err := NewRenderer(true, 80)
	require.NoError(t, err)

	out, err := render("# Launch\n\nMain show\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "Main show")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.Ascii, "1.2.3\n")

	out := buf.String()
	assert.Contains(t, out, "v1.2.3")
	assert.NotContains(t, out, "\x1b[")

	buf.Reset()
	PrintBanner(&buf, termenv.TrueColor, "1.2.3")
	assert.Contains(t, buf.String(), "\x1b[")
}
