package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/marquee/internal/runtime"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/runner"
)

// Report describes a scene graph as markdown: an overview of its events,
// the timeline of each event and a scene inventory.
func Report(g *domain.SceneGraph) (string, error) {
	plans := make([]*runtime.Plan, 0, len(g.Events))
	for _, ev := range g.Events {
		p, err := runtime.BuildPlan(g, ev)
		if err != nil {
			return "", err
		}
		plans = append(plans, p)
	}

	var sb strings.Builder
	title := g.Title
	if title == "" {
		title = "Scene graph"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	sb.WriteString("| Event | Scenes | Length | Loop |\n|---|---|---|---|\n")
	for _, p := range plans {
		loop := "no"
		if p.Loop() {
			loop = "yes"
		}
		fmt.Fprintf(&sb, "| %s | %d | %s | %s |\n", p.Event.ID, len(p.Slots), runner.FormatClock(p.TotalMs), loop)
	}

	for _, p := range plans {
		fmt.Fprintf(&sb, "\n## %s\n\n", p.Event.ID)
		if p.Event.Title != "" {
			fmt.Fprintf(&sb, "%s\n\n", p.Event.Title)
		}
		sb.WriteString("| # | Scene | Start | End | In |\n|---|---|---|---|---|\n")
		for i, s := range p.Slots {
			fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n",
				i+1, s.Scene.ID, runner.FormatClock(s.StartMs), runner.FormatClock(s.EndMs), describeIn(i, s))
		}
		if p.Loop() {
			in := "cut"
			if p.Wrap != nil && p.Wrap.DurationMs > 0 {
				in = fmt.Sprintf("%s %.0fms", p.Wrap.Kind, p.Wrap.DurationMs)
			}
			fmt.Fprintf(&sb, "\nLoops back to %s with a %s.\n", p.Slots[0].Scene.ID, in)
		}
	}

	ids := make([]string, 0, len(g.Scenes))
	for id := range g.Scenes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	sb.WriteString("\n## Scenes\n\n| Scene | Duration | Layers | Audio | Assets |\n|---|---|---|---|---|\n")
	for _, id := range ids {
		s := g.Scenes[id]
		assets := strings.Join(s.Assets(), ", ")
		if assets == "" {
			assets = "-"
		}
		fmt.Fprintf(&sb, "| %s | %s | %d | %d | %s |\n",
			id, runner.FormatClock(s.DurationMs), len(s.Layers), len(s.Audio), assets)
	}
	return sb.String(), nil
}

func describeIn(i int, s runtime.Slot) string {
	switch {
	case i == 0:
		return "-"
	case s.In == nil || s.In.DurationMs <= 0:
		return "cut"
	}
	return fmt.Sprintf("%s %.0fms", s.In.Kind, s.In.DurationMs)
}
