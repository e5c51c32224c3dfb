package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/marquee/internal/runtime"
	"github.com/aretw0/marquee/pkg/domain"
)

// Overlay marks playback progress on the chart.
type Overlay struct {
	EventID string
	ClockMs float64
}

// GenerateMermaid produces a Mermaid gantt chart with one section per event.
// Scenes are tasks placed on a millisecond axis; transitions are drawn as
// critical tasks over the overlap they blend. Cuts are omitted.
func GenerateMermaid(g *domain.SceneGraph, overlay *Overlay) (string, error) {
	var sb strings.Builder
	sb.WriteString("gantt\n")
	if g.Title != "" {
		fmt.Fprintf(&sb, "    title %s\n", sanitizeLabel(g.Title))
	}
	sb.WriteString("    dateFormat x\n")
	sb.WriteString("    axisFormat %M:%S\n")

	for _, ev := range g.Events {
		plan, err := runtime.BuildPlan(g, ev)
		if err != nil {
			return "", err
		}

		section := ev.ID
		if ev.Loop {
			section += " (loop)"
		}
		fmt.Fprintf(&sb, "    section %s\n", sanitizeLabel(section))

		for i, slot := range plan.Slots {
			if slot.In != nil && slot.In.DurationMs > 0 {
				fmt.Fprintf(&sb, "    %s :crit, %s, %.0f, %.0f\n",
					slot.In.Kind, taskID(ev.ID, "t", i),
					slot.StartMs, slot.StartMs+slot.In.DurationMs)
			}

			var tag string
			if overlay != nil && overlay.EventID == ev.ID {
				switch {
				case overlay.ClockMs >= slot.EndMs:
					tag = "done, "
				case overlay.ClockMs >= slot.StartMs:
					tag = "active, "
				}
			}
			fmt.Fprintf(&sb, "    %s :%s%s, %.0f, %.0f\n",
				sanitizeLabel(slot.Scene.ID), tag, taskID(ev.ID, "s", i),
				slot.StartMs, slot.EndMs)
		}
	}
	return sb.String(), nil
}

func taskID(eventID, prefix string, i int) string {
	return fmt.Sprintf("%s_%s%d", sanitizeMermaidID(eventID), prefix, i)
}

// Task names end at ':' and comments start with '%%'.
func sanitizeLabel(s string) string {
	s = strings.ReplaceAll(s, ":", " ")
	s = strings.ReplaceAll(s, "#", " ")
	return strings.ReplaceAll(s, "%%", "%")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
